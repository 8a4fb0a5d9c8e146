package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env         string `env:"ENV" env-required:"true"`
	StoreDriver string `env:"STORE_DRIVER" env-default:"postgres"`
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Tracing     TracingConfig
}

// Development reports whether internal error details
// may be exposed to API clients.
func (c *Config) Development() bool {
	return c.Env == EnvDev || c.Env == EnvLocal
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:5173"`
}

type PostgresConfig struct {
	// URL takes precedence over the individual connection settings.
	URL            string        `env:"POSTGRES_URL"`
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-default:"postgres"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE" env-default:"services"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type TracingConfig struct {
	Enabled     bool    `env:"TRACING_ENABLED" env-default:"false"`
	ServiceName string  `env:"TRACING_SERVICE_NAME" env-default:"service-catalog"`
	SampleRatio float64 `env:"TRACING_SAMPLE_RATIO" env-default:"1"`
}
