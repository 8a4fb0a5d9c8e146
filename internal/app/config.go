package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/service-catalog/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("store_driver", cfg.StoreDriver).
		Bool("tracing", cfg.Tracing.Enabled).
		Msg("read env")

	config.SetGlobal(cfg)
}
