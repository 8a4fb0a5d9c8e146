package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvReader_Defaults(t *testing.T) {
	t.Setenv("ENV", EnvProd)

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.Development())
}

func TestEnvReader_Overrides(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("STORE_DRIVER", StoreDriverMemory)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com,https://example.com")
	t.Setenv("POSTGRES_URL", "postgres://u:p@db:5432/catalog")

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []string{"https://admin.example.com", "https://example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "postgres://u:p@db:5432/catalog", cfg.Postgres.URL)
	assert.True(t, cfg.Development())
}

func TestEnvReader_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown env",
			env:  map[string]string{"ENV": "staging"},
		},
		{
			name: "unknown store driver",
			env:  map[string]string{"ENV": EnvDev, "STORE_DRIVER": "mongo"},
		},
		{
			name: "sample ratio out of range",
			env:  map[string]string{"ENV": EnvDev, "TRACING_SAMPLE_RATIO": "1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewEnvReader().Read()
			assert.Error(t, err)
		})
	}
}
