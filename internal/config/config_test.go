package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost dbname=cert")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("SEED_DEMO", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "admin@cert.local", cfg.AdminUsername)
	assert.False(t, cfg.SeedDemo)
}

func TestLoadRequired(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("SESSION_SECRET", "secret")
	_, err := Load()
	assert.EqualError(t, err, "DB_DSN is not set")

	t.Setenv("DB_DSN", "dsn")
	t.Setenv("SESSION_SECRET", "")
	_, err = Load()
	assert.EqualError(t, err, "SESSION_SECRET is not set")
}

func TestLoadSeedFlag(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("SESSION_SECRET", "secret")

	t.Setenv("SEED_DEMO", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.SeedDemo)

	t.Setenv("SEED_DEMO", "maybe")
	_, err = Load()
	assert.Error(t, err)
}
