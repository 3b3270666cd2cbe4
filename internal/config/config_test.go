package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 3600*time.Second, cfg.Pricing.Window)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MOCKTAIL_SERVER_PORT", "9000")
	t.Setenv("MOCKTAIL_STORE_DRIVER", "memory")
	t.Setenv("MOCKTAIL_PRICING_WINDOW", "10m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Pricing.Window)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("MOCKTAIL_STORE_DRIVER", "mongodb")

	_, err := LoadConfig()
	assert.Error(t, err)
}
