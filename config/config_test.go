package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "food.db", cfg.DBPath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_MAX", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 7, cfg.RateLimitMax)
	assert.True(t, cfg.CacheEnabled())

	host, port := cfg.RedisHostPort()
	assert.Equal(t, "cache", host)
	assert.Equal(t, 6380, port)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestRedisHostPort_Defaults(t *testing.T) {
	cfg := &Config{RedisAddr: "garbage"}
	host, port := cfg.RedisHostPort()
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, 6379, port)

	cfg.RedisAddr = ":abc"
	host, port = cfg.RedisHostPort()
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, 6379, port)
}
