package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.uz/")
	t.Setenv("CACHE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.uz", cfg.BackendURL)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.BackendTimeout)
	assert.Equal(t, "Asia/Tashkent", cfg.Timezone)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:9000")
	t.Setenv("PORT", "8081")
	t.Setenv("CACHE_DRIVER", "REDIS")
	t.Setenv("CACHE_TTL", "45s")
	t.Setenv("BACKEND_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 45*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
}

func TestLoadRejectsUnknownCacheDriver(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:9000")
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := Load()
	assert.Error(t, err)
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Invalid"}
	_, offset := time.Now().In(cfg.Location()).Zone()
	assert.Equal(t, 5*60*60, offset)
}

func TestLoadResolvesLocationOnce(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:9000")
	t.Setenv("TIMEZONE", "Nowhere/Invalid")

	cfg, err := Load()
	require.NoError(t, err)
	first := cfg.Location()
	assert.Same(t, first, cfg.Location())
	_, offset := time.Now().In(first).Zone()
	assert.Equal(t, 5*60*60, offset)
}
