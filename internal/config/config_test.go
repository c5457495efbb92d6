package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("GEOCODING_RPS", "")
	t.Setenv("LOCATION_LOOKUP_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 1.0, cfg.Geocoding.RequestsPerSecond)
	assert.Equal(t, 10*time.Second, cfg.Location.LookupTimeout)
	assert.Equal(t, "us", cfg.Geocoding.CountryCode)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("GEOCODING_RPS", "2.5")
	t.Setenv("LOCATION_LOOKUP_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bandseeking.com, https://www.bandseeking.com,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, 2.5, cfg.Geocoding.RequestsPerSecond)
	assert.Equal(t, 3*time.Second, cfg.Location.LookupTimeout)
	assert.Equal(t, []string{"https://bandseeking.com", "https://www.bandseeking.com"}, cfg.Server.AllowedOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-port")
	t.Setenv("GEOCODING_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 10*time.Second, cfg.Geocoding.Timeout)
}

func TestValidate(t *testing.T) {
	t.Run("rejects non-positive rate", func(t *testing.T) {
		t.Setenv("GEOCODING_RPS", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "GEOCODING_RPS")
	})

	t.Run("rejects blank user agent", func(t *testing.T) {
		cfg := &Config{
			Server:    ServerConfig{Addr: ":8080"},
			Postgres:  PostgresConfig{Host: "db", Database: "postgres"},
			Geocoding: GeocodingConfig{BaseURL: "http://geo", UserAgent: "  ", RequestsPerSecond: 1, FailureThreshold: 1},
		}
		assert.ErrorContains(t, cfg.Validate(), "GEOCODING_USER_AGENT")
	})
}
