package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "CLIENT_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL",
	"RATE_LIMIT_PER_SECOND", "RATE_LIMIT_BURST", "COUNTDOWN", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(8080, cfg.Port)
	assert.Equal([]string{"*"}, cfg.ClientOrigins)
	assert.Equal("info", cfg.LogLevel)
	assert.Equal("console", cfg.LogFormat)
	assert.Empty(cfg.DatabaseURL)
	assert.False(cfg.ArchiveEnabled())
	assert.Equal(10.0, cfg.RateLimitPerSecond)
	assert.Equal(20, cfg.RateLimitBurst)
	assert.Equal(5*time.Second, cfg.Countdown)
	assert.Equal(10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CLIENT_ORIGINS", "http://localhost:5173, https://play.example.com ,")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/impostor")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("COUNTDOWN", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(9000, cfg.Port)
	assert.Equal([]string{"http://localhost:5173", "https://play.example.com"}, cfg.ClientOrigins)
	assert.True(cfg.ArchiveEnabled())
	assert.Equal(2.5, cfg.RateLimitPerSecond)
	assert.Equal(250*time.Millisecond, cfg.Countdown)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "eighty"},
		{"PORT", "70000"},
		{"RATE_LIMIT_PER_SECOND", "fast"},
		{"RATE_LIMIT_BURST", "0"},
		{"COUNTDOWN", "5"},
		{"COUNTDOWN", "-1s"},
		{"SHUTDOWN_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
