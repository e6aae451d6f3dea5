// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 72*time.Hour, cfg.TokenExpire)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "cameo_actions", cfg.HistorianQueue)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("TOKEN_EXPIRE_TIME", "15m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.TokenExpire)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE_TIME", "soon")

	_, err := Parse()
	assert.Error(t, err)
}
