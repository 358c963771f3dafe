package conf

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Defaults(t *testing.T) {
	for _, key := range []string{"QSAMPLER_LOG_LEVEL", "QSAMPLER_SEED", "QSAMPLER_SESSION", "PROMETHEUS_BIND", "POSTGRES_DSN", "DEBUG_DB"} {
		unsetenv(t, key)
	}

	cfg, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "local-laptop", cfg.Session)
	assert.Empty(t, cfg.PrometheusBind)
	assert.Empty(t, cfg.PostgresDSN)
	assert.False(t, cfg.DebugDB)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("QSAMPLER_SEED", "42")
	t.Setenv("QSAMPLER_SESSION", "desk")
	t.Setenv("PROMETHEUS_BIND", ":2112")
	t.Setenv("DEBUG_DB", "true")

	cfg, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "desk", cfg.Session)
	assert.Equal(t, ":2112", cfg.PrometheusBind)
	assert.True(t, cfg.DebugDB)
}

func TestParseEnv_BadSeed(t *testing.T) {
	t.Setenv("QSAMPLER_SEED", "forty-two")

	_, err := ParseEnv()
	assert.Error(t, err)
}

func unsetenv(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		_ = os.Setenv(key, old)
	})
}
