package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "STORE_BACKEND", "TABLE_PREFIX", "REMOTE_TIMEOUT", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, StoreHTTP, cfg.StoreBackend)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.Equal(t, 15*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.True(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("STORE_BACKEND", StoreSQLite)
	t.Setenv("REMOTE_TIMEOUT", "3s")
	t.Setenv("REMOTE_RATE_LIMIT", "2.5")
	t.Setenv("LOG_MAX_FILES", "4")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("DEBUG", "")

	cfg := Load()

	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.Equal(t, StoreSQLite, cfg.StoreBackend)
	assert.Equal(t, 3*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 2.5, cfg.RemoteRateLimit)
	assert.Equal(t, 4, cfg.LogMaxFiles)
	assert.False(t, cfg.Debug)
}

func TestLoadIgnoresMalformedDurations(t *testing.T) {
	t.Setenv("SESSION_IDLE_TIMEOUT", "soon")

	assert.Equal(t, 30*time.Minute, Load().SessionIdleTimeout)
}
