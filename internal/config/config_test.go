package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults for missing keys", func(t *testing.T) {
		// Given: a config file with a single key
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the remaining values fall back to defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "7070", conf.SocketPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.False(t, conf.Telemetry.Enabled)
	})

	t.Run("Reads every section of the file", func(t *testing.T) {
		// Given: a complete config file
		path := writeConfig(t, `
log-level: warn
http-port: "8000"
socket-port: "8001"
storage: redis
session-ttl: 30m
redis:
  host: cache
  port: "6380"
  db: 2
telemetry:
  enabled: true
  endpoint: collector:4317
  service-name: board
`)

		// When: loading it
		conf, err := Load(path)

		// Then: the file values are used
		require.NoError(t, err)
		assert.Equal(t, "warn", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, 30*time.Minute, conf.SessionTTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 2, conf.Redis.DB)
		assert.True(t, conf.Telemetry.Enabled)
		assert.Equal(t, "collector:4317", conf.Telemetry.Endpoint)
		assert.Equal(t, "board", conf.Telemetry.ServiceName)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file selecting memory storage and an env var selecting redis
		path := writeConfig(t, "storage: memory\nhttp-port: \"8000\"\n")
		t.Setenv("STORAGE", "redis")
		t.Setenv("REDIS_HOST", "redis.internal")

		// When: loading the config
		conf, err := Load(path)

		// Then: env values win
		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "redis.internal:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "8000", conf.HTTPPort)
	})

	t.Run("Rejects unknown storage", func(t *testing.T) {
		path := writeConfig(t, "storage: postgres\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Storage")
	})

	t.Run("Rejects identical ports", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"9000\"\nsocket-port: \"9000\"\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SocketPort")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})

	t.Run("MustLoad panics on invalid config", func(t *testing.T) {
		path := writeConfig(t, "log-level: verbose\n")

		assert.Panics(t, func() {
			MustLoad(path)
		})
	})
}
