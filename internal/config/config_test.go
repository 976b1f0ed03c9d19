package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config with only the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the rest comes from defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 500*time.Millisecond, conf.ComputerMoveDelay)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.SessionTTL)
	})

	t.Run("File values", func(t *testing.T) {
		path := writeConfig(t, `
http-port: "8081"
storage: redis
computer-move-delay: 1s
redis:
  host: cache
  port: "6380"
  session-ttl: 30m
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, time.Second, conf.ComputerMoveDelay)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Redis.SessionTTL)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "7070")
		path := writeConfig(t, "http-port: \"8081\"\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yml")) })
	})
}

func TestFromEnv(t *testing.T) {
	// Given: only the delay set in the environment
	t.Setenv("COMPUTER_MOVE_DELAY", "50ms")

	// When
	conf, err := FromEnv()

	// Then: everything else is a default
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, conf.ComputerMoveDelay)
	assert.Equal(t, StorageMemory, conf.Storage)
}
