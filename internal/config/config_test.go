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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
http_server:
  port: ":8080"
  timeout: 3s
  idle_timeout: 30s
  shutdown_timeout: 10s
  rate_limit: 120
kafka:
  enabled: true
  brokers: ["localhost:9092"]
  topic: "orders"
  group_id: "test-group"
logger:
  level: "debug"
  format: "json"
metrics:
  path: "/prom"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPServer.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, 120, cfg.HTTPServer.RateLimit)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "orders", cfg.Kafka.Topic)
	assert.Equal(t, "test-group", cfg.Kafka.GroupID)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "/prom", cfg.Metrics.Path)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "logger:\n  level: WARN\n"))
	require.NoError(t, err)

	assert.Equal(t, ":4600", cfg.HTTPServer.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Zero(t, cfg.HTTPServer.RateLimit)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, "WARN", cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "http_server: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("kafka enabled without brokers", func(t *testing.T) {
		_, err := Load(writeConfig(t, "kafka:\n  enabled: true\n  topic: orders\n"))
		assert.Error(t, err)
	})
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv("CONFIG_PATH", "/etc/app.yaml")
	assert.Equal(t, "/etc/app.yaml", Path())
}
