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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8000, c.Server.Port)
	assert.Equal(t, "0.0.0.0", c.Server.Host)
	assert.Equal(t, "none", c.Cache.Backend)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.Equal(t, "info", c.Log.Level)
	assert.True(t, c.Kafka.Producer.Async)
}

func TestLoadWithEnvRequiresAPIKey(t *testing.T) {
	t.Setenv("MCP_API_KEY", "")
	_, err := LoadWithEnv(writeConfig(t, "environment: test\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCP_API_KEY environment variable is not set")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: test
server:
  port: 9000
cache:
  backend: memory
`)
	t.Setenv("MCP_API_KEY", "secret")
	t.Setenv("SERVER_PORT", "8100")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", c.Auth.APIKey)
	assert.Equal(t, 8100, c.Server.Port)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.Equal(t, "redis", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	assert.Equal(t, "0.0.0.0:8100", c.Addr())
}

func TestValidate(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	c.Auth.APIKey = "k"
	require.NoError(t, c.Validate())

	c.Cache.Backend = "memcached"
	assert.Error(t, c.Validate())
	c.Cache.Backend = "redis"

	c.Kafka.Enabled = true
	assert.Error(t, c.Validate())
	c.Kafka.Brokers = []string{"localhost:9092"}
	assert.NoError(t, c.Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)
}
