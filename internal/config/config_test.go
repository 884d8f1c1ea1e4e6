package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SHAREIT_DB_PATH", "/tmp/shareit-test.db")
	path := writeConfig(t, `
database:
  path: "${SHAREIT_DB_PATH}"
booking:
  booker_current_ascending: true
api:
  auth:
    api_keys:
      - key: "k1"
        name: "gateway"
        permissions: ["read", "write"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/shareit-test.db", cfg.Database.Path)
	assert.True(t, cfg.Booking.BookerCurrentAscending)
	assert.True(t, cfg.API.Auth.Enabled())
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, 0, cfg.Pagination.DefaultFrom)
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
	assert.Equal(t, 9090, cfg.API.HTTP.Port)
	assert.Equal(t, "http://localhost:9090", cfg.Gateway.ServerURL)
	assert.Equal(t, 60, cfg.Gateway.RateLimit.Requests)
	assert.Equal(t, 1000, cfg.Exports.MaxRows)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "database: [unterminated"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "app:\n  name: x\n"))
	assert.ErrorContains(t, err, "database path is required")
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		c := Config{Database: DatabaseConfig{Path: "shareit.db"}}
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"negative from", func(c *Config) { c.Pagination.DefaultFrom = -1 }, true},
		{"zero size", func(c *Config) { c.Pagination.DefaultSize = 0 }, true},
		{"bad server url", func(c *Config) { c.Gateway.ServerURL = "localhost:9090" }, true},
		{"empty api key", func(c *Config) { c.API.Auth.APIKeys = []APIClientKey{{Name: "x"}} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, PathFromEnv())
	t.Setenv("CONFIG_PATH", "/etc/shareit.yaml")
	assert.Equal(t, "/etc/shareit.yaml", PathFromEnv())
}

func TestLoadExampleConfig(t *testing.T) {
	t.Setenv("SHAREIT_GATEWAY_KEY", "gw-key")
	t.Setenv("SHAREIT_GATEWAY_EXTRA", "gw-extra")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	require.Len(t, cfg.API.Auth.APIKeys, 1)
	assert.Equal(t, "gw-key", cfg.API.Auth.APIKeys[0].Key)
	assert.Equal(t, cfg.API.Auth.APIKeys[0].Key, cfg.Gateway.APIKey)
	assert.Equal(t, cfg.API.Auth.APIKeys[0].Extra, cfg.Gateway.APIExtra)
	assert.Equal(t, 2, cfg.Gateway.MaxRetries)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.False(t, cfg.Booking.BookerCurrentAscending)
}
