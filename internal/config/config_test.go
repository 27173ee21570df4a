package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "usuarios_db", cfg.Mongo.Database)
	assert.Equal(t, "usuarios", cfg.Mongo.Collection)
	assert.Equal(t, 5*time.Second, cfg.Mongo.ConnectTimeout())
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "usuarios-api", cfg.Logger.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	dir := t.TempDir()
	content := "MONGO_URI=mongodb://db:27017\nMONGO_DATABASE=censo\nHTTP_PORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "censo", cfg.Mongo.Database)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("MONGO_URI=mongodb://file:27017\n"), 0o600))
	t.Setenv("MONGO_URI", "mongodb://env:27017")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://env:27017", cfg.Mongo.URI)
}

func TestValidate_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI is required")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		contains string
	}{
		{
			name:     "zero connect timeout",
			mutate:   func(c *Config) { c.Mongo.ConnectTimeoutSeconds = 0 },
			contains: "MONGO_CONNECT_TIMEOUT_SECONDS must be gt 0",
		},
		{
			name:     "unknown log format",
			mutate:   func(c *Config) { c.Logger.Format = "xml" },
			contains: "LOG_FORMAT must be one of [json console]",
		},
		{
			name:     "empty collection",
			mutate:   func(c *Config) { c.Mongo.Collection = "" },
			contains: "MONGO_COLLECTION is required",
		},
		{
			name:     "non numeric port",
			mutate:   func(c *Config) { c.App.HTTPPort = "http" },
			contains: "HTTP_PORT is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MONGO_URI", "mongodb://localhost:27017")
			cfg, err := LoadConfig(t.TempDir())
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
