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
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "safetails", cfg.Mongo.Database)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.UsesDefaultSecret())
	assert.False(t, cfg.App.IsProduction())
	assert.Zero(t, cfg.RateLimit.Login)
}

func TestLoadConfig_LegacyEnvNames(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("APP_ENV", "production")
	t.Setenv("RATE_LIMIT_LOGIN", "5")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 5, cfg.RateLimit.Login)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "http:\n  port: \"8088\"\nredis:\n  address: cache:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.HTTP.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
}
