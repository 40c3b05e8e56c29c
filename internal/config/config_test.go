package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
	assert.True(t, cfg.Build.Fallback)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }, "log_level"},
		{"no avatars", func(c *config.Config) { c.Avatars = "" }, "avatars"},
		{"unknown backend", func(c *config.Config) { c.Scratch.Backend = "s3" }, "scratch.backend"},
		{"file without dir", func(c *config.Config) { c.Scratch.Dir = "" }, "scratch.dir"},
		{"redis without addr", func(c *config.Config) { c.Scratch.Backend = "redis" }, "redis.addr"},
		{"bad write defaults", func(c *config.Config) { c.Build.WriteDefaults = "maybe" }, "build.write_defaults"},
		{"negative lock ttl", func(c *config.Config) { c.Build.LockTTL = -time.Second }, "build.lock_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yaml := `
log_level: debug
avatars: models
scratch:
  backend: redis
  ttl: 1h
redis:
  addr: localhost:6379
build:
  write_defaults: off
  lock_ttl: 30s
metrics_file: out/graft.prom
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(yaml), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "models"), cfg.Avatars)
	assert.Equal(t, "redis", cfg.Scratch.Backend)
	assert.Equal(t, time.Hour, cfg.Scratch.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "graft:", cfg.Redis.Prefix, "unset keys keep their default")
	assert.Equal(t, "off", cfg.Build.WriteDefaults)
	assert.True(t, cfg.Build.Fallback)
	assert.Equal(t, 30*time.Second, cfg.Build.LockTTL)
	assert.Equal(t, filepath.Join(dir, "out", "graft.prom"), cfg.MetricsFile)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "avatars"), cfg.Avatars)
	assert.Equal(t, filepath.Join(dir, ".graft", "generated"), cfg.Scratch.Dir)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte("log_level: [\n"), 0644))
	_, err := config.Load(dir)
	assert.ErrorContains(t, err, "failed to parse")
}
