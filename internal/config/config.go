// Package config loads graft.yaml, the project configuration of the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/graft/internal/finalize"
)

// DefaultFile is the configuration file looked up in the project directory.
const DefaultFile = "graft.yaml"

// Config represents the complete graft configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string        `yaml:"log_level"`
	Avatars  string        `yaml:"avatars"`
	Scratch  ScratchConfig `yaml:"scratch"`
	Build    BuildConfig   `yaml:"build"`
	Redis    RedisConfig   `yaml:"redis"`
	// MetricsFile, when set, receives a Prometheus textfile after each build.
	MetricsFile string `yaml:"metrics_file"`
}

// ScratchConfig selects where generated assets are written.
type ScratchConfig struct {
	// Backend is "file", "memory" or "redis".
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	// TTL expires redis scratch areas; zero keeps them.
	TTL time.Duration `yaml:"ttl"`
}

// BuildConfig tunes the finalization passes.
type BuildConfig struct {
	// WriteDefaults is auto, on or off.
	WriteDefaults string `yaml:"write_defaults"`
	// Fallback decides auto mode when nothing authored expresses a preference.
	Fallback bool          `yaml:"write_defaults_fallback"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

// RedisConfig configures the shared lock and, with the redis backend, the scratch store.
type RedisConfig struct {
	// Addr enables the redis locker when set.
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Avatars:  "avatars",
		Scratch: ScratchConfig{
			Backend: "file",
			Dir:     filepath.Join(".graft", "generated"),
		},
		Build: BuildConfig{
			WriteDefaults: "auto",
			Fallback:      true,
			LockTTL:       2 * time.Minute,
		},
		Redis: RedisConfig{Prefix: "graft:"},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Avatars == "" {
		return fmt.Errorf("avatars is required")
	}
	switch c.Scratch.Backend {
	case "file":
		if c.Scratch.Dir == "" {
			return fmt.Errorf("scratch.dir is required for the file backend")
		}
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("scratch.backend must be file, memory or redis, got %q", c.Scratch.Backend)
	}
	if _, err := finalize.ParseWriteDefaultsMode(c.Build.WriteDefaults); err != nil {
		return fmt.Errorf("build.write_defaults: %w", err)
	}
	if c.Build.LockTTL < 0 {
		return fmt.Errorf("build.lock_ttl must not be negative")
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Load reads DefaultFile from dir, falling back to the defaults when it does
// not exist. Relative paths are resolved against dir.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFile)
	config, err := LoadFromFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		config = DefaultConfig()
	}
	config.resolve(dir)
	return config, config.Validate()
}

func (c *Config) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Avatars = abs(c.Avatars)
	c.Scratch.Dir = abs(c.Scratch.Dir)
	c.MetricsFile = abs(c.MetricsFile)
}
