// Package cli implements the graft commands on top of the compiler, the file
// adapters and the presentation packages. cmd/graft only parses flags.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/config"
	"github.com/aretw0/graft/internal/logging"
	"github.com/aretw0/graft/pkg/adapters/file"
	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/adapters/redis"
	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/observability"
	"github.com/aretw0/graft/pkg/ports"
)

// Options are the flags shared by every command.
type Options struct {
	Dir        string
	ConfigPath string
	Debug      bool
	LogFormat  string
	// WriteDefaults overrides build.write_defaults when set.
	WriteDefaults string
	// RedisAddr overrides redis.addr when set.
	RedisAddr string
}

// Environment is everything a command needs, built from graft.yaml and flags.
type Environment struct {
	Config   *config.Config
	Logger   *slog.Logger
	Source   ports.AvatarSource
	Store    ports.AssetStore
	Compiler *graft.Compiler
	Metrics  *observability.Metrics

	redis *backend.Client
}

// loadConfig reads the explicit config path, or graft.yaml in the project dir.
func loadConfig(opts Options) (*config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Load(opts.Dir)
	}
	cfg, err := config.LoadFromFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// NewEnvironment initializes the compiler with standard CLI conventions.
func NewEnvironment(opts Options) (*Environment, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if opts.WriteDefaults != "" {
		cfg.Build.WriteDefaults = opts.WriteDefaults
	}
	if opts.RedisAddr != "" {
		cfg.Redis.Addr = opts.RedisAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Logger
	level, _ := cfg.Level()
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewWithWriter(stderr, level, logging.Format(opts.LogFormat))

	env := &Environment{
		Config:  cfg,
		Logger:  logger,
		Source:  file.NewSource(cfg.Avatars, file.WithLogger(logger)),
		Metrics: observability.NewMetrics(),
	}

	// 2. Persistence
	if cfg.Redis.Addr != "" {
		env.redis = backend.NewClient(&backend.Options{Addr: cfg.Redis.Addr})
	}
	switch cfg.Scratch.Backend {
	case "memory":
		env.Store = memory.NewStore()
	case "redis":
		env.Store = redis.NewFromClient(env.redis, redis.WithPrefix(cfg.Redis.Prefix), redis.WithTTL(cfg.Scratch.TTL))
	default:
		env.Store = file.NewStore(cfg.Scratch.Dir)
	}

	// 3. Compiler
	compilerOpts := []graft.Option{
		graft.WithLogger(logger),
		graft.WithStore(env.Store),
		graft.WithWriteDefaults(cfg.Build.WriteDefaults, cfg.Build.Fallback),
		graft.WithHooks(env.Metrics.Hooks()),
	}
	if opts.Debug {
		compilerOpts = append(compilerOpts, graft.WithHooks(debugHooks(logger)))
	}
	if env.redis != nil {
		compilerOpts = append(compilerOpts, graft.WithLocker(redis.NewLocker(env.redis, cfg.Redis.Prefix), cfg.Build.LockTTL))
	} else {
		compilerOpts = append(compilerOpts, graft.WithLocker(memory.NewLocker(), cfg.Build.LockTTL))
	}
	env.Compiler, err = graft.New(compilerOpts...)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("error initializing compiler: %w", err)
	}
	return env, nil
}

// Close releases the redis connection, if any.
func (e *Environment) Close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
}

// writeMetrics dumps the collected series when a metrics file is configured.
func (e *Environment) writeMetrics() {
	if e.Config.MetricsFile == "" {
		return
	}
	if err := e.Metrics.WriteTextfile(e.Config.MetricsFile); err != nil {
		e.Logger.Warn("failed to write metrics", "error", err)
	}
}

func debugHooks(logger *slog.Logger) domain.BuildHooks {
	return domain.BuildHooks{
		OnActionStart: func(ctx context.Context, e *domain.ActionEvent) {
			logger.Debug("Action Start", "feature", e.Feature, "action", e.Action, "priority", e.Priority)
		},
		OnActionDone: func(ctx context.Context, e *domain.ActionEvent) {
			if e.Err != nil {
				logger.Debug("Action Done (Error)", "feature", e.Feature, "action", e.Action, "err", e.Err)
			} else {
				logger.Debug("Action Done (Success)", "feature", e.Feature, "action", e.Action, "duration", e.Duration)
			}
		},
	}
}
