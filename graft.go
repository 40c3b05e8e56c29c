package graft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/graft/internal/builders"
	"github.com/aretw0/graft/internal/finalize"
	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/scene"
)

// DefaultLockTTL bounds how long a crashed build can hold an avatar's lock.
const DefaultLockTTL = 2 * time.Minute

// Compiler builds avatars. It is safe for concurrent use; builds of the same
// avatar are serialized by the configured BuildLocker.
type Compiler struct {
	logger   *slog.Logger
	hooks    domain.BuildHooks
	store    ports.AssetStore
	locker   ports.BuildLocker
	registry *pipeline.Registry
	lockTTL  time.Duration
	finalize finalize.Options
}

// Option defines a functional option for configuring the Compiler.
type Option func(*Compiler) error

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) error {
		c.logger = logger
		return nil
	}
}

// WithHooks registers observability hooks. Several calls merge.
func WithHooks(hooks domain.BuildHooks) Option {
	return func(c *Compiler) error {
		c.hooks = c.hooks.Merge(hooks)
		return nil
	}
}

// WithStore sets the scratch store generated assets are written to.
func WithStore(s ports.AssetStore) Option {
	return func(c *Compiler) error {
		c.store = s
		return nil
	}
}

// WithLocker sets the build lock (default: in-process, fail fast).
func WithLocker(l ports.BuildLocker, ttl time.Duration) Option {
	return func(c *Compiler) error {
		c.locker = l
		if ttl > 0 {
			c.lockTTL = ttl
		}
		return nil
	}
}

// WithRegistry replaces the builder registry. The registry must already hold
// every builder it needs, including the finalization passes.
func WithRegistry(r *pipeline.Registry) Option {
	return func(c *Compiler) error {
		c.registry = r
		return nil
	}
}

// WithWriteDefaults sets the write-defaults mode ("auto", "on" or "off") and
// the value auto mode falls back to.
func WithWriteDefaults(mode string, fallback bool) Option {
	return func(c *Compiler) error {
		m, err := finalize.ParseWriteDefaultsMode(mode)
		if err != nil {
			return err
		}
		c.finalize = finalize.Options{WriteDefaults: m, Fallback: fallback}
		return nil
	}
}

// New creates a Compiler with the built-in builders.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{lockTTL: DefaultLockTTL, finalize: finalize.Options{Fallback: true}}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.store == nil {
		c.store = memory.NewStore()
	}
	if c.locker == nil {
		c.locker = memory.NewLocker()
	}
	if c.registry == nil {
		reg, err := DefaultRegistry(c.finalize)
		if err != nil {
			return nil, err
		}
		c.registry = reg
	}
	return c, nil
}

// DefaultRegistry returns a registry holding every built-in builder.
func DefaultRegistry(opts finalize.Options) (*pipeline.Registry, error) {
	reg := pipeline.NewRegistry()
	if err := builders.Register(reg); err != nil {
		return nil, err
	}
	finalize.Register(reg, opts)
	return reg, nil
}

// Registry returns the builder registry in use.
func (c *Compiler) Registry() *pipeline.Registry { return c.registry }

// Store returns the scratch store in use.
func (c *Compiler) Store() ports.AssetStore { return c.store }

// Result is the outcome of a successful build.
type Result struct {
	BuildID  string
	Output   *animgraph.Output
	Warnings []domain.Warning
	Duration time.Duration
}

// Build compiles the features of original. When clone is not nil it is the
// copy that will be uploaded: clone-only actions mutate it, and its
// descriptor receives the output too. On failure the scratch store is left
// empty and no descriptor is touched.
func (c *Compiler) Build(ctx context.Context, original, clone *scene.Avatar) (*Result, error) {
	if original == nil {
		return nil, fmt.Errorf("build: no avatar")
	}
	unlock, err := c.locker.Lock(ctx, original.Name, c.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("locking %q: %w", original.Name, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			c.logger.Warn("failed to release build lock", "avatar", original.Name, "error", err)
		}
	}()

	buildID := uuid.NewString()
	logger := c.logger.With("avatar", original.Name, "build", buildID)

	bc := pipeline.NewContext(buildID, original, clone)
	bc.Store = c.store
	bc.Logger = logger
	bc.Hooks = c.hooks
	bc.Instances = bc.Avatar.Features()

	start := time.Now()
	ev := &domain.BuildEvent{
		EventBase: domain.EventBase{Timestamp: start, Type: domain.EventBuildStart, BuildID: buildID},
		Avatar:    original.Name,
		Features:  len(bc.Instances),
		Clone:     clone != nil,
	}
	if c.hooks.OnBuildStart != nil {
		c.hooks.OnBuildStart(ctx, ev)
	}
	logger.Info("build started", "features", len(bc.Instances), "clone", clone != nil)

	err = c.run(ctx, bc)

	finish := *ev
	finish.Timestamp = time.Now()
	finish.Type = domain.EventBuildFinish
	finish.Duration = time.Since(start)
	finish.Err = err
	if c.hooks.OnBuildFinish != nil {
		c.hooks.OnBuildFinish(ctx, &finish)
	}

	if err != nil {
		logger.Error("build failed", "error", err)
		if resetErr := c.store.Reset(context.WithoutCancel(ctx), original.Name); resetErr != nil {
			logger.Warn("failed to reset scratch store", "error", resetErr)
		}
		return nil, err
	}

	out := bc.Output()
	original.Descriptor.Generated = out
	if clone != nil {
		clone.Descriptor.Generated = out
	}
	logger.Info("build finished", "layers", len(out.Controller.Layers), "params", out.Params.Len(), "warnings", len(bc.Warnings()), "duration", finish.Duration)
	return &Result{BuildID: buildID, Output: out, Warnings: bc.Warnings(), Duration: finish.Duration}, nil
}

func (c *Compiler) run(ctx context.Context, bc *pipeline.Context) error {
	if err := c.store.Reset(ctx, bc.Original.Name); err != nil {
		return fmt.Errorf("resetting scratch store: %w", err)
	}
	return c.registry.Compile(ctx, bc)
}
