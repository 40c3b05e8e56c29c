package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/graft/internal/clips"
	"github.com/aretw0/graft/internal/smoothing"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/scene"
)

// Context is the state shared by every action of one build.
type Context struct {
	BuildID string
	// Avatar is the working avatar: the clone when one is built, else the original.
	Avatar   *scene.Avatar
	Original *scene.Avatar
	HasClone bool

	Controller *animgraph.Controller
	Menu       *animgraph.Menu
	Params     *animgraph.ParamList
	Library    *scene.Library
	Store      ports.AssetStore
	Resting    *clips.Resting
	Synth      *clips.Synthesizer
	Smoothing  *smoothing.Engine
	Instances  []feature.Instance
	Logger     *slog.Logger
	Hooks      domain.BuildHooks

	services map[string]any
	warnings []domain.Warning
}

// NewContext prepares an empty output for building avatar. clone may be nil.
func NewContext(buildID string, original, clone *scene.Avatar) *Context {
	working := original
	if clone != nil {
		working = clone
	}
	ctrl := animgraph.NewController(original.Name + " FX")
	resting := clips.NewResting()
	return &Context{
		BuildID:    buildID,
		Avatar:     working,
		Original:   original,
		HasClone:   clone != nil,
		Controller: ctrl,
		Menu:       animgraph.NewMenu(),
		Params:     animgraph.NewParamList(),
		Library:    working.Library,
		Resting:    resting,
		Synth:      clips.New(working.Root, working.Library, resting),
		Smoothing:  smoothing.New(ctrl),
		Logger:     slog.New(slog.DiscardHandler),
		services:   make(map[string]any),
	}
}

// Output returns the generated controller, menu and parameter list.
func (c *Context) Output() *animgraph.Output {
	return &animgraph.Output{Controller: c.Controller, Menu: c.Menu, Params: c.Params}
}

// Warn records a non-fatal problem.
func (c *Context) Warn(ctx context.Context, featureName, format string, args ...any) {
	w := domain.Warning{Feature: featureName, Message: fmt.Sprintf(format, args...)}
	c.warnings = append(c.warnings, w)
	c.Logger.Warn(w.Message, "feature", featureName)
	if c.Hooks.OnWarning != nil {
		c.Hooks.OnWarning(ctx, &domain.WarningEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventWarning, BuildID: c.BuildID},
			Warning:   w,
		})
	}
}

// Warnings returns every warning recorded so far.
func (c *Context) Warnings() []domain.Warning {
	return append([]domain.Warning(nil), c.warnings...)
}

// Service returns the build-wide service stored under key, creating it on first use.
// Builders use services to coordinate across features.
func Service[T any](c *Context, key string, create func() T) T {
	if v, ok := c.services[key]; ok {
		return v.(T)
	}
	v := create()
	c.services[key] = v
	return v
}

// Object resolves a path relative to the working avatar's root.
func (c *Context) Object(path string) (*scene.Object, bool) {
	if path == "" {
		return c.Avatar.Root, true
	}
	return c.Avatar.Root.Find(path)
}
