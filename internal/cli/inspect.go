package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/presentation/graph"
	"github.com/aretw0/graft/internal/runtime"
	"github.com/aretw0/graft/pkg/adapters/memory"
	"github.com/aretw0/graft/pkg/feature"
)

// RunValidate loads each avatar and checks every feature can be built,
// without building anything.
func (e *Environment) RunValidate(ctx context.Context, w io.Writer, avatars []string) error {
	names, err := e.avatarNames(ctx, avatars)
	if err != nil {
		return err
	}
	var errs []error
	for _, name := range names {
		av, err := e.Source.Load(ctx, name)
		if err == nil {
			err = e.Compiler.Registry().Discover(av.Features())
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		fmt.Fprintf(w, "%s: %d features OK\n", name, len(av.Features()))
	}
	return errors.Join(errs...)
}

// GraphOptions select what RunGraph prints.
type GraphOptions struct {
	Avatar string
	// Layers restricts the output; every layer when empty.
	Layers []string
	// Set drives the simulator before printing, "name=value" each.
	Set   []string
	Ticks int
}

// ParseAssignments parses "name=value" pairs.
func ParseAssignments(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// RunGraph builds the avatar into a throwaway store and prints its layers as
// a Mermaid diagram, highlighting the simulated states when Set is given.
func (e *Environment) RunGraph(ctx context.Context, w io.Writer, opts GraphOptions) error {
	values, err := ParseAssignments(opts.Set)
	if err != nil {
		return err
	}
	av, err := e.Source.Load(ctx, opts.Avatar)
	if err != nil {
		return err
	}
	preview, err := graft.New(
		graft.WithLogger(e.Logger),
		graft.WithStore(memory.NewStore()),
		graft.WithWriteDefaults(e.Config.Build.WriteDefaults, e.Config.Build.Fallback),
	)
	if err != nil {
		return err
	}
	res, err := preview.Build(ctx, av, nil)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if len(values) > 0 {
		sim := runtime.NewSimulator(res.Output.Controller, runtime.WithLogger(e.Logger))
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := sim.Set(name, values[name]); err != nil {
				return err
			}
		}
		ticks := opts.Ticks
		if ticks <= 0 {
			ticks = 1
		}
		sim.Run(ticks)
		overlay = &graph.GraphOverlay{Current: make(map[string]string)}
		for _, l := range res.Output.Controller.Layers {
			overlay.Current[l.Name] = sim.Current(l.Name)
		}
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(res.Output.Controller, opts.Layers, overlay))
	return err
}

// ListFeatures prints every registered feature kind with its schema version.
func (e *Environment) ListFeatures(w io.Writer) {
	for _, kind := range e.Compiler.Registry().Kinds() {
		version, _ := feature.CurrentVersion(kind)
		fmt.Fprintf(w, "%-16s v%d\n", kind, version)
	}
}
