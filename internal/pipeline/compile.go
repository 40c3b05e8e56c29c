package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/feature"
)

// Plan is the sorted list of actions of one build.
type Plan struct {
	Actions []Action
}

// Discover checks every instance can be built before anything is mutated:
// future versions, unknown kinds and invalid features are reported together.
func (r *Registry) Discover(instances []feature.Instance) error {
	var errs []error
	for _, inst := range instances {
		if u, ok := inst.Model.(feature.Unknown); ok {
			if u.Future {
				supported, _ := feature.CurrentVersion(feature.Kind(u.Type))
				errs = append(errs, &domain.UnsupportedVersionError{
					Feature: inst.Name(), Kind: u.Type, Version: u.Version, Supported: supported,
				})
				continue
			}
			errs = append(errs, &domain.MissingBuilderError{Feature: inst.Name(), Kind: u.Type})
			continue
		}
		if _, ok := r.Lookup(inst.Model.Kind()); !ok {
			errs = append(errs, &domain.MissingBuilderError{Feature: inst.Name(), Kind: string(inst.Model.Kind())})
			continue
		}
		if err := feature.Validate(inst.Model); err != nil {
			errs = append(errs, &domain.InvalidFeatureError{Feature: inst.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

// Prepare instantiates one builder per instance plus the internal builders,
// collects their actions and sorts them.
func (r *Registry) Prepare(bc *Context) (*Plan, error) {
	if err := r.Discover(bc.Instances); err != nil {
		return nil, err
	}

	var actions []Action
	collect := func(name, kind string, b Builder) error {
		if b == nil {
			return &domain.NoActionsError{Feature: name, Kind: kind}
		}
		declared := b.Actions()
		if len(declared) == 0 {
			return &domain.NoActionsError{Feature: name, Kind: kind}
		}
		for _, a := range declared {
			a.feature = name
			a.seq = len(actions)
			actions = append(actions, a)
		}
		return nil
	}

	for _, inst := range bc.Instances {
		factory, _ := r.Lookup(inst.Model.Kind())
		b, err := factory(bc, inst)
		if err != nil {
			return nil, fmt.Errorf("instantiating %s: %w", inst.Name(), err)
		}
		if err := collect(inst.Name(), string(inst.Model.Kind()), b); err != nil {
			return nil, err
		}
	}
	for _, in := range r.internal {
		if err := collect(in.name, in.name, in.factory(bc)); err != nil {
			return nil, err
		}
	}

	Sort(actions)
	return &Plan{Actions: actions}, nil
}

// Execute runs the plan in order. Clone-only actions are skipped without a
// clone. The first error is returned wrapped in a *domain.ActionError.
func (p *Plan) Execute(ctx context.Context, bc *Context) error {
	for _, a := range p.Actions {
		if a.CloneOnly && !bc.HasClone {
			bc.Logger.Debug("skipping clone-only action", "feature", a.feature, "action", a.Name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		ev := &domain.ActionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventActionStart, BuildID: bc.BuildID},
			Feature:   a.feature,
			Action:    a.Name,
			Priority:  a.Priority,
		}
		if bc.Hooks.OnActionStart != nil {
			bc.Hooks.OnActionStart(ctx, ev)
		}
		start := time.Now()
		err := a.Run(ctx, bc)
		if bc.Hooks.OnActionDone != nil {
			done := *ev
			done.Timestamp = time.Now()
			done.Type = domain.EventActionDone
			done.Duration = time.Since(start)
			done.Err = err
			bc.Hooks.OnActionDone(ctx, &done)
		}
		if err != nil {
			bc.Logger.Error("action failed", "feature", a.feature, "action", a.Name, "error", err)
			return &domain.ActionError{Feature: a.feature, Action: a.Name, Err: err}
		}
	}
	return nil
}

// Compile prepares and executes the build described by bc.
func (r *Registry) Compile(ctx context.Context, bc *Context) error {
	plan, err := r.Prepare(bc)
	if err != nil {
		return err
	}
	return plan.Execute(ctx, bc)
}
