package builders

import (
	"context"
	"slices"

	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/scene"
)

const (
	exclusiveTagService  = "exclusive_tags"
	physboneResetService = "physbone_resets"
)

// exclusiveTags groups toggles by tag.
type exclusiveTags struct {
	toggles []*toggleBuilder
}

func newExclusiveTags() *exclusiveTags { return &exclusiveTags{} }

func (e *exclusiveTags) add(t *toggleBuilder) { e.toggles = append(e.toggles, t) }

// peers returns the other toggles sharing at least one tag with t, in build order.
func (e *exclusiveTags) peers(t *toggleBuilder) []*toggleBuilder {
	var out []*toggleBuilder
	for _, other := range e.toggles {
		if other == t || other.param == nil || other.param == t.param {
			continue
		}
		for _, tag := range t.model.ExclusiveTags {
			if slices.Contains(other.model.ExclusiveTags, tag) {
				out = append(out, other)
				break
			}
		}
	}
	return out
}

// physboneResets owns one reset layer per physbone, shared by every feature
// resetting it.
type physboneResets struct {
	triggers map[string]*animgraph.Parameter
}

func newPhysboneResets() *physboneResets {
	return &physboneResets{triggers: make(map[string]*animgraph.Parameter)}
}

// ensure returns the trigger resetting the physbone at path, creating its
// layer on first use. A missing physbone is a warning and yields nil.
func (r *physboneResets) ensure(ctx context.Context, bc *pipeline.Context, featureName, path string) (*animgraph.Parameter, error) {
	if p, ok := r.triggers[path]; ok {
		return p, nil
	}
	obj, ok := bc.Object(path)
	if !ok {
		bc.Warn(ctx, featureName, "physbone %q not found", path)
		return nil, nil
	}
	if _, ok := scene.ComponentOf[*scene.PhysBone](obj); !ok {
		bc.Warn(ctx, featureName, "object %q has no physbone", path)
		return nil, nil
	}

	trigger, err := uniqueParam(bc.Controller, "PhysBoneReset/"+path, animgraph.Bool, 0)
	if err != nil {
		return nil, err
	}
	binding := animgraph.Binding{Path: path, Type: animgraph.TypePhysBone, Property: animgraph.PropEnabled}
	disable := bc.Controller.NewClip("PhysBone Reset " + path)
	disable.SetConstant(binding, 0)
	enable := bc.Controller.NewClip("PhysBone Idle " + path)
	enable.SetConstant(binding, 1)

	layer := bc.Controller.NewLayer("PhysBone Reset " + path)
	layer.Owner = physboneResetService
	idle := layer.NewState("Idle").WithMotion(enable)
	reset := layer.NewState("Reset").WithMotion(disable)
	reset.Drives(true).Set(trigger.Name, 0)
	idle.TransitionsTo(reset).When(trigger.IsTrue())
	reset.TransitionsTo(idle).WithExitTime(0)

	r.triggers[path] = trigger
	return trigger, nil
}
