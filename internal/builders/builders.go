// Package builders compiles each feature kind into actions against the shared
// build context.
package builders

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/graft/internal/merge"
	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

// Parameters the host evaluator drives itself.
const (
	ParamGestureLeft        = "GestureLeft"
	ParamGestureRight       = "GestureRight"
	ParamGestureLeftWeight  = "GestureLeftWeight"
	ParamGestureRightWeight = "GestureRightWeight"
	ParamIsLocal            = "IsLocal"
)

// Prefix namespaces generated parameters.
const Prefix = "Graft"

var hostParams = []struct {
	name string
	kind animgraph.ParamKind
}{
	{ParamGestureLeft, animgraph.Int},
	{ParamGestureRight, animgraph.Int},
	{ParamGestureLeftWeight, animgraph.Float},
	{ParamGestureRightWeight, animgraph.Float},
	{ParamIsLocal, animgraph.Bool},
}

// IsHostParam reports whether name is driven by the host and must never be renamed.
func IsHostParam(name string) bool {
	for _, p := range hostParams {
		if p.name == name {
			return true
		}
	}
	return false
}

// Register binds every feature kind to its builder and adds the host
// parameter reservation.
func Register(reg *pipeline.Registry) error {
	factories := map[feature.Kind]pipeline.Factory{
		feature.KindToggle:         newToggle,
		feature.KindFullController: newFullController,
		feature.KindSocket:         newSocket,
		feature.KindGestureDriver:  newGestureDriver,
		feature.KindMoveObject:     newMoveObject,
	}
	for _, kind := range feature.Kinds() {
		if err := reg.Register(kind, factories[kind]); err != nil {
			return err
		}
	}
	reg.RegisterInternal("base", func(*pipeline.Context) pipeline.Builder {
		return pipeline.BuilderFunc(func() []pipeline.Action {
			return []pipeline.Action{{Name: "import base output", Priority: pipeline.PreProcess, Run: importBase}}
		})
	})
	reg.RegisterInternal("host_params", func(*pipeline.Context) pipeline.Builder {
		return pipeline.BuilderFunc(func() []pipeline.Action {
			return []pipeline.Action{{Name: "reserve host parameters", Priority: pipeline.HostParams, Run: reserveHostParams}}
		})
	})
	return nil
}

func reserveHostParams(_ context.Context, bc *pipeline.Context) error {
	for _, p := range hostParams {
		if _, err := bc.Controller.NewParameter(p.name, p.kind, 0); err != nil {
			return err
		}
	}
	return nil
}

// importBase copies the avatar's authored controller, menu and parameters
// into the output unchanged, so features layer on top of them.
func importBase(ctx context.Context, bc *pipeline.Context) error {
	base := bc.Avatar.Descriptor.Base
	im := &merge.Importer{Dst: bc.Controller, Owner: "base", Logger: bc.Logger}
	if base.Controller != nil {
		report, err := im.ImportController(base.Controller)
		if err != nil {
			return fmt.Errorf("importing base controller: %w", err)
		}
		for _, d := range report.Dropped {
			bc.Warn(ctx, "base", "dropped transition %s", d)
		}
	}
	if base.Menu != nil {
		im.ImportMenu(bc.Menu, base.Menu, "")
	}
	if base.Params != nil {
		if err := im.ImportParams(bc.Params, base.Params); err != nil {
			return fmt.Errorf("importing base parameters: %w", err)
		}
	}
	return nil
}

// uniqueParam creates a fresh parameter under the generated prefix.
func uniqueParam(ctrl *animgraph.Controller, name string, kind animgraph.ParamKind, def float64) (*animgraph.Parameter, error) {
	base := Prefix + "/" + strings.Trim(name, "/")
	candidate := base
	for i := 2; ; i++ {
		if _, taken := ctrl.Parameter(candidate); !taken {
			break
		}
		candidate = fmt.Sprintf("%s %d", base, i)
	}
	return ctrl.NewParameter(candidate, kind, def)
}

// owner resolves the object a feature instance is attached to.
func owner(bc *pipeline.Context, inst feature.Instance) (*scene.Object, error) {
	o, ok := bc.Object(inst.Owner)
	if !ok {
		return nil, fmt.Errorf("owner object %q not found", inst.Owner)
	}
	return o, nil
}

// synthesize builds the clip of a state, reporting warnings against the feature.
func synthesize(ctx context.Context, bc *pipeline.Context, featureName, clipName string, o *scene.Object, st feature.State) *animgraph.Clip {
	clip := bc.Controller.NewClip(clipName)
	for _, w := range bc.Synth.Synthesize(clip, o, st) {
		bc.Warn(ctx, featureName, "%s", w)
	}
	return clip
}

// restClip is the clip holding the resting value of every binding of on.
func restClip(bc *pipeline.Context, name string, on *animgraph.Clip) *animgraph.Clip {
	off := bc.Controller.NewClip(name)
	bc.Resting.Apply(off, on.Bindings())
	return off
}

func boolDefault(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
