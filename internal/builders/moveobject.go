package builders

import (
	"context"
	"fmt"

	"github.com/aretw0/graft/internal/clips"
	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

type moveObjectBuilder struct {
	inst  feature.Instance
	model feature.MoveObject
}

func newMoveObject(bc *pipeline.Context, inst feature.Instance) (pipeline.Builder, error) {
	return &moveObjectBuilder{inst: inst, model: inst.Model.(feature.MoveObject)}, nil
}

func (b *moveObjectBuilder) Actions() []pipeline.Action {
	return []pipeline.Action{{Name: "move", Priority: pipeline.Move, CloneOnly: true, Run: b.move}}
}

// move reparents the object in the clone and rewrites every generated clip
// path that pointed at or below it.
func (b *moveObjectBuilder) move(_ context.Context, bc *pipeline.Context) error {
	m := b.model
	fromPath := scene.JoinPath(b.inst.Owner, m.Object)
	obj, ok := bc.Object(fromPath)
	if !ok {
		return fmt.Errorf("object %q not found", fromPath)
	}
	parent, ok := bc.Object(m.NewParent)
	if !ok {
		return fmt.Errorf("new parent %q not found", m.NewParent)
	}
	if obj == bc.Avatar.Root {
		return fmt.Errorf("cannot move the avatar root")
	}
	if parent == obj || parent.IsDescendantOf(obj) {
		return fmt.Errorf("cannot move %q below itself", fromPath)
	}
	if _, taken := parent.Child(obj.Name); taken {
		return fmt.Errorf("%q already has a child named %q", m.NewParent, obj.Name)
	}

	parent.Attach(obj)
	toPath, _ := scene.RelativePath(bc.Avatar.Root, obj)
	relocate := clips.Relocate(fromPath, toPath)
	clips.RelocateController(bc.Controller, relocate)
	bc.Resting.Rewrite(relocate)
	bc.Logger.Debug("object moved", "feature", b.inst.Name(), "from", fromPath, "to", toPath)
	return nil
}
