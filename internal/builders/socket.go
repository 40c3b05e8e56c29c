package builders

import (
	"context"
	"fmt"

	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/internal/smoothing"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

// ContactTag is the tag socket receivers listen for.
const ContactTag = "graft_plug"

// backOffset is how far, in radii, the back receiver trails the front one.
const backOffset = 0.05

type socketBuilder struct {
	inst  feature.Instance
	model feature.Socket

	front, back *animgraph.Parameter
}

func newSocket(bc *pipeline.Context, inst feature.Instance) (pipeline.Builder, error) {
	return &socketBuilder{inst: inst, model: inst.Model.(feature.Socket)}, nil
}

func (b *socketBuilder) Actions() []pipeline.Action {
	return []pipeline.Action{
		{Name: "socket", Priority: pipeline.Default, Run: b.build},
		{Name: "contact receivers", Priority: pipeline.Default, CloneOnly: true, Run: b.receivers},
	}
}

func (b *socketBuilder) path() string {
	return scene.JoinPath(b.inst.Owner, b.model.Object)
}

func (b *socketBuilder) build(ctx context.Context, bc *pipeline.Context) error {
	m := b.model
	o, ok := bc.Object(b.path())
	if !ok {
		return fmt.Errorf("socket object %q not found", b.path())
	}

	var err error
	if b.front, err = uniqueParam(bc.Controller, "Socket/"+m.Name+"/Front", animgraph.Float, 0); err != nil {
		return err
	}
	if b.back, err = uniqueParam(bc.Controller, "Socket/"+m.Name+"/Back", animgraph.Float, 0); err != nil {
		return err
	}

	// Receivers only run locally, so remote players see the socket idle.
	gate := b.front.IsGreaterThan(0)
	if m.EnableToggle {
		enabled, err := uniqueParam(bc.Controller, "Socket/"+m.Name+"/Enabled", animgraph.Bool, 1)
		if err != nil {
			return err
		}
		enabled.Networked = true
		enabled.Saved = true
		if err := bc.Params.Add(animgraph.ParamEntry{Name: enabled.Name, Kind: animgraph.Bool, Default: 1, Saved: true}); err != nil {
			return err
		}
		bc.Menu.NewToggle("Sockets/"+m.Name, enabled.Name, 1)
		gate = gate.And(enabled.IsTrue())
	}

	if !m.ActiveActions.IsEmpty() {
		onClip := synthesize(ctx, bc, b.inst.Name(), "Socket "+m.Name+" Active", o, m.ActiveActions)
		layer := bc.Controller.NewLayer("Socket " + m.Name + " Active")
		layer.Owner = b.inst.Name()
		idle := layer.NewState("Idle").WithMotion(restClip(bc, "Socket "+m.Name+" Idle", onClip))
		active := layer.NewState("Active").WithMotion(onClip)
		idle.TransitionsTo(active).When(gate)
		active.TransitionsTo(idle).When(gate.Not())
	}

	for i, da := range m.DepthActions {
		if err := b.depthAction(ctx, bc, o, i, da, gate); err != nil {
			return fmt.Errorf("depth action %d: %w", i, err)
		}
	}
	return nil
}

// depthAction blends a state in by how far something entered the socket.
func (b *socketBuilder) depthAction(ctx context.Context, bc *pipeline.Context, o *scene.Object, i int, da feature.DepthAction, gate animgraph.Cond) error {
	name := fmt.Sprintf("Socket %s Depth %d", b.model.Name, i)
	depth, err := bc.Smoothing.Map(fmt.Sprintf("%s/Socket/%s/Depth%d", Prefix, b.model.Name, i), b.front, da.MinDepth, da.MaxDepth, 0, 1)
	if err != nil {
		return err
	}
	if depth, err = bc.Smoothing.Smooth(depth.Name, depth, da.Smoothing, smoothing.Options{}); err != nil {
		return err
	}

	cond := gate
	if da.Directional {
		_, fromFront, err := bc.Smoothing.GreaterThan(fmt.Sprintf("%s/Socket/%s/Direction%d", Prefix, b.model.Name, i), b.front, b.back, 0, 1)
		if err != nil {
			return err
		}
		cond = cond.And(fromFront)
	}

	onClip := synthesize(ctx, bc, b.inst.Name(), name+" On", o, da.State)
	offClip := restClip(bc, name+" Off", onClip)
	tree := bc.Controller.NewBlendTree(name, animgraph.Simple1D)
	tree.Param = depth.Name
	tree.Add1D(0, offClip)
	tree.Add1D(1, onClip)

	layer := bc.Controller.NewLayer(name)
	layer.Owner = b.inst.Name()
	idle := layer.NewState("Idle").WithMotion(offClip)
	active := layer.NewState("Depth").WithMotion(tree)
	idle.TransitionsTo(active).When(cond)
	active.TransitionsTo(idle).When(cond.Not())
	return nil
}

// receivers adds the contact receivers feeding the front and back parameters.
func (b *socketBuilder) receivers(_ context.Context, bc *pipeline.Context) error {
	o, ok := bc.Object(b.path())
	if !ok {
		return fmt.Errorf("socket object %q not found", b.path())
	}
	if b.front == nil || b.back == nil {
		return fmt.Errorf("socket %q was not built", b.model.Name)
	}
	radius := b.model.Radius
	frontObj := o.AddChild("Front Receiver")
	frontObj.AddComponent(&scene.ContactReceiver{
		Name: "Front", Param: b.front.Name, Radius: radius,
		Tags: []string{ContactTag}, Proximity: true, LocalOnly: true,
	})
	backObj := o.AddChild("Back Receiver")
	backObj.AddComponent(&scene.ContactReceiver{
		Name: "Back", Param: b.back.Name, Radius: radius * (1 - backOffset),
		Tags: []string{ContactTag}, Proximity: true, LocalOnly: true,
	})
	return nil
}
