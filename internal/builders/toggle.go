package builders

import (
	"context"
	"fmt"

	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
)

type toggleBuilder struct {
	inst  feature.Instance
	model feature.Toggle

	param *animgraph.Parameter
	on    *animgraph.State
}

func newToggle(bc *pipeline.Context, inst feature.Instance) (pipeline.Builder, error) {
	return &toggleBuilder{inst: inst, model: inst.Model.(feature.Toggle)}, nil
}

func (b *toggleBuilder) Actions() []pipeline.Action {
	actions := []pipeline.Action{{Name: "toggle", Priority: pipeline.Default, Run: b.build}}
	if len(b.model.ExclusiveTags) > 0 {
		actions = append(actions, pipeline.Action{Name: "exclusive tags", Priority: pipeline.Link, Run: b.link})
	}
	return actions
}

func (b *toggleBuilder) layerName() string {
	if b.model.Name != "" {
		return b.model.Name
	}
	return b.model.GlobalParam
}

func (b *toggleBuilder) newParam(bc *pipeline.Context) (*animgraph.Parameter, error) {
	m := b.model
	kind, def := animgraph.Bool, boolDefault(m.DefaultOn)
	if m.Slider {
		kind, def = animgraph.Float, m.SliderDefault
	}
	if m.GlobalParam != "" {
		return bc.Controller.NewParameter(m.GlobalParam, kind, def)
	}
	p, err := uniqueParam(bc.Controller, "Toggle/"+m.Name, kind, def)
	if err != nil {
		return nil, err
	}
	p.Networked = true
	p.Saved = m.Saved
	if err := bc.Params.Add(animgraph.ParamEntry{Name: p.Name, Kind: kind, Default: def, Saved: m.Saved}); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *toggleBuilder) build(ctx context.Context, bc *pipeline.Context) error {
	m := b.model
	o, err := owner(bc, b.inst)
	if err != nil {
		return err
	}
	if b.param, err = b.newParam(bc); err != nil {
		return err
	}

	name := b.layerName()
	onClip := synthesize(ctx, bc, b.inst.Name(), name+" On", o, m.State)
	offClip := restClip(bc, name+" Off", onClip)

	layer := bc.Controller.NewLayer(name)
	layer.Owner = b.inst.Name()
	off := layer.NewState("Off").WithMotion(offClip)

	if m.Slider {
		tree := bc.Controller.NewBlendTree(name+" Blend", animgraph.Simple1D)
		tree.Param = b.param.Name
		tree.Add1D(0, offClip)
		tree.Add1D(1, onClip)
		off.Motion = tree
		off.Name = "Blend"
		b.on = off
	} else {
		b.on = layer.NewState("On").WithMotion(onClip)
		off.TransitionsTo(b.on).When(b.param.IsTrue()).WithDuration(m.TransitionTime)
		b.on.TransitionsTo(off).When(b.param.IsFalse()).WithDuration(m.TransitionTime)
	}

	if len(m.ResetPhysbones) > 0 {
		resets := pipeline.Service(bc, physboneResetService, newPhysboneResets)
		for _, path := range m.ResetPhysbones {
			trigger, err := resets.ensure(ctx, bc, b.inst.Name(), path)
			if err != nil {
				return err
			}
			if trigger == nil {
				continue
			}
			if m.Slider {
				bc.Warn(ctx, b.inst.Name(), "physbone reset on %q ignored for a slider", path)
				continue
			}
			b.on.Drives(true).Set(trigger.Name, 1)
			off.Drives(true).Set(trigger.Name, 1)
		}
	}

	if len(m.ExclusiveTags) > 0 {
		tags := pipeline.Service(bc, exclusiveTagService, newExclusiveTags)
		tags.add(b)
	}

	if m.Name != "" {
		switch {
		case m.Slider:
			bc.Menu.NewRadial(m.Name, b.param.Name)
		case m.HoldButton:
			bc.Menu.NewButton(m.Name, b.param.Name, 1)
		default:
			bc.Menu.NewToggle(m.Name, b.param.Name, 1)
		}
	}
	bc.Logger.Debug("toggle built", "feature", b.inst.Name(), "param", b.param.Name)
	return nil
}

// link turns off every other toggle sharing a tag when this one turns on.
func (b *toggleBuilder) link(_ context.Context, bc *pipeline.Context) error {
	if b.param == nil || b.on == nil {
		return fmt.Errorf("toggle %q was not built", b.layerName())
	}
	tags := pipeline.Service(bc, exclusiveTagService, newExclusiveTags)
	others := tags.peers(b)
	if len(others) == 0 {
		return nil
	}
	driver := b.on.Drives(true)
	for _, other := range others {
		driver.Set(other.param.Name, 0)
	}
	return nil
}
