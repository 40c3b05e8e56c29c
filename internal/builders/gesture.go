package builders

import (
	"context"
	"fmt"

	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/internal/smoothing"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
)

type gestureBuilder struct {
	inst  feature.Instance
	model feature.GestureDriver
}

func newGestureDriver(bc *pipeline.Context, inst feature.Instance) (pipeline.Builder, error) {
	return &gestureBuilder{inst: inst, model: inst.Model.(feature.GestureDriver)}, nil
}

func (b *gestureBuilder) Actions() []pipeline.Action {
	return []pipeline.Action{{Name: "gestures", Priority: pipeline.Default, Run: b.build}}
}

func hostParam(bc *pipeline.Context, name string) (*animgraph.Parameter, error) {
	p, ok := bc.Controller.Parameter(name)
	if !ok {
		return nil, fmt.Errorf("host parameter %q is not reserved", name)
	}
	return p, nil
}

// signCond is the condition selecting a gesture.
func signCond(left, right *animgraph.Parameter, g feature.Gesture) animgraph.Cond {
	switch g.Hand {
	case feature.HandLeft:
		return left.IsEqualTo(g.Sign)
	case feature.HandRight:
		return right.IsEqualTo(g.Sign)
	case feature.HandEither:
		return left.IsEqualTo(g.Sign).Or(right.IsEqualTo(g.Sign))
	default:
		return left.IsEqualTo(g.Sign).And(right.IsEqualTo(g.ComboSign)).
			Or(left.IsEqualTo(g.ComboSign).And(right.IsEqualTo(g.Sign)))
	}
}

func (b *gestureBuilder) build(ctx context.Context, bc *pipeline.Context) error {
	o, err := owner(bc, b.inst)
	if err != nil {
		return err
	}
	left, err := hostParam(bc, ParamGestureLeft)
	if err != nil {
		return err
	}
	right, err := hostParam(bc, ParamGestureRight)
	if err != nil {
		return err
	}

	layer := bc.Controller.NewLayer(fmt.Sprintf("Gestures %d", b.inst.Index))
	layer.Owner = b.inst.Name()
	idle := layer.NewState("Idle")

	var clips []*animgraph.Clip
	for i, g := range b.model.Gestures {
		name := fmt.Sprintf("%s %s %d", layer.Name, g.Hand, g.Sign)
		if g.Hand == feature.HandCombo {
			name = fmt.Sprintf("%s combo %d+%d", layer.Name, g.Sign, g.ComboSign)
		}
		clip := synthesize(ctx, bc, b.inst.Name(), name, o, g.State)
		clips = append(clips, clip)

		var motion animgraph.Motion = clip
		if g.EnableWeight {
			weight, err := b.weight(bc, g)
			if err != nil {
				return fmt.Errorf("gesture %d: %w", i, err)
			}
			tree := bc.Controller.NewBlendTree(name+" Weight", animgraph.Simple1D)
			tree.Param = weight.Name
			tree.Add1D(0, restClip(bc, name+" Rest", clip))
			tree.Add1D(1, clip)
			motion = tree
		}

		cond := signCond(left, right, g)
		if g.EnableLockMenuItem {
			lock, err := uniqueParam(bc.Controller, fmt.Sprintf("Gesture/%d/Lock%d", b.inst.Index, i), animgraph.Bool, 0)
			if err != nil {
				return err
			}
			lock.Networked = true
			if err := bc.Params.Add(animgraph.ParamEntry{Name: lock.Name, Kind: animgraph.Bool}); err != nil {
				return err
			}
			label := g.LockMenuItem
			if label == "" {
				label = "Lock " + name
			}
			bc.Menu.NewToggle(label, lock.Name, 1)
			cond = cond.Or(lock.IsTrue())
		}

		duration := g.TransitionTime
		if duration == 0 {
			duration = feature.DefaultGestureTransition
		}
		st := layer.NewState(name).WithMotion(motion)
		idle.TransitionsTo(st).When(cond).WithDuration(duration)
		st.TransitionsTo(idle).When(cond.Not()).WithDuration(duration)
	}

	// Idle plays the resting value of everything the gestures animate.
	rest := bc.Controller.NewClip(layer.Name + " Idle")
	for _, c := range clips {
		bc.Resting.Apply(rest, c.Bindings())
	}
	idle.Motion = rest
	return nil
}

// weight returns the trigger pressure of the gesture's hand, smoothed when asked.
func (b *gestureBuilder) weight(bc *pipeline.Context, g feature.Gesture) (*animgraph.Parameter, error) {
	name := ParamGestureLeftWeight
	if g.Hand == feature.HandRight {
		name = ParamGestureRightWeight
	}
	p, err := hostParam(bc, name)
	if err != nil {
		return nil, err
	}
	return bc.Smoothing.Smooth(fmt.Sprintf("%s/Gesture/%d/%s", Prefix, b.inst.Index, name), p, g.WeightSmoothing, smoothing.Options{})
}
