// Package smoothing builds per-tick filters and comparators out of blend trees.
//
// The controller evaluator has no notion of elapsed time: every tick it blends
// motions by the current parameter values and writes animated parameters for
// the next tick. A feedback loop through an animated parameter therefore acts
// as a discrete IIR filter:
//
//	out' = (1 - speed) * target + speed * out
//
// Every construct lives as one child of a shared Direct blend tree weighted by
// a constant-one parameter.
package smoothing

import (
	"fmt"
	"math"

	"github.com/aretw0/graft/pkg/animgraph"
)

const (
	// LayerName is the shared layer holding every construct.
	LayerName = "Smoothing"
	// OneParam is the constant 1 weight of the shared Direct tree.
	OneParam = "Graft/One"
	// MaxSmoothing bounds the smoothing factor; 1 would never move.
	MaxSmoothing = 0.999
	// SpeedExponent shapes the authoring slider so it feels roughly linear.
	SpeedExponent = 0.1
	// DefaultRange bounds the values a maintain/target tree can carry.
	DefaultRange = 10000
)

// PauseMode selects what a paused filter outputs.
type PauseMode int

const (
	// Freeze holds the current value.
	Freeze PauseMode = iota
	// Zero outputs zero.
	Zero
)

// Options tune Smooth.
type Options struct {
	// Accelerated chains two filters for smoother starts and stops.
	Accelerated bool
	// Pause, a Float, suspends the filter while it is 1.
	Pause     *animgraph.Parameter
	PauseMode PauseMode
}

// Engine adds smoothing constructs to one controller.
type Engine struct {
	ctrl  *animgraph.Controller
	Range float64

	layer *animgraph.Layer
	root  *animgraph.BlendTree
}

// New creates an engine for ctrl. The shared layer is created on first use,
// so a build that never smooths anything gets no extra layer.
func New(ctrl *animgraph.Controller) *Engine {
	return &Engine{ctrl: ctrl, Range: DefaultRange}
}

// Speed converts a smoothing factor into the per-tick retention factor.
func Speed(smoothing float64) float64 {
	return math.Pow(Clamp(smoothing), SpeedExponent)
}

// Clamp limits a smoothing factor to [0, MaxSmoothing].
func Clamp(smoothing float64) float64 {
	return math.Max(0, math.Min(MaxSmoothing, smoothing))
}

// Layer returns the shared layer, or nil if nothing was built.
func (e *Engine) Layer() *animgraph.Layer { return e.layer }

func (e *Engine) ensureRoot() (*animgraph.BlendTree, error) {
	if e.root != nil {
		return e.root, nil
	}
	one, err := e.ctrl.NewFloat(OneParam, 1)
	if err != nil {
		return nil, err
	}
	one.Default = 1
	e.layer = e.ctrl.NewLayer(LayerName)
	e.root = e.ctrl.NewBlendTree(LayerName, animgraph.Direct)
	e.layer.NewState(LayerName).Motion = e.root
	return e.root, nil
}

func (e *Engine) add(m animgraph.Motion) error {
	root, err := e.ensureRoot()
	if err != nil {
		return err
	}
	root.AddDirect(OneParam, m)
	return nil
}

// uniqueFloat creates a fresh Float, suffixing the name until it is unused.
func (e *Engine) uniqueFloat(name string, def float64) (*animgraph.Parameter, error) {
	candidate := name
	for i := 2; ; i++ {
		if _, taken := e.ctrl.Parameter(candidate); !taken {
			break
		}
		candidate = fmt.Sprintf("%s %d", name, i)
	}
	return e.ctrl.NewFloat(candidate, def)
}

// constClip is a clip writing a constant into an animated parameter.
func (e *Engine) constClip(name string, out *animgraph.Parameter, v float64) *animgraph.Clip {
	clip := e.ctrl.NewClip(name)
	clip.SetConstant(animgraph.AnimatorBinding(out.Name), v)
	return clip
}

// rangeTree maps input linearly onto out over [-Range, Range].
func (e *Engine) rangeTree(name string, input, out *animgraph.Parameter) *animgraph.BlendTree {
	tree := e.ctrl.NewBlendTree(name, animgraph.Simple1D)
	tree.Param = input.Name
	tree.Add1D(-e.Range, e.constClip(name+" Min", out, -e.Range))
	tree.Add1D(e.Range, e.constClip(name+" Max", out, e.Range))
	return tree
}

// Smooth returns a parameter that follows target with the given smoothing.
// A smoothing of zero (after clamping) returns target itself and builds nothing.
func (e *Engine) Smooth(name string, target *animgraph.Parameter, smoothing float64, opts Options) (*animgraph.Parameter, error) {
	smoothing = Clamp(smoothing)
	if smoothing == 0 {
		return target, nil
	}
	if target.Kind != animgraph.Float {
		return nil, fmt.Errorf("smooth %s: target %q must be a float, got %s", name, target.Name, target.Kind)
	}
	if opts.Pause != nil && opts.Pause.Kind != animgraph.Float {
		return nil, fmt.Errorf("smooth %s: pause %q must be a float, got %s", name, opts.Pause.Name, opts.Pause.Kind)
	}

	speed, err := e.uniqueFloat(name+"/Speed", 0)
	if err != nil {
		return nil, err
	}
	speed.Default = Speed(smoothing)

	input := target
	if opts.Accelerated {
		mid, err := e.filter(name+"/Pass1", input, speed, opts)
		if err != nil {
			return nil, err
		}
		input = mid
	}
	return e.filter(name+"/Smoothed", input, speed, opts)
}

// filter adds one first-order stage and returns its output parameter.
func (e *Engine) filter(name string, input, speed *animgraph.Parameter, opts Options) (*animgraph.Parameter, error) {
	out, err := e.uniqueFloat(name, 0)
	if err != nil {
		return nil, err
	}
	target := e.rangeTree(out.Name+" Target", input, out)
	maintain := e.rangeTree(out.Name+" Maintain", out, out)

	step := e.ctrl.NewBlendTree(out.Name+" Step", animgraph.Simple1D)
	step.Param = speed.Name
	step.Add1D(0, target)
	step.Add1D(1, maintain)

	var motion animgraph.Motion = step
	if opts.Pause != nil {
		paused := animgraph.Motion(maintain)
		if opts.PauseMode == Zero {
			paused = e.constClip(out.Name+" Zero", out, 0)
		}
		pause := e.ctrl.NewBlendTree(out.Name+" Pause", animgraph.Simple1D)
		pause.Param = opts.Pause.Name
		pause.Add1D(0, step)
		pause.Add1D(1, paused)
		motion = pause
	}
	if err := e.add(motion); err != nil {
		return nil, err
	}
	return out, nil
}

// Map returns a parameter equal to input mapped linearly from [inMin, inMax]
// onto [outMin, outMax], clamped outside the input range.
func (e *Engine) Map(name string, input *animgraph.Parameter, inMin, inMax, outMin, outMax float64) (*animgraph.Parameter, error) {
	if inMin == inMax {
		return nil, fmt.Errorf("map %s: empty input range [%g, %g]", name, inMin, inMax)
	}
	if input.Kind != animgraph.Float {
		return nil, fmt.Errorf("map %s: input %q must be a float, got %s", name, input.Name, input.Kind)
	}
	if inMin > inMax {
		inMin, inMax = inMax, inMin
		outMin, outMax = outMax, outMin
	}
	out, err := e.uniqueFloat(name, outMin)
	if err != nil {
		return nil, err
	}
	tree := e.ctrl.NewBlendTree(out.Name+" Map", animgraph.Simple1D)
	tree.Param = input.Name
	tree.Add1D(inMin, e.constClip(out.Name+" Low", out, outMin))
	tree.Add1D(inMax, e.constClip(out.Name+" High", out, outMax))
	if err := e.add(tree); err != nil {
		return nil, err
	}
	return out, nil
}

// GreaterThan returns a parameter holding a - b for a and b within [lo, hi],
// and the condition "a > b".
func (e *Engine) GreaterThan(name string, a, b *animgraph.Parameter, lo, hi float64) (*animgraph.Parameter, animgraph.Cond, error) {
	if lo >= hi {
		return nil, animgraph.Never(), fmt.Errorf("greater than %s: empty range [%g, %g]", name, lo, hi)
	}
	for _, p := range []*animgraph.Parameter{a, b} {
		if p.Kind != animgraph.Float {
			return nil, animgraph.Never(), fmt.Errorf("greater than %s: %q must be a float, got %s", name, p.Name, p.Kind)
		}
	}
	diff, err := e.uniqueFloat(name, 0)
	if err != nil {
		return nil, animgraph.Never(), err
	}
	tree := e.ctrl.NewBlendTree(diff.Name+" Compare", animgraph.Cartesian2D)
	tree.Param = a.Name
	tree.ParamY = b.Name
	tree.Add2D(lo, lo, e.constClip(diff.Name+" Even", diff, 0))
	tree.Add2D(hi, lo, e.constClip(diff.Name+" A", diff, hi-lo))
	tree.Add2D(lo, hi, e.constClip(diff.Name+" B", diff, lo-hi))
	tree.Add2D(hi, hi, e.constClip(diff.Name+" Even High", diff, 0))
	if err := e.add(tree); err != nil {
		return nil, animgraph.Never(), err
	}
	return diff, diff.IsGreaterThan(0), nil
}
