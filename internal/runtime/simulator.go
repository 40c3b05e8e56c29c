// Package runtime evaluates generated controllers tick by tick.
//
// The simulator reproduces the parts of the host evaluator the generated graph
// depends on: first-satisfied transition selection with any-state priority,
// blend-tree weighting, layer composition and animated parameters, which take
// effect on the following tick. Transitions switch instantly; blend durations
// are layout for the host and carry no meaning here.
package runtime

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/aretw0/graft/pkg/animgraph"
)

// Simulator runs one controller.
type Simulator struct {
	ctrl   *animgraph.Controller
	logger *slog.Logger
	dt     float64

	params  map[string]float64
	layers  []*layerState
	outputs map[animgraph.Binding]float64
	ticks   int
}

type layerState struct {
	layer   *animgraph.Layer
	machine *animgraph.StateMachine
	current *animgraph.State
	elapsed float64
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithTickRate sets how many ticks make one second (default 60).
func WithTickRate(hz float64) Option {
	return func(s *Simulator) {
		if hz > 0 {
			s.dt = 1 / hz
		}
	}
}

// NewSimulator creates a simulator with every parameter at its default and
// every layer in its default state.
func NewSimulator(ctrl *animgraph.Controller, opts ...Option) *Simulator {
	s := &Simulator{
		ctrl:    ctrl,
		logger:  slog.New(slog.DiscardHandler),
		dt:      1.0 / 60,
		params:  make(map[string]float64),
		outputs: make(map[animgraph.Binding]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range ctrl.Parameters() {
		s.params[p.Name] = p.Default
	}
	for _, l := range ctrl.Layers {
		ls := &layerState{layer: l}
		s.enterMachine(ls, l.StateMachine)
		s.layers = append(s.layers, ls)
	}
	return s
}

// Set changes a parameter. Unknown names are rejected.
func (s *Simulator) Set(name string, v float64) error {
	if _, ok := s.params[name]; !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	s.params[name] = v
	return nil
}

// Value returns a parameter's current value.
func (s *Simulator) Value(name string) float64 { return s.params[name] }

// Current returns the name of the active state of a layer ("" if none).
func (s *Simulator) Current(layer string) string {
	for _, ls := range s.layers {
		if ls.layer.Name == layer && ls.current != nil {
			return ls.current.Name
		}
	}
	return ""
}

// Output returns the value a binding was driven to on the last tick.
func (s *Simulator) Output(b animgraph.Binding) (float64, bool) {
	v, ok := s.outputs[b]
	return v, ok
}

// Ticks returns how many ticks have run.
func (s *Simulator) Ticks() int { return s.ticks }

// Run advances n ticks.
func (s *Simulator) Run(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Tick advances one step: transitions, motion evaluation, layer composition,
// then write-back of animated parameters.
func (s *Simulator) Tick() {
	s.ticks++
	for _, ls := range s.layers {
		s.step(ls)
	}

	outputs := make(map[animgraph.Binding]float64)
	for _, ls := range s.layers {
		if ls.current == nil {
			continue
		}
		local := make(map[animgraph.Binding]float64)
		s.evaluate(ls.current.Motion, 1, ls.elapsed, local)
		w := ls.layer.Weight
		for b, v := range local {
			if !b.IsAnimatorParam() && !ls.layer.Mask.Allows(b.Path) {
				continue
			}
			base := outputs[b]
			if ls.layer.BlendMode == animgraph.Additive {
				outputs[b] = base + v*w
				continue
			}
			if _, seen := outputs[b]; !seen {
				base = v
			}
			outputs[b] = base + (v-base)*w
		}
		ls.elapsed += s.dt * ls.current.Speed
	}
	s.outputs = outputs

	for b, v := range outputs {
		if b.IsAnimatorParam() {
			if _, ok := s.params[b.Property]; ok {
				s.params[b.Property] = v
			}
		}
	}
}

func (s *Simulator) step(ls *layerState) {
	if ls.current == nil {
		return
	}
	for _, m := range ls.layer.StateMachine.AllMachines() {
		for _, tr := range m.AnyState {
			if tr.Dest.State == ls.current && !tr.CanTransitionToSelf {
				continue
			}
			if s.satisfied(ls, tr) {
				s.fire(ls, tr)
				return
			}
		}
	}
	for _, tr := range ls.current.Transitions {
		if s.satisfied(ls, tr) {
			s.fire(ls, tr)
			return
		}
	}
}

func (s *Simulator) satisfied(ls *layerState, tr *animgraph.Transition) bool {
	if tr.HasExitTime {
		length := 1.0
		if ls.current != nil {
			if clip, ok := ls.current.Motion.(*animgraph.Clip); ok && clip.Length() > 0 {
				length = clip.Length()
			}
		}
		if ls.elapsed/length < tr.ExitTime {
			return false
		}
	}
	for _, c := range tr.Conditions {
		if !c.Eval(s.params[c.Param]) {
			return false
		}
	}
	return true
}

func (s *Simulator) fire(ls *layerState, tr *animgraph.Transition) {
	for _, c := range tr.Conditions {
		if p, ok := s.ctrl.Parameter(c.Param); ok && p.Kind == animgraph.Trigger {
			s.params[c.Param] = 0
		}
	}
	from := ls.current
	switch {
	case tr.Dest.State != nil:
		s.enter(ls, tr.Dest.State)
	case tr.Dest.Machine != nil:
		s.enterMachine(ls, tr.Dest.Machine)
	default:
		s.enterMachine(ls, ls.layer.StateMachine)
	}
	if from != nil && ls.current != nil {
		s.logger.Debug("transition", "layer", ls.layer.Name, "from", from.Name, "to", ls.current.Name, "tick", s.ticks)
	}
}

func (s *Simulator) enterMachine(ls *layerState, m *animgraph.StateMachine) {
	ls.machine = m
	for _, tr := range m.Entry {
		if s.satisfied(ls, tr) && tr.Dest.State != nil {
			s.enter(ls, tr.Dest.State)
			return
		}
	}
	if m.Default != nil {
		s.enter(ls, m.Default)
		return
	}
	for _, sub := range m.Machines {
		if sub.Default != nil {
			s.enterMachine(ls, sub)
			return
		}
	}
	ls.current = nil
}

func (s *Simulator) enter(ls *layerState, st *animgraph.State) {
	ls.current = st
	ls.elapsed = 0
	for _, d := range st.Drivers() {
		for _, e := range d.Entries {
			if _, ok := s.params[e.Name]; !ok {
				continue
			}
			switch e.Op {
			case animgraph.DriverSet:
				s.params[e.Name] = e.Value
			case animgraph.DriverAdd:
				s.params[e.Name] += e.Value
			case animgraph.DriverCopy:
				s.params[e.Name] = s.params[e.Source]
			case animgraph.DriverRandom:
				// Deterministic: the lower bound stands in for a random draw.
				s.params[e.Name] = e.Min
			}
		}
	}
}

// evaluate accumulates weight * value of every curve reachable from m.
func (s *Simulator) evaluate(m animgraph.Motion, weight, t float64, out map[animgraph.Binding]float64) {
	if m == nil || weight == 0 {
		return
	}
	switch v := m.(type) {
	case *animgraph.Clip:
		at := t
		if v.Loop && v.Length() > 0 {
			at = math.Mod(t, v.Length())
		}
		for _, b := range v.Bindings() {
			if val, ok := v.Sample(b, at); ok {
				out[b] += weight * val
			}
		}
	case *animgraph.BlendTree:
		for i, w := range s.weights(v) {
			s.evaluate(v.Children[i].Motion, weight*w, t*v.Children[i].TimeScale, out)
		}
	}
}

// weights returns the weight of each child of a blend tree at the current parameters.
func (s *Simulator) weights(tree *animgraph.BlendTree) []float64 {
	w := make([]float64, len(tree.Children))
	if len(tree.Children) == 0 {
		return w
	}
	switch tree.Type {
	case animgraph.Direct:
		for i, ch := range tree.Children {
			w[i] = s.params[ch.DirectParam]
		}
	case animgraph.Simple1D:
		weights1D(tree.Children, s.params[tree.Param], w)
	case animgraph.Cartesian2D:
		weights2D(tree.Children, s.params[tree.Param], s.params[tree.ParamY], w)
	}
	return w
}

func weights1D(children []*animgraph.Child, x float64, w []float64) {
	idx := make([]int, len(children))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return children[idx[a]].Threshold < children[idx[b]].Threshold })

	first, last := idx[0], idx[len(idx)-1]
	if x <= children[first].Threshold {
		w[first] = 1
		return
	}
	if x >= children[last].Threshold {
		w[last] = 1
		return
	}
	for k := 1; k < len(idx); k++ {
		lo, hi := children[idx[k-1]], children[idx[k]]
		if x <= hi.Threshold {
			span := hi.Threshold - lo.Threshold
			if span == 0 {
				w[idx[k]] = 1
				return
			}
			f := (x - lo.Threshold) / span
			w[idx[k-1]] = 1 - f
			w[idx[k]] = f
			return
		}
	}
}

// weights2D interpolates bilinearly when the children are the four corners of
// a rectangle, and by inverse distance otherwise.
func weights2D(children []*animgraph.Child, x, y float64, w []float64) {
	if len(children) == 4 {
		xs := map[float64]struct{}{}
		ys := map[float64]struct{}{}
		for _, ch := range children {
			xs[ch.Position.X] = struct{}{}
			ys[ch.Position.Y] = struct{}{}
		}
		if len(xs) == 2 && len(ys) == 2 {
			var x0, x1, y0, y1 = math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
			for _, ch := range children {
				x0, x1 = math.Min(x0, ch.Position.X), math.Max(x1, ch.Position.X)
				y0, y1 = math.Min(y0, ch.Position.Y), math.Max(y1, ch.Position.Y)
			}
			fx := clamp01((x - x0) / (x1 - x0))
			fy := clamp01((y - y0) / (y1 - y0))
			for i, ch := range children {
				wx, wy := 1-fx, 1-fy
				if ch.Position.X == x1 {
					wx = fx
				}
				if ch.Position.Y == y1 {
					wy = fy
				}
				w[i] = wx * wy
			}
			return
		}
	}

	total := 0.0
	for i, ch := range children {
		d := math.Hypot(x-ch.Position.X, y-ch.Position.Y)
		if d == 0 {
			for j := range w {
				w[j] = 0
			}
			w[i] = 1
			return
		}
		w[i] = 1 / (d * d)
		total += w[i]
	}
	for i := range w {
		w[i] /= total
	}
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
