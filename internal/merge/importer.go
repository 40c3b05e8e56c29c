// Package merge deep-copies authored controllers, menus and parameter lists
// into the generated output, renaming parameters and rewriting clip paths on
// the way.
package merge

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/graft/internal/clips"
	"github.com/aretw0/graft/pkg/animgraph"
)

// Importer copies authored assets into Dst.
//
// The zero value of every rewrite is the identity.
type Importer struct {
	Dst *animgraph.Controller
	// ParamName renames every parameter the copy reads or writes.
	ParamName func(string) string
	// Path rewrites clip bindings. Animated parameters are renamed separately.
	Path clips.Rewrite
	// LayerName renames imported layers.
	LayerName func(string) string
	// Owner tags imported layers with the feature that imported them.
	Owner  string
	Logger *slog.Logger
}

// DroppedTransition is a transition whose destination was outside the copy.
type DroppedTransition struct {
	Layer string
	From  string
	To    string
}

func (d DroppedTransition) String() string {
	from := d.From
	if from == "" {
		from = "(any)"
	}
	return fmt.Sprintf("layer %q: %s -> %s", d.Layer, from, d.To)
}

// Report summarizes one ImportController call.
type Report struct {
	Layers  []*animgraph.Layer
	Params  []string
	Dropped []DroppedTransition
}

func (im *Importer) param(name string) string {
	if name == "" || im.ParamName == nil {
		return name
	}
	return im.ParamName(name)
}

func (im *Importer) layerName(name string) string {
	if im.LayerName == nil {
		return name
	}
	return im.LayerName(name)
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return im.Logger
}

// rewrite is the full binding rewrite: paths, then animated parameter names.
func (im *Importer) rewrite() clips.Rewrite {
	rw := []clips.Rewrite{}
	if im.Path != nil {
		rw = append(rw, im.Path)
	}
	rw = append(rw, func(b animgraph.Binding) (animgraph.Binding, bool) {
		if b.IsAnimatorParam() {
			b.Property = im.param(b.Property)
		}
		return b, true
	})
	return clips.Chain(rw...)
}

// ImportController appends a deep copy of every layer of src to Dst.
// Parameters are created when absent; an existing parameter of another kind
// fails the import with a *animgraph.ParamKindError.
func (im *Importer) ImportController(src *animgraph.Controller) (*Report, error) {
	report := &Report{}
	for _, p := range src.Parameters() {
		name := im.param(p.Name)
		_, existed := im.Dst.Parameter(name)
		np, err := im.Dst.NewParameter(name, p.Kind, p.Default)
		if err != nil {
			return nil, err
		}
		if !existed {
			np.Saved = p.Saved
			report.Params = append(report.Params, name)
		}
	}

	c := &copier{im: im, rewrite: im.rewrite(), motions: make(map[animgraph.Motion]animgraph.Motion)}
	for _, l := range src.Layers {
		nl := &animgraph.Layer{
			Name:      im.layerName(l.Name),
			Weight:    l.Weight,
			BlendMode: l.BlendMode,
			Owner:     im.Owner,
		}
		if l.Mask != nil {
			nl.Mask = &animgraph.Mask{Name: l.Mask.Name, Disabled: append([]string(nil), l.Mask.Disabled...)}
		}
		c.states = make(map[*animgraph.State]*animgraph.State)
		c.machines = make(map[*animgraph.StateMachine]*animgraph.StateMachine)
		nl.StateMachine = c.machine(l.StateMachine)
		report.Dropped = append(report.Dropped, c.link(nl.Name, l.StateMachine)...)
		im.Dst.Layers = append(im.Dst.Layers, nl)
		report.Layers = append(report.Layers, nl)
	}
	for _, d := range report.Dropped {
		im.logger().Warn("dropped transition outside imported scope", "transition", d.String())
	}
	return report, nil
}

type copier struct {
	im       *Importer
	rewrite  clips.Rewrite
	motions  map[animgraph.Motion]animgraph.Motion
	states   map[*animgraph.State]*animgraph.State
	machines map[*animgraph.StateMachine]*animgraph.StateMachine
}

// machine copies the structure of m (states, motions, behaviors) without transitions.
func (c *copier) machine(m *animgraph.StateMachine) *animgraph.StateMachine {
	nm := &animgraph.StateMachine{
		Name:             m.Name,
		Position:         m.Position,
		AnyStatePosition: m.AnyStatePosition,
	}
	c.machines[m] = nm
	for _, s := range m.States {
		ns := &animgraph.State{
			Name:       s.Name,
			Motion:     c.motion(s.Motion),
			Speed:      s.Speed,
			SpeedParam: c.im.param(s.SpeedParam),
			TimeParam:  c.im.param(s.TimeParam),
			Position:   s.Position,
		}
		if s.WriteDefaults != nil {
			wd := *s.WriteDefaults
			ns.WriteDefaults = &wd
		}
		for _, b := range s.Behaviors {
			if d, ok := b.(*animgraph.ParamDriver); ok {
				ns.Behaviors = append(ns.Behaviors, c.driver(d))
			}
		}
		c.states[s] = ns
		nm.States = append(nm.States, ns)
	}
	if m.Default != nil {
		nm.Default = c.states[m.Default]
	}
	for _, sub := range m.Machines {
		nm.Machines = append(nm.Machines, c.machine(sub))
	}
	return nm
}

func (c *copier) driver(d *animgraph.ParamDriver) *animgraph.ParamDriver {
	nd := &animgraph.ParamDriver{LocalOnly: d.LocalOnly}
	for _, e := range d.Entries {
		e.Name = c.im.param(e.Name)
		e.Source = c.im.param(e.Source)
		nd.Entries = append(nd.Entries, e)
	}
	return nd
}

// motion copies a clip or tree once; later references reuse the copy.
func (c *copier) motion(m animgraph.Motion) animgraph.Motion {
	if m == nil {
		return nil
	}
	if done, ok := c.motions[m]; ok {
		return done
	}
	switch v := m.(type) {
	case *animgraph.Clip:
		clip := v.Clone(v.Name)
		clip.RewriteBindings(c.rewrite)
		c.im.Dst.AdoptClip(clip)
		c.motions[m] = clip
		return clip
	case *animgraph.BlendTree:
		tree := animgraph.NewStandaloneBlendTree(v.Name, v.Type)
		tree.Param = c.im.param(v.Param)
		tree.ParamY = c.im.param(v.ParamY)
		c.motions[m] = tree
		for _, ch := range v.Children {
			tree.Children = append(tree.Children, &animgraph.Child{
				Motion:      c.motion(ch.Motion),
				Threshold:   ch.Threshold,
				Position:    ch.Position,
				DirectParam: c.im.param(ch.DirectParam),
				TimeScale:   ch.TimeScale,
			})
		}
		c.im.Dst.AdoptBlendTree(tree)
		return tree
	}
	return m
}

// link copies every transition of m and its sub-machines, once all states exist.
func (c *copier) link(layer string, m *animgraph.StateMachine) []DroppedTransition {
	var dropped []DroppedTransition
	for _, mm := range m.AllMachines() {
		nm := c.machines[mm]
		copyAll := func(list []*animgraph.Transition, from string) []*animgraph.Transition {
			var out []*animgraph.Transition
			for _, tr := range list {
				nt, ok := c.transition(tr)
				if !ok {
					dropped = append(dropped, DroppedTransition{Layer: layer, From: from, To: tr.Dest.Name()})
					continue
				}
				out = append(out, nt)
			}
			return out
		}
		nm.AnyState = copyAll(mm.AnyState, "")
		nm.Entry = copyAll(mm.Entry, "(entry)")
		for _, s := range mm.States {
			c.states[s].Transitions = copyAll(s.Transitions, s.Name)
		}
	}
	return dropped
}

func (c *copier) transition(tr *animgraph.Transition) (*animgraph.Transition, bool) {
	nt := *tr
	nt.Source = c.states[tr.Source]
	nt.Conditions = make([]animgraph.Condition, len(tr.Conditions))
	for i, cond := range tr.Conditions {
		cond.Param = c.im.param(cond.Param)
		nt.Conditions[i] = cond
	}
	switch {
	case tr.Dest.State != nil:
		ns, ok := c.states[tr.Dest.State]
		if !ok {
			return nil, false
		}
		nt.Dest = animgraph.Destination{State: ns}
	case tr.Dest.Machine != nil:
		nm, ok := c.machines[tr.Dest.Machine]
		if !ok {
			return nil, false
		}
		nt.Dest = animgraph.Destination{Machine: nm}
	case tr.Dest.Exit:
		nt.Dest = animgraph.Destination{Exit: true}
	default:
		return nil, false
	}
	return &nt, true
}
