// Package dto holds the YAML shapes of graphs, menus, parameter lists and
// avatars, with conversions to and from the in-memory model.
package dto

import (
	"fmt"

	"github.com/aretw0/graft/pkg/animgraph"
)

// KeyDTO is one float keyframe.
type KeyDTO struct {
	Time  float64 `yaml:"t"`
	Value float64 `yaml:"v"`
}

// ObjectKeyDTO is one object-reference keyframe.
type ObjectKeyDTO struct {
	Time float64 `yaml:"t"`
	Ref  string  `yaml:"ref"`
}

// CurveDTO is one bound curve of a clip.
type CurveDTO struct {
	Path     string         `yaml:"path"`
	Type     string         `yaml:"type"`
	Property string         `yaml:"property"`
	Keys     []KeyDTO       `yaml:"keys,omitempty"`
	Objects  []ObjectKeyDTO `yaml:"objects,omitempty"`
}

// ClipDTO is a keyframe clip.
type ClipDTO struct {
	Name   string     `yaml:"name"`
	Loop   bool       `yaml:"loop,omitempty"`
	Curves []CurveDTO `yaml:"curves"`
}

// ChildDTO is one blend-tree child. Motion names a clip or tree of the same controller.
type ChildDTO struct {
	Motion    string     `yaml:"motion,omitempty"`
	Threshold float64    `yaml:"threshold,omitempty"`
	Position  [2]float64 `yaml:"position,flow"`
	Param     string     `yaml:"param,omitempty"`
	TimeScale float64    `yaml:"time_scale,omitempty"`
}

// TreeDTO is a blend tree.
type TreeDTO struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Param    string     `yaml:"param,omitempty"`
	ParamY   string     `yaml:"param_y,omitempty"`
	Children []ChildDTO `yaml:"children"`
}

// ConditionDTO is one transition condition.
type ConditionDTO struct {
	Param     string  `yaml:"param"`
	Mode      string  `yaml:"mode"`
	Threshold float64 `yaml:"threshold,omitempty"`
}

// TransitionDTO is a transition. Exactly one of To, Machine, Exit is set.
type TransitionDTO struct {
	To         string         `yaml:"to,omitempty"`
	Machine    string         `yaml:"machine,omitempty"`
	Exit       bool           `yaml:"exit,omitempty"`
	Conditions []ConditionDTO `yaml:"conditions,omitempty"`
	Duration   float64        `yaml:"duration,omitempty"`
	ExitTime   *float64       `yaml:"exit_time,omitempty"`
	Self       bool           `yaml:"self,omitempty"`
}

// DriverEntryDTO is one parameter-driver entry.
type DriverEntryDTO struct {
	Op     string  `yaml:"op"`
	Name   string  `yaml:"name"`
	Value  float64 `yaml:"value,omitempty"`
	Source string  `yaml:"source,omitempty"`
	Min    float64 `yaml:"min,omitempty"`
	Max    float64 `yaml:"max,omitempty"`
}

// DriverDTO is a parameter driver behavior.
type DriverDTO struct {
	Local   bool             `yaml:"local,omitempty"`
	Entries []DriverEntryDTO `yaml:"entries"`
}

// StateDTO is a state.
type StateDTO struct {
	Name          string          `yaml:"name"`
	Motion        string          `yaml:"motion,omitempty"`
	Speed         *float64        `yaml:"speed,omitempty"`
	SpeedParam    string          `yaml:"speed_param,omitempty"`
	TimeParam     string          `yaml:"time_param,omitempty"`
	WriteDefaults *bool           `yaml:"write_defaults,omitempty"`
	Transitions   []TransitionDTO `yaml:"transitions,omitempty"`
	Drivers       []DriverDTO     `yaml:"drivers,omitempty"`
}

// MachineDTO is a (sub-)state machine.
type MachineDTO struct {
	Name     string          `yaml:"name"`
	Default  string          `yaml:"default,omitempty"`
	States   []StateDTO      `yaml:"states,omitempty"`
	Machines []MachineDTO    `yaml:"machines,omitempty"`
	Any      []TransitionDTO `yaml:"any,omitempty"`
	Entry    []TransitionDTO `yaml:"entry,omitempty"`
}

// LayerDTO is a controller layer.
type LayerDTO struct {
	Name    string     `yaml:"name"`
	Weight  *float64   `yaml:"weight,omitempty"`
	Blend   string     `yaml:"blend,omitempty"`
	Mask    []string   `yaml:"mask,omitempty"`
	Owner   string     `yaml:"owner,omitempty"`
	Machine MachineDTO `yaml:"machine"`
}

// ParamDTO is a controller parameter or a parameter-list entry.
type ParamDTO struct {
	Name      string  `yaml:"name"`
	Kind      string  `yaml:"kind"`
	Default   float64 `yaml:"default,omitempty"`
	Networked bool    `yaml:"networked,omitempty"`
	Saved     bool    `yaml:"saved,omitempty"`
}

// ControllerDTO is a whole controller with its clips and trees.
type ControllerDTO struct {
	Name       string     `yaml:"name"`
	Parameters []ParamDTO `yaml:"parameters,omitempty"`
	Clips      []ClipDTO  `yaml:"clips,omitempty"`
	Trees      []TreeDTO  `yaml:"trees,omitempty"`
	Layers     []LayerDTO `yaml:"layers"`
}

// FromClip converts a clip.
func FromClip(c *animgraph.Clip) ClipDTO {
	out := ClipDTO{Name: c.Name, Loop: c.Loop, Curves: []CurveDTO{}}
	for _, cv := range c.Curves() {
		d := CurveDTO{Path: cv.Binding.Path, Type: cv.Binding.Type, Property: cv.Binding.Property}
		for _, k := range cv.Keys {
			d.Keys = append(d.Keys, KeyDTO{Time: k.Time, Value: k.Value})
		}
		for _, k := range cv.ObjectKeys {
			d.Objects = append(d.Objects, ObjectKeyDTO{Time: k.Time, Ref: k.Ref})
		}
		out.Curves = append(out.Curves, d)
	}
	return out
}

// Build converts the DTO back into a standalone clip.
func (d ClipDTO) Build() *animgraph.Clip {
	c := animgraph.NewStandaloneClip(d.Name)
	c.Loop = d.Loop
	for _, cv := range d.Curves {
		b := animgraph.Binding{Path: cv.Path, Type: cv.Type, Property: cv.Property}
		if len(cv.Objects) > 0 {
			keys := make([]animgraph.ObjectKeyframe, 0, len(cv.Objects))
			for _, k := range cv.Objects {
				keys = append(keys, animgraph.ObjectKeyframe{Time: k.Time, Ref: k.Ref})
			}
			c.SetObjectCurve(b, keys...)
			continue
		}
		keys := make([]animgraph.Keyframe, 0, len(cv.Keys))
		for _, k := range cv.Keys {
			keys = append(keys, animgraph.Keyframe{Time: k.Time, Value: k.Value})
		}
		c.SetCurve(b, keys...)
	}
	return c
}

// FromController converts a controller. Every motion it plays is emitted once,
// under a name unique within the document.
func FromController(c *animgraph.Controller) ControllerDTO {
	out := ControllerDTO{Name: c.Name, Layers: []LayerDTO{}}
	for _, p := range c.Parameters() {
		out.Parameters = append(out.Parameters, fromParam(p))
	}

	names := make(map[animgraph.Motion]string)
	taken := make(map[string]struct{})
	var nameOf func(m animgraph.Motion) string
	nameOf = func(m animgraph.Motion) string {
		if m == nil {
			return ""
		}
		if n, ok := names[m]; ok {
			return n
		}
		n := m.MotionName()
		for i := 2; ; i++ {
			if _, clash := taken[n]; !clash {
				break
			}
			n = fmt.Sprintf("%s %d", m.MotionName(), i)
		}
		taken[n] = struct{}{}
		names[m] = n
		switch v := m.(type) {
		case *animgraph.Clip:
			cd := FromClip(v)
			cd.Name = n
			out.Clips = append(out.Clips, cd)
		case *animgraph.BlendTree:
			// Reserve the slot first so children land after their parent.
			idx := len(out.Trees)
			out.Trees = append(out.Trees, TreeDTO{})
			td := TreeDTO{Name: n, Type: v.Type.String(), Param: v.Param, ParamY: v.ParamY, Children: []ChildDTO{}}
			for _, ch := range v.Children {
				td.Children = append(td.Children, ChildDTO{
					Motion:    nameOf(ch.Motion),
					Threshold: ch.Threshold,
					Position:  [2]float64{ch.Position.X, ch.Position.Y},
					Param:     ch.DirectParam,
					TimeScale: ch.TimeScale,
				})
			}
			out.Trees[idx] = td
		}
		return n
	}

	for _, l := range c.Layers {
		w := l.Weight
		ld := LayerDTO{Name: l.Name, Weight: &w, Blend: l.BlendMode.String(), Owner: l.Owner}
		if l.Mask != nil {
			ld.Mask = append([]string(nil), l.Mask.Disabled...)
		}
		ld.Machine = fromMachine(l.StateMachine, nameOf)
		out.Layers = append(out.Layers, ld)
	}
	return out
}

func fromParam(p *animgraph.Parameter) ParamDTO {
	return ParamDTO{Name: p.Name, Kind: p.Kind.String(), Default: p.Default, Networked: p.Networked, Saved: p.Saved}
}

func fromMachine(m *animgraph.StateMachine, nameOf func(animgraph.Motion) string) MachineDTO {
	out := MachineDTO{Name: m.Name}
	if m.Default != nil {
		out.Default = m.Default.Name
	}
	for _, s := range m.States {
		sd := StateDTO{
			Name:          s.Name,
			Motion:        nameOf(s.Motion),
			SpeedParam:    s.SpeedParam,
			TimeParam:     s.TimeParam,
			WriteDefaults: s.WriteDefaults,
		}
		if s.Speed != 1 {
			speed := s.Speed
			sd.Speed = &speed
		}
		for _, tr := range s.Transitions {
			sd.Transitions = append(sd.Transitions, fromTransition(tr))
		}
		for _, d := range s.Drivers() {
			dd := DriverDTO{Local: d.LocalOnly}
			for _, e := range d.Entries {
				dd.Entries = append(dd.Entries, DriverEntryDTO{
					Op: driverOpName(e.Op), Name: e.Name, Value: e.Value, Source: e.Source, Min: e.Min, Max: e.Max,
				})
			}
			sd.Drivers = append(sd.Drivers, dd)
		}
		out.States = append(out.States, sd)
	}
	for _, sub := range m.Machines {
		out.Machines = append(out.Machines, fromMachine(sub, nameOf))
	}
	for _, tr := range m.AnyState {
		out.Any = append(out.Any, fromTransition(tr))
	}
	for _, tr := range m.Entry {
		out.Entry = append(out.Entry, fromTransition(tr))
	}
	return out
}

func fromTransition(tr *animgraph.Transition) TransitionDTO {
	out := TransitionDTO{Duration: tr.Duration, Self: tr.CanTransitionToSelf}
	switch {
	case tr.Dest.State != nil:
		out.To = tr.Dest.State.Name
	case tr.Dest.Machine != nil:
		out.Machine = tr.Dest.Machine.Name
	default:
		out.Exit = true
	}
	if tr.HasExitTime {
		exit := tr.ExitTime
		out.ExitTime = &exit
	}
	for _, c := range tr.Conditions {
		out.Conditions = append(out.Conditions, ConditionDTO{Param: c.Param, Mode: c.Mode.String(), Threshold: c.Threshold})
	}
	return out
}

var driverOps = map[animgraph.DriverOp]string{
	animgraph.DriverSet:    "set",
	animgraph.DriverAdd:    "add",
	animgraph.DriverRandom: "random",
	animgraph.DriverCopy:   "copy",
}

func driverOpName(op animgraph.DriverOp) string { return driverOps[op] }

func parseDriverOp(s string) (animgraph.DriverOp, error) {
	for op, name := range driverOps {
		if name == s {
			return op, nil
		}
	}
	return animgraph.DriverSet, fmt.Errorf("unknown driver op: %q", s)
}
