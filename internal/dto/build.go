package dto

import (
	"fmt"

	"github.com/aretw0/graft/pkg/animgraph"
)

// ClipLookup resolves motion names not defined by the document itself.
type ClipLookup func(name string) (*animgraph.Clip, bool)

// Build converts the DTO into a controller. Motions are resolved against the
// document's clips and trees, then against lookup (may be nil).
func (d ControllerDTO) Build(lookup ClipLookup) (*animgraph.Controller, error) {
	c := animgraph.NewController(d.Name)
	for _, p := range d.Parameters {
		kind, err := animgraph.ParseParamKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("controller %s: parameter %s: %w", d.Name, p.Name, err)
		}
		param, err := c.NewParameter(p.Name, kind, p.Default)
		if err != nil {
			return nil, fmt.Errorf("controller %s: %w", d.Name, err)
		}
		param.Networked = p.Networked
		param.Saved = p.Saved
	}

	motions := make(map[string]animgraph.Motion)
	for _, cd := range d.Clips {
		motions[cd.Name] = c.AdoptClip(cd.Build())
	}
	trees := make(map[string]*animgraph.BlendTree)
	for _, td := range d.Trees {
		typ, err := animgraph.ParseBlendType(td.Type)
		if err != nil {
			return nil, fmt.Errorf("controller %s: tree %s: %w", d.Name, td.Name, err)
		}
		tree := c.AdoptBlendTree(&animgraph.BlendTree{Name: td.Name, Type: typ, Param: td.Param, ParamY: td.ParamY})
		trees[td.Name] = tree
		motions[td.Name] = tree
	}
	resolve := func(name string) (animgraph.Motion, error) {
		if name == "" {
			return nil, nil
		}
		if m, ok := motions[name]; ok {
			return m, nil
		}
		if lookup != nil {
			if clip, ok := lookup(name); ok {
				return clip, nil
			}
		}
		return nil, fmt.Errorf("unknown motion %q", name)
	}
	for _, td := range d.Trees {
		tree := trees[td.Name]
		for _, ch := range td.Children {
			m, err := resolve(ch.Motion)
			if err != nil {
				return nil, fmt.Errorf("controller %s: tree %s: %w", d.Name, td.Name, err)
			}
			scale := ch.TimeScale
			if scale == 0 {
				scale = 1
			}
			tree.Children = append(tree.Children, &animgraph.Child{
				Motion:      m,
				Threshold:   ch.Threshold,
				Position:    animgraph.Vec2{X: ch.Position[0], Y: ch.Position[1]},
				DirectParam: ch.Param,
				TimeScale:   scale,
			})
		}
	}

	for _, ld := range d.Layers {
		l := c.NewLayer(ld.Name)
		l.Owner = ld.Owner
		if ld.Weight != nil {
			l.Weight = *ld.Weight
		}
		if ld.Blend == "additive" {
			l.BlendMode = animgraph.Additive
		}
		if len(ld.Mask) > 0 {
			l.Mask = &animgraph.Mask{Name: ld.Name + " Mask", Disabled: append([]string(nil), ld.Mask...)}
		}
		b := &machineBuilder{resolve: resolve}
		if err := b.build(l.StateMachine, ld.Machine); err != nil {
			return nil, fmt.Errorf("controller %s: layer %s: %w", d.Name, ld.Name, err)
		}
		if err := b.link(); err != nil {
			return nil, fmt.Errorf("controller %s: layer %s: %w", d.Name, ld.Name, err)
		}
	}
	return c, nil
}

type pendingTransition struct {
	owner *[]*animgraph.Transition
	src   *animgraph.State
	dto   TransitionDTO
}

// machineBuilder creates every state of a layer first, then links transitions
// by name across the layer's machines.
type machineBuilder struct {
	resolve  func(string) (animgraph.Motion, error)
	states   map[string]*animgraph.State
	machines map[string]*animgraph.StateMachine
	pending  []pendingTransition
}

func (b *machineBuilder) build(m *animgraph.StateMachine, d MachineDTO) error {
	if b.states == nil {
		b.states = make(map[string]*animgraph.State)
		b.machines = make(map[string]*animgraph.StateMachine)
	}
	if d.Name != "" {
		m.Name = d.Name
	}
	b.machines[m.Name] = m
	for _, sd := range d.States {
		s := m.NewState(sd.Name)
		motion, err := b.resolve(sd.Motion)
		if err != nil {
			return fmt.Errorf("state %s: %w", sd.Name, err)
		}
		s.Motion = motion
		if sd.Speed != nil {
			s.Speed = *sd.Speed
		}
		s.SpeedParam = sd.SpeedParam
		s.TimeParam = sd.TimeParam
		s.WriteDefaults = sd.WriteDefaults
		for _, dd := range sd.Drivers {
			drv := &animgraph.ParamDriver{LocalOnly: dd.Local}
			for _, e := range dd.Entries {
				op, err := parseDriverOp(e.Op)
				if err != nil {
					return fmt.Errorf("state %s: %w", sd.Name, err)
				}
				drv.Entries = append(drv.Entries, animgraph.DriverEntry{
					Op: op, Name: e.Name, Value: e.Value, Source: e.Source, Min: e.Min, Max: e.Max,
				})
			}
			s.Behaviors = append(s.Behaviors, drv)
		}
		if _, dup := b.states[sd.Name]; !dup {
			b.states[sd.Name] = s
		}
		for _, td := range sd.Transitions {
			b.pending = append(b.pending, pendingTransition{owner: &s.Transitions, src: s, dto: td})
		}
	}
	for _, sub := range d.Machines {
		if err := b.build(m.NewMachine(sub.Name), sub); err != nil {
			return err
		}
	}
	if d.Default != "" {
		def, ok := b.states[d.Default]
		if !ok {
			return fmt.Errorf("machine %s: unknown default state %q", m.Name, d.Default)
		}
		m.SetDefault(def)
	}
	for _, td := range d.Any {
		b.pending = append(b.pending, pendingTransition{owner: &m.AnyState, dto: td})
	}
	for _, td := range d.Entry {
		b.pending = append(b.pending, pendingTransition{owner: &m.Entry, dto: td})
	}
	return nil
}

func (b *machineBuilder) link() error {
	for _, p := range b.pending {
		tr := &animgraph.Transition{
			Source:              p.src,
			Duration:            p.dto.Duration,
			CanTransitionToSelf: p.dto.Self,
		}
		switch {
		case p.dto.To != "":
			dst, ok := b.states[p.dto.To]
			if !ok {
				return fmt.Errorf("transition to unknown state %q", p.dto.To)
			}
			tr.Dest.State = dst
		case p.dto.Machine != "":
			dst, ok := b.machines[p.dto.Machine]
			if !ok {
				return fmt.Errorf("transition to unknown machine %q", p.dto.Machine)
			}
			tr.Dest.Machine = dst
		default:
			tr.Dest.Exit = true
		}
		if p.dto.ExitTime != nil {
			tr.HasExitTime = true
			tr.ExitTime = *p.dto.ExitTime
		}
		for _, cd := range p.dto.Conditions {
			mode, err := animgraph.ParseComparator(cd.Mode)
			if err != nil {
				return err
			}
			tr.Conditions = append(tr.Conditions, animgraph.Condition{Param: cd.Param, Mode: mode, Threshold: cd.Threshold})
		}
		*p.owner = append(*p.owner, tr)
	}
	return nil
}
