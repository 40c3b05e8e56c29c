package animgraph

// Destination is where a transition leads. Exactly one field is set.
type Destination struct {
	State   *State
	Machine *StateMachine
	Exit    bool
}

// Name returns a printable name for the destination.
func (d Destination) Name() string {
	switch {
	case d.State != nil:
		return d.State.Name
	case d.Machine != nil:
		return d.Machine.Name
	case d.Exit:
		return "(exit)"
	default:
		return "(none)"
	}
}

// Transition moves a machine from Source to Dest when every condition holds.
// Source is nil for any-state and entry transitions.
type Transition struct {
	Source              *State
	Dest                Destination
	Conditions          []Condition
	Duration            float64
	HasExitTime         bool
	ExitTime            float64
	CanTransitionToSelf bool
}

// Transitions is the fluent handle returned by TransitionsTo. A Cond with several
// OR clauses expands into one Transition per clause, kept contiguous in the
// owner list so declaration order is preserved.
type Transitions struct {
	owner *[]*Transition
	proto Transition
	made  []*Transition
}

func newTransitions(owner *[]*Transition, proto Transition) *Transitions {
	t := &Transitions{owner: owner, proto: proto}
	t.rebuild(Always())
	return t
}

func (t *Transitions) rebuild(c Cond) {
	var fresh []*Transition
	for _, clause := range c.Clauses() {
		tr := t.proto
		tr.Conditions = clause
		fresh = append(fresh, &tr)
	}

	list := *t.owner
	at := len(list)
	kept := list[:0:0]
	for _, existing := range list {
		if t.owns(existing) {
			if at == len(list) {
				at = len(kept)
			}
			continue
		}
		kept = append(kept, existing)
	}
	if at > len(kept) {
		at = len(kept)
	}
	out := make([]*Transition, 0, len(kept)+len(fresh))
	out = append(out, kept[:at]...)
	out = append(out, fresh...)
	out = append(out, kept[at:]...)
	*t.owner = out
	t.made = fresh
}

func (t *Transitions) owns(tr *Transition) bool {
	for _, m := range t.made {
		if m == tr {
			return true
		}
	}
	return false
}

// When replaces the conditions of the transition set.
func (t *Transitions) When(c Cond) *Transitions {
	t.rebuild(c)
	return t
}

// WithDuration sets the blend duration, in seconds.
func (t *Transitions) WithDuration(d float64) *Transitions {
	t.proto.Duration = d
	for _, m := range t.made {
		m.Duration = d
	}
	return t
}

// WithExitTime makes the transitions wait for normalized time exit.
func (t *Transitions) WithExitTime(exit float64) *Transitions {
	t.proto.HasExitTime = true
	t.proto.ExitTime = exit
	for _, m := range t.made {
		m.HasExitTime = true
		m.ExitTime = exit
	}
	return t
}

// AllowSelf lets an any-state transition re-enter its destination.
func (t *Transitions) AllowSelf() *Transitions {
	t.proto.CanTransitionToSelf = true
	for _, m := range t.made {
		m.CanTransitionToSelf = true
	}
	return t
}

// List returns the transitions currently created by this handle.
func (t *Transitions) List() []*Transition {
	return append([]*Transition(nil), t.made...)
}
