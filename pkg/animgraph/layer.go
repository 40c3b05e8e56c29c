package animgraph

// BlendMode is how a layer combines with the layers below it.
type BlendMode int

const (
	Override BlendMode = iota
	Additive
)

func (m BlendMode) String() string {
	if m == Additive {
		return "additive"
	}
	return "override"
}

// Mask limits which bindings a layer may animate.
type Mask struct {
	Name string
	// Disabled lists transform paths the layer may not animate.
	Disabled []string
}

// IsNoop reports whether the mask allows everything.
func (m *Mask) IsNoop() bool { return m == nil || len(m.Disabled) == 0 }

// Allows reports whether a binding on path may be animated through the mask.
func (m *Mask) Allows(path string) bool {
	if m == nil {
		return true
	}
	for _, d := range m.Disabled {
		if d == path {
			return false
		}
	}
	return true
}

// Layer is one state machine of a controller.
type Layer struct {
	Name         string
	Weight       float64
	BlendMode    BlendMode
	Mask         *Mask
	StateMachine *StateMachine
	// Owner is the feature (or "" for imported/authored content) that created the layer.
	Owner string
}

// NewState appends a state to the layer's root machine.
func (l *Layer) NewState(name string) *State { return l.StateMachine.NewState(name) }

// AnyTransitionsTo starts an any-state transition set to dst.
func (l *Layer) AnyTransitionsTo(dst *State) *Transitions {
	return l.StateMachine.AnyTransitionsTo(dst)
}

// States returns every state of the layer, including nested machines.
func (l *Layer) States() []*State { return l.StateMachine.AllStates() }

// Transitions returns every transition of the layer.
func (l *Layer) Transitions() []*Transition { return l.StateMachine.AllTransitions() }

// IsEmpty reports whether the layer has no states.
func (l *Layer) IsEmpty() bool { return len(l.States()) == 0 }

// IsDirectOnly reports whether every state of the layer plays a Direct blend tree.
func (l *Layer) IsDirectOnly() bool {
	states := l.States()
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		tree, ok := s.Motion.(*BlendTree)
		if !ok || tree.Type != Direct {
			return false
		}
	}
	return true
}
