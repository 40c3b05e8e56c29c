package animgraph

// DriverOp is the operation of one parameter-driver entry.
type DriverOp int

const (
	DriverSet DriverOp = iota
	DriverAdd
	DriverRandom
	DriverCopy
)

// DriverEntry changes one parameter when a state is entered.
type DriverEntry struct {
	Op     DriverOp
	Name   string
	Value  float64
	Source string
	Min    float64
	Max    float64
}

// Behavior is a side effect attached to a state.
type Behavior interface {
	behavior()
}

// ParamDriver sets, adds, randomizes or copies parameters on state entry.
type ParamDriver struct {
	LocalOnly bool
	Entries   []DriverEntry
}

func (*ParamDriver) behavior() {}

// Set appends a DriverSet entry.
func (d *ParamDriver) Set(name string, value float64) *ParamDriver {
	d.Entries = append(d.Entries, DriverEntry{Op: DriverSet, Name: name, Value: value})
	return d
}

// State is one node of a state machine.
type State struct {
	Name       string
	Motion     Motion
	Speed      float64
	SpeedParam string
	TimeParam  string
	// WriteDefaults is nil until the finalization pass decides it.
	WriteDefaults *bool
	Transitions   []*Transition
	Behaviors     []Behavior
	Position      Vec2
}

// WithMotion sets the state's motion.
func (s *State) WithMotion(m Motion) *State {
	s.Motion = m
	return s
}

// Drives returns the state's parameter driver, creating it on first use.
func (s *State) Drives(localOnly bool) *ParamDriver {
	for _, b := range s.Behaviors {
		if d, ok := b.(*ParamDriver); ok && d.LocalOnly == localOnly {
			return d
		}
	}
	d := &ParamDriver{LocalOnly: localOnly}
	s.Behaviors = append(s.Behaviors, d)
	return d
}

// Drivers returns every parameter driver of the state.
func (s *State) Drivers() []*ParamDriver {
	var out []*ParamDriver
	for _, b := range s.Behaviors {
		if d, ok := b.(*ParamDriver); ok {
			out = append(out, d)
		}
	}
	return out
}

// TransitionsTo starts a transition set from s to dst.
func (s *State) TransitionsTo(dst *State) *Transitions {
	return newTransitions(&s.Transitions, Transition{Source: s, Dest: Destination{State: dst}})
}

// TransitionsToExit starts a transition set from s to the machine exit.
func (s *State) TransitionsToExit() *Transitions {
	return newTransitions(&s.Transitions, Transition{Source: s, Dest: Destination{Exit: true}})
}

// TransitionsToMachine starts a transition set from s into a sub-machine.
func (s *State) TransitionsToMachine(m *StateMachine) *Transitions {
	return newTransitions(&s.Transitions, Transition{Source: s, Dest: Destination{Machine: m}})
}

// StateMachine is a graph of states and nested machines.
type StateMachine struct {
	Name     string
	States   []*State
	Machines []*StateMachine
	Default  *State
	// AnyState transitions are checked before the current state's own transitions.
	AnyState []*Transition
	Entry    []*Transition
	Position Vec2
	// AnyStatePosition is layout only.
	AnyStatePosition Vec2
}

// NewStateMachine creates an empty machine.
func NewStateMachine(name string) *StateMachine {
	return &StateMachine{Name: name}
}

// NewState appends a state. The first state of a machine becomes its default.
func (m *StateMachine) NewState(name string) *State {
	s := &State{Name: name, Speed: 1}
	s.Position = Vec2{X: 0, Y: float64(len(m.States)) * 80}
	m.States = append(m.States, s)
	if m.Default == nil {
		m.Default = s
	}
	return s
}

// NewMachine appends a nested state machine.
func (m *StateMachine) NewMachine(name string) *StateMachine {
	sub := NewStateMachine(name)
	m.Machines = append(m.Machines, sub)
	return sub
}

// SetDefault changes the default state.
func (m *StateMachine) SetDefault(s *State) { m.Default = s }

// AnyTransitionsTo starts an any-state transition set to dst.
func (m *StateMachine) AnyTransitionsTo(dst *State) *Transitions {
	return newTransitions(&m.AnyState, Transition{Dest: Destination{State: dst}})
}

// EntryTransitionsTo starts an entry transition set to dst.
func (m *StateMachine) EntryTransitionsTo(dst *State) *Transitions {
	return newTransitions(&m.Entry, Transition{Dest: Destination{State: dst}})
}

// AllStates returns the states of m and every nested machine, depth first.
func (m *StateMachine) AllStates() []*State {
	out := append([]*State(nil), m.States...)
	for _, sub := range m.Machines {
		out = append(out, sub.AllStates()...)
	}
	return out
}

// AllMachines returns m and every nested machine, depth first.
func (m *StateMachine) AllMachines() []*StateMachine {
	out := []*StateMachine{m}
	for _, sub := range m.Machines {
		out = append(out, sub.AllMachines()...)
	}
	return out
}

// AllTransitions returns every transition of m and its nested machines:
// any-state and entry transitions of each machine followed by state transitions.
func (m *StateMachine) AllTransitions() []*Transition {
	var out []*Transition
	for _, mm := range m.AllMachines() {
		out = append(out, mm.AnyState...)
		out = append(out, mm.Entry...)
		for _, s := range mm.States {
			out = append(out, s.Transitions...)
		}
	}
	return out
}

// Find returns the first state with the given name, searching nested machines.
func (m *StateMachine) Find(name string) (*State, bool) {
	for _, s := range m.AllStates() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
