package dsl

import "github.com/aretw0/graft/pkg/feature"

// ToggleBuilder configures a toggle.
type ToggleBuilder struct {
	m feature.Toggle
}

// Toggle starts a menu toggle at name ("Clothes/Hat") applying actions while on.
func Toggle(name string, actions ...feature.Action) *ToggleBuilder {
	return &ToggleBuilder{m: feature.Toggle{Name: name, State: State(actions...)}}
}

func (t *ToggleBuilder) DefaultOn() *ToggleBuilder { t.m.DefaultOn = true; return t }
func (t *ToggleBuilder) Saved() *ToggleBuilder     { t.m.Saved = true; return t }
func (t *ToggleBuilder) Hold() *ToggleBuilder      { t.m.HoldButton = true; return t }

// Slider makes the toggle a radial puppet starting at def.
func (t *ToggleBuilder) Slider(def float64) *ToggleBuilder {
	t.m.Slider = true
	t.m.SliderDefault = def
	return t
}

// Global drives the toggle from an existing parameter.
func (t *ToggleBuilder) Global(param string) *ToggleBuilder { t.m.GlobalParam = param; return t }

// Exclusive turns off other toggles sharing any of tags when this one turns on.
func (t *ToggleBuilder) Exclusive(tags ...string) *ToggleBuilder {
	t.m.ExclusiveTags = append(t.m.ExclusiveTags, tags...)
	return t
}

// ResetPhysbones resets the physbones at paths whenever the toggle changes.
func (t *ToggleBuilder) ResetPhysbones(paths ...string) *ToggleBuilder {
	t.m.ResetPhysbones = append(t.m.ResetPhysbones, paths...)
	return t
}

// Transition sets the blend time between off and on.
func (t *ToggleBuilder) Transition(seconds float64) *ToggleBuilder {
	t.m.TransitionTime = seconds
	return t
}

// Model returns the configured feature.
func (t *ToggleBuilder) Model() feature.Model { return t.m }

// FullControllerBuilder configures a controller import.
type FullControllerBuilder struct {
	m feature.FullController
}

// FullController imports the named library controllers.
func FullController(controllers ...string) *FullControllerBuilder {
	b := &FullControllerBuilder{}
	for _, c := range controllers {
		b.m.Controllers = append(b.m.Controllers, feature.ControllerRef{Name: c})
	}
	return b
}

// Menu mounts a library menu under prefix.
func (b *FullControllerBuilder) Menu(name, prefix string) *FullControllerBuilder {
	b.m.Menus = append(b.m.Menus, feature.MenuRef{Name: name, Prefix: prefix})
	return b
}

// Params imports library parameter sets.
func (b *FullControllerBuilder) Params(sets ...string) *FullControllerBuilder {
	b.m.Params = append(b.m.Params, sets...)
	return b
}

// Global keeps the named parameters unrenamed; "*" keeps all of them.
func (b *FullControllerBuilder) Global(params ...string) *FullControllerBuilder {
	b.m.GlobalParams = append(b.m.GlobalParams, params...)
	return b
}

// Root sets the object, relative to the owner, that clip paths are authored against.
func (b *FullControllerBuilder) Root(path string) *FullControllerBuilder {
	b.m.RootObject = path
	return b
}

// Model returns the configured feature.
func (b *FullControllerBuilder) Model() feature.Model { return b.m }

// DepthBuilder configures one depth action of a socket.
type DepthBuilder struct {
	a feature.DepthAction
}

// DepthAction blends actions in between minDepth and maxDepth.
func DepthAction(minDepth, maxDepth float64, actions ...feature.Action) *DepthBuilder {
	return &DepthBuilder{a: feature.DepthAction{State: State(actions...), MinDepth: minDepth, MaxDepth: maxDepth}}
}

func (d *DepthBuilder) Smoothing(s float64) *DepthBuilder { d.a.Smoothing = s; return d }
func (d *DepthBuilder) Directional() *DepthBuilder        { d.a.Directional = true; return d }

// SocketBuilder configures a socket.
type SocketBuilder struct {
	m feature.Socket
}

// Socket creates a socket named name on the object at path (relative to the owner).
func Socket(name, path string) *SocketBuilder {
	return &SocketBuilder{m: feature.Socket{Name: name, Object: path}}
}

func (s *SocketBuilder) Radius(r float64) *SocketBuilder { s.m.Radius = r; return s }
func (s *SocketBuilder) EnableToggle() *SocketBuilder    { s.m.EnableToggle = true; return s }

// Depth adds depth actions.
func (s *SocketBuilder) Depth(actions ...*DepthBuilder) *SocketBuilder {
	for _, a := range actions {
		s.m.DepthActions = append(s.m.DepthActions, a.a)
	}
	return s
}

// Active sets the actions applied while anything is inside the socket.
func (s *SocketBuilder) Active(actions ...feature.Action) *SocketBuilder {
	s.m.ActiveActions = State(actions...)
	return s
}

// Model returns the configured feature.
func (s *SocketBuilder) Model() feature.Model { return s.m }

// GestureBuilder configures a gesture driver.
type GestureBuilder struct {
	m feature.GestureDriver
}

// Gestures starts an empty gesture driver.
func Gestures() *GestureBuilder { return &GestureBuilder{} }

// Add appends a gesture.
func (g *GestureBuilder) Add(gesture feature.Gesture) *GestureBuilder {
	g.m.Gestures = append(g.m.Gestures, gesture)
	return g
}

// Left maps a left-hand sign to actions.
func (g *GestureBuilder) Left(sign int, actions ...feature.Action) *GestureBuilder {
	return g.Add(feature.Gesture{Hand: feature.HandLeft, Sign: sign, State: State(actions...)})
}

// Right maps a right-hand sign to actions.
func (g *GestureBuilder) Right(sign int, actions ...feature.Action) *GestureBuilder {
	return g.Add(feature.Gesture{Hand: feature.HandRight, Sign: sign, State: State(actions...)})
}

// Either maps a sign on either hand to actions.
func (g *GestureBuilder) Either(sign int, actions ...feature.Action) *GestureBuilder {
	return g.Add(feature.Gesture{Hand: feature.HandEither, Sign: sign, State: State(actions...)})
}

// Combo maps a sign pair held on both hands to actions.
func (g *GestureBuilder) Combo(sign, other int, actions ...feature.Action) *GestureBuilder {
	return g.Add(feature.Gesture{Hand: feature.HandCombo, Sign: sign, ComboSign: other, State: State(actions...)})
}

// Model returns the configured feature.
func (g *GestureBuilder) Model() feature.Model { return g.m }

// MoveObject reparents the object at path (relative to the owner) under newParent.
func MoveObject(path, newParent string) feature.Model {
	return feature.MoveObject{Object: path, NewParent: newParent}
}
