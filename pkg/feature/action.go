package feature

import "fmt"

// Action is one typed step of a State. The set of actions is closed.
type Action interface {
	ActionType() string
	isAction()
}

// ToggleMode selects what an ObjectToggle does to its object.
type ToggleMode int

const (
	// Flip drives the object to the opposite of its resting state.
	Flip ToggleMode = iota
	TurnOn
	TurnOff
)

func (m ToggleMode) String() string {
	switch m {
	case TurnOn:
		return "on"
	case TurnOff:
		return "off"
	default:
		return "toggle"
	}
}

// ParseToggleMode is the inverse of ToggleMode.String.
func ParseToggleMode(s string) (ToggleMode, error) {
	switch s {
	case "", "toggle", "flip":
		return Flip, nil
	case "on", "turn_on":
		return TurnOn, nil
	case "off", "turn_off":
		return TurnOff, nil
	default:
		return Flip, fmt.Errorf("unknown toggle mode: %q", s)
	}
}

// ObjectToggle turns an object on or off. Object is a path from the avatar root.
type ObjectToggle struct {
	Object string     `mapstructure:"object"`
	Mode   ToggleMode `mapstructure:"mode"`
}

// BlendShape sets a blendshape weight on every skinned mesh under Renderer
// (the owning object's subtree when empty) that exposes it.
type BlendShape struct {
	Name     string  `mapstructure:"name"`
	Value    float64 `mapstructure:"value"`
	Renderer string  `mapstructure:"renderer"`
}

// Material swaps the material of one renderer slot.
type Material struct {
	Renderer string `mapstructure:"renderer"`
	Slot     int    `mapstructure:"slot"`
	Material string `mapstructure:"material"`
}

// MaterialProperty sets a shader float on a renderer, or on every renderer
// under the owner when Renderer is empty.
type MaterialProperty struct {
	Renderer string  `mapstructure:"renderer"`
	Property string  `mapstructure:"property"`
	Value    float64 `mapstructure:"value"`
}

// Scale multiplies an object's authored local scale.
type Scale struct {
	Object string  `mapstructure:"object"`
	Scale  float64 `mapstructure:"scale"`
}

// FlipbookFrame selects a frame of a flipbook shader on a renderer.
type FlipbookFrame struct {
	Renderer string  `mapstructure:"renderer"`
	Frame    float64 `mapstructure:"frame"`
}

// AnimationClip copies an authored library clip whose paths are relative to the owning object.
type AnimationClip struct {
	Clip string `mapstructure:"clip"`
}

// FxFloat animates a controller float parameter.
type FxFloat struct {
	Param string  `mapstructure:"param"`
	Value float64 `mapstructure:"value"`
}

// UnknownAction keeps an action record whose type this build does not know.
// The synthesizer skips it with a warning instead of failing the feature.
type UnknownAction struct {
	Type string
	Raw  map[string]any
}

func (ObjectToggle) ActionType() string     { return "object_toggle" }
func (BlendShape) ActionType() string       { return "blendshape" }
func (Material) ActionType() string         { return "material" }
func (MaterialProperty) ActionType() string { return "material_property" }
func (Scale) ActionType() string            { return "scale" }
func (FlipbookFrame) ActionType() string    { return "flipbook" }
func (AnimationClip) ActionType() string    { return "animation_clip" }
func (FxFloat) ActionType() string          { return "fx_float" }

func (a UnknownAction) ActionType() string {
	if a.Type == "" {
		return "(untyped)"
	}
	return fmt.Sprintf("%q", a.Type)
}

func (ObjectToggle) isAction()     {}
func (BlendShape) isAction()       {}
func (Material) isAction()         {}
func (MaterialProperty) isAction() {}
func (Scale) isAction()            {}
func (FlipbookFrame) isAction()    {}
func (AnimationClip) isAction()    {}
func (FxFloat) isAction()          {}
func (UnknownAction) isAction()    {}

// State is an ordered list of actions synthesized into one clip.
type State struct {
	Actions []Action
}

// IsEmpty reports whether the state does nothing.
func (s State) IsEmpty() bool { return len(s.Actions) == 0 }
