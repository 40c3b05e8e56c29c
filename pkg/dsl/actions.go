package dsl

import "github.com/aretw0/graft/pkg/feature"

// State groups actions into a feature state.
func State(actions ...feature.Action) feature.State {
	return feature.State{Actions: actions}
}

// TurnOn activates the object at path (from the avatar root).
func TurnOn(path string) feature.Action {
	return feature.ObjectToggle{Object: path, Mode: feature.TurnOn}
}

// TurnOff deactivates the object at path.
func TurnOff(path string) feature.Action {
	return feature.ObjectToggle{Object: path, Mode: feature.TurnOff}
}

// Flip inverts the object's authored active state.
func Flip(path string) feature.Action {
	return feature.ObjectToggle{Object: path, Mode: feature.Flip}
}

// Shape sets a blendshape on every mesh under the owning object.
func Shape(name string, value float64) feature.Action {
	return feature.BlendShape{Name: name, Value: value}
}

// ShapeOn sets a blendshape on the meshes under renderer only.
func ShapeOn(renderer, name string, value float64) feature.Action {
	return feature.BlendShape{Name: name, Value: value, Renderer: renderer}
}

// Material swaps one material slot.
func Material(renderer string, slot int, material string) feature.Action {
	return feature.Material{Renderer: renderer, Slot: slot, Material: material}
}

// Property sets a shader float.
func Property(renderer, property string, value float64) feature.Action {
	return feature.MaterialProperty{Renderer: renderer, Property: property, Value: value}
}

// Scale multiplies an object's scale.
func Scale(path string, factor float64) feature.Action {
	return feature.Scale{Object: path, Scale: factor}
}

// Flipbook shows one frame of a flipbook material.
func Flipbook(renderer string, frame float64) feature.Action {
	return feature.FlipbookFrame{Renderer: renderer, Frame: frame}
}

// Clip plays an authored library clip.
func Clip(name string) feature.Action {
	return feature.AnimationClip{Clip: name}
}

// FxFloat writes a controller float while the state is active.
func FxFloat(param string, value float64) feature.Action {
	return feature.FxFloat{Param: param, Value: value}
}
