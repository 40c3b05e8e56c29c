// Package clips synthesizes keyframe clips from feature state actions.
package clips

import (
	"fmt"
	"math"

	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

// FlipbookFrameProp is the shader float selecting the displayed flipbook frame.
const FlipbookFrameProp = "_FlipbookCurrentFrame"

// Synthesizer turns state actions into clip curves against one avatar.
type Synthesizer struct {
	Root    *scene.Object
	Library *scene.Library
	Resting *Resting
}

// New creates a synthesizer. A nil resting registry gets a fresh one.
func New(root *scene.Object, lib *scene.Library, resting *Resting) *Synthesizer {
	if resting == nil {
		resting = NewResting()
	}
	if lib == nil {
		lib = scene.NewLibrary()
	}
	return &Synthesizer{Root: root, Library: lib, Resting: resting}
}

// Synthesize writes the actions of st into dst. owner is the object the
// feature is attached to. Problems are returned as warnings; a bad action is
// skipped and never aborts the rest.
func (s *Synthesizer) Synthesize(dst *animgraph.Clip, owner *scene.Object, st feature.State) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	if owner == nil {
		owner = s.Root
	}
	ownerPath, _ := scene.RelativePath(s.Root, owner)

	// Authored clips go first; every other action layers on top of them.
	for _, a := range st.Actions {
		ac, ok := a.(feature.AnimationClip)
		if !ok {
			continue
		}
		src, found := s.Library.Clips[ac.Clip]
		if !found {
			warn("animation clip %q not found", ac.Clip)
			continue
		}
		copied := src.Clone(src.Name)
		copied.RewriteBindings(RewritePath(ownerPath))
		s.CaptureBaselines(copied)
		dst.Merge(copied)
	}

	for i, a := range st.Actions {
		switch v := a.(type) {
		case nil:
			warn("action %d is empty, skipped", i)
		case feature.AnimationClip:
		case feature.ObjectToggle:
			s.objectToggle(dst, v, warn)
		case feature.BlendShape:
			s.blendShape(dst, owner, v, warn)
		case feature.Material:
			s.material(dst, v, warn)
		case feature.MaterialProperty:
			s.materialProperty(dst, owner, v, warn)
		case feature.Scale:
			s.scale(dst, v, warn)
		case feature.FlipbookFrame:
			s.flipbook(dst, v, warn)
		case feature.FxFloat:
			if v.Param == "" {
				warn("fx float action %d has no parameter, skipped", i)
				continue
			}
			dst.SetConstant(animgraph.AnimatorBinding(v.Param), v.Value)
		default:
			warn("action %d has unsupported type %s, skipped", i, a.ActionType())
		}
	}
	return warnings
}

// CaptureBaselines records the current scene value of every binding of clip
// as its resting value. Bindings already captured keep their first value.
func (s *Synthesizer) CaptureBaselines(clip *animgraph.Clip) {
	for _, cv := range clip.Curves() {
		if cv.Binding.IsAnimatorParam() {
			continue
		}
		if cv.IsObject() {
			if base, ok := s.baselineObject(cv.Binding); ok {
				s.Resting.CaptureObject(cv.Binding, base)
			}
			continue
		}
		if base, ok := s.baseline(cv.Binding); ok {
			s.Resting.Capture(cv.Binding, base)
		}
	}
}

type warnFunc func(format string, args ...any)

func (s *Synthesizer) find(path string) (*scene.Object, string, bool) {
	obj, ok := s.Root.Find(path)
	if !ok {
		return nil, "", false
	}
	p, _ := scene.RelativePath(s.Root, obj)
	return obj, p, true
}

func (s *Synthesizer) objectToggle(dst *animgraph.Clip, a feature.ObjectToggle, warn warnFunc) {
	obj, path, ok := s.find(a.Object)
	if !ok {
		warn("object %q not found", a.Object)
		return
	}
	b := animgraph.Binding{Path: path, Type: animgraph.TypeGameObject, Property: animgraph.PropActive}
	rest := s.Resting.Capture(b, boolValue(obj.Active))
	switch a.Mode {
	case feature.TurnOn:
		dst.SetConstant(b, 1)
	case feature.TurnOff:
		dst.SetConstant(b, 0)
	default:
		dst.SetConstant(b, 1-rest)
	}
}

func (s *Synthesizer) blendShape(dst *animgraph.Clip, owner *scene.Object, a feature.BlendShape, warn warnFunc) {
	target := owner
	if a.Renderer != "" {
		obj, _, ok := s.find(a.Renderer)
		if !ok {
			warn("renderer %q not found for blendshape %q", a.Renderer, a.Name)
			return
		}
		target = obj
	}
	matched := 0
	target.Walk(func(o *scene.Object) {
		mesh, ok := scene.ComponentOf[*scene.SkinnedMesh](o)
		if !ok {
			return
		}
		shape, ok := mesh.Blendshape(a.Name)
		if !ok {
			return
		}
		path, _ := scene.RelativePath(s.Root, o)
		b := animgraph.Binding{Path: path, Type: animgraph.TypeSkinnedMesh, Property: animgraph.BlendshapeProp(a.Name)}
		s.Resting.Capture(b, shape.Weight)
		dst.SetConstant(b, a.Value)
		matched++
	})
	if matched == 0 {
		warn("no skinned mesh exposes blendshape %q", a.Name)
	}
}

func (s *Synthesizer) material(dst *animgraph.Clip, a feature.Material, warn warnFunc) {
	obj, path, ok := s.find(a.Renderer)
	if !ok {
		warn("renderer %q not found", a.Renderer)
		return
	}
	holder, ok := scene.ComponentOf[scene.MaterialHolder](obj)
	if !ok {
		warn("object %q has no renderer", a.Renderer)
		return
	}
	slots := holder.MaterialSlots()
	if a.Slot < 0 || a.Slot >= len(slots) {
		warn("renderer %q has no material slot %d", a.Renderer, a.Slot)
		return
	}
	b := animgraph.Binding{Path: path, Type: holder.ComponentType(), Property: animgraph.MaterialSlotProp(a.Slot)}
	s.Resting.CaptureObject(b, slots[a.Slot])
	dst.SetObjectConstant(b, a.Material)
}

func (s *Synthesizer) materialProperty(dst *animgraph.Clip, owner *scene.Object, a feature.MaterialProperty, warn warnFunc) {
	target := owner
	if a.Renderer != "" {
		obj, _, ok := s.find(a.Renderer)
		if !ok {
			warn("renderer %q not found for property %q", a.Renderer, a.Property)
			return
		}
		target = obj
	}
	matched := 0
	target.Walk(func(o *scene.Object) {
		for _, c := range o.Components {
			holder, ok := c.(scene.MaterialHolder)
			if !ok {
				continue
			}
			base, ok := holder.MaterialProps()[a.Property]
			if !ok {
				continue
			}
			path, _ := scene.RelativePath(s.Root, o)
			b := animgraph.Binding{Path: path, Type: holder.ComponentType(), Property: animgraph.MaterialProp(a.Property)}
			s.Resting.Capture(b, base)
			dst.SetConstant(b, a.Value)
			matched++
		}
	})
	if matched == 0 {
		warn("no renderer has material property %q", a.Property)
	}
}

func (s *Synthesizer) scale(dst *animgraph.Clip, a feature.Scale, warn warnFunc) {
	obj, path, ok := s.find(a.Object)
	if !ok {
		warn("object %q not found", a.Object)
		return
	}
	for i, prop := range animgraph.ScaleProps {
		b := animgraph.Binding{Path: path, Type: animgraph.TypeTransform, Property: prop}
		base := s.Resting.Capture(b, obj.Scale[i])
		dst.SetConstant(b, base*a.Scale)
	}
}

func (s *Synthesizer) flipbook(dst *animgraph.Clip, a feature.FlipbookFrame, warn warnFunc) {
	obj, path, ok := s.find(a.Renderer)
	if !ok {
		warn("renderer %q not found", a.Renderer)
		return
	}
	holder, ok := scene.ComponentOf[scene.MaterialHolder](obj)
	if !ok {
		warn("object %q has no renderer", a.Renderer)
		return
	}
	b := animgraph.Binding{Path: path, Type: holder.ComponentType(), Property: animgraph.MaterialProp(FlipbookFrameProp)}
	s.Resting.Capture(b, holder.MaterialProps()[FlipbookFrameProp])
	dst.SetConstant(b, FlipbookValue(a.Frame))
}

// FlipbookValue is the keyframe value that displays frame. The half offset keeps
// shader-side rounding from landing on the previous frame.
func FlipbookValue(frame float64) float64 {
	return math.Floor(frame) + 0.5
}

// baseline reads the current scene value of a float binding.
func (s *Synthesizer) baseline(b animgraph.Binding) (float64, bool) {
	obj, ok := s.Root.Find(b.Path)
	if !ok {
		return 0, false
	}
	switch b.Type {
	case animgraph.TypeGameObject:
		if b.Property == animgraph.PropActive {
			return boolValue(obj.Active), true
		}
	case animgraph.TypeTransform:
		for i, prop := range animgraph.ScaleProps {
			if b.Property == prop {
				return obj.Scale[i], true
			}
		}
	case animgraph.TypeSkinnedMesh:
		if mesh, ok := scene.ComponentOf[*scene.SkinnedMesh](obj); ok {
			for _, shape := range mesh.Blendshapes {
				if animgraph.BlendshapeProp(shape.Name) == b.Property {
					return shape.Weight, true
				}
			}
			return propBaseline(mesh, b.Property)
		}
	case animgraph.TypeRenderer:
		if r, ok := scene.ComponentOf[*scene.Renderer](obj); ok {
			return propBaseline(r, b.Property)
		}
	case animgraph.TypePhysBone:
		if pb, ok := scene.ComponentOf[*scene.PhysBone](obj); ok && b.Property == animgraph.PropEnabled {
			return boolValue(pb.Enabled), true
		}
	}
	return 0, false
}

func propBaseline(h scene.MaterialHolder, prop string) (float64, bool) {
	for name, v := range h.MaterialProps() {
		if animgraph.MaterialProp(name) == prop {
			return v, true
		}
	}
	return 0, false
}

func (s *Synthesizer) baselineObject(b animgraph.Binding) (string, bool) {
	obj, ok := s.Root.Find(b.Path)
	if !ok {
		return "", false
	}
	holder, ok := scene.ComponentOf[scene.MaterialHolder](obj)
	if !ok {
		return "", false
	}
	for i, m := range holder.MaterialSlots() {
		if animgraph.MaterialSlotProp(i) == b.Property {
			return m, true
		}
	}
	return "", false
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
