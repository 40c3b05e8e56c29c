package animgraph

import (
	"fmt"
	"math"
	"sort"
)

// Component types used in bindings.
const (
	TypeGameObject  = "GameObject"
	TypeTransform   = "Transform"
	TypeSkinnedMesh = "SkinnedMeshRenderer"
	TypeRenderer    = "MeshRenderer"
	TypeAnimator    = "Animator"
	TypePhysBone    = "PhysBone"
)

// Well-known properties.
const (
	PropActive  = "m_IsActive"
	PropEnabled = "m_Enabled"
)

// ScaleProps are the local scale properties of a Transform, x/y/z.
var ScaleProps = [3]string{"m_LocalScale.x", "m_LocalScale.y", "m_LocalScale.z"}

// BlendshapeProp names the property driving a blendshape weight.
func BlendshapeProp(name string) string { return "blendShape." + name }

// MaterialProp names the property driving a material (shader) float.
func MaterialProp(name string) string { return "material." + name }

// MaterialSlotProp names the object-reference property of a material slot.
func MaterialSlotProp(slot int) string { return fmt.Sprintf("m_Materials.Array.data[%d]", slot) }

// Binding identifies one animated property. Path is relative to the avatar root.
type Binding struct {
	Path     string
	Type     string
	Property string
}

// AnimatorBinding is the binding that animates a controller parameter directly.
func AnimatorBinding(param string) Binding {
	return Binding{Path: "", Type: TypeAnimator, Property: param}
}

// IsAnimatorParam reports whether the binding animates a controller parameter.
func (b Binding) IsAnimatorParam() bool {
	return b.Type == TypeAnimator && b.Path == ""
}

func (b Binding) String() string {
	return fmt.Sprintf("%s:%s.%s", b.Path, b.Type, b.Property)
}

// Keyframe is a float sample on the clip's time axis.
type Keyframe struct {
	Time  float64
	Value float64
}

// ObjectKeyframe is an object-reference sample (e.g. a material asset name).
type ObjectKeyframe struct {
	Time float64
	Ref  string
}

// ClipCurve is the curve bound to one Binding. Exactly one of Keys / ObjectKeys is set.
type ClipCurve struct {
	Binding    Binding
	Keys       []Keyframe
	ObjectKeys []ObjectKeyframe
}

// IsObject reports whether the curve holds object references.
func (c *ClipCurve) IsObject() bool { return len(c.ObjectKeys) > 0 }

func (c *ClipCurve) clone() *ClipCurve {
	out := &ClipCurve{Binding: c.Binding}
	out.Keys = append([]Keyframe(nil), c.Keys...)
	out.ObjectKeys = append([]ObjectKeyframe(nil), c.ObjectKeys...)
	return out
}

// Clip is a keyframe-curve bundle. Curves keep insertion order.
type Clip struct {
	Name   string
	Loop   bool
	curves []*ClipCurve
	index  map[Binding]int
}

// NewStandaloneClip creates a clip that is not registered with any controller.
// Authored (library) clips are built this way.
func NewStandaloneClip(name string) *Clip {
	return &Clip{Name: name, index: make(map[Binding]int)}
}

func (*Clip) motion() {}

// MotionName implements Motion.
func (c *Clip) MotionName() string { return c.Name }

func (c *Clip) put(curve *ClipCurve) {
	if c.index == nil {
		c.index = make(map[Binding]int)
	}
	if i, ok := c.index[curve.Binding]; ok {
		c.curves[i] = curve
		return
	}
	c.index[curve.Binding] = len(c.curves)
	c.curves = append(c.curves, curve)
}

// SetCurve replaces the float curve for a binding. Keys are sorted by time.
func (c *Clip) SetCurve(b Binding, keys ...Keyframe) {
	ks := append([]Keyframe(nil), keys...)
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].Time < ks[j].Time })
	c.put(&ClipCurve{Binding: b, Keys: ks})
}

// SetConstant writes a single keyframe at time zero.
func (c *Clip) SetConstant(b Binding, v float64) {
	c.put(&ClipCurve{Binding: b, Keys: []Keyframe{{Time: 0, Value: v}}})
}

// SetObjectConstant writes a single object-reference keyframe at time zero.
func (c *Clip) SetObjectConstant(b Binding, ref string) {
	c.put(&ClipCurve{Binding: b, ObjectKeys: []ObjectKeyframe{{Time: 0, Ref: ref}}})
}

// SetObjectCurve replaces the object-reference curve for a binding.
func (c *Clip) SetObjectCurve(b Binding, keys ...ObjectKeyframe) {
	ks := append([]ObjectKeyframe(nil), keys...)
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].Time < ks[j].Time })
	c.put(&ClipCurve{Binding: b, ObjectKeys: ks})
}

// Curve returns the curve for a binding.
func (c *Clip) Curve(b Binding) (*ClipCurve, bool) {
	i, ok := c.index[b]
	if !ok {
		return nil, false
	}
	return c.curves[i], true
}

// Has reports whether the clip animates the binding.
func (c *Clip) Has(b Binding) bool {
	_, ok := c.index[b]
	return ok
}

// Curves returns every curve in insertion order.
func (c *Clip) Curves() []*ClipCurve {
	return append([]*ClipCurve(nil), c.curves...)
}

// Bindings returns every bound property in insertion order.
func (c *Clip) Bindings() []Binding {
	out := make([]Binding, 0, len(c.curves))
	for _, cv := range c.curves {
		out = append(out, cv.Binding)
	}
	return out
}

// Remove deletes the curve for a binding if present.
func (c *Clip) Remove(b Binding) {
	i, ok := c.index[b]
	if !ok {
		return
	}
	c.curves = append(c.curves[:i], c.curves[i+1:]...)
	c.reindex()
}

func (c *Clip) reindex() {
	c.index = make(map[Binding]int, len(c.curves))
	for i, cv := range c.curves {
		c.index[cv.Binding] = i
	}
}

// Len is the number of curves.
func (c *Clip) Len() int { return len(c.curves) }

// IsEmpty reports whether the clip animates nothing.
func (c *Clip) IsEmpty() bool { return len(c.curves) == 0 }

// Length is the time of the last keyframe.
func (c *Clip) Length() float64 {
	var end float64
	for _, cv := range c.curves {
		for _, k := range cv.Keys {
			end = math.Max(end, k.Time)
		}
		for _, k := range cv.ObjectKeys {
			end = math.Max(end, k.Time)
		}
	}
	return end
}

// Sample evaluates the float curve of a binding at time t
// (piecewise linear, clamped to the first and last keys).
func (c *Clip) Sample(b Binding, t float64) (float64, bool) {
	cv, ok := c.Curve(b)
	if !ok || len(cv.Keys) == 0 {
		return 0, false
	}
	keys := cv.Keys
	if t <= keys[0].Time {
		return keys[0].Value, true
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value, true
	}
	for i := 1; i < len(keys); i++ {
		if t <= keys[i].Time {
			a, z := keys[i-1], keys[i]
			span := z.Time - a.Time
			if span == 0 {
				return z.Value, true
			}
			f := (t - a.Time) / span
			return a.Value + (z.Value-a.Value)*f, true
		}
	}
	return last.Value, true
}

// SampleObject returns the object reference active at time t.
func (c *Clip) SampleObject(b Binding, t float64) (string, bool) {
	cv, ok := c.Curve(b)
	if !ok || len(cv.ObjectKeys) == 0 {
		return "", false
	}
	ref := cv.ObjectKeys[0].Ref
	for _, k := range cv.ObjectKeys {
		if k.Time <= t {
			ref = k.Ref
		}
	}
	return ref, true
}

// Clone deep-copies the clip under a new name.
func (c *Clip) Clone(name string) *Clip {
	out := NewStandaloneClip(name)
	out.Loop = c.Loop
	for _, cv := range c.curves {
		out.put(cv.clone())
	}
	return out
}

// Merge copies every curve of other into c, replacing curves on the same binding.
func (c *Clip) Merge(other *Clip) {
	for _, cv := range other.curves {
		c.put(cv.clone())
	}
}

// RewriteBindings maps every binding through fn. Returning false drops the curve.
// When two curves map to the same binding the later one wins.
func (c *Clip) RewriteBindings(fn func(Binding) (Binding, bool)) {
	old := c.curves
	c.curves = nil
	c.index = make(map[Binding]int, len(old))
	for _, cv := range old {
		nb, keep := fn(cv.Binding)
		if !keep {
			continue
		}
		cv.Binding = nb
		c.put(cv)
	}
}
