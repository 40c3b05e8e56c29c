// Package scene models the avatar hierarchy features are attached to.
package scene

import (
	"strings"

	"github.com/aretw0/graft/pkg/feature"
)

// Object is a node of the scene hierarchy.
type Object struct {
	Name       string
	Parent     *Object
	Children   []*Object
	Active     bool
	Scale      [3]float64
	Components []Component
	Features   []feature.Model
}

// NewObject creates an active, unit-scale object with no parent.
func NewObject(name string) *Object {
	return &Object{Name: name, Active: true, Scale: [3]float64{1, 1, 1}}
}

// AddChild creates and attaches a child object.
func (o *Object) AddChild(name string) *Object {
	child := NewObject(name)
	o.Attach(child)
	return child
}

// Attach reparents child under o.
func (o *Object) Attach(child *Object) {
	child.Detach()
	child.Parent = o
	o.Children = append(o.Children, child)
}

// Detach removes o from its parent.
func (o *Object) Detach() {
	if o.Parent == nil {
		return
	}
	siblings := o.Parent.Children
	for i, c := range siblings {
		if c == o {
			o.Parent.Children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	o.Parent = nil
}

// Child returns the direct child with the given name.
func (o *Object) Child(name string) (*Object, bool) {
	for _, c := range o.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Find resolves a slash-separated path below o. The empty path is o itself.
func (o *Object) Find(path string) (*Object, bool) {
	cur := o
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next, ok := cur.Child(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Walk visits o and every descendant depth first.
func (o *Object) Walk(fn func(*Object)) {
	fn(o)
	for _, c := range o.Children {
		c.Walk(fn)
	}
}

// IsDescendantOf reports whether o is root or somewhere below it.
func (o *Object) IsDescendantOf(root *Object) bool {
	for cur := o; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// ComponentOf returns the first component of type T on the object.
func ComponentOf[T any](o *Object) (T, bool) {
	for _, c := range o.Components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// AddComponent attaches a component.
func (o *Object) AddComponent(c Component) { o.Components = append(o.Components, c) }

// Clone deep-copies the subtree rooted at o. The copy has no parent.
func (o *Object) Clone() *Object {
	out := &Object{
		Name:     o.Name,
		Active:   o.Active,
		Scale:    o.Scale,
		Features: append([]feature.Model(nil), o.Features...),
	}
	for _, c := range o.Components {
		out.Components = append(out.Components, c.clone())
	}
	for _, c := range o.Children {
		cc := c.Clone()
		cc.Parent = out
		out.Children = append(out.Children, cc)
	}
	return out
}

// RelativePath returns the path of o from root: "" for root itself, "A/B" for
// a grandchild. ok is false when o is not below root.
func RelativePath(root, o *Object) (string, bool) {
	var parts []string
	for cur := o; cur != nil; cur = cur.Parent {
		if cur == root {
			for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
				parts[i], parts[j] = parts[j], parts[i]
			}
			return strings.Join(parts, "/"), true
		}
		parts = append(parts, cur.Name)
	}
	return "", false
}

// JoinPath joins path segments, skipping empty ones.
func JoinPath(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

// HasPathPrefix reports whether path equals prefix or lies below it.
func HasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
