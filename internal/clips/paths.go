package clips

import (
	"strings"

	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/scene"
)

// Rewrite maps a binding to its new form; false drops it.
type Rewrite func(animgraph.Binding) (animgraph.Binding, bool)

// RewritePath turns paths relative to an owner object into paths relative to
// the avatar root, given the owner's path from the root. Animated controller
// parameters have no path and pass through unchanged.
func RewritePath(ownerPath string) Rewrite {
	return func(b animgraph.Binding) (animgraph.Binding, bool) {
		if b.IsAnimatorParam() {
			return b, true
		}
		b.Path = scene.JoinPath(ownerPath, b.Path)
		return b, true
	}
}

// Relocate rewrites every path at or below from so it lies at or below to.
// It is the clip-side mirror of moving an object in the hierarchy.
func Relocate(from, to string) Rewrite {
	return func(b animgraph.Binding) (animgraph.Binding, bool) {
		if b.IsAnimatorParam() || from == "" || !scene.HasPathPrefix(b.Path, from) {
			return b, true
		}
		b.Path = scene.JoinPath(to, strings.TrimPrefix(b.Path, from))
		return b, true
	}
}

// Chain applies rewrites in order, stopping at the first that drops the binding.
func Chain(rewrites ...Rewrite) Rewrite {
	return func(b animgraph.Binding) (animgraph.Binding, bool) {
		for _, rw := range rewrites {
			var keep bool
			if b, keep = rw(b); !keep {
				return b, false
			}
		}
		return b, true
	}
}

// RelocateController rewrites every clip played by c. Shared clips are rewritten once.
func RelocateController(c *animgraph.Controller, rw Rewrite) {
	c.WalkMotions(func(m animgraph.Motion) {
		if clip, ok := m.(*animgraph.Clip); ok {
			clip.RewriteBindings(rw)
		}
	})
}
