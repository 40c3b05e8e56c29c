package scene

import (
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
)

// Descriptor is the avatar's animation setup: what the author wrote (Base) and
// what the last successful build attached (Generated).
type Descriptor struct {
	Base      animgraph.Output
	Generated *animgraph.Output
}

// Library holds the authored assets features reference by name.
type Library struct {
	Clips       map[string]*animgraph.Clip
	Controllers map[string]*animgraph.Controller
	Menus       map[string]*animgraph.Menu
	ParamSets   map[string]*animgraph.ParamList
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		Clips:       make(map[string]*animgraph.Clip),
		Controllers: make(map[string]*animgraph.Controller),
		Menus:       make(map[string]*animgraph.Menu),
		ParamSets:   make(map[string]*animgraph.ParamList),
	}
}

// Avatar is the root object plus its descriptor and authored assets.
type Avatar struct {
	Name       string
	Root       *Object
	Descriptor *Descriptor
	Library    *Library
}

// NewAvatar creates an avatar with an empty root, descriptor and library.
func NewAvatar(name string) *Avatar {
	return &Avatar{
		Name:       name,
		Root:       NewObject(name),
		Descriptor: &Descriptor{},
		Library:    NewLibrary(),
	}
}

// Features lists every feature in the hierarchy, depth first, numbered in
// declaration order.
func (a *Avatar) Features() []feature.Instance {
	var out []feature.Instance
	a.Root.Walk(func(o *Object) {
		path, _ := RelativePath(a.Root, o)
		for _, m := range o.Features {
			out = append(out, feature.Instance{Model: m, Owner: path, Index: len(out)})
		}
	})
	return out
}

// Clone copies the hierarchy for an upload build. Descriptor outputs and the
// library are shared; the build replaces Generated rather than mutating it.
func (a *Avatar) Clone() *Avatar {
	desc := *a.Descriptor
	return &Avatar{
		Name:       a.Name,
		Root:       a.Root.Clone(),
		Descriptor: &desc,
		Library:    a.Library,
	}
}
