package dsl

import (
	"strings"

	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

// AvatarBuilder assembles an avatar.
type AvatarBuilder struct {
	av *scene.Avatar
}

// NewAvatar starts an empty avatar.
func NewAvatar(name string) *AvatarBuilder {
	return &AvatarBuilder{av: scene.NewAvatar(name)}
}

// NewAvatarFrom continues building an existing avatar.
func NewAvatarFrom(av *scene.Avatar) *AvatarBuilder {
	return &AvatarBuilder{av: av}
}

// Root returns the builder of the root object.
func (b *AvatarBuilder) Root() *ObjectBuilder {
	return &ObjectBuilder{obj: b.av.Root, avatar: b}
}

// Object returns the object at a slash-separated path, creating missing objects.
func (b *AvatarBuilder) Object(path string) *ObjectBuilder {
	cur := b.av.Root
	for _, name := range strings.Split(path, "/") {
		if name == "" {
			continue
		}
		next, ok := cur.Child(name)
		if !ok {
			next = cur.AddChild(name)
		}
		cur = next
	}
	return &ObjectBuilder{obj: cur, avatar: b}
}

// Clip adds an authored clip to the library.
func (b *AvatarBuilder) Clip(c *animgraph.Clip) *AvatarBuilder {
	b.av.Library.Clips[c.Name] = c
	return b
}

// Controller adds an authored controller to the library.
func (b *AvatarBuilder) Controller(c *animgraph.Controller) *AvatarBuilder {
	b.av.Library.Controllers[c.Name] = c
	return b
}

// Menu adds an authored menu to the library.
func (b *AvatarBuilder) Menu(name string, m *animgraph.Menu) *AvatarBuilder {
	b.av.Library.Menus[name] = m
	return b
}

// ParamSet adds an authored parameter list to the library.
func (b *AvatarBuilder) ParamSet(name string, l *animgraph.ParamList) *AvatarBuilder {
	b.av.Library.ParamSets[name] = l
	return b
}

// Base sets the avatar's authored output.
func (b *AvatarBuilder) Base(out animgraph.Output) *AvatarBuilder {
	b.av.Descriptor.Base = out
	return b
}

// Avatar returns the built avatar.
func (b *AvatarBuilder) Avatar() *scene.Avatar { return b.av }

// ObjectBuilder configures one object.
type ObjectBuilder struct {
	obj    *scene.Object
	avatar *AvatarBuilder
}

func (o *ObjectBuilder) Inactive() *ObjectBuilder { o.obj.Active = false; return o }
func (o *ObjectBuilder) Active() *ObjectBuilder   { o.obj.Active = true; return o }

// Scale sets the local scale.
func (o *ObjectBuilder) Scale(x, y, z float64) *ObjectBuilder {
	o.obj.Scale = [3]float64{x, y, z}
	return o
}

// Mesh adds a skinned mesh exposing the given blendshapes at weight 0.
func (o *ObjectBuilder) Mesh(blendshapes ...string) *ObjectBuilder {
	mesh := &scene.SkinnedMesh{Props: map[string]float64{}}
	for _, name := range blendshapes {
		mesh.Blendshapes = append(mesh.Blendshapes, scene.Blendshape{Name: name})
	}
	o.obj.AddComponent(mesh)
	return o
}

// Renderer adds a static renderer with materials.
func (o *ObjectBuilder) Renderer(materials ...string) *ObjectBuilder {
	o.obj.AddComponent(&scene.Renderer{Materials: materials, Props: map[string]float64{}})
	return o
}

// PhysBone adds an enabled physbone.
func (o *ObjectBuilder) PhysBone() *ObjectBuilder {
	o.obj.AddComponent(&scene.PhysBone{Enabled: true})
	return o
}

// Feature attaches a feature model.
func (o *ObjectBuilder) Feature(m feature.Model) *ObjectBuilder {
	o.obj.Features = append(o.obj.Features, m)
	return o
}

// Toggle attaches a plain menu toggle.
func (o *ObjectBuilder) Toggle(name string, actions ...feature.Action) *ObjectBuilder {
	return o.Feature(Toggle(name, actions...).Model())
}

// Object continues with a path relative to the avatar root.
func (o *ObjectBuilder) Object(path string) *ObjectBuilder { return o.avatar.Object(path) }

// Build returns the underlying scene object.
func (o *ObjectBuilder) Build() *scene.Object { return o.obj }

// Avatar returns the built avatar.
func (o *ObjectBuilder) Avatar() *scene.Avatar { return o.avatar.av }
