package dto

import (
	"fmt"

	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

// ComponentDTO is one component; Type selects which fields apply.
type ComponentDTO struct {
	Type        string             `yaml:"type"`
	Blendshapes []BlendshapeDTO    `yaml:"blendshapes,omitempty"`
	Materials   []string           `yaml:"materials,omitempty"`
	Props       map[string]float64 `yaml:"props,omitempty"`
	Enabled     *bool              `yaml:"enabled,omitempty"`
}

// BlendshapeDTO is a named blendshape weight.
type BlendshapeDTO struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight,omitempty"`
}

// ObjectDTO is a scene object and its subtree.
type ObjectDTO struct {
	Name       string           `yaml:"name"`
	Active     *bool            `yaml:"active,omitempty"`
	Scale      *[3]float64      `yaml:"scale,omitempty,flow"`
	Components []ComponentDTO   `yaml:"components,omitempty"`
	Features   []feature.Record `yaml:"features,omitempty"`
	Children   []ObjectDTO      `yaml:"children,omitempty"`
}

// DescriptorDTO names the avatar's authored base controller, menu and parameters.
type DescriptorDTO struct {
	Controller string `yaml:"controller,omitempty"`
	Menu       string `yaml:"menu,omitempty"`
	Params     string `yaml:"params,omitempty"`
}

// LibraryDTO lists authored assets.
type LibraryDTO struct {
	Clips       []ClipDTO       `yaml:"clips,omitempty"`
	Controllers []ControllerDTO `yaml:"controllers,omitempty"`
	Menus       []MenuDTO       `yaml:"menus,omitempty"`
	ParamSets   []ParamListDTO  `yaml:"param_sets,omitempty"`
}

// AvatarDTO is a whole avatar document.
type AvatarDTO struct {
	Name       string        `yaml:"name"`
	Root       ObjectDTO     `yaml:"root"`
	Descriptor DescriptorDTO `yaml:"descriptor,omitempty"`
	Library    LibraryDTO    `yaml:"library,omitempty"`
}

// Build converts the document into an avatar, decoding every feature record.
func (d AvatarDTO) Build(dec *feature.Decoder) (*scene.Avatar, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("avatar missing name")
	}
	av := scene.NewAvatar(d.Name)

	lib := av.Library
	for _, cd := range d.Library.Clips {
		lib.Clips[cd.Name] = cd.Build()
	}
	lookup := func(name string) (*animgraph.Clip, bool) {
		c, ok := lib.Clips[name]
		return c, ok
	}
	for _, cd := range d.Library.Controllers {
		c, err := cd.Build(lookup)
		if err != nil {
			return nil, err
		}
		lib.Controllers[cd.Name] = c
	}
	for _, md := range d.Library.Menus {
		m, err := md.Build()
		if err != nil {
			return nil, err
		}
		lib.Menus[md.Name] = m
	}
	for _, pd := range d.Library.ParamSets {
		p, err := pd.Build()
		if err != nil {
			return nil, err
		}
		lib.ParamSets[pd.Name] = p
	}

	if err := resolveDescriptor(av, d.Descriptor); err != nil {
		return nil, err
	}

	root, err := d.Root.build(dec)
	if err != nil {
		return nil, err
	}
	if root.Name == "" {
		root.Name = d.Name
	}
	av.Root = root
	return av, nil
}

func resolveDescriptor(av *scene.Avatar, d DescriptorDTO) error {
	lib := av.Library
	base := &av.Descriptor.Base
	if d.Controller != "" {
		c, ok := lib.Controllers[d.Controller]
		if !ok {
			return fmt.Errorf("descriptor: unknown controller %q", d.Controller)
		}
		base.Controller = c
	}
	if d.Menu != "" {
		m, ok := lib.Menus[d.Menu]
		if !ok {
			return fmt.Errorf("descriptor: unknown menu %q", d.Menu)
		}
		base.Menu = m
	}
	if d.Params != "" {
		p, ok := lib.ParamSets[d.Params]
		if !ok {
			return fmt.Errorf("descriptor: unknown parameter set %q", d.Params)
		}
		base.Params = p
	}
	return nil
}

func (d ObjectDTO) build(dec *feature.Decoder) (*scene.Object, error) {
	o := scene.NewObject(d.Name)
	if d.Active != nil {
		o.Active = *d.Active
	}
	if d.Scale != nil {
		o.Scale = *d.Scale
	}
	for _, cd := range d.Components {
		c, err := cd.build()
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", d.Name, err)
		}
		o.AddComponent(c)
	}
	for i, rec := range d.Features {
		m, err := dec.Decode(rec)
		if err != nil {
			return nil, fmt.Errorf("object %s: feature %d: %w", d.Name, i, err)
		}
		o.Features = append(o.Features, m)
	}
	for _, cd := range d.Children {
		child, err := cd.build(dec)
		if err != nil {
			return nil, err
		}
		o.Attach(child)
	}
	return o, nil
}

func (d ComponentDTO) build() (scene.Component, error) {
	switch d.Type {
	case "skinned_mesh":
		m := &scene.SkinnedMesh{Materials: d.Materials, Props: d.Props}
		for _, b := range d.Blendshapes {
			m.Blendshapes = append(m.Blendshapes, scene.Blendshape{Name: b.Name, Weight: b.Weight})
		}
		return m, nil
	case "renderer":
		return &scene.Renderer{Materials: d.Materials, Props: d.Props}, nil
	case "physbone":
		enabled := true
		if d.Enabled != nil {
			enabled = *d.Enabled
		}
		return &scene.PhysBone{Enabled: enabled}, nil
	default:
		return nil, fmt.Errorf("unknown component type %q", d.Type)
	}
}
