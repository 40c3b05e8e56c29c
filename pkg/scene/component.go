package scene

import (
	"maps"

	"github.com/aretw0/graft/pkg/animgraph"
)

// Component is data attached to an object.
type Component interface {
	ComponentType() string
	clone() Component
}

// Blendshape is one named shape of a skinned mesh with its authored weight.
type Blendshape struct {
	Name   string
	Weight float64
}

// SkinnedMesh is a deformable renderer.
type SkinnedMesh struct {
	Blendshapes []Blendshape
	Materials   []string
	// Props holds authored shader floats.
	Props map[string]float64
}

// Blendshape looks a shape up by name.
func (m *SkinnedMesh) Blendshape(name string) (Blendshape, bool) {
	for _, b := range m.Blendshapes {
		if b.Name == name {
			return b, true
		}
	}
	return Blendshape{}, false
}

// Renderer is a static mesh renderer.
type Renderer struct {
	Materials []string
	Props     map[string]float64
}

// PhysBone is a dynamic bone chain that can be reset by toggling it off and on.
type PhysBone struct {
	Enabled bool
}

// ContactReceiver reports proximity of matching senders through a float parameter.
type ContactReceiver struct {
	Name   string
	Param  string
	Radius float64
	Tags   []string
	// Proximity receivers report 0 at the edge of Radius and 1 at the center.
	Proximity bool
	LocalOnly bool
}

func (*SkinnedMesh) ComponentType() string     { return animgraph.TypeSkinnedMesh }
func (*Renderer) ComponentType() string        { return animgraph.TypeRenderer }
func (*PhysBone) ComponentType() string        { return animgraph.TypePhysBone }
func (*ContactReceiver) ComponentType() string { return "ContactReceiver" }

func (m *SkinnedMesh) clone() Component {
	return &SkinnedMesh{
		Blendshapes: append([]Blendshape(nil), m.Blendshapes...),
		Materials:   append([]string(nil), m.Materials...),
		Props:       maps.Clone(m.Props),
	}
}

func (r *Renderer) clone() Component {
	return &Renderer{Materials: append([]string(nil), r.Materials...), Props: maps.Clone(r.Props)}
}

func (p *PhysBone) clone() Component { c := *p; return &c }

func (c *ContactReceiver) clone() Component {
	out := *c
	out.Tags = append([]string(nil), c.Tags...)
	return &out
}

// MaterialHolder is implemented by every component that renders materials.
type MaterialHolder interface {
	Component
	MaterialSlots() []string
	MaterialProps() map[string]float64
}

func (m *SkinnedMesh) MaterialSlots() []string            { return m.Materials }
func (m *SkinnedMesh) MaterialProps() map[string]float64 { return m.Props }
func (r *Renderer) MaterialSlots() []string               { return r.Materials }
func (r *Renderer) MaterialProps() map[string]float64    { return r.Props }
