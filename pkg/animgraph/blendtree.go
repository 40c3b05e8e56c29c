package animgraph

import "fmt"

// Motion is anything a state can play: a *Clip or a *BlendTree.
type Motion interface {
	MotionName() string
	motion()
}

// BlendType selects how a blend tree weighs its children.
type BlendType int

const (
	// Simple1D interpolates between the two children whose thresholds bracket Param.
	Simple1D BlendType = iota
	// Cartesian2D interpolates children placed at (X, Y) positions keyed by (Param, ParamY).
	Cartesian2D
	// Direct weights every child by its own DirectParam, without normalization.
	Direct
)

func (t BlendType) String() string {
	switch t {
	case Simple1D:
		return "1d"
	case Cartesian2D:
		return "2d_cartesian"
	case Direct:
		return "direct"
	default:
		return fmt.Sprintf("blend(%d)", int(t))
	}
}

// ParseBlendType is the inverse of BlendType.String.
func ParseBlendType(s string) (BlendType, error) {
	switch s {
	case "1d", "simple_1d":
		return Simple1D, nil
	case "2d_cartesian", "2d", "cartesian":
		return Cartesian2D, nil
	case "direct":
		return Direct, nil
	default:
		return Simple1D, fmt.Errorf("unknown blend type: %q", s)
	}
}

// Vec2 is a 2D position (blend space coordinates or editor layout).
type Vec2 struct {
	X float64
	Y float64
}

// Child is one motion of a blend tree.
type Child struct {
	Motion      Motion
	Threshold   float64
	Position    Vec2
	DirectParam string
	TimeScale   float64
}

// BlendTree blends child motions according to one or two parameters.
type BlendTree struct {
	Name     string
	Type     BlendType
	Param    string
	ParamY   string
	Children []*Child
}

// NewStandaloneBlendTree creates a tree not registered with any controller.
func NewStandaloneBlendTree(name string, typ BlendType) *BlendTree {
	return &BlendTree{Name: name, Type: typ}
}

func (*BlendTree) motion() {}

// MotionName implements Motion.
func (b *BlendTree) MotionName() string { return b.Name }

// Add1D appends a child at a threshold of a Simple1D tree.
func (b *BlendTree) Add1D(threshold float64, m Motion) *BlendTree {
	b.Children = append(b.Children, &Child{Motion: m, Threshold: threshold, TimeScale: 1})
	return b
}

// Add2D appends a child at a position of a Cartesian2D tree.
func (b *BlendTree) Add2D(x, y float64, m Motion) *BlendTree {
	b.Children = append(b.Children, &Child{Motion: m, Position: Vec2{X: x, Y: y}, TimeScale: 1})
	return b
}

// AddDirect appends a child weighted by a parameter of a Direct tree.
func (b *BlendTree) AddDirect(param string, m Motion) *BlendTree {
	b.Children = append(b.Children, &Child{Motion: m, DirectParam: param, TimeScale: 1})
	return b
}

// WalkMotion visits m and, for blend trees, every descendant motion (depth first).
func WalkMotion(m Motion, fn func(Motion)) {
	if m == nil {
		return
	}
	fn(m)
	if tree, ok := m.(*BlendTree); ok {
		for _, ch := range tree.Children {
			WalkMotion(ch.Motion, fn)
		}
	}
}
