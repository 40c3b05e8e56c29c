package animgraph

import (
	"fmt"
	"sort"
)

// Controller is a complete animation graph: parameters, layers and the
// generated assets (clips, blend trees) its states play.
type Controller struct {
	Name   string
	Layers []*Layer

	params     []*Parameter
	paramIndex map[string]*Parameter
	clips      []*Clip
	trees      []*BlendTree
	assetNames map[string]struct{}
}

// NewController creates an empty controller.
func NewController(name string) *Controller {
	return &Controller{
		Name:       name,
		paramIndex: make(map[string]*Parameter),
		assetNames: make(map[string]struct{}),
	}
}

func (c *Controller) init() {
	if c.paramIndex == nil {
		c.paramIndex = make(map[string]*Parameter)
	}
	if c.assetNames == nil {
		c.assetNames = make(map[string]struct{})
	}
}

// NewParameter returns the parameter named name, creating it when absent.
// Requesting an existing name with a different kind fails with *ParamKindError.
func (c *Controller) NewParameter(name string, kind ParamKind, def float64) (*Parameter, error) {
	c.init()
	if p, ok := c.paramIndex[name]; ok {
		if p.Kind != kind {
			return nil, &ParamKindError{Name: name, Existing: p.Kind, Requested: kind}
		}
		return p, nil
	}
	p := &Parameter{Name: name, Kind: kind, Default: def}
	c.params = append(c.params, p)
	c.paramIndex[name] = p
	return p, nil
}

// NewBool is NewParameter for a Bool.
func (c *Controller) NewBool(name string, def bool) (*Parameter, error) {
	v := 0.0
	if def {
		v = 1
	}
	return c.NewParameter(name, Bool, v)
}

// NewInt is NewParameter for an Int.
func (c *Controller) NewInt(name string, def int) (*Parameter, error) {
	return c.NewParameter(name, Int, float64(def))
}

// NewFloat is NewParameter for a Float.
func (c *Controller) NewFloat(name string, def float64) (*Parameter, error) {
	return c.NewParameter(name, Float, def)
}

// NewTrigger is NewParameter for a Trigger.
func (c *Controller) NewTrigger(name string) (*Parameter, error) {
	return c.NewParameter(name, Trigger, 0)
}

// Parameter looks a parameter up by name.
func (c *Controller) Parameter(name string) (*Parameter, bool) {
	p, ok := c.paramIndex[name]
	return p, ok
}

// Parameters returns every parameter in creation order.
func (c *Controller) Parameters() []*Parameter {
	return append([]*Parameter(nil), c.params...)
}

// RemoveParameter deletes a parameter. Unknown names are ignored.
func (c *Controller) RemoveParameter(name string) {
	if _, ok := c.paramIndex[name]; !ok {
		return
	}
	delete(c.paramIndex, name)
	for i, p := range c.params {
		if p.Name == name {
			c.params = append(c.params[:i], c.params[i+1:]...)
			return
		}
	}
}

// NewLayer appends a layer with a fresh, empty state machine. It never reuses an
// existing layer, even one with the same name.
func (c *Controller) NewLayer(name string) *Layer {
	l := &Layer{Name: name, Weight: 1, StateMachine: NewStateMachine(name)}
	l.StateMachine.AnyStatePosition = Vec2{X: 0, Y: -80}
	c.Layers = append(c.Layers, l)
	return l
}

// InsertLayer places an existing layer at index i (clamped).
func (c *Controller) InsertLayer(i int, l *Layer) {
	if i < 0 {
		i = 0
	}
	if i > len(c.Layers) {
		i = len(c.Layers)
	}
	c.Layers = append(c.Layers, nil)
	copy(c.Layers[i+1:], c.Layers[i:])
	c.Layers[i] = l
}

// RemoveLayer deletes a layer by identity.
func (c *Controller) RemoveLayer(l *Layer) {
	for i, x := range c.Layers {
		if x == l {
			c.Layers = append(c.Layers[:i], c.Layers[i+1:]...)
			return
		}
	}
}

// Layer returns the first layer with the given name.
func (c *Controller) Layer(name string) (*Layer, bool) {
	for _, l := range c.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

func (c *Controller) uniqueAssetName(name string) string {
	c.init()
	candidate := name
	for i := 2; ; i++ {
		if _, taken := c.assetNames[candidate]; !taken {
			break
		}
		candidate = fmt.Sprintf("%s %d", name, i)
	}
	c.assetNames[candidate] = struct{}{}
	return candidate
}

// NewClip creates a clip in the controller's generated-asset area. A name that
// is already taken receives a numeric suffix.
func (c *Controller) NewClip(name string) *Clip {
	clip := NewStandaloneClip(c.uniqueAssetName(name))
	c.clips = append(c.clips, clip)
	return clip
}

// AdoptClip registers an externally created clip, renaming it if its name is taken.
func (c *Controller) AdoptClip(clip *Clip) *Clip {
	clip.Name = c.uniqueAssetName(clip.Name)
	c.clips = append(c.clips, clip)
	return clip
}

// NewBlendTree creates a blend tree in the generated-asset area.
func (c *Controller) NewBlendTree(name string, typ BlendType) *BlendTree {
	tree := NewStandaloneBlendTree(c.uniqueAssetName(name), typ)
	c.trees = append(c.trees, tree)
	return tree
}

// AdoptBlendTree registers an externally created blend tree.
func (c *Controller) AdoptBlendTree(tree *BlendTree) *BlendTree {
	tree.Name = c.uniqueAssetName(tree.Name)
	c.trees = append(c.trees, tree)
	return tree
}

// Clips returns the generated clips in creation order.
func (c *Controller) Clips() []*Clip { return append([]*Clip(nil), c.clips...) }

// Trees returns the generated blend trees in creation order.
func (c *Controller) Trees() []*BlendTree { return append([]*BlendTree(nil), c.trees...) }

// RetainAssets drops every generated clip and tree that keep rejects and
// returns how many were removed.
func (c *Controller) RetainAssets(keep func(Motion) bool) int {
	removed := 0
	clips := c.clips[:0]
	for _, clip := range c.clips {
		if keep(clip) {
			clips = append(clips, clip)
			continue
		}
		delete(c.assetNames, clip.Name)
		removed++
	}
	c.clips = clips
	trees := c.trees[:0]
	for _, tree := range c.trees {
		if keep(tree) {
			trees = append(trees, tree)
			continue
		}
		delete(c.assetNames, tree.Name)
		removed++
	}
	c.trees = trees
	return removed
}

// AllStates returns every state of every layer.
func (c *Controller) AllStates() []*State {
	var out []*State
	for _, l := range c.Layers {
		out = append(out, l.States()...)
	}
	return out
}

// AllTransitions returns every transition of every layer.
func (c *Controller) AllTransitions() []*Transition {
	var out []*Transition
	for _, l := range c.Layers {
		out = append(out, l.Transitions()...)
	}
	return out
}

// WalkMotions visits every motion played by a state, including blend-tree children.
// A motion shared by several states is visited once.
func (c *Controller) WalkMotions(fn func(Motion)) {
	seen := make(map[Motion]struct{})
	for _, s := range c.AllStates() {
		WalkMotion(s.Motion, func(m Motion) {
			if _, ok := seen[m]; ok {
				return
			}
			seen[m] = struct{}{}
			fn(m)
		})
	}
}

// ReferencedClips returns the clips played anywhere in the controller.
func (c *Controller) ReferencedClips() []*Clip {
	var out []*Clip
	c.WalkMotions(func(m Motion) {
		if clip, ok := m.(*Clip); ok {
			out = append(out, clip)
		}
	})
	return out
}

// ReferencedParams returns, sorted, every parameter name the graph reads or writes:
// conditions, blend parameters, speed/time parameters, drivers and animated bindings.
func (c *Controller) ReferencedParams() []string {
	set := make(map[string]struct{})
	add := func(name string) {
		if name != "" {
			set[name] = struct{}{}
		}
	}
	for _, tr := range c.AllTransitions() {
		for _, cond := range tr.Conditions {
			add(cond.Param)
		}
	}
	for _, s := range c.AllStates() {
		add(s.SpeedParam)
		add(s.TimeParam)
		for _, d := range s.Drivers() {
			for _, e := range d.Entries {
				add(e.Name)
				add(e.Source)
			}
		}
	}
	c.WalkMotions(func(m Motion) {
		switch v := m.(type) {
		case *BlendTree:
			add(v.Param)
			add(v.ParamY)
			for _, ch := range v.Children {
				add(ch.DirectParam)
			}
		case *Clip:
			for _, b := range v.Bindings() {
				if b.IsAnimatorParam() {
					add(b.Property)
				}
			}
		}
	})
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
