package merge_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/clips"
	"github.com/aretw0/graft/internal/merge"
	"github.com/aretw0/graft/pkg/animgraph"
)

var leaf = animgraph.Binding{Path: "Child/Leaf", Type: animgraph.TypeGameObject, Property: animgraph.PropActive}

func authored(t *testing.T) *animgraph.Controller {
	t.Helper()
	src := animgraph.NewController("Authored")
	on, err := src.NewBool("On", false)
	require.NoError(t, err)
	_, err = src.NewFloat("Blend", 0)
	require.NoError(t, err)

	shared := animgraph.NewStandaloneClip("Shared")
	shared.SetConstant(leaf, 1)
	shared.SetConstant(animgraph.AnimatorBinding("Blend"), 0.5)

	l := src.NewLayer("Main")
	a := l.NewState("A").WithMotion(shared)
	b := l.NewState("B")
	tree := animgraph.NewStandaloneBlendTree("Tree", animgraph.Simple1D)
	tree.Param = "Blend"
	tree.Add1D(0, shared)
	b.Motion = tree
	b.Drives(false).Set("On", 0)

	a.TransitionsTo(b).When(on.IsTrue()).WithDuration(0.25)
	b.TransitionsToExit().When(on.IsFalse())
	return src
}

func prefixed(name string) string { return "Pfx/" + name }

func TestImportController_DeepCopy(t *testing.T) {
	src := authored(t)
	dst := animgraph.NewController("FX")
	im := &merge.Importer{
		Dst:       dst,
		ParamName: prefixed,
		Path:      clips.RewritePath("Slot/R"),
		LayerName: prefixed,
		Owner:     "full_controller",
	}

	report, err := im.ImportController(src)
	require.NoError(t, err)
	require.Len(t, report.Layers, 1)
	assert.Empty(t, report.Dropped)
	assert.ElementsMatch(t, []string{"Pfx/On", "Pfx/Blend"}, report.Params)

	l := report.Layers[0]
	assert.Equal(t, "Pfx/Main", l.Name)
	assert.Equal(t, "full_controller", l.Owner)

	a, ok := l.StateMachine.Find("A")
	require.True(t, ok)
	b, ok := l.StateMachine.Find("B")
	require.True(t, ok)
	assert.Same(t, a, l.StateMachine.Default)

	require.Len(t, a.Transitions, 1)
	tr := a.Transitions[0]
	assert.Same(t, b, tr.Dest.State)
	assert.Same(t, a, tr.Source)
	assert.Equal(t, 0.25, tr.Duration)
	assert.Equal(t, "Pfx/On", tr.Conditions[0].Param)
	assert.True(t, b.Transitions[0].Dest.Exit)

	clip, ok := a.Motion.(*animgraph.Clip)
	require.True(t, ok)
	moved := animgraph.Binding{Path: "Slot/R/Child/Leaf", Type: leaf.Type, Property: leaf.Property}
	assert.True(t, clip.Has(moved))
	assert.True(t, clip.Has(animgraph.AnimatorBinding("Pfx/Blend")))

	tree := b.Motion.(*animgraph.BlendTree)
	assert.Equal(t, "Pfx/Blend", tree.Param)
	assert.Same(t, clip, tree.Children[0].Motion, "shared clips stay shared")
	assert.Equal(t, "Pfx/On", b.Drivers()[0].Entries[0].Name)

	// The source is untouched.
	srcA, _ := src.Layers[0].StateMachine.Find("A")
	assert.True(t, srcA.Motion.(*animgraph.Clip).Has(leaf))
}

func TestImportController_ParamKindMismatch(t *testing.T) {
	dst := animgraph.NewController("FX")
	_, err := dst.NewInt("On", 0)
	require.NoError(t, err)

	_, err = (&merge.Importer{Dst: dst}).ImportController(authored(t))
	var kindErr *animgraph.ParamKindError
	require.True(t, errors.As(err, &kindErr))
	assert.Equal(t, "On", kindErr.Name)
}

func TestImportController_ExistingParamKept(t *testing.T) {
	dst := animgraph.NewController("FX")
	_, err := dst.NewBool("On", true)
	require.NoError(t, err)

	report, err := (&merge.Importer{Dst: dst}).ImportController(authored(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Blend"}, report.Params)
	p, _ := dst.Parameter("On")
	assert.Equal(t, 1.0, p.Default)
}

func TestImportController_DropsOutOfScope(t *testing.T) {
	src := authored(t)
	other := animgraph.NewStateMachine("Other").NewState("Elsewhere")
	a, _ := src.Layers[0].StateMachine.Find("A")
	a.TransitionsTo(other)

	report, err := (&merge.Importer{Dst: animgraph.NewController("FX")}).ImportController(src)
	require.NoError(t, err)
	require.Len(t, report.Dropped, 1)
	assert.Equal(t, merge.DroppedTransition{Layer: "Main", From: "A", To: "Elsewhere"}, report.Dropped[0])

	copied, _ := report.Layers[0].StateMachine.Find("A")
	assert.Len(t, copied.Transitions, 1)
}

func TestImportMenu(t *testing.T) {
	src := animgraph.NewMenu()
	src.NewToggle("Clothes/Hat", "Hat", 1)
	src.NewRadial("Clothes/Size", "Size")

	dst := animgraph.NewMenu()
	dst.NewToggle("Props/Clothes/Shoes", "Shoes", 1)

	im := &merge.Importer{Dst: animgraph.NewController("FX"), ParamName: prefixed}
	im.ImportMenu(dst, src, "Props")

	clothes := *dst.Submenu("Props/Clothes")
	require.Len(t, clothes, 3)
	assert.Equal(t, "Shoes", clothes[0].Name)
	assert.Equal(t, "Pfx/Hat", clothes[1].Param)
	assert.Equal(t, "Pfx/Size", clothes[2].SubParam)
}

func TestImportParams(t *testing.T) {
	src := animgraph.NewParamList()
	require.NoError(t, src.Add(animgraph.ParamEntry{Name: "Hat", Kind: animgraph.Bool, Saved: true}))

	ctrl := animgraph.NewController("FX")
	dst := animgraph.NewParamList()
	im := &merge.Importer{Dst: ctrl, ParamName: prefixed}
	require.NoError(t, im.ImportParams(dst, src))

	e, ok := dst.Get("Pfx/Hat")
	require.True(t, ok)
	assert.True(t, e.Saved)
	p, ok := ctrl.Parameter("Pfx/Hat")
	require.True(t, ok)
	assert.True(t, p.Networked)
	assert.True(t, p.Saved)
}
