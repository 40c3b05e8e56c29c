package animgraph_test

import (
	"testing"

	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_NewParameter(t *testing.T) {
	c := animgraph.NewController("fx")

	t.Run("Idempotent by name and kind", func(t *testing.T) {
		a, err := c.NewBool("P", false)
		require.NoError(t, err)
		b, err := c.NewBool("P", true)
		require.NoError(t, err)
		assert.Same(t, a, b)
		assert.Len(t, c.Parameters(), 1)
		assert.Equal(t, 0.0, a.Default, "first request wins the default")
	})

	t.Run("Kind mismatch is an error", func(t *testing.T) {
		_, err := c.NewFloat("P", 0)
		require.Error(t, err)
		var kindErr *animgraph.ParamKindError
		require.ErrorAs(t, err, &kindErr)
		assert.Equal(t, animgraph.Bool, kindErr.Existing)
		assert.Equal(t, animgraph.Float, kindErr.Requested)
		assert.Contains(t, err.Error(), `"P"`)
	})

	t.Run("Different names never alias", func(t *testing.T) {
		a, _ := c.NewInt("A", 0)
		b, _ := c.NewInt("B", 0)
		assert.NotSame(t, a, b)
	})

	t.Run("Remove", func(t *testing.T) {
		c.RemoveParameter("A")
		_, ok := c.Parameter("A")
		assert.False(t, ok)
		c.RemoveParameter("missing")
	})
}

func TestController_Assets(t *testing.T) {
	c := animgraph.NewController("fx")

	a := c.NewClip("On")
	b := c.NewClip("On")
	tree := c.NewBlendTree("On", animgraph.Direct)

	assert.Equal(t, "On", a.Name)
	assert.Equal(t, "On 2", b.Name)
	assert.Equal(t, "On 3", tree.Name)
	assert.NotSame(t, a, b)
	assert.Len(t, c.Clips(), 2)
	assert.Len(t, c.Trees(), 1)

	ext := animgraph.NewStandaloneClip("On")
	c.AdoptClip(ext)
	assert.Equal(t, "On 4", ext.Name)

	removed := c.RetainAssets(func(m animgraph.Motion) bool { return m != b })
	assert.Equal(t, 1, removed)
	assert.Len(t, c.Clips(), 2)
}

func TestController_NewLayer(t *testing.T) {
	c := animgraph.NewController("fx")
	l1 := c.NewLayer("Hat")
	l2 := c.NewLayer("Hat")
	require.Len(t, c.Layers, 2)
	assert.NotSame(t, l1, l2)
	assert.NotSame(t, l1.StateMachine, l2.StateMachine)
	assert.True(t, l1.IsEmpty())

	off := l1.NewState("Off")
	on := l1.NewState("On")
	assert.Same(t, off, l1.StateMachine.Default, "first state is the default")
	l1.StateMachine.SetDefault(on)
	assert.Same(t, on, l1.StateMachine.Default)

	c.RemoveLayer(l2)
	assert.Len(t, c.Layers, 1)
}

func TestController_ReferencedParams(t *testing.T) {
	c := animgraph.NewController("fx")
	p, _ := c.NewBool("Hat", false)
	w, _ := c.NewFloat("Weight", 0)
	_, _ = c.NewFloat("Unused", 0)

	l := c.NewLayer("Hat")
	off := l.NewState("Off")
	on := l.NewState("On")
	off.TransitionsTo(on).When(p.IsTrue())

	tree := c.NewBlendTree("Blend", animgraph.Simple1D)
	tree.Param = w.Name
	clip := c.NewClip("Drive")
	clip.SetConstant(animgraph.AnimatorBinding("Driven"), 1)
	tree.Add1D(0, clip)
	on.Motion = tree
	on.Drives(true).Set("Local", 1)

	assert.Equal(t, []string{"Driven", "Hat", "Local", "Weight"}, c.ReferencedParams())
	assert.Equal(t, []*animgraph.Clip{clip}, c.ReferencedClips())
}
