package scene_test

import (
	"testing"

	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_Paths(t *testing.T) {
	av := scene.NewAvatar("Avatar")
	slot := av.Root.AddChild("Slot")
	r := slot.AddChild("R")
	leaf := r.AddChild("Child").AddChild("Leaf")

	path, ok := scene.RelativePath(av.Root, leaf)
	require.True(t, ok)
	assert.Equal(t, "Slot/R/Child/Leaf", path)

	path, ok = scene.RelativePath(r, leaf)
	require.True(t, ok)
	assert.Equal(t, "Child/Leaf", path)

	_, ok = scene.RelativePath(leaf, r)
	assert.False(t, ok)

	found, ok := av.Root.Find("Slot/R/Child/Leaf")
	require.True(t, ok)
	assert.Same(t, leaf, found)
	self, _ := av.Root.Find("")
	assert.Same(t, av.Root, self)

	other := av.Root.AddChild("Other")
	other.Attach(r)
	path, _ = scene.RelativePath(av.Root, leaf)
	assert.Equal(t, "Other/R/Child/Leaf", path)
	assert.Empty(t, slot.Children)
}

func TestAvatar_FeaturesAndClone(t *testing.T) {
	av := scene.NewAvatar("Avatar")
	hat := av.Root.AddChild("Hat")
	hat.Features = []feature.Model{feature.Toggle{Name: "Hat"}}
	av.Root.Features = []feature.Model{feature.MoveObject{Object: "Hat", NewParent: "Head"}}
	hat.AddComponent(&scene.SkinnedMesh{Blendshapes: []scene.Blendshape{{Name: "Smile"}}})

	insts := av.Features()
	require.Len(t, insts, 2)
	assert.Equal(t, "", insts[0].Owner)
	assert.Equal(t, "Hat", insts[1].Owner)
	assert.Equal(t, 1, insts[1].Index)

	clone := av.Clone()
	cloneHat, ok := clone.Root.Find("Hat")
	require.True(t, ok)
	assert.NotSame(t, hat, cloneHat)
	mesh, ok := scene.ComponentOf[*scene.SkinnedMesh](cloneHat)
	require.True(t, ok)
	mesh.Blendshapes[0].Weight = 50
	orig, _ := scene.ComponentOf[*scene.SkinnedMesh](hat)
	assert.Equal(t, 0.0, orig.Blendshapes[0].Weight)
}
