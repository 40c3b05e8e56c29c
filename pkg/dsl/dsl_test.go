package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/dsl"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

func TestAvatarBuilder(t *testing.T) {
	av := dsl.NewAvatar("Fox").
		Object("Body").Mesh("Smile", "Blink").
		Object("Props/Hat").Inactive().
		Toggle("Clothes/Hat", dsl.TurnOn("Props/Hat")).
		Avatar()

	hat, ok := av.Root.Find("Props/Hat")
	require.True(t, ok)
	assert.False(t, hat.Active)
	require.Len(t, hat.Features, 1)

	toggle := hat.Features[0].(feature.Toggle)
	assert.Equal(t, "Clothes/Hat", toggle.Name)
	assert.Equal(t, feature.ObjectToggle{Object: "Props/Hat", Mode: feature.TurnOn}, toggle.State.Actions[0])

	body, ok := av.Root.Find("Body")
	require.True(t, ok)
	mesh, ok := scene.ComponentOf[*scene.SkinnedMesh](body)
	require.True(t, ok)
	assert.Len(t, mesh.Blendshapes, 2)

	// Reusing a path returns the same object.
	assert.Same(t, hat, dsl.NewAvatarFrom(av).Object("Props/Hat").Build())
}

func TestFeatureBuilders(t *testing.T) {
	toggle := dsl.Toggle("Hat", dsl.Flip("Hat")).Saved().DefaultOn().Exclusive("hats").Transition(0.2).Model().(feature.Toggle)
	assert.True(t, toggle.Saved)
	assert.True(t, toggle.DefaultOn)
	assert.Equal(t, []string{"hats"}, toggle.ExclusiveTags)
	assert.Equal(t, 0.2, toggle.TransitionTime)

	fc := dsl.FullController("Dance").Menu("DanceMenu", "Fun").Params("DanceParams").Global("*").Model().(feature.FullController)
	assert.True(t, fc.IsGlobal("anything"))
	assert.Equal(t, "Fun", fc.Menus[0].Prefix)

	sock := dsl.Socket("Mouth", "Head").Radius(0.1).EnableToggle().
		Depth(dsl.DepthAction(0, 0.5, dsl.Shape("Open", 100)).Smoothing(0.8).Directional()).
		Model().(feature.Socket)
	require.Len(t, sock.DepthActions, 1)
	assert.True(t, sock.DepthActions[0].Directional)
	assert.NoError(t, feature.Validate(sock))

	g := dsl.Gestures().Left(1, dsl.Shape("Smile", 100)).Combo(2, 3, dsl.Shape("Blink", 100)).Model().(feature.GestureDriver)
	require.Len(t, g.Gestures, 2)
	assert.Equal(t, feature.HandCombo, g.Gestures[1].Hand)
	assert.Equal(t, 3, g.Gestures[1].ComboSign)
}
