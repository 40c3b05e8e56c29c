package clips_test

import (
	"testing"

	"github.com/aretw0/graft/internal/clips"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeBinding(path string) animgraph.Binding {
	return animgraph.Binding{Path: path, Type: animgraph.TypeGameObject, Property: animgraph.PropActive}
}

func newAvatar() *scene.Avatar {
	av := scene.NewAvatar("Avatar")
	hat := av.Root.AddChild("Hat")
	hat.Active = false
	av.Root.AddChild("Hair")
	body := av.Root.AddChild("Body")
	body.AddComponent(&scene.SkinnedMesh{
		Blendshapes: []scene.Blendshape{{Name: "Smile", Weight: 10}},
		Materials:   []string{"Skin", "Eyes"},
		Props:       map[string]float64{"_Hue": 0.2, clips.FlipbookFrameProp: 0},
	})
	return av
}

func TestSynthesize_ToggleRoundTrip(t *testing.T) {
	av := newAvatar()
	syn := clips.New(av.Root, av.Library, nil)

	tests := []struct {
		name   string
		object string
		mode   feature.ToggleMode
		want   float64
	}{
		{"Flip resting off", "Hat", feature.Flip, 1},
		{"Flip resting on", "Hair", feature.Flip, 0},
		{"Turn off resting on", "Hair", feature.TurnOff, 0},
		{"Turn on resting on", "Hair", feature.TurnOn, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := animgraph.NewStandaloneClip(tt.name)
			warnings := syn.Synthesize(clip, av.Root, feature.State{Actions: []feature.Action{
				feature.ObjectToggle{Object: tt.object, Mode: tt.mode},
			}})
			assert.Empty(t, warnings)
			got, ok := clip.Sample(activeBinding(tt.object), 0)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	rest, ok := syn.Resting.Value(activeBinding("Hat"))
	require.True(t, ok)
	assert.Equal(t, 0.0, rest)
}

func TestSynthesize_RestingFirstCaptureWins(t *testing.T) {
	av := newAvatar()
	syn := clips.New(av.Root, av.Library, nil)

	first := animgraph.NewStandaloneClip("first")
	syn.Synthesize(first, av.Root, feature.State{Actions: []feature.Action{feature.ObjectToggle{Object: "Hat"}}})

	// A later build step changing the scene does not move the resting value.
	hat, _ := av.Root.Find("Hat")
	hat.Active = true
	second := animgraph.NewStandaloneClip("second")
	syn.Synthesize(second, av.Root, feature.State{Actions: []feature.Action{feature.ObjectToggle{Object: "Hat"}}})

	v, _ := second.Sample(activeBinding("Hat"), 0)
	assert.Equal(t, 1.0, v)
}

func TestSynthesize_Actions(t *testing.T) {
	av := newAvatar()
	syn := clips.New(av.Root, av.Library, nil)
	clip := animgraph.NewStandaloneClip("c")

	warnings := syn.Synthesize(clip, av.Root, feature.State{Actions: []feature.Action{
		feature.BlendShape{Name: "Smile", Value: 100},
		feature.BlendShape{Name: "Frown", Value: 100},
		feature.Material{Renderer: "Body", Slot: 1, Material: "RedEyes"},
		feature.Material{Renderer: "Body", Slot: 5, Material: "X"},
		feature.MaterialProperty{Property: "_Hue", Value: 0.8},
		feature.Scale{Object: "Hat", Scale: 2},
		feature.FlipbookFrame{Renderer: "Body", Frame: 3.9},
		feature.FxFloat{Param: "Driven", Value: 0.5},
		feature.ObjectToggle{Object: "Missing"},
		nil,
	}})

	assert.Len(t, warnings, 4, "%v", warnings)

	sample := func(b animgraph.Binding) float64 {
		t.Helper()
		v, ok := clip.Sample(b, 0)
		require.True(t, ok, "missing %s", b)
		return v
	}
	assert.Equal(t, 100.0, sample(animgraph.Binding{Path: "Body", Type: animgraph.TypeSkinnedMesh, Property: "blendShape.Smile"}))
	assert.Equal(t, 0.8, sample(animgraph.Binding{Path: "Body", Type: animgraph.TypeSkinnedMesh, Property: "material._Hue"}))
	assert.Equal(t, 2.0, sample(animgraph.Binding{Path: "Hat", Type: animgraph.TypeTransform, Property: "m_LocalScale.y"}))
	assert.Equal(t, 3.5, sample(animgraph.Binding{Path: "Body", Type: animgraph.TypeSkinnedMesh, Property: "material." + clips.FlipbookFrameProp}))
	assert.Equal(t, 0.5, sample(animgraph.AnimatorBinding("Driven")))

	ref, ok := clip.SampleObject(animgraph.Binding{Path: "Body", Type: animgraph.TypeSkinnedMesh, Property: animgraph.MaterialSlotProp(1)}, 0)
	require.True(t, ok)
	assert.Equal(t, "RedEyes", ref)

	eyes, ok := syn.Resting.Object(animgraph.Binding{Path: "Body", Type: animgraph.TypeSkinnedMesh, Property: animgraph.MaterialSlotProp(1)})
	require.True(t, ok)
	assert.Equal(t, "Eyes", eyes)
	smile, _ := syn.Resting.Value(animgraph.Binding{Path: "Body", Type: animgraph.TypeSkinnedMesh, Property: "blendShape.Smile"})
	assert.Equal(t, 10.0, smile)
}

func TestFlipbookValue(t *testing.T) {
	tests := []struct{ frame, want float64 }{
		{0, 0.5},
		{3, 3.5},
		{3.99, 3.5},
		{-0.5, -0.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clips.FlipbookValue(tt.frame), "frame %v", tt.frame)
	}
}

func TestSynthesize_AnimationClipRewrite(t *testing.T) {
	av := newAvatar()
	slot := av.Root.AddChild("Slot")
	r := slot.AddChild("R")
	r.AddChild("Child").AddChild("Leaf")

	authored := animgraph.NewStandaloneClip("Wave")
	authored.SetConstant(activeBinding("Child/Leaf"), 0)
	authored.SetConstant(animgraph.AnimatorBinding("Param"), 1)
	av.Library.Clips["Wave"] = authored

	syn := clips.New(av.Root, av.Library, nil)
	clip := animgraph.NewStandaloneClip("c")
	warnings := syn.Synthesize(clip, r, feature.State{Actions: []feature.Action{
		feature.ObjectToggle{Object: "Slot/R/Child/Leaf", Mode: feature.TurnOn},
		feature.AnimationClip{Clip: "Wave"},
	}})
	require.Empty(t, warnings)

	assert.Equal(t, []animgraph.Binding{
		activeBinding("Slot/R/Child/Leaf"),
		animgraph.AnimatorBinding("Param"),
	}, clip.Bindings())
	v, _ := clip.Sample(activeBinding("Slot/R/Child/Leaf"), 0)
	assert.Equal(t, 1.0, v, "later actions layer on top of the copied clip")
	assert.True(t, authored.Has(activeBinding("Child/Leaf")), "the authored clip is never mutated")
}

func TestRelocate(t *testing.T) {
	rw := clips.Relocate("R", "Slot/R")
	tests := []struct{ in, want string }{
		{"R", "Slot/R"},
		{"R/Child/Leaf", "Slot/R/Child/Leaf"},
		{"Rx/Child", "Rx/Child"},
		{"Other", "Other"},
	}
	for _, tt := range tests {
		got, keep := rw(activeBinding(tt.in))
		assert.True(t, keep)
		assert.Equal(t, tt.want, got.Path)
	}
	param, _ := rw(animgraph.AnimatorBinding("R"))
	assert.Equal(t, "", param.Path)
}

func TestResting_RewriteFollowsRelocation(t *testing.T) {
	r := clips.NewResting()
	r.Capture(activeBinding("Props/Hat"), 0)
	r.Capture(activeBinding("Props/Hat/Brim"), 1)
	r.Capture(activeBinding("Props/Scarf"), 1)

	r.Rewrite(clips.Relocate("Props/Hat", "Armature/Head/Hat"))

	_, ok := r.Value(activeBinding("Props/Hat"))
	assert.False(t, ok)
	v, ok := r.Value(activeBinding("Armature/Head/Hat"))
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
	v, ok = r.Value(activeBinding("Armature/Head/Hat/Brim"))
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, []string{"Armature/Head/Hat", "Armature/Head/Hat/Brim", "Props/Scarf"}, paths(r.Bindings()))

	clip := animgraph.NewStandaloneClip("restore")
	assert.Equal(t, 1, r.Apply(clip, []animgraph.Binding{activeBinding("Armature/Head/Hat")}))
}

func paths(bs []animgraph.Binding) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Path
	}
	return out
}

func TestSynthesize_UnknownActionWarns(t *testing.T) {
	av := newAvatar()
	syn := clips.New(av.Root, av.Library, nil)

	clip := animgraph.NewStandaloneClip("mixed")
	warnings := syn.Synthesize(clip, av.Root, feature.State{Actions: []feature.Action{
		feature.UnknownAction{Type: "sparkle"},
		feature.ObjectToggle{Object: "Hat"},
	}})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"sparkle"`)
	assert.True(t, clip.Has(activeBinding("Hat")))
}
