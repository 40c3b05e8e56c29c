package feature_test

import (
	"testing"

	"github.com/aretw0/graft/pkg/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode(t *testing.T) {
	dec := feature.NewDecoder(nil)

	t.Run("Current toggle", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{
			Type: "toggle",
			Data: map[string]any{
				"name":       "Clothes/Hat",
				"saved":      true,
				"default_on": true,
				"state": []any{
					map[string]any{"type": "object_toggle", "object": "Hat"},
					map[string]any{"type": "blendshape", "name": "Smile", "value": 100},
					map[string]any{"type": "object_toggle", "object": "Hair", "mode": "off"},
				},
			},
		})
		require.NoError(t, err)
		tog, ok := m.(feature.Toggle)
		require.True(t, ok, "got %T", m)
		assert.Equal(t, "Clothes/Hat", tog.Name)
		assert.True(t, tog.Saved)
		require.Len(t, tog.State.Actions, 3)
		assert.Equal(t, feature.ObjectToggle{Object: "Hat"}, tog.State.Actions[0])
		assert.Equal(t, feature.BlendShape{Name: "Smile", Value: 100}, tog.State.Actions[1])
		assert.Equal(t, feature.ObjectToggle{Object: "Hair", Mode: feature.TurnOff}, tog.State.Actions[2])
	})

	t.Run("Unknown action type is kept, not fatal", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{
			Type: "toggle",
			Data: map[string]any{
				"name": "Hat",
				"state": []any{
					map[string]any{"type": "sparkle", "color": "gold"},
					map[string]any{"type": "object_toggle", "object": "Hat"},
				},
			},
		})
		require.NoError(t, err)
		tog := m.(feature.Toggle)
		require.Len(t, tog.State.Actions, 2)
		assert.Equal(t, feature.UnknownAction{Type: "sparkle", Raw: map[string]any{"color": "gold"}}, tog.State.Actions[0])
		assert.Equal(t, feature.ObjectToggle{Object: "Hat"}, tog.State.Actions[1])
	})

	t.Run("Known action with bad fields still fails", func(t *testing.T) {
		_, err := dec.Decode(feature.Record{
			Type: "toggle",
			Data: map[string]any{
				"name":  "Hat",
				"state": []any{map[string]any{"type": "object_toggle", "object": []any{1}}},
			},
		})
		assert.Error(t, err)
	})

	t.Run("Legacy toggle is upgraded", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{
			Type:    "toggle",
			Version: 1,
			Data: map[string]any{
				"name":    "Hat",
				"objects": []any{"Hat", "Brim"},
				"default": true,
			},
		})
		require.NoError(t, err)
		tog := m.(feature.Toggle)
		assert.True(t, tog.DefaultOn)
		assert.Equal(t, []feature.Action{
			feature.ObjectToggle{Object: "Hat"},
			feature.ObjectToggle{Object: "Brim"},
		}, tog.State.Actions)
	})

	t.Run("Legacy nested action is upgraded", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{
			Type: "toggle",
			Data: map[string]any{
				"name": "Smile",
				"state": []any{
					map[string]any{"type": "blendshape", "version": 1, "blendShape": "Smile", "value": 50},
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, feature.BlendShape{Name: "Smile", Value: 50}, m.(feature.Toggle).State.Actions[0])
	})

	t.Run("Legacy full controller", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{
			Type:    "full_controller",
			Version: 1,
			Data:    map[string]any{"controller": "Wings", "menu": "WingsMenu", "prefix": "Wings", "params": "WingsParams"},
		})
		require.NoError(t, err)
		fc := m.(feature.FullController)
		assert.Equal(t, []feature.ControllerRef{{Name: "Wings"}}, fc.Controllers)
		assert.Equal(t, []feature.MenuRef{{Name: "WingsMenu", Prefix: "Wings"}}, fc.Menus)
		assert.Equal(t, []string{"WingsParams"}, fc.Params)
	})

	t.Run("Future version", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{Type: "socket", Version: 99, Data: map[string]any{"name": "S"}})
		require.NoError(t, err)
		u, ok := m.(feature.Unknown)
		require.True(t, ok)
		assert.True(t, u.Future)
		assert.Error(t, feature.Validate(m))
	})

	t.Run("Unregistered kind", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{Type: "halo"})
		require.NoError(t, err)
		assert.Equal(t, feature.Kind("halo"), m.Kind())
		assert.False(t, m.(feature.Unknown).Future)
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, err := dec.Decode(feature.Record{Type: "move_object", Data: map[string]any{"objekt": "Hat"}})
		assert.Error(t, err)
	})

	t.Run("Gesture hand names", func(t *testing.T) {
		m, err := dec.Decode(feature.Record{Type: "gesture_driver", Data: map[string]any{
			"gestures": []any{map[string]any{"hand": "right", "sign": 2}},
		}})
		require.NoError(t, err)
		assert.Equal(t, feature.HandRight, m.(feature.GestureDriver).Gestures[0].Hand)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		model feature.Model
		keys  []string
	}{
		{"Valid toggle", feature.Toggle{Name: "Hat"}, nil},
		{"Toggle without name", feature.Toggle{}, []string{"name"}},
		{"Slider hold button", feature.Toggle{Name: "X", Slider: true, HoldButton: true}, []string{"hold_button"}},
		{"Move without target", feature.MoveObject{Object: "A"}, []string{"new_parent"}},
		{"Gesture sign range", feature.GestureDriver{Gestures: []feature.Gesture{{Sign: 9}}}, []string{"gestures[0].sign"}},
		{"Socket depth range", feature.Socket{Name: "S", DepthActions: []feature.DepthAction{{MinDepth: 1, MaxDepth: 1}}}, []string{"depth_actions[0].max_depth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := feature.Validate(tt.model)
			if tt.keys == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var keys []string
			for _, e := range feature.ValidationErrors(err) {
				keys = append(keys, e.(*feature.ValidationError).Key)
			}
			assert.Equal(t, tt.keys, keys)
		})
	}
}
