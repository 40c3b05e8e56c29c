package feature

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Record is a persisted, possibly out-of-date, feature configuration.
type Record struct {
	Type    string         `yaml:"type"`
	Version int            `yaml:"version"`
	Data    map[string]any `yaml:",inline"`
}

// Decoder turns records into current-version models.
type Decoder struct {
	migrations *Migrations
}

// NewDecoder creates a decoder. A nil set uses DefaultMigrations.
func NewDecoder(m *Migrations) *Decoder {
	if m == nil {
		m = DefaultMigrations()
	}
	return &Decoder{migrations: m}
}

// Decode upgrades and decodes a record. Unregistered kinds and versions newer
// than CurrentVersion decode to Unknown without error; the build rejects them.
// A zero Version is taken as current.
func (d *Decoder) Decode(rec Record) (Model, error) {
	kind := Kind(rec.Type)
	cur, ok := CurrentVersion(kind)
	if !ok {
		return Unknown{Type: rec.Type, Version: rec.Version, Raw: rec.Data}, nil
	}
	from := rec.Version
	if from == 0 {
		from = cur
	}
	if from > cur {
		return Unknown{Type: rec.Type, Version: rec.Version, Raw: rec.Data, Future: true}, nil
	}

	data, err := d.migrations.Upgrade(rec.Type, from, cur, withoutKeys(rec.Data, "type", "version"))
	if err != nil {
		return nil, err
	}
	walked, err := d.migrations.Walk(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rec.Type, err)
	}
	data = walked.(map[string]any)

	var m Model
	switch kind {
	case KindToggle:
		m, err = decodeAs[Toggle](data)
	case KindFullController:
		m, err = decodeAs[FullController](data)
	case KindSocket:
		m, err = decodeAs[Socket](data)
	case KindGestureDriver:
		m, err = decodeAs[GestureDriver](data)
	case KindMoveObject:
		m, err = decodeAs[MoveObject](data)
	default:
		return Unknown{Type: rec.Type, Version: rec.Version, Raw: rec.Data}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rec.Type, err)
	}
	return m, nil
}

func decodeAs[T any](data map[string]any) (T, error) {
	var out T
	err := decodeInto(data, &out)
	return out, err
}

func decodeInto(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stateHook,
			enumHook,
		),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

var (
	stateType      = reflect.TypeOf(State{})
	handType       = reflect.TypeOf(Hand(0))
	toggleModeType = reflect.TypeOf(ToggleMode(0))
)

// stateHook decodes a list of action records (or {actions: [...]}) into a State.
func stateHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stateType {
		return data, nil
	}
	var list []any
	switch v := data.(type) {
	case nil:
		return State{}, nil
	case []any:
		list = v
	case []map[string]any:
		for _, m := range v {
			list = append(list, m)
		}
	case map[string]any:
		inner, _ := v["actions"].([]any)
		list = inner
	default:
		return nil, fmt.Errorf("state: expected a list of actions, got %T", data)
	}
	var st State
	for i, raw := range list {
		rec, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("state action %d: expected a map, got %T", i, raw)
		}
		a, err := DecodeAction(rec)
		if err != nil {
			return nil, fmt.Errorf("state action %d: %w", i, err)
		}
		st.Actions = append(st.Actions, a)
	}
	return st, nil
}

func enumHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	switch to {
	case handType:
		return ParseHand(s)
	case toggleModeType:
		return ParseToggleMode(s)
	}
	return data, nil
}

// ParseHand is the inverse of Hand.String.
func ParseHand(s string) (Hand, error) {
	switch s {
	case "left":
		return HandLeft, nil
	case "right":
		return HandRight, nil
	case "either", "":
		return HandEither, nil
	case "combo":
		return HandCombo, nil
	default:
		return HandEither, fmt.Errorf("unknown hand: %q", s)
	}
}

// DecodeAction decodes one action record selected by its "type" key. A type it
// does not know decodes to UnknownAction; malformed fields of a known type are
// still an error.
func DecodeAction(rec map[string]any) (Action, error) {
	typ, _ := rec["type"].(string)
	data := withoutKeys(rec, "type", "version")
	switch typ {
	case ObjectToggle{}.ActionType():
		return decodeAs[ObjectToggle](data)
	case BlendShape{}.ActionType():
		return decodeAs[BlendShape](data)
	case Material{}.ActionType():
		return decodeAs[Material](data)
	case MaterialProperty{}.ActionType():
		return decodeAs[MaterialProperty](data)
	case Scale{}.ActionType():
		return decodeAs[Scale](data)
	case FlipbookFrame{}.ActionType():
		return decodeAs[FlipbookFrame](data)
	case AnimationClip{}.ActionType():
		return decodeAs[AnimationClip](data)
	case FxFloat{}.ActionType():
		return decodeAs[FxFloat](data)
	default:
		return UnknownAction{Type: typ, Raw: data}, nil
	}
}

func withoutKeys(in map[string]any, keys ...string) map[string]any {
	out := copyMap(in)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
