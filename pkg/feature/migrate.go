package feature

import (
	"fmt"
	"strings"
)

// Migration upgrades a raw record from one version to the next.
// It receives a private copy it may modify and return.
type Migration func(data map[string]any) (map[string]any, error)

type migrationKey struct {
	typ  string
	from int
}

// Migrations holds one upgrade function per (type, fromVersion). Types are
// feature kinds or action types.
type Migrations struct {
	steps   map[migrationKey]Migration
	current map[string]int
}

// NewMigrations creates an empty set.
func NewMigrations() *Migrations {
	return &Migrations{
		steps:   make(map[migrationKey]Migration),
		current: make(map[string]int),
	}
}

// Register adds the upgrade of typ from version from to from+1.
func (m *Migrations) Register(typ string, from int, fn Migration) {
	m.steps[migrationKey{typ, from}] = fn
	if m.current[typ] < from+1 {
		m.current[typ] = from + 1
	}
}

// Upgrade runs every migration of typ from version from to version to.
func (m *Migrations) Upgrade(typ string, from, to int, data map[string]any) (map[string]any, error) {
	out := copyMap(data)
	for v := from; v < to; v++ {
		step, ok := m.steps[migrationKey{typ, v}]
		if !ok {
			continue
		}
		var err error
		if out, err = step(out); err != nil {
			return nil, fmt.Errorf("upgrade %s from v%d: %w", typ, v, err)
		}
	}
	return out, nil
}

// Walk upgrades every nested action record (a map with a "type" key) found
// under data. Records without a "version" key are taken as current.
func (m *Migrations) Walk(data any) (any, error) {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			up, err := m.Walk(child)
			if err != nil {
				return nil, err
			}
			out[k] = up
		}
		typ, _ := out["type"].(string)
		cur, known := m.current[typ]
		if !known {
			return out, nil
		}
		from, ok := intValue(out["version"])
		if !ok {
			return out, nil
		}
		if from > cur {
			return nil, fmt.Errorf("%s action version %d is newer than supported version %d", typ, from, cur)
		}
		up, err := m.Upgrade(typ, from, cur, out)
		if err != nil {
			return nil, err
		}
		up["version"] = cur
		return up, nil
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			up, err := m.Walk(child)
			if err != nil {
				return nil, err
			}
			out[i] = up
		}
		return out, nil
	default:
		return data, nil
	}
}

// DefaultMigrations returns the upgrade chain of every built-in record type.
func DefaultMigrations() *Migrations {
	m := NewMigrations()

	// v1 toggles listed bare object paths instead of a state.
	m.Register(string(KindToggle), 1, func(d map[string]any) (map[string]any, error) {
		objs, ok := d["objects"].([]any)
		delete(d, "objects")
		if !ok {
			return d, nil
		}
		actions, _ := d["state"].([]any)
		for _, o := range objs {
			path, ok := o.(string)
			if !ok {
				return nil, fmt.Errorf("objects: expected string path, got %T", o)
			}
			actions = append(actions, map[string]any{"type": "object_toggle", "object": path})
		}
		d["state"] = actions
		return d, nil
	})
	m.Register(string(KindToggle), 2, func(d map[string]any) (map[string]any, error) {
		rename(d, "default", "default_on")
		rename(d, "save", "saved")
		return d, nil
	})

	m.Register(string(KindFullController), 1, func(d map[string]any) (map[string]any, error) {
		if name, ok := d["controller"].(string); ok {
			d["controllers"] = []any{map[string]any{"name": name}}
		}
		delete(d, "controller")
		if name, ok := d["menu"].(string); ok {
			menu := map[string]any{"name": name}
			if prefix, ok := d["prefix"].(string); ok {
				menu["prefix"] = prefix
			}
			d["menus"] = []any{menu}
		}
		delete(d, "menu")
		delete(d, "prefix")
		if name, ok := d["params"].(string); ok {
			d["params"] = []any{name}
		}
		return d, nil
	})

	m.Register(BlendShape{}.ActionType(), 1, func(d map[string]any) (map[string]any, error) {
		rename(d, "blendShape", "name")
		return d, nil
	})

	return m
}

func rename(d map[string]any, from, to string) {
	v, ok := d[from]
	if !ok {
		return
	}
	delete(d, from)
	if _, exists := d[to]; !exists {
		d[to] = v
	}
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		var i int
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%d", &i); err == nil {
			return i, true
		}
	}
	return 0, false
}
