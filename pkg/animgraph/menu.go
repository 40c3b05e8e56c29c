package animgraph

import (
	"fmt"
	"strings"
)

// ItemType is the control kind of a menu item.
type ItemType int

const (
	ItemToggle ItemType = iota
	ItemButton
	ItemSubMenu
	ItemRadial
)

func (t ItemType) String() string {
	switch t {
	case ItemToggle:
		return "toggle"
	case ItemButton:
		return "button"
	case ItemSubMenu:
		return "submenu"
	case ItemRadial:
		return "radial"
	default:
		return fmt.Sprintf("item(%d)", int(t))
	}
}

// ParseItemType is the inverse of ItemType.String.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "toggle":
		return ItemToggle, nil
	case "button":
		return ItemButton, nil
	case "submenu", "sub_menu":
		return ItemSubMenu, nil
	case "radial":
		return ItemRadial, nil
	default:
		return ItemToggle, fmt.Errorf("unknown menu item type: %q", s)
	}
}

// MenuItem is one control of an expression menu.
type MenuItem struct {
	Name  string
	Type  ItemType
	Param string
	Value float64
	// SubParam is the float driven by a radial puppet.
	SubParam string
	Children []*MenuItem
}

// Menu is the root of an expression menu tree.
type Menu struct {
	Items []*MenuItem
}

// NewMenu creates an empty menu.
func NewMenu() *Menu { return &Menu{} }

func splitMenuPath(path string) []string {
	var out []string
	for _, part := range strings.Split(path, "/") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Submenu returns the item list at a slash-separated path, creating missing
// submenus on the way. An empty path is the root.
func (m *Menu) Submenu(path string) *[]*MenuItem {
	items := &m.Items
	for _, part := range splitMenuPath(path) {
		var next *MenuItem
		for _, it := range *items {
			if it.Type == ItemSubMenu && it.Name == part {
				next = it
				break
			}
		}
		if next == nil {
			next = &MenuItem{Name: part, Type: ItemSubMenu}
			*items = append(*items, next)
		}
		items = &next.Children
	}
	return items
}

func (m *Menu) add(path string, item *MenuItem) *MenuItem {
	parts := splitMenuPath(path)
	if len(parts) == 0 {
		return nil
	}
	item.Name = parts[len(parts)-1]
	items := m.Submenu(strings.Join(parts[:len(parts)-1], "/"))
	*items = append(*items, item)
	return item
}

// NewToggle adds a toggle at path ("Clothes/Hat") setting param to value while on.
func (m *Menu) NewToggle(path, param string, value float64) *MenuItem {
	return m.add(path, &MenuItem{Type: ItemToggle, Param: param, Value: value})
}

// NewButton adds a button holding param at value while pressed.
func (m *Menu) NewButton(path, param string, value float64) *MenuItem {
	return m.add(path, &MenuItem{Type: ItemButton, Param: param, Value: value})
}

// NewRadial adds a radial puppet driving the float sub.
func (m *Menu) NewRadial(path, sub string) *MenuItem {
	return m.add(path, &MenuItem{Type: ItemRadial, SubParam: sub})
}

// Walk visits every item depth first with its slash-separated parent path.
func (m *Menu) Walk(fn func(parent string, item *MenuItem)) {
	var walk func(prefix string, items []*MenuItem)
	walk = func(prefix string, items []*MenuItem) {
		for _, it := range items {
			fn(prefix, it)
			if it.Type == ItemSubMenu {
				walk(joinMenuPath(prefix, it.Name), it.Children)
			}
		}
	}
	walk("", m.Items)
}

// Params returns every parameter name the menu drives.
func (m *Menu) Params() []string {
	var out []string
	seen := make(map[string]struct{})
	m.Walk(func(_ string, it *MenuItem) {
		for _, p := range []string{it.Param, it.SubParam} {
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	})
	return out
}

func joinMenuPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
