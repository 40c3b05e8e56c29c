package dto

import (
	"fmt"

	"github.com/aretw0/graft/pkg/animgraph"
)

// MenuItemDTO is one menu control.
type MenuItemDTO struct {
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Param    string        `yaml:"param,omitempty"`
	Value    float64       `yaml:"value,omitempty"`
	SubParam string        `yaml:"sub_param,omitempty"`
	Children []MenuItemDTO `yaml:"children,omitempty"`
}

// MenuDTO is a menu tree.
type MenuDTO struct {
	Name  string        `yaml:"name,omitempty"`
	Items []MenuItemDTO `yaml:"items"`
}

// FromMenu converts a menu.
func FromMenu(name string, m *animgraph.Menu) MenuDTO {
	return MenuDTO{Name: name, Items: fromItems(m.Items)}
}

func fromItems(items []*animgraph.MenuItem) []MenuItemDTO {
	out := []MenuItemDTO{}
	for _, it := range items {
		d := MenuItemDTO{Name: it.Name, Type: it.Type.String(), Param: it.Param, Value: it.Value, SubParam: it.SubParam}
		if it.Type == animgraph.ItemSubMenu {
			d.Children = fromItems(it.Children)
		}
		out = append(out, d)
	}
	return out
}

// Build converts the DTO into a menu.
func (d MenuDTO) Build() (*animgraph.Menu, error) {
	items, err := buildItems(d.Items)
	if err != nil {
		return nil, fmt.Errorf("menu %s: %w", d.Name, err)
	}
	return &animgraph.Menu{Items: items}, nil
}

func buildItems(in []MenuItemDTO) ([]*animgraph.MenuItem, error) {
	var out []*animgraph.MenuItem
	for _, d := range in {
		typ, err := animgraph.ParseItemType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", d.Name, err)
		}
		children, err := buildItems(d.Children)
		if err != nil {
			return nil, err
		}
		out = append(out, &animgraph.MenuItem{
			Name: d.Name, Type: typ, Param: d.Param, Value: d.Value, SubParam: d.SubParam, Children: children,
		})
	}
	return out, nil
}

// ParamListDTO is a networked parameter list.
type ParamListDTO struct {
	Name   string     `yaml:"name,omitempty"`
	Params []ParamDTO `yaml:"params"`
}

// FromParamList converts a parameter list.
func FromParamList(name string, l *animgraph.ParamList) ParamListDTO {
	out := ParamListDTO{Name: name, Params: []ParamDTO{}}
	for _, e := range l.Entries() {
		out.Params = append(out.Params, ParamDTO{Name: e.Name, Kind: e.Kind.String(), Default: e.Default, Saved: e.Saved, Networked: true})
	}
	return out
}

// Build converts the DTO into a parameter list.
func (d ParamListDTO) Build() (*animgraph.ParamList, error) {
	l := animgraph.NewParamList()
	for _, p := range d.Params {
		kind, err := animgraph.ParseParamKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("params %s: %s: %w", d.Name, p.Name, err)
		}
		if err := l.Add(animgraph.ParamEntry{Name: p.Name, Kind: kind, Default: p.Default, Saved: p.Saved}); err != nil {
			return nil, fmt.Errorf("params %s: %w", d.Name, err)
		}
	}
	return l, nil
}
