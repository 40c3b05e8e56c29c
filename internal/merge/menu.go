package merge

import (
	"github.com/aretw0/graft/pkg/animgraph"
)

// ImportMenu copies every item of src under prefix in dst. Submenus of the
// same name are merged; parameters are renamed.
func (im *Importer) ImportMenu(dst, src *animgraph.Menu, prefix string) {
	if src == nil {
		return
	}
	im.mergeItems(dst.Submenu(prefix), src.Items)
}

func (im *Importer) mergeItems(into *[]*animgraph.MenuItem, items []*animgraph.MenuItem) {
	for _, it := range items {
		if it.Type == animgraph.ItemSubMenu {
			var existing *animgraph.MenuItem
			for _, cur := range *into {
				if cur.Type == animgraph.ItemSubMenu && cur.Name == it.Name {
					existing = cur
					break
				}
			}
			if existing == nil {
				existing = &animgraph.MenuItem{Name: it.Name, Type: animgraph.ItemSubMenu, Param: im.param(it.Param), Value: it.Value}
				*into = append(*into, existing)
			}
			im.mergeItems(&existing.Children, it.Children)
			continue
		}
		*into = append(*into, &animgraph.MenuItem{
			Name:     it.Name,
			Type:     it.Type,
			Param:    im.param(it.Param),
			Value:    it.Value,
			SubParam: im.param(it.SubParam),
		})
	}
}

// ImportParams merges an authored parameter list into dst and marks the
// matching controller parameters networked, creating any that are missing.
func (im *Importer) ImportParams(dst, src *animgraph.ParamList) error {
	if src == nil {
		return nil
	}
	for _, e := range src.Entries() {
		e.Name = im.param(e.Name)
		if err := dst.Add(e); err != nil {
			return err
		}
		p, err := im.Dst.NewParameter(e.Name, e.Kind, e.Default)
		if err != nil {
			return err
		}
		p.Networked = true
		p.Saved = p.Saved || e.Saved
	}
	return nil
}
