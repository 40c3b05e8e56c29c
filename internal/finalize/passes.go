package finalize

import (
	"context"
	"fmt"

	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/pkg/animgraph"
)

// postProcess drops empty layers, no-op masks and generated assets nothing plays.
func postProcess(_ context.Context, bc *pipeline.Context) error {
	ctrl := bc.Controller
	kept := ctrl.Layers[:0]
	for _, l := range ctrl.Layers {
		if l.IsEmpty() {
			bc.Logger.Debug("removing empty layer", "layer", l.Name)
			continue
		}
		if l.Mask.IsNoop() {
			l.Mask = nil
		}
		kept = append(kept, l)
	}
	ctrl.Layers = kept
	dropUnreferenced(bc)
	return nil
}

func dropUnreferenced(bc *pipeline.Context) {
	used := make(map[animgraph.Motion]struct{})
	bc.Controller.WalkMotions(func(m animgraph.Motion) { used[m] = struct{}{} })
	removed := bc.Controller.RetainAssets(func(m animgraph.Motion) bool {
		_, ok := used[m]
		return ok
	})
	if removed > 0 {
		bc.Logger.Debug("dropped unreferenced assets", "count", removed)
	}
}

func writeDefaults(opts Options) func(context.Context, *pipeline.Context) error {
	return func(_ context.Context, bc *pipeline.Context) error {
		on := decideWriteDefaults(bc.Controller, opts)
		bc.Logger.Debug("write defaults decided", "mode", opts.WriteDefaults.String(), "on", on)

		for _, l := range bc.Controller.Layers {
			generated := false
			for _, s := range l.States() {
				switch {
				case l.IsDirectOnly():
					// Direct trees sum their children and need defaults written.
					s.WriteDefaults = boolPtr(true)
				case s.WriteDefaults == nil:
					s.WriteDefaults = boolPtr(on)
					generated = true
				}
				if !*s.WriteDefaults && s.Motion == nil {
					s.Motion = bc.Controller.NewClip(l.Name + " " + s.Name + " Empty")
				}
			}
			if generated && !on {
				backfill(bc, l)
			}
		}
		return nil
	}
}

// decideWriteDefaults returns the flag for states that have none.
func decideWriteDefaults(ctrl *animgraph.Controller, opts Options) bool {
	switch opts.WriteDefaults {
	case WriteDefaultsOn:
		return true
	case WriteDefaultsOff:
		return false
	}
	var on, off int
	for _, s := range ctrl.AllStates() {
		if s.WriteDefaults == nil {
			continue
		}
		if *s.WriteDefaults {
			on++
		} else {
			off++
		}
	}
	if on == off {
		return opts.Fallback
	}
	return on > off
}

// backfill makes every clip of the layer write the resting value of bindings
// other states of the layer animate, so leaving a state restores them.
func backfill(bc *pipeline.Context, l *animgraph.Layer) {
	var bindings []animgraph.Binding
	seen := make(map[animgraph.Binding]struct{})
	var layerClips []*animgraph.Clip
	for _, s := range l.States() {
		animgraph.WalkMotion(s.Motion, func(m animgraph.Motion) {
			clip, ok := m.(*animgraph.Clip)
			if !ok {
				return
			}
			layerClips = append(layerClips, clip)
			for _, b := range clip.Bindings() {
				if _, dup := seen[b]; !dup {
					seen[b] = struct{}{}
					bindings = append(bindings, b)
				}
			}
		})
	}
	for _, clip := range layerClips {
		bc.Resting.Apply(clip, bindings)
	}
}

// dedupParams removes parameters nothing uses and assembles the networked list.
func dedupParams(ctx context.Context, bc *pipeline.Context) error {
	ctrl := bc.Controller
	used := make(map[string]struct{})
	for _, name := range ctrl.ReferencedParams() {
		used[name] = struct{}{}
	}
	for _, name := range bc.Menu.Params() {
		used[name] = struct{}{}
		if _, ok := ctrl.Parameter(name); !ok {
			bc.Warn(ctx, "", "menu drives parameter %q missing from the controller", name)
		}
	}

	for _, p := range ctrl.Parameters() {
		_, referenced := used[p.Name]
		if _, listed := bc.Params.Get(p.Name); listed {
			referenced = true
		}
		if !referenced && !p.Networked {
			ctrl.RemoveParameter(p.Name)
		}
	}

	for _, p := range ctrl.Parameters() {
		if !p.Networked {
			continue
		}
		if err := bc.Params.Add(animgraph.ParamEntry{Name: p.Name, Kind: p.Kind, Default: p.Default, Saved: p.Saved}); err != nil {
			return err
		}
	}
	for _, e := range bc.Params.Entries() {
		p, ok := ctrl.Parameter(e.Name)
		if !ok {
			continue
		}
		if p.Kind != e.Kind {
			return &animgraph.ParamKindError{Name: e.Name, Existing: p.Kind, Requested: e.Kind}
		}
		p.Networked = true
	}
	return nil
}

// conflicts enforces the networked budget and makes layer and menu names unique.
func conflicts(ctx context.Context, bc *pipeline.Context) error {
	if cost := bc.Params.Cost(); cost > animgraph.MaxNetworkedCost {
		return fmt.Errorf("networked parameters use %d bits, over the budget of %d", cost, animgraph.MaxNetworkedCost)
	}

	names := make(map[string]struct{})
	for _, l := range bc.Controller.Layers {
		name := uniqueName(names, l.Name)
		if name != l.Name {
			bc.Logger.Debug("renamed duplicate layer", "from", l.Name, "to", name)
			l.Name = name
		}
	}

	var fix func(path string, items []*animgraph.MenuItem)
	fix = func(path string, items []*animgraph.MenuItem) {
		taken := make(map[string]struct{})
		for _, it := range items {
			name := uniqueName(taken, it.Name)
			if name != it.Name {
				bc.Warn(ctx, "", "menu %q has two items named %q, renamed to %q", path, it.Name, name)
				it.Name = name
			}
			if it.Type == animgraph.ItemSubMenu {
				fix(path+"/"+it.Name, it.Children)
			}
		}
	}
	fix("", bc.Menu.Items)
	return nil
}

func uniqueName(taken map[string]struct{}, name string) string {
	candidate := name
	for i := 2; ; i++ {
		if _, dup := taken[candidate]; !dup {
			break
		}
		candidate = fmt.Sprintf("%s %d", name, i)
	}
	taken[candidate] = struct{}{}
	return candidate
}

// menuOrdering paginates every submenu over MaxMenuItems into nested Next pages.
func menuOrdering(_ context.Context, bc *pipeline.Context) error {
	bc.Menu.Items = paginate(bc.Menu.Items)
	return nil
}

func paginate(items []*animgraph.MenuItem) []*animgraph.MenuItem {
	for _, it := range items {
		if it.Type == animgraph.ItemSubMenu {
			it.Children = paginate(it.Children)
		}
	}
	if len(items) <= MaxMenuItems {
		return items
	}
	head := append([]*animgraph.MenuItem(nil), items[:MaxMenuItems-1]...)
	next := &animgraph.MenuItem{Name: NextPage, Type: animgraph.ItemSubMenu, Children: paginate(items[MaxMenuItems-1:])}
	return append(head, next)
}

// cleanup removes empty submenus and assets orphaned by the earlier passes.
func cleanup(_ context.Context, bc *pipeline.Context) error {
	bc.Menu.Items = pruneMenus(bc.Menu.Items)
	dropUnreferenced(bc)
	return nil
}

func pruneMenus(items []*animgraph.MenuItem) []*animgraph.MenuItem {
	out := items[:0]
	for _, it := range items {
		if it.Type == animgraph.ItemSubMenu {
			it.Children = pruneMenus(it.Children)
			if len(it.Children) == 0 && it.Param == "" {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
