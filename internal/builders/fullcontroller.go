package builders

import (
	"context"
	"fmt"

	"github.com/aretw0/graft/internal/clips"
	"github.com/aretw0/graft/internal/merge"
	"github.com/aretw0/graft/internal/pipeline"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

type fullControllerBuilder struct {
	inst  feature.Instance
	model feature.FullController
}

func newFullController(bc *pipeline.Context, inst feature.Instance) (pipeline.Builder, error) {
	return &fullControllerBuilder{inst: inst, model: inst.Model.(feature.FullController)}, nil
}

func (b *fullControllerBuilder) Actions() []pipeline.Action {
	return []pipeline.Action{{Name: "import", Priority: pipeline.Default, Run: b.build}}
}

// rename keeps global and host parameters and namespaces the rest per instance.
func (b *fullControllerBuilder) rename(name string) string {
	if IsHostParam(name) || b.model.IsGlobal(name) {
		return name
	}
	return fmt.Sprintf("%s/FC%d/%s", Prefix, b.inst.Index, name)
}

func (b *fullControllerBuilder) build(ctx context.Context, bc *pipeline.Context) error {
	m := b.model
	root := scene.JoinPath(b.inst.Owner, m.RootObject)
	if _, ok := bc.Object(root); !ok {
		return fmt.Errorf("root object %q not found", root)
	}

	im := &merge.Importer{
		Dst:       bc.Controller,
		ParamName: b.rename,
		Path:      clips.RewritePath(root),
		Owner:     b.inst.Name(),
		Logger:    bc.Logger.With("feature", b.inst.Name()),
	}

	for _, ref := range m.Controllers {
		src, ok := bc.Library.Controllers[ref.Name]
		if !ok {
			return fmt.Errorf("controller %q: %w", ref.Name, domain.ErrAssetNotFound)
		}
		report, err := im.ImportController(src)
		if err != nil {
			return fmt.Errorf("importing controller %q: %w", ref.Name, err)
		}
		for _, d := range report.Dropped {
			bc.Warn(ctx, b.inst.Name(), "dropped transition %s", d)
		}
		for _, l := range report.Layers {
			for _, st := range l.States() {
				animgraph.WalkMotion(st.Motion, func(mo animgraph.Motion) {
					if clip, ok := mo.(*animgraph.Clip); ok {
						bc.Synth.CaptureBaselines(clip)
					}
				})
			}
		}
	}

	for _, ref := range m.Menus {
		src, ok := bc.Library.Menus[ref.Name]
		if !ok {
			return fmt.Errorf("menu %q: %w", ref.Name, domain.ErrAssetNotFound)
		}
		im.ImportMenu(bc.Menu, src, ref.Prefix)
	}

	for _, name := range m.Params {
		src, ok := bc.Library.ParamSets[name]
		if !ok {
			return fmt.Errorf("parameter set %q: %w", name, domain.ErrAssetNotFound)
		}
		if err := im.ImportParams(bc.Params, src); err != nil {
			return fmt.Errorf("importing parameter set %q: %w", name, err)
		}
	}
	return nil
}
