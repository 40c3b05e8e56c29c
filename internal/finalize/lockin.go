package finalize

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/graft/internal/dto"
	"github.com/aretw0/graft/internal/pipeline"
)

// Asset names written by lock-in.
const (
	AssetController = "controller.yaml"
	AssetMenu       = "menu.yaml"
	AssetParams     = "params.yaml"
	clipPrefix      = "clips/"
)

// ClipAsset returns the scratch name of a generated clip.
func ClipAsset(name string) string { return clipPrefix + name + ".yaml" }

// lockIn serializes the output into the scratch store. Nothing else writes there.
func lockIn(ctx context.Context, bc *pipeline.Context) error {
	if bc.Store == nil {
		return nil
	}
	ctrl := dto.FromController(bc.Controller)
	docs := []struct {
		name string
		v    any
	}{
		{AssetController, ctrl},
		{AssetMenu, dto.FromMenu(bc.Avatar.Name, bc.Menu)},
		{AssetParams, dto.FromParamList(bc.Avatar.Name, bc.Params)},
	}
	for _, clip := range ctrl.Clips {
		docs = append(docs, struct {
			name string
			v    any
		}{ClipAsset(clip.Name), clip})
	}

	for _, d := range docs {
		data, err := yaml.Marshal(d.v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", d.name, err)
		}
		if err := bc.Store.Save(ctx, bc.Avatar.Name, d.name, data); err != nil {
			return fmt.Errorf("saving %s: %w", d.name, err)
		}
	}
	bc.Logger.Debug("locked in", "assets", len(docs))
	return nil
}
