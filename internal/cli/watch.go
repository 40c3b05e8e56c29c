package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/internal/presentation/tui"
	"github.com/aretw0/graft/pkg/ports"
)

// RunWatch builds once, then rebuilds every time an avatar file changes,
// until ctx ends. Build failures are reported and the watch goes on.
func (e *Environment) RunWatch(ctx context.Context, w io.Writer, opts BuildOptions) error {
	if tui.IsTerminal(w) {
		tui.PrintBanner(w, graft.Version)
	}
	watchable, ok := e.Source.(ports.Watchable)
	if !ok {
		return fmt.Errorf("avatar source %T does not support watching", e.Source)
	}
	changes, err := watchable.Watch(ctx)
	if err != nil {
		return err
	}
	e.Logger.Info("Starting Watcher", "path", e.Config.Avatars)

	for {
		if err := e.RunBuild(ctx, w, opts); err != nil {
			e.Logger.Warn("build failed, waiting for changes", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			e.Logger.Info("Watcher rebuilding")
		}
	}
}
