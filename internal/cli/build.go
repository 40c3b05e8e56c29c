package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/graft/internal/presentation/tui"
	"github.com/aretw0/graft/pkg/scene"
)

// stderr receives failure summaries and logs. Tests replace it.
var stderr io.Writer = os.Stderr

// BuildOptions select what RunBuild compiles.
type BuildOptions struct {
	// Avatars to build; every avatar of the source when empty.
	Avatars []string
	// Clone builds an upload copy, running clone-only actions.
	Clone bool
	Quiet bool
}

func (e *Environment) avatarNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) > 0 {
		return names, nil
	}
	names, err := e.Source.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no avatars found in %s", e.Config.Avatars)
	}
	return names, nil
}

// RunBuild compiles each avatar and prints a report per build. Every avatar
// is attempted; the returned error joins the failures.
func (e *Environment) RunBuild(ctx context.Context, w io.Writer, opts BuildOptions) error {
	names, err := e.avatarNames(ctx, opts.Avatars)
	if err != nil {
		return err
	}
	defer e.writeMetrics()

	var errs []error
	for _, name := range names {
		if err := e.buildOne(ctx, w, name, opts); err != nil {
			tui.PrintError(stderr, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Environment) buildOne(ctx context.Context, w io.Writer, name string, opts BuildOptions) error {
	av, err := e.Source.Load(ctx, name)
	if err != nil {
		return err
	}
	var clone *scene.Avatar
	if opts.Clone {
		clone = av.Clone()
	}
	res, err := e.Compiler.Build(ctx, av, clone)
	if err != nil {
		return err
	}
	if opts.Quiet {
		return nil
	}
	assets, err := e.Store.List(ctx, av.Name)
	if err != nil {
		return fmt.Errorf("listing scratch assets: %w", err)
	}
	report := tui.Report{
		Avatar:   av.Name,
		BuildID:  res.BuildID,
		Duration: res.Duration,
		Output:   res.Output,
		Warnings: res.Warnings,
		Assets:   assets,
	}
	return tui.Print(w, report.Markdown())
}
