package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/domain"
)

// Report summarizes one build for humans.
type Report struct {
	Avatar   string
	BuildID  string
	Duration time.Duration
	Output   *animgraph.Output
	Warnings []domain.Warning
	// Assets lists what lock-in wrote to the scratch store.
	Assets []string
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Avatar)
	fmt.Fprintf(&sb, "Build `%s` finished in %s.\n\n", r.BuildID, r.Duration.Round(time.Microsecond))

	if r.Output != nil {
		sb.WriteString("## Layers\n\n")
		sb.WriteString("| Layer | Owner | States | Weight |\n|---|---|---|---|\n")
		for _, l := range r.Output.Controller.Layers {
			owner := l.Owner
			if owner == "" {
				owner = "-"
			}
			fmt.Fprintf(&sb, "| %s | %s | %d | %g |\n", cell(l.Name), cell(owner), len(l.States()), l.Weight)
		}

		sb.WriteString("\n## Networked parameters\n\n")
		if r.Output.Params.Len() == 0 {
			sb.WriteString("None.\n")
		} else {
			sb.WriteString("| Parameter | Type | Default | Saved |\n|---|---|---|---|\n")
			for _, e := range r.Output.Params.Entries() {
				fmt.Fprintf(&sb, "| %s | %s | %g | %t |\n", cell(e.Name), e.Kind, e.Default, e.Saved)
			}
		}
		fmt.Fprintf(&sb, "\n%d of %d bits used.\n", r.Output.Params.Cost(), animgraph.MaxNetworkedCost)
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}
	if len(r.Assets) > 0 {
		fmt.Fprintf(&sb, "\n%d assets written to the scratch store.\n", len(r.Assets))
	}
	return sb.String()
}

func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// PrintError writes a colored failure summary, one line per joined error.
func PrintError(w io.Writer, err error) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w, out.String("Build failed").Bold().Foreground(out.Color("#fb7185")))

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(w, "  %s %v\n", out.String("✗").Foreground(out.Color("#fb7185")), e)
		}
		return
	}
	fmt.Fprintf(w, "  %s %v\n", out.String("✗").Foreground(out.Color("#fb7185")), err)
}
