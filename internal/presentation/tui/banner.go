package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the graft ASCII banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Using a subtle gradient-like color scheme (Teal/Green)
	lines := []struct {
		text  string
		color string
	}{
		{"                    __ _   ", "#2dd4bf"},
		{"   __ _ _ __ __ _ / _| |_ ", "#34d399"},
		{"  / _` | '__/ _` | |_| __|", "#4ade80"},
		{" | (_| | | | (_| |  _| |_ ", "#a3e635"},
		{"  \\__, |_|  \\__,_|_|  \\__|", "#facc15"},
		{"  |___/                   ", "#fbbf24"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  "+version).Faint())
	fmt.Fprintln(w)
}
