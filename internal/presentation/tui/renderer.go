package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects a light or dark background automatically.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Print writes markdown to w, rendered with glamour on a terminal and as
// plain text otherwise, so piped output stays greppable.
func Print(w io.Writer, markdown string) error {
	if IsTerminal(w) {
		rendered, err := NewRenderer()(markdown)
		if err == nil {
			markdown = rendered
		}
	}
	_, err := io.WriteString(w, markdown)
	return err
}
