// Package output picks color profiles per destination writer.
//
// A writer that is not a terminal gets plain text unless CLICOLOR_FORCE is set.
// NO_COLOR always wins.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Profile returns the color profile to use for w, which defaults to stderr.
func Profile(w io.Writer) termenv.Profile {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// New creates a termenv.Output for w, which defaults to stderr.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(Profile(w)))
}

// Renderer creates a lipgloss renderer for w, which defaults to stdout.
func Renderer(w io.Writer) *lipgloss.Renderer {
	if w == nil {
		w = os.Stdout
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(Profile(w))
	return r
}
