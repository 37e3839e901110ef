// Package manual holds the long-form help shown by `turing manual`.
package manual

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed manual.md
var source string

// Markdown returns the manual source.
func Markdown() string { return source }

// Render formats the manual for a terminal of the given width. With color off
// the notty style is used so the output carries no escape sequences.
func Render(width int, color bool) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(source)
}
