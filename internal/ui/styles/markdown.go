package styles

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders release notes for the terminal, wrapped at width.
// With color off the "notty" style is used so the output is safe to pipe.
func RenderMarkdown(md string, width int, color bool) (string, error) {
	style := "notty"
	if color {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
