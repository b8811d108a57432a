package tui

import (
	"github.com/charmbracelet/glamour"
)

// RenderFunc turns markdown into terminal output.
type RenderFunc func(markdown string) (string, error)

// NewRenderer returns a function that renders markdown using glamour.
// Light or dark style is detected from the terminal background.
func NewRenderer(width int) (RenderFunc, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Plain returns markdown unchanged, for pipes and redirected output.
func Plain(markdown string) (string, error) {
	return markdown, nil
}
