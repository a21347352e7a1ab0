package tui

import (
	"github.com/charmbracelet/glamour"
)

// RenderFunc turns markdown into terminal output.
type RenderFunc func(markdown string) (string, error)

// NewRenderer returns a RenderFunc backed by glamour.
// wordWrap <= 0 keeps glamour's default width. If the renderer cannot be built the
// markdown is passed through unchanged.
func NewRenderer(wordWrap int) RenderFunc {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wordWrap))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return Plain
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Plain returns markdown as-is. Used when stdout is not a terminal or --plain is set.
func Plain(markdown string) (string, error) {
	return markdown, nil
}
