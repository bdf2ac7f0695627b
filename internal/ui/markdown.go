package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown content for terminal display.
func RenderMarkdown(content string, width int, codeTheme string) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	}
	if codeTheme != "" {
		opts = append(opts, glamour.WithStylePath(codeTheme))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single one.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}
