package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// DisplayContext holds display parameters, auto-detecting terminal width.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext creates a DisplayContext, auto-detecting terminal
// dimensions from stdout.
func NewDisplayContext() *DisplayContext {
	fd := os.Stdout.Fd()
	isTTY := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	width := DefaultTermWidth
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	return &DisplayContext{TermWidth: width, IsTTY: isTTY}
}
