package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback width when stdout is not a terminal.
const DefaultTermWidth = 100

// DisplayContext holds display parameters for terminal output.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext creates a DisplayContext for stdout.
func NewDisplayContext() *DisplayContext {
	fd := os.Stdout.Fd()
	isTTY := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	width := DefaultTermWidth
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w := parseWidth(cols); w > 0 {
			width = w
		}
	}

	return &DisplayContext{
		TermWidth: width,
		IsTTY:     isTTY,
	}
}

// NewDisplayContextWithWidth creates a DisplayContext with a fixed width.
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{
		TermWidth: width,
		IsTTY:     true,
	}
}

// AvailableWidth returns the usable width after a left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}

func parseWidth(s string) int {
	w := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		w = w*10 + int(r-'0')
	}
	return w
}
