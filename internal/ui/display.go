package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback width when detection fails.
const DefaultTermWidth = 80

// maxProseWidth caps rendered Markdown so guides stay readable on wide
// terminals.
const maxProseWidth = 100

// DisplayContext captures where output is going: whether stdout is a
// terminal, and how wide.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext probes stdout. Cygwin and MSYS ptys look like pipes to
// term.IsTerminal, so the isatty probe covers them at the fallback width.
func NewDisplayContext() *DisplayContext {
	fd := os.Stdout.Fd()
	tty := term.IsTerminal(fd)

	width := DefaultTermWidth
	if tty {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	} else if isatty.IsCygwinTerminal(fd) {
		tty = true
	}

	return &DisplayContext{TermWidth: width, IsTTY: tty}
}

// FixedDisplayContext pins the width, for tests and non-interactive renders.
func FixedDisplayContext(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// ProseWidth returns the width Markdown should wrap at: the terminal width
// capped to a readable measure.
func (d *DisplayContext) ProseWidth() int {
	if d.TermWidth > maxProseWidth {
		return maxProseWidth
	}
	return d.TermWidth
}
