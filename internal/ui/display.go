package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// DisplayContext holds display parameters for one output stream.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the stream is a terminal
}

// NewDisplayContext inspects w. Anything other than a terminal file gets the
// plain-text context.
func NewDisplayContext(w io.Writer) *DisplayContext {
	f, ok := w.(*os.File)
	if !ok || !IsTerminal(f) {
		return &DisplayContext{TermWidth: DefaultTermWidth}
	}

	width := DefaultTermWidth
	if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
		width = w
	}
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// NewDisplayContextWithWidth creates a terminal DisplayContext with a fixed
// width (for testing).
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// IsTerminal reports whether f is attached to a terminal, including cygwin
// and msys ptys.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}
