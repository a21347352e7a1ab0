package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/termuxdev/internal/presentation/tui"
	"golang.org/x/term"
)

// Output prints markdown, rendered with glamour on a terminal and raw otherwise.
type Output struct {
	w      io.Writer
	render tui.RenderFunc
}

// NewOutput picks the renderer for w. plain forces raw markdown.
func NewOutput(w io.Writer, plain bool) *Output {
	render := tui.Plain
	if !plain && IsTerminal(w) {
		width := 0
		if f, ok := w.(*os.File); ok {
			if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
				width = cols - 4
			}
		}
		render = tui.NewRenderer(width)
	}
	return &Output{w: w, render: render}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Print renders markdown and writes it out. If rendering fails the raw text is printed.
func (o *Output) Print(markdown string) error {
	out, err := o.render(markdown)
	if err != nil {
		out = markdown
	}
	_, err = fmt.Fprint(o.w, out)
	return err
}

// Raw writes text without rendering, for output meant to be piped into files.
func (o *Output) Raw(text string) error {
	_, err := fmt.Fprintln(o.w, text)
	return err
}

// IsTerminalReader reports whether r is an interactive terminal.
func IsTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
