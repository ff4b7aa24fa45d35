// Package console writes user-facing messages, with errors in red.
//
// Colour is decided per Console, never through process-wide terminal
// state, so concurrent writers and tests do not interfere.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// EnvNoColor disables colour when set to any value (https://no-color.org).
const EnvNoColor = "NO_COLOR"

// Console writes informational messages to Out and errors to Err.
type Console struct {
	Out io.Writer
	Err io.Writer

	errColor *color.Color
}

// New creates a Console. When useColor is false, output is plain text.
func New(out, errw io.Writer, useColor bool) *Console {
	c := color.New(color.FgRed)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return &Console{Out: out, Err: errw, errColor: c}
}

// Infof writes a plain line to Out.
func (c *Console) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Out, format+"\n", args...)
}

// Errorf writes a red line to Err.
func (c *Console) Errorf(format string, args ...any) {
	_, _ = c.errColor.Fprintf(c.Err, format, args...)
	_, _ = fmt.Fprintln(c.Err)
}

// Error writes err in red to Err. A nil error writes nothing.
func (c *Console) Error(err error) {
	if err == nil {
		return
	}
	c.Errorf("%s", err.Error())
}

// UseColor reports whether colour output should be used for w.
// Colour requires a terminal, no NO_COLOR in the environment and no
// explicit opt-out from flags or config.
func UseColor(w io.Writer, getenv func(string) string, disabled bool) bool {
	if disabled || getenv(EnvNoColor) != "" {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
