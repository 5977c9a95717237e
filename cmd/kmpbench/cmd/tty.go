package cmd

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal returns true if w is a file connected to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveColor determines whether to use color output.
// mode is the configured color value: "auto", "always", or "never".
func resolveColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return isTerminal(w)
	}
}
