package helpers

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/coral-mesh/fpgaprof/internal/config"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	//nolint:gosec // G115: file descriptors fit in int.
	return term.IsTerminal(int(f.Fd()))
}

// UseColor resolves a color mode for output written to w. The auto mode
// colors terminals unless NO_COLOR is set.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		_, noColor := os.LookupEnv("NO_COLOR")
		return !noColor && IsTerminal(w)
	}
}
