package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// useColor resolves a --color mode for output written to w.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q; valid: auto, always, never", mode)
	}
}
