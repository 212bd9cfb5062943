package outputstyle

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode defines color output behavior.
type ColorMode string

const (
	ColorModeAuto   ColorMode = "auto"   // Color when TTY
	ColorModeAlways ColorMode = "always" // Always color
	ColorModeNever  ColorMode = "never"  // No color
)

// ParseColorMode validates a mode name. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorModeAuto:
		return ColorModeAuto, nil
	case ColorModeAlways, ColorModeNever:
		return ColorMode(s), nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Decorated reports whether output written to w should carry ANSI colors.
// In auto mode that is the case for terminals, unless NO_COLOR is set or
// TERM is "dumb".
func (m ColorMode) Decorated(w io.Writer) bool {
	switch m {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
