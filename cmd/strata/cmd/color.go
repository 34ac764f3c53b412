package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type colorSetting int

const (
	colorAuto colorSetting = iota
	colorAlways
	colorNever
)

var colorMode = colorAuto

func parseColorMode(s string) (colorSetting, error) {
	switch s {
	case "auto":
		return colorAuto, nil
	case "always":
		return colorAlways, nil
	case "never":
		return colorNever, nil
	}
	return colorAuto, fmt.Errorf("invalid --color value %q (use auto, always or never)", s)
}

// colorEnabled reports whether w should receive ANSI escapes. In auto mode
// only terminals do, and NO_COLOR turns color off.
func colorEnabled(w io.Writer) bool {
	switch colorMode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

func paint(w io.Writer, code, s string) string {
	if !colorEnabled(w) {
		return s
	}
	return code + s + ansiReset
}
