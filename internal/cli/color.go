package cli

import (
	"errors"
	"io"
	"os"

	"github.com/muesli/termenv"
)

type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// resolveColorProfile picks the console profile for out. NO_COLOR always
// wins; auto additionally needs a terminal outside CI.
func resolveColorProfile(mode string, out io.Writer) (termenv.Profile, error) {
	if mode == "" {
		mode = string(colorAuto)
	}
	switch colorMode(mode) {
	case colorAuto, colorAlways, colorNever:
		// valid
	default:
		return termenv.Ascii, errors.New("invalid --color value (expected auto|always|never)")
	}
	if colorMode(mode) == colorNever || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii, nil
	}
	if colorMode(mode) == colorAlways {
		return termenv.ANSI256, nil
	}

	f, ok := out.(*os.File)
	if !ok || !isTTY(f) {
		return termenv.Ascii, nil
	}
	if os.Getenv("CI") != "" {
		return termenv.Ascii, nil
	}
	return termenv.NewOutput(f).ColorProfile(), nil
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
