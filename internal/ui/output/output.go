// Package output builds termenv outputs with one color policy for the logger
// and the command renderers.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorProfile returns the detected terminal profile, or Ascii when NO_COLOR is set.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI returns ANSI for piped output, or Ascii when NO_COLOR is set.
func ColorProfileANSI() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// Interactive reports whether w is a terminal.
func Interactive(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// New creates a termenv.Output for w. Terminals get the detected profile,
// everything else gets plain ANSI.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	profile := ColorProfileANSI
	if Interactive(w) {
		profile = ColorProfile
	}

	opts = append(opts,
		termenv.WithProfile(profile()),
		termenv.WithTTY(true),
	)
	return termenv.NewOutput(w, opts...)
}
