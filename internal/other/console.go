package other

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Console writes the short user-facing progress lines of the pipeline.
// Colours are dropped when the profile is termenv.Ascii.
type Console struct {
	out *termenv.Output
}

func NewConsole(w io.Writer, profile termenv.Profile) *Console {
	return &Console{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

func (c *Console) Writer() io.Writer { return c.out }

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Successf(format string, args ...any) {
	c.styled("2", false, format, args...)
}

func (c *Console) Failf(format string, args ...any) {
	c.styled("1", false, format, args...)
}

func (c *Console) Warnf(format string, args ...any) {
	c.styled("3", false, format, args...)
}

func (c *Console) Headerf(format string, args ...any) {
	c.styled("6", true, format, args...)
}

func (c *Console) styled(color string, bold bool, format string, args ...any) {
	s := c.out.String(fmt.Sprintf(format, args...)).Foreground(c.out.Color(color))
	if bold {
		s = s.Bold()
	}
	fmt.Fprintln(c.out, s.String())
}
