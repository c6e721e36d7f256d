package other

import (
	"context"
	"strings"
)

// TestRunner runs the engine's unit-test executable.
type TestRunner struct {
	ws *Workspace
}

func NewTestRunner(ws *Workspace) *TestRunner { return &TestRunner{ws: ws} }

// Run executes the suite, narrowed by s.Test.Names when present.
func (r *TestRunner) Run(ctx context.Context, s Settings) int {
	if !s.Test.Requested {
		return 0
	}
	var args []string
	if f := TestFilter(s.Test.Names); f != "" {
		args = append(args, f)
	}
	c := Command{
		Name: r.ws.binaryPath(s.Configuration, "unit_tests"),
		Args: args,
		Dir:  r.ws.Root,
	}
	r.ws.Console.Printf("> running unit tests")
	r.ws.Console.Printf("   > %s", c.String())
	return r.ws.exec(ctx, c)
}

// TestFilter turns test names into a --gtest_filter argument. A bare suite
// name selects all of its cases; a leading '-' excludes instead. Names that
// already contain a '.' are passed through. No names yields "".
func TestFilter(names []string) string {
	var include, exclude []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || n == "-" {
			continue
		}
		if neg, ok := strings.CutPrefix(n, "-"); ok {
			exclude = append(exclude, testPattern(neg))
			continue
		}
		include = append(include, testPattern(n))
	}
	if len(include) == 0 && len(exclude) == 0 {
		return ""
	}
	f := "--gtest_filter=" + strings.Join(include, ":")
	if len(exclude) > 0 {
		f += "-" + strings.Join(exclude, ":")
	}
	return f
}

func testPattern(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".*"
}
