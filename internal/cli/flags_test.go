package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestNormalizeArgs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"variadic then single", []string{"-b", "Core", "Editor", "-c", "release"}, []string{"--build=Core", "--build=Editor", "--config=release"}},
		{"bare variadic", []string{"-t", "-v"}, []string{"--test=", "--verbose"}},
		{"forwarded dash tokens", []string{"-r", "game", "--fullscreen", "-w", "1280"}, []string{"--run=game", "--run=--fullscreen", "--run=-w", "--run=1280"}},
		{"multi-letter shorts", []string{"-gp", "-vp", "-fnv", "x", "-rdn", "Tool"}, []string{"--generate-projects", "--view-platform", "--fnv=x", "--run-dotnet=Tool"}},
		{"exact arity", []string{"-gf", "OtherEngine", "core", "thing"}, []string{"--generate-files=OtherEngine", "--generate-files=core", "--generate-files=thing"}},
		{"inline long value", []string{"--pipeline-config=alt.toml", "--color=never"}, []string{"--pipeline-config=alt.toml", "--color=never"}},
		{"help passes through", []string{"-b", "-h"}, []string{"--build=", "-h"}},
		{"legacy", []string{"-lc", "build", "foo", "-c=release", "run", "bar"}, []string{"--legacy-cmd=build", "--legacy-cmd=foo", "--legacy-cmd=-c=release", "--legacy-cmd=run", "--legacy-cmd=bar"}},
		{"empty", nil, []string{}},
	}
	for _, c := range cases {
		got, err := normalizeArgs(c.in)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestNormalizeArgs_Errors(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-gf", "a", "b"}, "argument -gf/--generate-files: expected 3 arguments"},
		{[]string{"-e"}, "argument -e/--edit: expected one argument"},
		{[]string{"-c", "fast"}, "argument -c/--config: invalid choice: 'fast' (choose from 'debug', 'release')"},
		{[]string{"--color=sometimes"}, "argument --color: invalid choice: 'sometimes'"},
		{[]string{"build", "-v", "extra"}, "unrecognized arguments: build extra"},
		{[]string{"-gp=1"}, "unrecognized arguments: -gp=1"},
		{[]string{"--verbose=1"}, "argument -v/--verbose: ignored explicit argument '1'"},
	}
	for _, c := range cases {
		_, err := normalizeArgs(c.args)
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Fatalf("normalizeArgs(%q) error = %v, want %q", c.args, err, c.want)
		}
	}
}

func TestIsFlagToken(t *testing.T) {
	for _, tok := range []string{"-lc", "--legacy-cmd", "-rdn", "--config=release", "--pipeline-config"} {
		if !isFlagToken(tok) {
			t.Fatalf("%q should be a flag token", tok)
		}
	}
	for _, tok := range []string{"-c=release", "-n=game", "build", "--fullscreen", "-h"} {
		if isFlagToken(tok) {
			t.Fatalf("%q should not be a flag token", tok)
		}
	}
}

func TestLegacyFlagArity(t *testing.T) {
	cases := []struct {
		tok  string
		n    int
		flag bool
	}{
		{"--pipeline-config", 1, true},
		{"--color", 1, true},
		{"-c", 1, true},
		{"-gf", 3, true},
		{"--pipeline-config=x.toml", 0, true},
		{"-lc", 0, true},
		{"-b", 0, true},
		{"-v", 0, true},
		{"-c=release", 0, false},
		{"genother", 0, false},
	}
	for _, c := range cases {
		n, ok := legacyFlagArity(c.tok)
		if n != c.n || ok != c.flag {
			t.Fatalf("legacyFlagArity(%q) = %d, %v; want %d, %v", c.tok, n, ok, c.n, c.flag)
		}
	}
}

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	normalized, err := normalizeArgs(args)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	fs := pflag.NewFlagSet("other", pflag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse(normalized); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return fs
}

func TestRawFlags(t *testing.T) {
	args := []string{"-b", "-r", "game", "--x", "-e", "sandbox", "-gf", "a", "b", "c", "-gf", "p", "d", "f", "-fnv", "abc"}
	raw := rawFlags(parseFlags(t, args...), args)

	if !raw.Build.Requested || len(raw.Build.Names) != 0 {
		t.Fatalf("bare --build should request a full build: %+v", raw.Build)
	}
	if diff := cmp.Diff([]string{"game", "--x"}, raw.Run.Names); diff != "" {
		t.Fatalf("run names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sandbox"}, raw.Edit); diff != "" {
		t.Fatalf("edit (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p", "d", "f"}, raw.GenerateFiles); diff != "" {
		t.Fatalf("generate-files keeps the last occurrence (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"abc"}, raw.FNV); diff != "" {
		t.Fatalf("fnv (-want +got):\n%s", diff)
	}
	if raw.Config != "debug" || raw.Test.Requested || raw.NoArgs || raw.Legacy {
		t.Fatalf("unexpected defaults: %+v", raw)
	}

	legacy := []string{"-lc", "build", "foo"}
	raw = rawFlags(parseFlags(t, legacy...), legacy)
	if !raw.Legacy || strings.Join(raw.LegacyCommands, " ") != "build foo" {
		t.Fatalf("legacy flags not collected: %+v", raw)
	}
	if !rawFlags(parseFlags(t), nil).NoArgs {
		t.Fatalf("expected NoArgs for an empty command line")
	}
}

func TestRenderUsage(t *testing.T) {
	var buf bytes.Buffer
	renderUsage(&buf, "other")
	out := buf.String()
	for _, want := range []string{
		"usage: other",
		"-gf, --generate-files PROJECT DIR FILE",
		"-b, --build [TARGET ...]",
		"-c, --config {debug,release}",
		"(default: debug)",
		"--pipeline-config PATH",
		"[[project]]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("usage missing %q:\n%s", want, out)
		}
	}
}
