package other

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArity(tok string) (int, bool) {
	switch tok {
	case "-lc", "--legacy-cmd", "-v", "--verbose":
		return 0, true
	case "-c", "--pipeline-config":
		return 1, true
	}
	return 0, false
}

func TestGroupLegacyArgs(t *testing.T) {
	tokens := PartitionLegacyArgs([]string{"--legacy-cmd", "build", "foo", "run", "bar"}, testArity)
	if diff := cmp.Diff([]string{"build", "foo", "run", "bar"}, tokens); diff != "" {
		t.Fatalf("partition (-want +got):\n%s", diff)
	}
	want := [][]string{{"build", "foo"}, {"run", "bar"}}
	if diff := cmp.Diff(want, GroupLegacyArgs(tokens)); diff != "" {
		t.Fatalf("groups (-want +got):\n%s", diff)
	}
}

func TestPartitionLegacyArgs_DropsFlagValues(t *testing.T) {
	got := PartitionLegacyArgs([]string{"--pipeline-config", "alt.toml", "-lc", "genother", "-n=sandbox", "-c", "release"}, testArity)
	if diff := cmp.Diff([]string{"genother", "-n=sandbox"}, got); diff != "" {
		t.Fatalf("partition (-want +got):\n%s", diff)
	}
	// A trailing flag missing its value does not run past the end.
	assert.Empty(t, PartitionLegacyArgs([]string{"-lc", "--pipeline-config"}, testArity))
}

func TestGroupLegacyArgs_KeepsOrder(t *testing.T) {
	tokens := PartitionLegacyArgs([]string{"-v", "fnv", "-i=abc", "-lc", "buildsln", "-c=release", "genprojects"}, testArity)
	want := [][]string{{"fnv", "-i=abc"}, {"buildsln", "-c=release"}, {"genprojects"}}
	if diff := cmp.Diff(want, GroupLegacyArgs(tokens)); diff != "" {
		t.Fatalf("groups (-want +got):\n%s", diff)
	}

	// A leading unknown token forms its own group and is rejected on dispatch.
	got := GroupLegacyArgs([]string{"bogus", "x", "build"})
	if diff := cmp.Diff([][]string{{"bogus", "x"}, {"build"}}, got); diff != "" {
		t.Fatalf("groups (-want +got):\n%s", diff)
	}
	assert.Empty(t, GroupLegacyArgs(nil))
}

func TestLookupLegacyCommand(t *testing.T) {
	c, err := LookupLegacyCommand("genfile")
	require.NoError(t, err)
	assert.Equal(t, LegacyGenFile, c)
	assert.Equal(t, "genfile", c.String())

	_, err = LookupLegacyCommand("bogus")
	assert.True(t, errors.Is(err, ErrInvalidLegacyCommand))
	assert.Len(t, LegacyCommandNames(), 7)
}

func TestParseLegacyArgs(t *testing.T) {
	a := parseLegacyArgs([]string{"-n=game", "pos", "-c=release", "plain=value"})
	assert.Equal(t, "game", a.get("-n", ""))
	assert.Equal(t, "release", a.get("-c", ""))
	assert.Equal(t, "fallback", a.get("-d", "fallback"))
	assert.Equal(t, []string{"pos", "plain=value"}, a.positional)
}

func TestLegacyRouter_InvalidCommand(t *testing.T) {
	f := newFixture(t, linux)
	r := NewLegacyRouter(f.ws, Settings{Configuration: Debug})

	assert.Equal(t, -1, r.Dispatch(context.Background(), []string{"bogus"}))
	assert.Equal(t, 1, r.Run(context.Background(), []string{"-lc", "bogus"}, testArity))
	assert.Contains(t, f.out.String(), "Invalid Commands [bogus]")
}

func TestLegacyRouter_StopsAtFirstFailure(t *testing.T) {
	f := newFixture(t, linux)
	f.runner.codes = []int{5}
	r := NewLegacyRouter(f.ws, Settings{Configuration: Debug})

	res := r.Run(context.Background(), []string{"-lc", "run", "-n=game", "-c=release", "extra", "fnv", "-i=abc"}, testArity)
	assert.Equal(t, 1, res)
	require.Len(t, f.runner.calls, 1)

	c := f.runner.calls[0]
	assert.Equal(t, filepath.Join(f.ws.Root, "bin", "Release", "game", "game"), c.Name)
	assert.Equal(t, []string{"extra"}, c.Args)
	out := f.out.String()
	assert.Contains(t, out, "[Executing Command] -> run")
	assert.Contains(t, out, "[Flags] -> -n=game , -c=release , extra")
	assert.NotContains(t, out, "[Executing Command] -> fnv")
}

func TestLegacyRouter_Sequence(t *testing.T) {
	f := newFixture(t, linux)
	r := NewLegacyRouter(f.ws, Settings{Configuration: Debug})

	res := r.Run(context.Background(), []string{
		"--legacy-cmd",
		"genfile", "-n=thing", "-d=core", "-p=OtherEngine",
		"genother", "-n=sandbox",
		"fnv", "hello",
	}, testArity)
	require.Equal(t, 0, res)

	assert.FileExists(t, filepath.Join(f.ws.Root, "OtherEngine", "src", "core", "thing.hpp"))
	assert.FileExists(t, filepath.Join(f.ws.Root, "tests", "sandbox", "sandbox.other"))
	require.Len(t, f.runner.calls, 1)
	assert.Equal(t, []string{"hello"}, f.runner.calls[0].Args)
}

func TestLegacyRouter_MissingArguments(t *testing.T) {
	f := newFixture(t, linux)
	r := NewLegacyRouter(f.ws, Settings{Configuration: Debug})

	assert.Equal(t, 1, r.Dispatch(context.Background(), []string{"genfile", "-n=thing"}))
	assert.Equal(t, 1, r.Dispatch(context.Background(), []string{"run"}))
	assert.Equal(t, 1, r.Dispatch(context.Background(), []string{"fnv"}))
	assert.Empty(t, f.runner.calls)
}
