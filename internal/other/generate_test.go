package other

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/otherengine/other/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFiles_RoundTrip(t *testing.T) {
	f := newFixture(t, linux)
	f.ws.Config.Projects = []config.Project{{Name: "sandbox", Path: "tests/sandbox"}}
	g := NewGenerator(f.ws)
	spec := FileSpec{Project: "sandbox", Directory: "core/io", Filename: "reader"}

	require.Equal(t, 0, g.GenerateFiles(spec))
	dir := filepath.Join(f.ws.Root, "tests", "sandbox", "src", "core", "io")
	hpp := filepath.Join(dir, "reader.hpp")
	cpp := filepath.Join(dir, "reader.cpp")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	header, err := os.ReadFile(hpp)
	require.NoError(t, err)
	assert.Contains(t, string(header), "#ifndef OTHER_ENGINE_READER_HPP")
	assert.Contains(t, string(header), `\file core/io/reader.hpp`)
	source, err := os.ReadFile(cpp)
	require.NoError(t, err)
	assert.Contains(t, string(source), `#include "core/io/reader.hpp"`)

	write(t, hpp, "edited")
	assert.Equal(t, 1, g.GenerateFiles(spec))
	after, err := os.ReadFile(hpp)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(after))
	again, err := os.ReadFile(cpp)
	require.NoError(t, err)
	assert.Equal(t, source, again)
	assert.Contains(t, f.out.String(), "already exists")
}

func TestGenerateFiles_OneExistingFileBlocksBoth(t *testing.T) {
	f := newFixture(t, linux)
	g := NewGenerator(f.ws)
	dir := filepath.Join(f.ws.Root, "OtherEngine", "src", "core")
	write(t, filepath.Join(dir, "thing.cpp"), "keep")

	assert.Equal(t, 1, g.GenerateFiles(FileSpec{Project: "OtherEngine", Directory: "core", Filename: "thing"}))
	assert.NoFileExists(t, filepath.Join(dir, "thing.hpp"))
}

func TestGenerateProjectDescriptor(t *testing.T) {
	f := newFixture(t, linux)
	g := NewGenerator(f.ws)

	require.Equal(t, 0, g.GenerateProjectDescriptor("sandbox", ""))
	p := filepath.Join(f.ws.Root, "tests", "sandbox", "sandbox.other")
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	for _, want := range []string{"[project]", `name = "sandbox"`, "[window]", `title = "Other Engine sandbox"`, "[log]", `path = "./logs/sandbox.log"`} {
		assert.Contains(t, string(data), want)
	}

	write(t, p, "mine")
	assert.Equal(t, 1, g.GenerateProjectDescriptor("sandbox", ""))
	data, _ = os.ReadFile(p)
	assert.Equal(t, "mine", string(data))

	assert.Equal(t, 1, g.GenerateProjectDescriptor("", "x"))
}

func TestGenerateProjects(t *testing.T) {
	f := newFixture(t, windows)
	require.Equal(t, 0, NewGenerator(f.ws).GenerateProjects(context.Background(), false))
	require.Len(t, f.runner.calls, 1)
	c := f.runner.calls[0]
	assert.Equal(t, "cmd.exe", c.Name)
	assert.Equal(t, []string{"/c", `premake\premake5.exe`, "vs2022"}, c.Args)
	assert.Equal(t, f.ws.EngineDir(), c.Dir)

	lf := newFixture(t, linux)
	assert.Equal(t, 1, NewGenerator(lf.ws).GenerateProjects(context.Background(), false))
	assert.Empty(t, lf.runner.calls)
}
