package other

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var (
	headerTemplate = template.Must(template.New("hpp").Parse(`/**
 * \file {{.Directory}}/{{.Filename}}.hpp
 **/
#ifndef OTHER_ENGINE_{{.Guard}}_HPP
#define OTHER_ENGINE_{{.Guard}}_HPP

namespace other {



} // namespace other

#endif // !OTHER_ENGINE_{{.Guard}}_HPP
`))

	sourceTemplate = template.Must(template.New("cpp").Parse(`/**
 * \file {{.Directory}}/{{.Filename}}.cpp
 **/
#include "{{.Directory}}/{{.Filename}}.hpp"

namespace other {



} // namespace other
`))

	descriptorTemplate = template.Must(template.New("other").Parse(`[project]
name = "{{.Name}}"
author = "<no-author>"
version = 0.0.1
need-primary-scene = false

[window]
width = 1280
height = 720
title = "Other Engine {{.Name}}"

[log]
console-level = "trace"
file-level = "trace"
path = "./logs/{{.Name}}.log"
`))
)

// Generator writes engine source templates and project files.
type Generator struct {
	ws *Workspace
}

func NewGenerator(ws *Workspace) *Generator { return &Generator{ws: ws} }

// SourceRoot is <project path>/src for a registered project, otherwise
// <engine>/<project>/src.
func (g *Generator) SourceRoot(project string) string {
	if p, ok := g.ws.Config.FindProject(project); ok {
		dir := p.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(g.ws.Root, dir)
		}
		return filepath.Join(dir, "src")
	}
	return filepath.Join(g.ws.EngineDir(), project, "src")
}

// GenerateFiles writes <filename>.hpp and <filename>.cpp under
// <source root>/<directory>. Nothing is written if either file exists.
// The pair is not written atomically.
func (g *Generator) GenerateFiles(spec FileSpec) int {
	c := g.ws.Console
	if spec.Directory == "" || spec.Filename == "" {
		c.Failf(" !> a directory and a file name are required")
		return 1
	}
	c.Printf("Generating files...")
	c.Printf(" > project: %s", spec.Project)
	c.Printf(" > directory: %s", spec.Directory)
	c.Printf(" > filename: %s", spec.Filename)

	dir := filepath.Join(g.SourceRoot(spec.Project), filepath.FromSlash(spec.Directory))
	hpp := filepath.Join(dir, spec.Filename+".hpp")
	cpp := filepath.Join(dir, spec.Filename+".cpp")
	if fileExists(hpp) || fileExists(cpp) {
		c.Failf(" !> one of the .cpp/.hpp pair (or both) already exists!")
		return 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.Failf(" !> create %s: %v", dir, err)
		return 1
	}

	data := struct {
		Directory string
		Filename  string
		Guard     string
	}{
		Directory: filepath.ToSlash(spec.Directory),
		Filename:  spec.Filename,
		Guard:     strings.ToUpper(spec.Filename),
	}
	c.Printf(" > creating files: [%s]\n  - %s\n  - %s", data.Guard, cpp, hpp)
	if err := writeTemplate(hpp, headerTemplate, data); err != nil {
		c.Failf(" !> %v", err)
		return 1
	}
	if err := writeTemplate(cpp, sourceTemplate, data); err != nil {
		c.Failf(" !> %v", err)
		return 1
	}
	return 0
}

// GenerateProjects regenerates the Visual Studio solution with premake.
func (g *Generator) GenerateProjects(ctx context.Context, verbose bool) int {
	if err := g.ws.Platform.requireWindows("generate-projects"); err != nil {
		g.ws.Console.Failf(" !> %v", err)
		return 1
	}
	g.ws.Console.Printf(" > Generating project files...")
	return g.ws.exec(ctx, Command{
		Name:  "cmd.exe",
		Args:  []string{"/c", g.ws.Platform.HostPath(g.ws.Tools.Premake), "vs2022"},
		Dir:   g.ws.EngineDir(),
		Quiet: !verbose,
	})
}

// GenerateProjectDescriptor writes tests/<path>/<name>.other. path defaults
// to name. An existing descriptor is left untouched.
func (g *Generator) GenerateProjectDescriptor(name, path string) int {
	c := g.ws.Console
	if strings.TrimSpace(name) == "" {
		c.Failf("Please provide a name for the project (-n)")
		return 1
	}
	if path == "" {
		path = name
	}
	dir := filepath.Join(g.ws.Root, "tests", filepath.FromSlash(path))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.Failf(" !> create %s: %v", dir, err)
			return 1
		}
		c.Printf("Created directory: %s", dir)
	}
	file := filepath.Join(dir, name+projectExt)
	if fileExists(file) {
		c.Failf(" !> %s already exists!", file)
		return 1
	}
	c.Printf("Generating project: %s", name)
	if err := writeTemplate(file, descriptorTemplate, struct{ Name string }{name}); err != nil {
		c.Failf(" !> %v", err)
		return 1
	}
	return 0
}

func writeTemplate(path string, t *template.Template, data any) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := t.Execute(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
