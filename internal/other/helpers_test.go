package other

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/otherengine/other/internal/config"
)

// recordingRunner records every command and answers with codes in order,
// then 0.
type recordingRunner struct {
	calls []Command
	codes []int
}

func (r *recordingRunner) Run(_ context.Context, c Command) (int, error) {
	r.calls = append(r.calls, c)
	if len(r.codes) == 0 {
		return 0, nil
	}
	code := r.codes[0]
	r.codes = r.codes[1:]
	return code, nil
}

type fixture struct {
	ws     *Workspace
	runner *recordingRunner
	out    *bytes.Buffer
}

func newFixture(t *testing.T, p Platform) *fixture {
	t.Helper()
	root := t.TempDir()
	runner := &recordingRunner{}
	out := &bytes.Buffer{}
	ws := &Workspace{
		Root: root,
		Config: &config.Config{
			Path:       filepath.Join(root, config.DefaultFileName),
			EnginePath: config.DefaultEnginePath,
			Projects:   []config.Project{},
			Tools:      map[string]string{},
		},
		Tools: config.Toolchain{
			MSBuild:     "MSBuild.exe",
			Premake:     `premake\premake5.exe`,
			RunScript:   `tools\run.bat`,
			Solution:    "OtherEngine",
			DotnetShell: "pwsh",
		},
		Platform: p,
		Runner:   runner,
		Console:  NewConsole(out, termenv.Ascii),
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return &fixture{ws: ws, runner: runner, out: out}
}

// withMSBuild installs an executable stand-in for MSBuild outside the root.
func (f *fixture) withMSBuild(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "MSBuild.exe")
	write(t, p, "")
	if err := os.Chmod(p, 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	f.ws.Tools.MSBuild = p
	return p
}

func write(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

var (
	windows = Platform{ID: "windows"}
	linux   = Platform{ID: "linux"}
)
