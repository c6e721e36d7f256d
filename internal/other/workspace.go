package other

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/otherengine/other/internal/config"
)

// Workspace is everything a stage needs besides the settings: where it runs,
// what was configured, and how it reaches the outside world.
type Workspace struct {
	// Root is the working directory searched by the project locator.
	Root     string
	Config   *config.Config
	Tools    config.Toolchain
	Platform Platform
	Runner   Runner
	Console  *Console
	Log      *slog.Logger
}

// EngineDir is the engine root resolved against Root.
func (w *Workspace) EngineDir() string {
	p := config.DefaultEnginePath
	if w.Config != nil && w.Config.EnginePath != "" {
		p = w.Config.EnginePath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(w.Root, p)
}

// exec runs c and folds a start failure into exit code 1.
func (w *Workspace) exec(ctx context.Context, c Command) int {
	w.Log.Debug("exec", "cmd", c.String(), "dir", c.Dir, "quiet", c.Quiet)
	code, err := w.Runner.Run(ctx, c)
	if err != nil {
		w.Console.Failf(" !> could not start %s: %v", c.Name, err)
		return 1
	}
	w.Log.Debug("exit", "cmd", c.Name, "code", code)
	return code
}

// binaryPath is the premake output location of a built executable:
// bin/<Configuration>/<name>/<name>[.exe].
func (w *Workspace) binaryPath(cfg Configuration, name string) string {
	exe := name
	if w.Platform.IsWindows() {
		exe += ".exe"
	}
	return filepath.Join(w.Root, "bin", string(cfg), name, exe)
}
