package other

import (
	"context"
	"path/filepath"
)

// Hash runs the engine's fnv tool on input and returns its exit code as is.
func Hash(ctx context.Context, ws *Workspace, input string, cfg Configuration) int {
	exe := ws.binaryPath(cfg, "fnv")
	if ws.Platform.IsWindows() {
		rel, err := filepath.Rel(ws.Root, exe)
		if err != nil {
			rel = exe
		}
		return ws.exec(ctx, Command{
			Name: "cmd.exe",
			Args: []string{"/c", `.\` + ws.Platform.HostPath(rel), input},
			Dir:  ws.Root,
		})
	}
	return ws.exec(ctx, Command{Name: exe, Args: []string{input}, Dir: ws.Root})
}
