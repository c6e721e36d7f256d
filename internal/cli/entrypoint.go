package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/otherengine/other/internal/other"
)

// ExecuteEntrypoint is the single bootstrap for the other binary.
// Invoked as other-editor (a symlink or renamed copy) it only builds and launches.
func ExecuteEntrypoint() {
	Execute(capabilitiesFor(os.Args[0]))
}

func capabilitiesFor(argv0 string) other.Capabilities {
	base := strings.ToLower(filepath.Base(argv0))
	if runtime.GOOS == "windows" {
		base = strings.TrimSuffix(base, ".exe")
	}

	switch base {
	case "other-editor", "oe-editor":
		return other.EditorPipeline
	default:
		return other.ToolPipeline
	}
}
