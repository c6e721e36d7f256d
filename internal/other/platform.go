package other

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/otherengine/other/internal/config"
)

// Platform identifies the host the pipeline runs on.
type Platform struct {
	// ID is "windows" on Windows and WSL, otherwise runtime.GOOS.
	ID string
	// WSL reports Linux under the Windows Subsystem for Linux.
	WSL bool
}

// DetectPlatform inspects the running host.
func DetectPlatform() Platform {
	return detectPlatform(runtime.GOOS, kernelRelease())
}

func detectPlatform(goos, release string) Platform {
	if goos == "windows" {
		return Platform{ID: "windows"}
	}
	if goos == "linux" && strings.Contains(strings.ToLower(release), "microsoft") {
		return Platform{ID: "windows", WSL: true}
	}
	return Platform{ID: goos}
}

// IsWindows is true for native Windows and for WSL, where the Windows
// toolchain is reachable through interop.
func (p Platform) IsWindows() bool { return p.ID == "windows" }

// Host maps the platform onto the toolchain defaults it selects.
func (p Platform) Host() config.Host {
	switch {
	case p.WSL:
		return config.HostWSL
	case p.IsWindows():
		return config.HostWindows
	}
	return config.HostOther
}

func (p Platform) String() string {
	if p.WSL {
		return p.ID + " (wsl)"
	}
	return p.ID
}

func (p Platform) requireWindows(op string) error {
	if p.IsWindows() {
		return nil
	}
	return fmt.Errorf("%s: %w: %s", op, ErrUnsupportedPlatform, p.ID)
}

// HostPath rewrites a path for consumption by a Windows process. Under WSL,
// /mnt/<drive>/rest becomes <DRIVE>:\rest; on Windows hosts separators become
// backslashes. Other hosts get the path unchanged.
func (p Platform) HostPath(path string) string {
	if !p.IsWindows() {
		return path
	}
	if p.WSL {
		slashed := filepath.ToSlash(path)
		if rest, ok := strings.CutPrefix(slashed, "/mnt/"); ok && len(rest) >= 1 {
			drive, tail, _ := strings.Cut(rest, "/")
			if len(drive) == 1 {
				return strings.ToUpper(drive) + `:\` + strings.ReplaceAll(tail, "/", `\`)
			}
		}
		if strings.HasPrefix(slashed, "/") {
			// Linux-only location; nothing better to hand to Windows.
			return path
		}
	}
	return strings.ReplaceAll(path, "/", `\`)
}
