package other

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/shlex"
)

// parseCommand splits a configured command line with shell quoting rules.
// Windows paths must be single-quoted to keep their backslashes.
func parseCommand(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, errors.New("empty command line")
	}
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("split %q: no words", line)
	}
	return argv, nil
}

// resolveExecutable locates tool. Absolute paths are checked as given, paths
// with a separator are taken relative to dir, bare names are looked up on PATH.
func resolveExecutable(tool, dir string) (string, error) {
	switch {
	case tool == "":
		return "", fmt.Errorf("%w: no executable configured", ErrToolNotFound)
	case filepath.IsAbs(tool):
		return tool, checkExecutable(tool)
	case strings.ContainsAny(tool, `/\`):
		p, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(tool)))
		if err != nil {
			return "", err
		}
		return p, checkExecutable(p)
	}
	p, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not on PATH", ErrToolNotFound, tool)
	}
	return p, nil
}

func checkExecutable(path string) error {
	st, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrToolNotFound, path)
	case err != nil:
		return err
	case st.IsDir():
		return fmt.Errorf("%s: is a directory", path)
	case runtime.GOOS != "windows" && st.Mode().Perm()&0o111 == 0:
		return fmt.Errorf("%s: not executable", path)
	}
	return nil
}
