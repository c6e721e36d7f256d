package other

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DescriptorKind selects which file extensions the locator accepts.
type DescriptorKind int

const (
	// BuildDescriptor files are consumed by MSBuild.
	BuildDescriptor DescriptorKind = iota
	// ProjectDescriptorFile is the engine's .other project description.
	ProjectDescriptorFile
)

const (
	solutionExt = ".sln"
	projectExt  = ".other"
)

func (k DescriptorKind) Extensions() []string {
	switch k {
	case BuildDescriptor:
		return []string{".vcxproj", ".csproj", solutionExt}
	case ProjectDescriptorFile:
		return []string{projectExt}
	}
	return nil
}

func (k DescriptorKind) accepts(ext string) bool {
	for _, e := range k.Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// ProjectDescriptor is a located .other file.
type ProjectDescriptor struct {
	Name     string
	Dir      string
	Filename string
	Path     string
}

// FindCandidates walks root in lexical order and returns every regular file
// whose stem is exactly name and whose extension belongs to kind.
// Subdirectories that cannot be read are skipped.
func FindCandidates(root, name string, kind DescriptorKind) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil || path == root {
				return err
			}
			// Unreadable entries are skipped; the rest of the tree is still searched.
			slog.Debug("skip unreadable path", "path", path, "err", err)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		base := d.Name()
		ext := filepath.Ext(base)
		if strings.TrimSuffix(base, ext) != name || !kind.accepts(ext) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return out, nil
}

// SelectBuildCandidate drops paths that no longer exist, then prefers the
// first solution file, then the first remaining candidate.
func SelectBuildCandidate(candidates []string) (string, error) {
	existing := make([]string, 0, len(candidates))
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		existing = append(existing, p)
	}
	for _, p := range existing {
		if filepath.Ext(p) == solutionExt {
			return p, nil
		}
	}
	if len(existing) == 0 {
		return "", ErrProjectNotFound
	}
	return existing[0], nil
}

// LocateProject finds the single .other descriptor named name under root.
func LocateProject(root, name string) (ProjectDescriptor, error) {
	paths, err := FindCandidates(root, name, ProjectDescriptorFile)
	if err != nil {
		return ProjectDescriptor{}, err
	}
	switch len(paths) {
	case 0:
		return ProjectDescriptor{}, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	case 1:
	default:
		return ProjectDescriptor{}, fmt.Errorf("%w named %s: %s", ErrAmbiguousProject, name, strings.Join(paths, ", "))
	}
	abs, err := filepath.Abs(paths[0])
	if err != nil {
		return ProjectDescriptor{}, err
	}
	return ProjectDescriptor{
		Name:     name,
		Dir:      filepath.Dir(abs),
		Filename: filepath.Base(abs),
		Path:     abs,
	}, nil
}

// RelDir is the descriptor directory relative to root in "./dir" form.
func (d ProjectDescriptor) RelDir(root string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	rel, err := filepath.Rel(absRoot, d.Dir)
	if err != nil || rel == "." {
		return "."
	}
	return "./" + filepath.ToSlash(rel)
}
