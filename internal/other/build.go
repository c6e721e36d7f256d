// internal/other/build.go

package other

import (
	"context"
	"errors"
	"path/filepath"
)

// Builder drives MSBuild. It is stateless between calls.
type Builder struct {
	ws *Workspace
}

func NewBuilder(ws *Workspace) *Builder { return &Builder{ws: ws} }

// Dispatch performs the build requested by s: nothing, a full build for an
// empty target list, or each target in order until the first failure.
func (b *Builder) Dispatch(ctx context.Context, s Settings) int {
	if !s.Build.Requested {
		return 0
	}
	if len(s.Build.Names) == 0 {
		return b.FullBuild(ctx, s.Configuration, s.Verbose)
	}
	for _, target := range s.Build.Names {
		if res := b.BuildTarget(ctx, target, s.Configuration, s.Verbose); res != 0 {
			return res
		}
	}
	return 0
}

// FullBuild builds the top-level solution in the engine directory.
func (b *Builder) FullBuild(ctx context.Context, cfg Configuration, verbose bool) int {
	b.ws.Console.Printf(" > Performing full rebuild in [%s] Configuration", cfg)

	msbuild, ok := b.msbuild()
	if !ok {
		return 1
	}
	solution := b.ws.Tools.Solution + solutionExt
	argv := ComposeBuildCommand(b.ws.Platform, msbuild, solution, cfg, false)
	res := b.ws.exec(ctx, Command{
		Name:  argv[0],
		Args:  argv[1:],
		Dir:   b.ws.EngineDir(),
		Quiet: !verbose,
	})
	if res == 0 {
		b.ws.Console.Successf(" > full build successful")
	} else {
		b.ws.Console.Failf(" !> full build failed!")
	}
	return res
}

// BuildTarget builds the descriptor located for target. When none exists the
// whole solution is rebuilt instead, with the same configuration and verbosity.
func (b *Builder) BuildTarget(ctx context.Context, target string, cfg Configuration, verbose bool) int {
	candidates, err := FindCandidates(b.ws.Root, target, BuildDescriptor)
	if err != nil {
		b.ws.Console.Failf(" !> %v", err)
		return 1
	}
	path, err := SelectBuildCandidate(candidates)
	if errors.Is(err, ErrProjectNotFound) {
		b.ws.Console.Warnf("No project file found for %s", target)
		b.ws.Console.Printf(" > defaulting to full rebuild")
		return b.FullBuild(ctx, cfg, verbose)
	}

	msbuild, ok := b.msbuild()
	if !ok {
		return 1
	}
	rel, err := filepath.Rel(b.ws.Root, path)
	if err != nil {
		rel = path
	}
	b.ws.Console.Printf(" > Building %s in [%s] Configuration", rel, cfg)
	argv := ComposeBuildCommand(b.ws.Platform, msbuild, rel, cfg, true)
	return b.ws.exec(ctx, Command{
		Name:  argv[0],
		Args:  argv[1:],
		Dir:   b.ws.Root,
		Quiet: !verbose,
	})
}

// msbuild checks the host and resolves the MSBuild executable, printing the
// reason when either check fails.
func (b *Builder) msbuild() (string, bool) {
	if err := b.ws.Platform.requireWindows("build"); err != nil {
		b.ws.Console.Failf(" !> %v", err)
		return "", false
	}
	path, err := resolveExecutable(b.ws.Tools.MSBuild, b.ws.Root)
	if err != nil {
		b.ws.Console.Failf(" > Failed to find MSBuild at [%s]", b.ws.Tools.MSBuild)
		b.ws.Console.Printf("   > Ensure that MSBuild is installed and available in PATH and MSBUILD environment variable is set")
		b.ws.Log.Debug("msbuild lookup", "err", err)
		return "", false
	}
	b.ws.Log.Debug("found msbuild", "path", path)
	return path, true
}

// ComposeBuildCommand returns the argv that builds descriptor with MSBuild.
// MSBuild always runs through cmd.exe; under WSL its path is translated to
// the Windows form first. projectOnly skips rebuilding project references.
func ComposeBuildCommand(p Platform, msbuild, descriptor string, cfg Configuration, projectOnly bool) []string {
	argv := []string{
		"cmd.exe", "/c",
		p.HostPath(msbuild),
		p.HostPath(descriptor),
		"/p:Configuration=" + string(cfg),
	}
	if projectOnly {
		argv = append(argv, "/p:BuildProjectReferences=false")
	}
	return argv
}
