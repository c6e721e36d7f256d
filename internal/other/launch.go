package other

import (
	"context"
	"errors"
	"path/filepath"
)

// Launcher starts built executables: the editor, a plain project run, or a
// managed (dotnet) project.
type Launcher struct {
	ws *Workspace
}

func NewLauncher(ws *Workspace) *Launcher { return &Launcher{ws: ws} }

// Dispatch runs the first applicable of edit, run and run-dotnet.
func (l *Launcher) Dispatch(ctx context.Context, s Settings) int {
	switch {
	case s.Edit != "":
		return l.Edit(ctx, s)
	case s.Run.Requested:
		return l.Run(ctx, s)
	case s.RunDotnet.Requested:
		return l.RunDotnet(ctx, s)
	}
	return 0
}

// Edit opens the located project in editor mode. There is no fallback when
// the project is missing or ambiguous.
func (l *Launcher) Edit(ctx context.Context, s Settings) int {
	if s.Edit == "" {
		return 0
	}
	desc, ok := l.locate(s.Edit)
	if !ok {
		return 1
	}
	args := append(l.projectArgs(desc), "--editor")
	return l.launch(ctx, s.Configuration, desc.Name, args)
}

// Run starts a project. A name with no descriptor on disk is handed to the
// launcher as-is together with the original extra arguments.
func (l *Launcher) Run(ctx context.Context, s Settings) int {
	if !s.Run.Requested || len(s.Run.Names) == 0 {
		return 0
	}
	name, extra := s.Run.Names[0], s.Run.Names[1:]

	desc, err := LocateProject(l.ws.Root, name)
	switch {
	case errors.Is(err, ErrProjectNotFound):
		l.ws.Console.Printf(" > attempting to run project %s directly", name)
		return l.launch(ctx, s.Configuration, name, extra)
	case errors.Is(err, ErrAmbiguousProject):
		l.ws.Console.Failf(" > multiple projects found named %s!", name)
		l.ws.Log.Debug("ambiguous project", "err", err)
		return 1
	case err != nil:
		l.ws.Console.Failf(" !> %v", err)
		return 1
	}
	args := append(l.projectArgs(desc), extra...)
	return l.launch(ctx, s.Configuration, desc.Name, args)
}

// RunDotnet starts a managed project from its conventional output path.
func (l *Launcher) RunDotnet(ctx context.Context, s Settings) int {
	if !s.RunDotnet.Requested || len(s.RunDotnet.Names) == 0 {
		return 0
	}
	if err := l.ws.Platform.requireWindows("run-dotnet"); err != nil {
		l.ws.Console.Failf(" !> %v", err)
		return 1
	}
	name, extra := s.RunDotnet.Names[0], s.RunDotnet.Names[1:]
	l.ws.Console.Printf(" > running %s", name)

	exe := "./bin/" + string(s.Configuration) + "/net8.0/" + name + ".exe"
	args := append([]string{"-Command", "& " + exe}, extra...)
	return l.ws.exec(ctx, Command{Name: l.ws.Tools.DotnetShell, Args: args, Dir: l.ws.Root})
}

func (l *Launcher) locate(name string) (ProjectDescriptor, bool) {
	desc, err := LocateProject(l.ws.Root, name)
	switch {
	case errors.Is(err, ErrProjectNotFound):
		l.ws.Console.Failf(" > no project found for %s", name)
		return ProjectDescriptor{}, false
	case errors.Is(err, ErrAmbiguousProject):
		l.ws.Console.Failf(" > multiple projects found named %s!", name)
		l.ws.Log.Debug("ambiguous project", "err", err)
		return ProjectDescriptor{}, false
	case err != nil:
		l.ws.Console.Failf(" !> %v", err)
		return ProjectDescriptor{}, false
	}
	l.ws.Console.Printf("%s", filepath.Join(desc.Dir, desc.Filename))
	return desc, true
}

func (l *Launcher) projectArgs(desc ProjectDescriptor) []string {
	return []string{
		"--project", l.ws.Platform.HostPath(desc.Path),
		"--cwd", desc.RelDir(l.ws.Root),
	}
}

// launch hands name to the configured launcher, the run script on Windows
// hosts, or the built binary elsewhere.
func (l *Launcher) launch(ctx context.Context, cfg Configuration, name string, args []string) int {
	c, err := l.LaunchCommand(cfg, name, args)
	if err != nil {
		l.ws.Console.Failf(" !> %v", err)
		return 1
	}
	l.ws.Console.Printf(" > running %s", name)
	return l.ws.exec(ctx, c)
}

// LaunchCommand builds the launcher invocation for name. The configured
// launcher and the run script both take the configuration and the name first.
func (l *Launcher) LaunchCommand(cfg Configuration, name string, args []string) (Command, error) {
	if l.ws.Tools.Launcher != "" {
		argv, err := parseCommand(l.ws.Tools.Launcher)
		if err != nil {
			return Command{}, err
		}
		rest := append(append(argv[1:], string(cfg), name), args...)
		return Command{Name: argv[0], Args: rest, Dir: l.ws.Root}, nil
	}
	if l.ws.Platform.IsWindows() {
		rest := append([]string{"/c", l.ws.Platform.HostPath(l.ws.Tools.RunScript), string(cfg), name}, args...)
		return Command{Name: "cmd.exe", Args: rest, Dir: l.ws.Root}, nil
	}
	return Command{Name: l.ws.binaryPath(cfg, name), Args: args, Dir: l.ws.Root}, nil
}
