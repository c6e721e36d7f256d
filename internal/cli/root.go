// internal/cli/root.go

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/otherengine/other/internal/config"
	"github.com/otherengine/other/internal/other"
	"github.com/spf13/cobra"
)

const progName = "other"

// ExitError carries a pipeline result that should become the exit status
// without an error message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// rootOptions is what one invocation needs besides its flags.
type rootOptions struct {
	caps other.Capabilities
	// args is the command line as typed, before normalization.
	args []string

	runner   other.Runner
	platform func() other.Platform
	workDir  func() (string, error)
}

func newRootOptions(caps other.Capabilities) *rootOptions {
	return &rootOptions{
		caps:     caps,
		runner:   other.NewExecRunner(),
		platform: other.DetectPlatform,
		workDir:  os.Getwd,
	}
}

func newRootCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           progName,
		Short:         "OtherEngine Tools Pipeline",
		Long:          "Build, test, run and scaffold OtherEngine projects through MSBuild, premake and the engine launcher.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}
	registerFlags(cmd.Flags())
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		renderUsage(c.OutOrStdout(), progName)
	})
	return cmd
}

func (o *rootOptions) run(cmd *cobra.Command) error {
	fs := cmd.Flags()
	out := cmd.OutOrStdout()

	mode, _ := fs.GetString("color")
	profile, err := resolveColorProfile(mode, out)
	if err != nil {
		return err
	}
	console := other.NewConsole(out, profile)

	s, err := other.ResolveSettings(rawFlags(fs, o.args))
	if err != nil {
		return err
	}
	if s.HelpPrinted {
		renderUsage(out, progName)
		return nil
	}
	logger := newLogger(cmd.ErrOrStderr(), s.Verbose)
	slog.SetDefault(logger)

	path, _ := fs.GetString("pipeline-config")
	conf, err := config.Load(path)
	if err != nil {
		return err
	}
	platform := o.platform()
	tools, err := config.ResolveToolchain(conf, platform.Host())
	if err != nil {
		return err
	}
	root, err := o.workDir()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	logger.Debug("workspace", "config", conf.Path, "platform", platform.String(), "root", root)

	ws := &other.Workspace{
		Root:     root,
		Config:   conf,
		Tools:    tools,
		Platform: platform,
		Runner:   o.runner,
		Console:  console,
		Log:      logger,
	}
	if s.Verbose {
		printSettings(console, s, conf, tools)
	}

	var res int
	if s.Legacy {
		res = other.NewLegacyRouter(ws, s).Run(cmd.Context(), o.args, legacyFlagArity)
	} else {
		res = other.NewPipeline(ws, s, o.caps).Execute(cmd.Context())
	}
	if res != 0 {
		return &ExitError{Code: res}
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printSettings(c *other.Console, s other.Settings, conf *config.Config, tools config.Toolchain) {
	c.Headerf("[Pipeline Settings]")
	c.Printf(" > configuration: %s", s.Configuration)
	if s.Build.Requested {
		c.Printf(" > build: %s", listOrAll(s.Build.Names))
	}
	if s.Test.Requested {
		c.Printf(" > test: %s", listOrAll(s.Test.Names))
	}
	if s.Edit != "" {
		c.Printf(" > edit: %s", s.Edit)
	}
	if s.Run.Requested {
		c.Printf(" > run: %s", strings.Join(s.Run.Names, " "))
	}
	if s.RunDotnet.Requested {
		c.Printf(" > run-dotnet: %s", strings.Join(s.RunDotnet.Names, " "))
	}
	if s.Legacy {
		c.Printf(" > legacy: %s", strings.Join(s.LegacyCommands, " "))
	}
	c.Headerf("[Pipeline Config]")
	c.Printf(" > file: %s", conf.Path)
	c.Printf(" > engine: %s", conf.EnginePath)
	for _, p := range conf.Projects {
		c.Printf(" > project %s: %s", p.Name, p.Path)
	}
	c.Printf(" > msbuild: %s", tools.MSBuild)
	c.Printf(" > solution: %s", tools.Solution)
}

func listOrAll(names []string) string {
	if len(names) == 0 {
		return "<all>"
	}
	return strings.Join(names, ", ")
}

// execute runs one invocation and returns the process exit status.
func execute(ctx context.Context, o *rootOptions, args []string, stdout, stderr io.Writer) int {
	normalized, err := normalizeArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "usage: %s [-h] [flags]\n", progName)
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	o.args = args

	cmd := newRootCmd(o)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(normalized)
	if err := cmd.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// Execute runs the pipeline variant selected by caps and exits.
// An interrupt cancels the running child process.
func Execute(caps other.Capabilities) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootOptions(caps), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
