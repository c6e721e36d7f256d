package other

import (
	"context"
)

// Capabilities selects which stages a pipeline variant runs.
type Capabilities uint8

const (
	CapGenerate Capabilities = 1 << iota
	CapBuild
	CapTest
	CapLaunch
	CapHash
)

const (
	// ToolPipeline is the full developer pipeline.
	ToolPipeline = CapGenerate | CapBuild | CapTest | CapLaunch | CapHash
	// EditorPipeline only builds and launches.
	EditorPipeline = CapBuild | CapLaunch
)

func (c Capabilities) Has(f Capabilities) bool { return c&f == f }

// stage is one step of the pipeline. run reports a process-style result.
type stage struct {
	name      string
	flag      string // reported when the stage is unavailable
	caps      Capabilities
	requested func(Settings) bool
	run       func(ctx context.Context) int
	success   string
	failure   string
	// stopOnSuccess ends the pipeline with 0 once the stage has run cleanly.
	stopOnSuccess bool
}

// Pipeline runs the stages enabled by its capabilities in fixed order.
type Pipeline struct {
	ws       *Workspace
	settings Settings
	caps     Capabilities
}

func NewPipeline(ws *Workspace, s Settings, caps Capabilities) *Pipeline {
	return &Pipeline{ws: ws, settings: s, caps: caps}
}

// Execute returns the process exit status. fnv's own result is returned as
// is; any other failing stage yields 1 and nothing after it runs.
func (p *Pipeline) Execute(ctx context.Context) int {
	s := p.settings
	if s.HelpPrinted {
		return 0
	}
	if s.ViewPlatform {
		p.viewPlatform()
	}
	if s.FNV.Requested {
		if p.caps.Has(CapHash) {
			return Hash(ctx, p.ws, s.FNV.Names[0], s.Configuration)
		}
		p.unavailable("--fnv")
	}

	for _, st := range p.stages() {
		if !st.requested(s) {
			continue
		}
		if !p.caps.Has(st.caps) {
			p.unavailable(st.flag)
			continue
		}
		p.ws.Log.Debug("stage", "name", st.name)
		res := st.run(ctx)
		if res != 0 {
			if st.failure != "" {
				p.ws.Console.Failf("%s", st.failure)
			}
			p.ws.Log.Debug("stage failed", "name", st.name, "result", res)
			return 1
		}
		if st.success != "" {
			p.ws.Console.Successf("%s", st.success)
		}
		if st.stopOnSuccess {
			return 0
		}
	}
	return 0
}

func (p *Pipeline) stages() []stage {
	s := p.settings
	gen := NewGenerator(p.ws)
	return []stage{
		{
			name:      "generate-files",
			flag:      "--generate-files",
			caps:      CapGenerate,
			requested: func(s Settings) bool { return s.GenerateFiles != nil },
			run:       func(context.Context) int { return gen.GenerateFiles(*s.GenerateFiles) },
			success:   " > files generated",
			failure:   " !> file generation failed!",
		},
		{
			name:      "generate-projects",
			flag:      "--generate-projects",
			caps:      CapGenerate,
			requested: func(s Settings) bool { return s.GenerateProjects },
			run:       func(ctx context.Context) int { return gen.GenerateProjects(ctx, s.Verbose) },
			success:   " > project files generated",
			failure:   " !> project generation failed!",
		},
		{
			name:      "build",
			flag:      "--build",
			caps:      CapBuild,
			requested: func(s Settings) bool { return s.Build.Requested },
			run:       func(ctx context.Context) int { return NewBuilder(p.ws).Dispatch(ctx, s) },
		},
		{
			name:          "test",
			flag:          "--test",
			caps:          CapTest,
			requested:     func(s Settings) bool { return s.Test.Requested },
			run:           func(ctx context.Context) int { return NewTestRunner(p.ws).Run(ctx, s) },
			success:       " > unit tests passed",
			failure:       " !> unit tests failed!",
			stopOnSuccess: true,
		},
		{
			// Edit wins over run, run over run-dotnet.
			name: "launch",
			flag: "--edit/--run",
			caps: CapLaunch,
			requested: func(s Settings) bool {
				return s.Edit != "" || s.Run.Requested || s.RunDotnet.Requested
			},
			run: func(ctx context.Context) int { return NewLauncher(p.ws).Dispatch(ctx, s) },
		},
	}
}

func (p *Pipeline) unavailable(flag string) {
	variant := "this"
	if p.caps == EditorPipeline {
		variant = "the editor"
	}
	p.ws.Console.Warnf(" !> %s is not available in %s pipeline", flag, variant)
}

func (p *Pipeline) viewPlatform() {
	p.ws.Console.Printf("Platform: %s", p.ws.Platform.ID)
	if p.settings.Verbose {
		Doctor(p.ws).Print(p.ws.Console)
	}
}
