package other

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration is the build variant passed to every external tool.
type Configuration string

const (
	Debug   Configuration = "Debug"
	Release Configuration = "Release"
)

// NormalizeConfiguration maps "debug" and "release" to their build-system
// spelling. Every other value is returned unchanged and treated as opaque.
func NormalizeConfiguration(s string) Configuration {
	switch s {
	case "debug":
		return Debug
	case "release":
		return Release
	}
	return Configuration(s)
}

// Targets is an optional list-valued setting. Requested with no Names is
// meaningful: a bare --build means a full build, a bare --test the whole suite.
type Targets struct {
	Requested bool
	Names     []string
}

// FileSpec names a source-file pair to generate.
type FileSpec struct {
	Project   string
	Directory string
	Filename  string
}

// Settings is the resolved, read-only view of one invocation.
type Settings struct {
	Verbose        bool
	Legacy         bool
	LegacyCommands []string

	Build Targets
	Test  Targets
	// Run and RunDotnet carry the project name first and forwarded arguments after it.
	Run       Targets
	RunDotnet Targets
	Edit      string

	Configuration    Configuration
	GenerateFiles    *FileSpec
	GenerateProjects bool
	FNV              Targets
	ViewPlatform     bool

	// HelpPrinted suppresses every pipeline stage.
	HelpPrinted bool
}

// RawFlags is what the command line parser hands over before normalization.
type RawFlags struct {
	// NoArgs is set when the program was started without any argument.
	NoArgs bool

	Verbose        bool
	Legacy         bool
	LegacyCommands []string

	Build     Targets
	Test      Targets
	Run       Targets
	RunDotnet Targets
	Edit      []string

	Config           string
	GenerateFiles    []string
	GenerateProjects bool
	FNV              []string
	ViewPlatform     bool
}

// ResolveSettings merges raw flags into Settings.
func ResolveSettings(raw RawFlags) (Settings, error) {
	if raw.NoArgs {
		return Settings{HelpPrinted: true, Configuration: Debug}, nil
	}

	cfg := raw.Config
	if strings.TrimSpace(cfg) == "" {
		cfg = "debug"
	}

	s := Settings{
		Verbose:          raw.Verbose,
		Legacy:           raw.Legacy,
		LegacyCommands:   raw.LegacyCommands,
		Build:            raw.Build,
		Test:             raw.Test,
		Run:              raw.Run,
		RunDotnet:        raw.RunDotnet,
		Configuration:    NormalizeConfiguration(cfg),
		GenerateProjects: raw.GenerateProjects,
		ViewPlatform:     raw.ViewPlatform,
	}

	if len(raw.Edit) > 0 {
		if len(raw.Edit) != 1 || strings.TrimSpace(raw.Edit[0]) == "" {
			return Settings{}, errors.New("--edit expects exactly one project name")
		}
		s.Edit = raw.Edit[0]
	}
	if s.Run.Requested && len(s.Run.Names) == 0 {
		return Settings{}, errors.New("--run expects a project name")
	}
	if s.RunDotnet.Requested && len(s.RunDotnet.Names) == 0 {
		return Settings{}, errors.New("--run-dotnet expects a project name")
	}
	if len(raw.GenerateFiles) > 0 {
		if len(raw.GenerateFiles) != 3 {
			return Settings{}, fmt.Errorf("--generate-files expects 3 arguments (project directory file), got %d", len(raw.GenerateFiles))
		}
		s.GenerateFiles = &FileSpec{
			Project:   raw.GenerateFiles[0],
			Directory: raw.GenerateFiles[1],
			Filename:  raw.GenerateFiles[2],
		}
	}
	if len(raw.FNV) > 0 {
		if len(raw.FNV) != 1 {
			return Settings{}, errors.New("--fnv expects exactly one item")
		}
		s.FNV = Targets{Requested: true, Names: raw.FNV}
	}
	return s, nil
}
