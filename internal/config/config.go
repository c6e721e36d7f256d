// internal/config/config.go

package config

// DefaultFileName is the pipeline configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "other.toml"

// DefaultEnginePath is used when the [engine] section or its path is missing.
const DefaultEnginePath = "."

// Engine holds the [engine] section.
type Engine struct {
	Path string `toml:"path"`
}

// Project is one [[project]] entry. Order in the file is preserved.
type Project struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Config is the loaded pipeline configuration. It is read-only after Load.
type Config struct {
	// Path is the absolute path of the file that was loaded.
	Path       string
	EnginePath string
	Projects   []Project
	// Tools is the raw [tools] table; see ResolveToolchain for the keys it understands.
	Tools map[string]string
}

// FindProject returns the first project registered under name.
// Names are not required to be unique; later duplicates are shadowed.
func (c *Config) FindProject(name string) (Project, bool) {
	if c == nil {
		return Project{}, false
	}
	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}

// DefaultConfigTemplate documents the file format on the help screen.
const DefaultConfigTemplate = `
# other.toml: pipeline configuration for the Other Engine tools.

[engine]
path = "."

[[project]]
name = "sandbox"
path = "sandbox"

[[project]]
name = "editor"
path = "editor"

[tools]
# Every key can also be set from the environment (MSBUILD, PREMAKE, ...)
# msbuild = "C:/Program Files/Microsoft Visual Studio/2022/Community/MSBuild/Current/Bin/MSBuild.exe"
# premake = "premake/premake5.exe"
# run_script = "tools/run.bat"
# solution = "OtherEngine"
# launcher = "'./tools/launch.sh'"
`
