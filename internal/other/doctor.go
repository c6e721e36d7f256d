package other

import (
	"path/filepath"
	"strings"
)

// DoctorReport summarizes the host and the toolchain the pipeline would use.
type DoctorReport struct {
	Platform   string
	ConfigPath string
	EngineDir  string
	Projects   int

	MSBuild      string
	MSBuildFound bool
	Premake      string
	PremakeFound bool
	Launcher     string

	Errors []string
}

// Doctor inspects ws without running anything.
func Doctor(ws *Workspace) DoctorReport {
	rep := DoctorReport{
		Platform:  ws.Platform.String(),
		EngineDir: ws.EngineDir(),
		MSBuild:   ws.Tools.MSBuild,
		Premake:   ws.Tools.Premake,
		Launcher:  ws.Tools.Launcher,
	}
	if ws.Config != nil {
		rep.ConfigPath = ws.Config.Path
		rep.Projects = len(ws.Config.Projects)
	}

	if _, err := resolveExecutable(ws.Tools.MSBuild, ws.Root); err == nil {
		rep.MSBuildFound = true
	} else {
		rep.Errors = append(rep.Errors, "msbuild: "+err.Error())
	}
	if _, err := resolveExecutable(localPath(ws.Tools.Premake), ws.EngineDir()); err == nil {
		rep.PremakeFound = true
	} else {
		rep.Errors = append(rep.Errors, "premake: "+err.Error())
	}
	if rep.Launcher == "" {
		if ws.Platform.IsWindows() {
			rep.Launcher = "cmd.exe /c " + ws.Tools.RunScript
		} else {
			rep.Launcher = "bin/<config>/<name>/<name>"
		}
	}
	if !ws.Platform.IsWindows() {
		rep.Errors = append(rep.Errors, "build and project generation require windows or wsl")
	}
	return rep
}

// localPath turns a Windows-style relative tool path into one the local
// filesystem understands.
func localPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

func (r DoctorReport) Print(c *Console) {
	c.Printf("platform: %s", r.Platform)
	c.Printf("config_path: %s", r.ConfigPath)
	c.Printf("engine_dir: %s", r.EngineDir)
	c.Printf("projects: %d", r.Projects)
	c.Printf("msbuild: %s", r.MSBuild)
	c.Printf("msbuild_found: %t", r.MSBuildFound)
	c.Printf("premake: %s", r.Premake)
	c.Printf("premake_found: %t", r.PremakeFound)
	c.Printf("launcher: %s", r.Launcher)
	for _, e := range r.Errors {
		if strings.TrimSpace(e) != "" {
			c.Warnf("error: %s", e)
		}
	}
}
