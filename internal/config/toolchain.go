package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Host selects the platform defaults used by ResolveToolchain.
type Host int

const (
	HostOther Host = iota
	HostWindows
	// HostWSL is Linux under the Windows Subsystem for Linux: Windows tools are
	// reachable under /mnt/<drive>.
	HostWSL
)

// Toolchain holds the external tool locations the pipeline shells out to.
type Toolchain struct {
	MSBuild   string
	Premake   string
	RunScript string
	Solution  string
	// Launcher, when set, replaces the platform launcher. It is a command line
	// split with shell rules; configuration and project name are appended.
	Launcher    string
	DotnetShell string
}

// toolKeys maps every [tools] key to the environment variable that overrides it.
var toolKeys = map[string]string{
	"msbuild":      "MSBUILD",
	"premake":      "PREMAKE",
	"run_script":   "OTHER_RUN_SCRIPT",
	"solution":     "OTHER_SOLUTION",
	"launcher":     "OTHER_LAUNCHER",
	"dotnet_shell": "OTHER_DOTNET_SHELL",
}

const (
	msbuildWindows = `C:\Program Files\Microsoft Visual Studio\2022\Community\MSBuild\Current\Bin\MSBuild.exe`
	msbuildWSL     = "/mnt/c/Program Files/Microsoft Visual Studio/2022/Community/MSBuild/Current/Bin/MSBuild.exe"
)

func toolDefaults(host Host) map[string]string {
	d := map[string]string{
		"msbuild":      "MSBuild.exe",
		"premake":      `premake\premake5.exe`,
		"run_script":   `tools\run.bat`,
		"solution":     "OtherEngine",
		"launcher":     "",
		"dotnet_shell": "pwsh",
	}
	switch host {
	case HostWindows:
		d["msbuild"] = msbuildWindows
	case HostWSL:
		d["msbuild"] = msbuildWSL
	}
	return d
}

// ResolveToolchain layers tool settings with the precedence
// environment > .env beside the config file > [tools] table > host default.
func ResolveToolchain(c *Config, host Host) (Toolchain, error) {
	if c != nil && c.Path != "" {
		envFile := filepath.Join(filepath.Dir(c.Path), ".env")
		if _, err := os.Stat(envFile); err == nil {
			// Existing process variables win over the file.
			if err := godotenv.Load(envFile); err != nil {
				return Toolchain{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	for k, def := range toolDefaults(host) {
		v.SetDefault(k, def)
	}

	if c != nil && len(c.Tools) > 0 {
		table := make(map[string]any, len(c.Tools))
		var unknown []string
		for k, val := range c.Tools {
			key := strings.ToLower(strings.TrimSpace(k))
			if _, ok := toolKeys[key]; !ok {
				unknown = append(unknown, k)
				continue
			}
			table[key] = val
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return Toolchain{}, fmt.Errorf("%w: unknown [tools] keys: %s", ErrConfigInvalid, strings.Join(unknown, ", "))
		}
		if err := v.MergeConfigMap(table); err != nil {
			return Toolchain{}, fmt.Errorf("merge [tools]: %w", err)
		}
	}

	for key, env := range toolKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Toolchain{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	return Toolchain{
		// MSBUILD is commonly exported quoted because of the spaces in its path.
		MSBuild:     unquote(v.GetString("msbuild")),
		Premake:     unquote(v.GetString("premake")),
		RunScript:   unquote(v.GetString("run_script")),
		Solution:    strings.TrimSpace(v.GetString("solution")),
		Launcher:    strings.TrimSpace(v.GetString("launcher")),
		DotnetShell: strings.TrimSpace(v.GetString("dotnet_shell")),
	}, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
