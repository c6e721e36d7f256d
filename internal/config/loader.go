// internal/config/loader.go

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

var (
	ErrConfigNotFound = errors.New("pipeline configuration not found")
	ErrConfigInvalid  = errors.New("invalid pipeline configuration")
)

// rawConfig mirrors the file layout. Pointers distinguish a missing section
// from an empty one.
type rawConfig struct {
	Engine   *Engine           `toml:"engine"`
	Projects []Project         `toml:"project"`
	Tools    map[string]string `toml:"tools"`
}

// Load reads the pipeline configuration at path. A relative path is resolved
// against the current working directory; an empty path means DefaultFileName.
// Both the attempted absolute path and the working directory are reported when
// the file cannot be read.
func Load(path string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: file [%s] could not be read (currently in directory [%s]): %v",
			ErrConfigNotFound, abs, wd, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	c.Path = abs
	return c, nil
}

// Parse decodes pipeline configuration bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	c := &Config{
		EnginePath: DefaultEnginePath,
		Projects:   []Project{},
		Tools:      raw.Tools,
	}
	if raw.Engine != nil && strings.TrimSpace(raw.Engine.Path) != "" {
		c.EnginePath = raw.Engine.Path
	}
	for i, p := range raw.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: project #%d has no name", ErrConfigInvalid, i+1)
		}
		if strings.TrimSpace(p.Path) == "" {
			return nil, fmt.Errorf("%w: project %q has no path", ErrConfigInvalid, p.Name)
		}
		c.Projects = append(c.Projects, p)
	}
	if c.Tools == nil {
		c.Tools = map[string]string{}
	}
	return c, nil
}
