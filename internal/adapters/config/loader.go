// Package config provides the workspace-level configuration loader for bdep.
package config

import (
	"os"
	"path/filepath"

	"github.com/sourcewizard-ai/bdep/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the optional tool configuration file, looked up from the
// working directory towards the filesystem root.
const FileName = "bdep.yaml"

// Default settings applied when bdep.yaml is absent or a field is unset.
const (
	DefaultBuildScript = "build"
	DefaultOutput      = "linear"
)

// DefaultExcludes lists the derived or ignorable directory names the
// incremental probe never treats as package sources.
func DefaultExcludes() []string {
	return []string{"node_modules", "coverage", ".bdep"}
}

// file mirrors the bdep.yaml structure.
type file struct {
	Concurrency int      `yaml:"concurrency"`
	BuildScript string   `yaml:"buildScript"`
	Excludes    []string `yaml:"excludes"`
	Report      string   `yaml:"report"`
	Output      string   `yaml:"output"`
}

// Loader resolves ports.Settings from an optional YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration for the workspace containing cwd. A missing
// file yields the defaults; a malformed file is an error.
func (l *Loader) Load(cwd string) (ports.Settings, error) {
	settings := ports.Settings{
		BuildScript: DefaultBuildScript,
		Excludes:    DefaultExcludes(),
		Output:      DefaultOutput,
	}

	path, found := findFile(cwd)
	if !found {
		l.logger.Info("no " + FileName + " found, using defaults")
		return settings, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path located by upward search from cwd
	if err != nil {
		return ports.Settings{}, zerr.Wrap(err, "failed to read config file")
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ports.Settings{}, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}
	l.logger.Info("using configuration from " + path)

	if f.Concurrency > 0 {
		settings.Concurrency = f.Concurrency
	}
	if f.BuildScript != "" {
		settings.BuildScript = f.BuildScript
	}
	if len(f.Excludes) > 0 {
		settings.Excludes = f.Excludes
	}
	if f.Report != "" {
		settings.ReportPath = f.Report
	}
	if f.Output != "" {
		settings.Output = f.Output
	}

	return settings, nil
}

// findFile walks up from dir looking for the configuration file.
func findFile(dir string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		path := filepath.Join(current, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
