package registry

import (
	"encoding/json"
	"os"
	"strings"

	"go.trai.ch/zerr"
)

// ManifestName is the per-package manifest file name.
const ManifestName = "package.json"

// internalDepPrefix marks a dependency as an internal, non-published
// workspace member.
const internalDepPrefix = "workspace:"

// DefaultOutDir is the build-output location used when a package does not
// declare one.
const DefaultOutDir = "dist"

// manifest mirrors the subset of package.json that bdep reads.
type manifest struct {
	Name            string            `json:"name"`
	Workspaces      []string          `json:"workspaces"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Bdep            manifestSettings  `json:"bdep"`
}

// manifestSettings is the tool-specific section of a package manifest.
type manifestSettings struct {
	OutDir string `json:"outDir"`
}

// readManifest parses the manifest file at path.
func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path derives from workspace discovery
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}
	return &m, nil
}

// internalDeps returns the names of dependencies carrying the internal
// workspace marker, across regular and dev dependencies.
func (m *manifest) internalDeps() []string {
	var deps []string
	for name, version := range m.Dependencies {
		if strings.HasPrefix(version, internalDepPrefix) {
			deps = append(deps, name)
		}
	}
	for name, version := range m.DevDependencies {
		if strings.HasPrefix(version, internalDepPrefix) {
			deps = append(deps, name)
		}
	}
	return deps
}

// outDir returns the declared build-output location or the default.
func (m *manifest) outDir() string {
	if m.Bdep.OutDir != "" {
		return m.Bdep.OutDir
	}
	return DefaultOutDir
}
