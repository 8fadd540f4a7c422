// Package registry discovers workspace members and collects the transitive
// internal-dependency closure of a starting package.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry implements ports.Registry over package.json manifests.
// The workspace root is the nearest ancestor manifest declaring a
// "workspaces" glob list; members are the matching directories that contain
// a manifest of their own.
type Registry struct {
	logger      ports.Logger
	buildScript string
}

// New creates a Registry. buildScript names the manifest script treated as
// the package's build step.
func New(logger ports.Logger, buildScript string) *Registry {
	return &Registry{logger: logger, buildScript: buildScript}
}

// Collect returns the starting package's full transitive internal-dependency
// closure, keyed by package name. The result is freshly built on every call
// and never cached.
func (r *Registry) Collect(_ context.Context, startPath string) (map[string]domain.PackageRecord, error) {
	startPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve start path")
	}

	start, err := r.loadPackage(startPath)
	if err != nil {
		return nil, err
	}

	members, err := r.discoverMembers(startPath)
	if err != nil {
		return nil, err
	}
	if _, ok := members[start.Name.String()]; !ok {
		// Standalone package outside any workspace, or the workspace root
		// building itself. Either way the start package is in scope.
		members[start.Name.String()] = start
	}

	return closure(start.Name.String(), members), nil
}

// loadPackage reads the manifest of the starting package.
func (r *Registry) loadPackage(dir string) (domain.PackageRecord, error) {
	m, err := readManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.PackageRecord{}, zerr.With(domain.ErrPackageNotFound, "path", dir)
		}
		return domain.PackageRecord{}, err
	}
	if m.Name == "" {
		return domain.PackageRecord{}, zerr.With(domain.ErrPackageNotFound, "path", dir)
	}
	return r.toRecord(dir, m), nil
}

// discoverMembers locates the workspace root above startPath and reads every
// member manifest. A start package with no workspace above it yields an
// empty member set.
func (r *Registry) discoverMembers(startPath string) (map[string]domain.PackageRecord, error) {
	root, patterns, found := findWorkspaceRoot(startPath)
	if !found {
		return map[string]domain.PackageRecord{}, nil
	}

	paths, err := resolveMemberPaths(root, patterns)
	if err != nil {
		return nil, err
	}

	members := make(map[string]domain.PackageRecord, len(paths))
	origin := make(map[string]string, len(paths))

	for _, dir := range paths {
		m, err := r.loadMember(root, dir)
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}

		if first, exists := origin[m.Name]; exists {
			err := zerr.With(domain.ErrDuplicatePackage, "package", m.Name)
			err = zerr.With(err, "first_occurrence", first)
			return nil, zerr.With(err, "duplicate_at", dir)
		}
		origin[m.Name] = dir
		members[m.Name] = r.toRecord(dir, m)
	}

	return members, nil
}

// loadMember reads one member manifest. Non-directories and directories
// without a manifest are skipped with a warning rather than failing the run.
func (r *Registry) loadMember(root, dir string) (*manifest, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil //nolint:nilnil // glob matches files too; skip them
	}

	m, err := readManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			rel, _ := filepath.Rel(root, dir)
			r.logger.Warn(fmt.Sprintf("%s missing in member %s, skipping", ManifestName, rel))
			return nil, nil //nolint:nilnil // absence is data, not an error
		}
		return nil, err
	}
	if m.Name == "" {
		rel, _ := filepath.Rel(root, dir)
		r.logger.Warn(fmt.Sprintf("member %s has no name, skipping", rel))
		return nil, nil //nolint:nilnil // absence is data, not an error
	}
	return m, nil
}

func (r *Registry) toRecord(dir string, m *manifest) domain.PackageRecord {
	depNames := m.internalDeps()
	slices.Sort(depNames)

	deps := make([]domain.InternedString, len(depNames))
	for i, name := range depNames {
		deps[i] = domain.NewInternedString(name)
	}

	return domain.PackageRecord{
		Name:         domain.NewInternedString(m.Name),
		Path:         dir,
		DeclaredDeps: deps,
		BuildScript:  m.Scripts[r.buildScript],
		OutDir:       m.outDir(),
	}
}

// findWorkspaceRoot walks up from dir looking for a manifest that declares
// workspace globs.
func findWorkspaceRoot(dir string) (string, []string, bool) {
	current := dir
	for {
		m, err := readManifest(filepath.Join(current, ManifestName))
		if err == nil && len(m.Workspaces) > 0 {
			return current, m.Workspaces, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil, false
		}
		current = parent
	}
}

// resolveMemberPaths expands the workspace glob patterns into a sorted,
// deduplicated list of candidate member directories.
func resolveMemberPaths(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, zerr.Wrap(err, "workspace glob failed: "+pattern)
		}
		for _, match := range matches {
			seen[match] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths, nil
}

// closure walks the internal dependency edges breadth-first from start and
// keeps only the reachable members. Declared dependencies that are not
// workspace members are assumed external and are not followed.
func closure(start string, members map[string]domain.PackageRecord) map[string]domain.PackageRecord {
	result := make(map[string]domain.PackageRecord)

	queue := []string{start}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if _, done := result[name]; done {
			continue
		}
		pkg, ok := members[name]
		if !ok {
			continue
		}
		result[name] = pkg

		for _, dep := range pkg.DeclaredDeps {
			queue = append(queue, dep.String())
		}
	}

	return result
}
