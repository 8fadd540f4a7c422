package scheduler

import (
	"path/filepath"
	"slices"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
)

// Freshness decides whether a package's build output is stale relative to
// its sources. The check is a conservative timestamp comparison: any output
// file older than any source file proves the output is not fully derived
// from current sources. It is not a content hash and can report stale for
// outputs that were touched without rebuilding.
type Freshness struct {
	probe    ports.Probe
	excludes []string
}

// NewFreshness creates a Freshness checker. excludes lists directory names
// skipped while scanning package sources (dependency caches, coverage
// artifacts and the like); version-control metadata and the package's own
// output directory are always skipped.
func NewFreshness(probe ports.Probe, excludes []string) *Freshness {
	return &Freshness{probe: probe, excludes: excludes}
}

// Stale reports whether pkg needs a build. Callers gate packages without a
// build step upstream; Stale assumes one is declared.
func (f *Freshness) Stale(pkg domain.PackageRecord) (bool, error) {
	outDir := filepath.Join(pkg.Path, pkg.OutDir)
	if !f.probe.Exists(outDir) {
		return true, nil
	}

	srcExcludes := append(slices.Clone(f.excludes), pkg.OutDir)
	src, err := f.probe.Stats(pkg.Path, srcExcludes)
	if err != nil {
		return false, err
	}
	if src.Files == 0 {
		// Nothing to build from.
		return false, nil
	}

	out, err := f.probe.Stats(outDir, nil)
	if err != nil {
		return false, err
	}
	if out.Files == 0 {
		// An empty output is never trusted.
		return true, nil
	}

	return src.Newest.After(out.Oldest), nil
}
