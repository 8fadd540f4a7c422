// Package fs provides the filesystem probe adapter for the incremental
// build decision.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"go.trai.ch/zerr"
)

// Probe implements ports.Probe using filepath.WalkDir.
type Probe struct{}

// NewProbe creates a new Probe.
func NewProbe() *Probe {
	return &Probe{}
}

// Exists reports whether the given path exists.
func (p *Probe) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stats walks the tree rooted at root and returns the file count plus the
// newest and oldest modification timestamps. A directory is skipped when its
// name matches an entry in excludes, or when its root-relative path does;
// the latter covers nested locations such as a build/out output directory.
// Version-control metadata is always skipped.
//
// Missing paths are expected during a build run (packages may race with the
// filesystem) and yield zero stats; only unexpected errors such as
// permission denial propagate.
func (p *Probe) Stats(root string, excludes []string) (domain.TreeStats, error) {
	var stats domain.TreeStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		if d.IsDir() {
			if path != root {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					rel = ""
				}
				if skipDir(d.Name(), rel, excludes) {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		mod := info.ModTime()
		if stats.Files == 0 || mod.After(stats.Newest) {
			stats.Newest = mod
		}
		if stats.Files == 0 || mod.Before(stats.Oldest) {
			stats.Oldest = mod
		}
		stats.Files++
		return nil
	})
	if err != nil {
		return domain.TreeStats{}, zerr.With(zerr.Wrap(err, "filesystem probe failed"), "root", root)
	}

	return stats, nil
}

// skipDir checks a directory against the exclusion set. Bare names match at
// any depth; excludes carrying a separator match the root-relative path.
// .git and .jj are always skipped.
func skipDir(name, rel string, excludes []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}
	for _, exclude := range excludes {
		if name == exclude {
			return true
		}
		if rel != "" && rel == filepath.Clean(filepath.FromSlash(exclude)) {
			return true
		}
	}
	return false
}
