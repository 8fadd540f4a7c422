package ports

import "github.com/sourcewizard-ai/bdep/internal/core/domain"

// Probe reads generic filesystem metadata for the incremental decision.
// Missing files and directories are expected (partial or racing filesystem
// state) and are reported as zero-valued data, not errors; only genuinely
// unexpected failures such as permission denial propagate.
//
//go:generate go run go.uber.org/mock/mockgen -source=probe.go -destination=mocks/mock_probe.go -package=mocks
type Probe interface {
	// Stats walks the tree rooted at root, skipping excluded directories,
	// and returns the file count and the newest and oldest modification
	// timestamps. Excludes match directory names at any depth; entries
	// containing a path separator match the root-relative path instead.
	// A missing root yields zero stats.
	Stats(root string, excludes []string) (domain.TreeStats, error)

	// Exists reports whether the given path exists.
	Exists(path string) bool
}
