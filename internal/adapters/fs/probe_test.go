package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sourcewizard-ai/bdep/internal/adapters/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestProbe_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	probe := fs.NewProbe()

	assert.True(t, probe.Exists(tmpDir))
	assert.False(t, probe.Exists(filepath.Join(tmpDir, "missing")))
}

func TestProbe_Stats_CountsAndTimestamps(t *testing.T) {
	tmpDir := t.TempDir()
	base := time.Now().Truncate(time.Second)

	writeFileAt(t, tmpDir, "old.ts", base.Add(-2*time.Hour))
	writeFileAt(t, tmpDir, "mid.ts", base.Add(-time.Hour))
	writeFileAt(t, tmpDir, filepath.Join("src", "new.ts"), base)

	probe := fs.NewProbe()
	stats, err := probe.Stats(tmpDir, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Files)
	assert.True(t, stats.Newest.Equal(base), "expected newest %v, got %v", base, stats.Newest)
	assert.True(t, stats.Oldest.Equal(base.Add(-2*time.Hour)), "expected oldest %v, got %v", base.Add(-2*time.Hour), stats.Oldest)
}

func TestProbe_Stats_SkipsExcludedDirs(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()

	writeFileAt(t, tmpDir, "index.ts", now)
	writeFileAt(t, tmpDir, filepath.Join("node_modules", "dep", "index.js"), now)
	writeFileAt(t, tmpDir, filepath.Join("dist", "index.js"), now)

	probe := fs.NewProbe()
	stats, err := probe.Stats(tmpDir, []string{"node_modules", "dist"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
}

func TestProbe_Stats_AlwaysSkipsVCSMetadata(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()

	writeFileAt(t, tmpDir, "index.ts", now)
	writeFileAt(t, tmpDir, filepath.Join(".git", "HEAD"), now)
	writeFileAt(t, tmpDir, filepath.Join(".jj", "repo"), now)

	probe := fs.NewProbe()
	stats, err := probe.Stats(tmpDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
}

func TestProbe_Stats_ExclusionIsByName(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()

	// Exclusion applies to nested directories, not just direct children.
	writeFileAt(t, tmpDir, filepath.Join("src", "index.ts"), now)
	writeFileAt(t, tmpDir, filepath.Join("src", "coverage", "lcov.info"), now)

	probe := fs.NewProbe()
	stats, err := probe.Stats(tmpDir, []string{"coverage"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
}

func TestProbe_Stats_ExcludesNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()

	// An exclude carrying a separator prunes that root-relative path, so a
	// nested output directory like build/out stays out of the scan while an
	// unrelated "out" directory elsewhere is still counted.
	writeFileAt(t, tmpDir, "index.ts", now)
	writeFileAt(t, tmpDir, filepath.Join("build", "out", "index.js"), now)
	writeFileAt(t, tmpDir, filepath.Join("src", "out", "helper.ts"), now)

	probe := fs.NewProbe()
	stats, err := probe.Stats(tmpDir, []string{"build/out"})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
}

func TestProbe_Stats_RootNameNotExcluded(t *testing.T) {
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "dist")
	writeFileAt(t, root, "index.js", time.Now())

	// A root directory whose own name is in excludes is still scanned;
	// exclusion only prunes subdirectories.
	probe := fs.NewProbe()
	stats, err := probe.Stats(root, []string{"dist"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
}

func TestProbe_Stats_MissingRoot(t *testing.T) {
	probe := fs.NewProbe()
	stats, err := probe.Stats(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Files)
}

func TestProbe_Stats_EmptyDir(t *testing.T) {
	probe := fs.NewProbe()
	stats, err := probe.Stats(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Files)
	assert.True(t, stats.Newest.IsZero())
	assert.True(t, stats.Oldest.IsZero())
}
