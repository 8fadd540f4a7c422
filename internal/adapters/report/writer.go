// Package report persists the per-package outcomes of a run as a JSON file.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"go.trai.ch/zerr"
)

// Writer writes run reports to a fixed path. An empty path disables the
// writer; Write becomes a no-op.
type Writer struct {
	path string
}

// NewWriter creates a Writer targeting the given path.
func NewWriter(path string) *Writer {
	if path != "" {
		path = filepath.Clean(path)
	}
	return &Writer{path: path}
}

// Enabled reports whether a report path is configured.
func (w *Writer) Enabled() bool {
	return w.path != ""
}

// Write serializes the run result to the configured path, creating parent
// directories as needed. The file is rewritten whole on every run; the
// report is a run artifact, not persisted build state.
func (w *Writer) Write(result domain.RunResult) error {
	if w.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run report")
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return zerr.Wrap(err, "failed to create report directory")
		}
	}

	//nolint:gosec // report path comes from configuration
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write run report")
	}

	return nil
}
