// Package progrock provides the Progrock implementation of the progress
// reporter, rendering one vertex per package.
package progrock

import (
	"os"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/vito/progrock"
)

// Reporter implements ports.Reporter on a progrock tape.
type Reporter struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// New creates a Reporter rendering vertex transitions to stderr.
func New() *Reporter {
	return NewReporter(NewPrinter(os.Stderr))
}

// NewReporter creates a Reporter recording to the given writer.
func NewReporter(w progrock.Writer) *Reporter {
	return &Reporter{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// RunStarted is part of ports.Reporter. Progrock has no run-level event; the
// tape opens with the first vertex.
func (r *Reporter) RunStarted(int) {}

// LayerStarted is part of ports.Reporter. Layers are an ordering detail the
// vertex timeline already conveys.
func (r *Reporter) LayerStarted(int, []string) {}

// PackageStarted opens a vertex for the package.
func (r *Reporter) PackageStarted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertices[name] = r.rec.Vertex(digest.FromString(name), name)
}

// PackageFinished completes the package's vertex. Packages skipped without a
// start event get a vertex so the tape shows every member of the run.
func (r *Reporter) PackageFinished(name string, outcome domain.BuildOutcome, err error) {
	r.mu.Lock()
	v, ok := r.vertices[name]
	if !ok {
		v = r.rec.Vertex(digest.FromString(name), name)
	}
	delete(r.vertices, name)
	r.mu.Unlock()

	if outcome == domain.OutcomeSkippedUnchanged || outcome == domain.OutcomeSkippedNoBuildStep {
		v.Cached()
	}
	v.Done(err)
}

// RunFinished is part of ports.Reporter.
func (r *Reporter) RunFinished(domain.RunResult) {}

// Close flushes and closes the recording session.
func (r *Reporter) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
