// Package linear provides a synchronous, line-oriented progress reporter
// suitable for CI and non-interactive terminals.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/sourcewizard-ai/bdep/internal/core/domain"
)

// Reporter implements ports.Reporter with chronological output and package
// name prefixes. It is safe for concurrent use by executor workers.
type Reporter struct {
	out    io.Writer
	output *termenv.Output

	mu      sync.Mutex
	total   int
	done    int
	started map[string]time.Time
}

// NewReporter creates a Reporter writing to out (stderr when nil).
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{
		out:     out,
		output:  termenv.NewOutput(out, termenv.WithProfile(colorProfile())),
		started: make(map[string]time.Time),
	}
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// RunStarted prints the run header.
func (r *Reporter) RunStarted(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total = total
	r.done = 0
	_, _ = fmt.Fprintf(r.out, "Building %d package(s)\n", total)
}

// LayerStarted prints the layer membership.
func (r *Reporter) LayerStarted(index int, names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.output.String(fmt.Sprintf("layer %d:", index)).Faint().String()
	_, _ = fmt.Fprintf(r.out, "%s %s\n", prefix, strings.Join(names, ", "))
}

// PackageStarted prints a start line and records the start time.
func (r *Reporter) PackageStarted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started[name] = time.Now()
	prefix := r.output.String("["+name+"]").Faint().String()
	_, _ = fmt.Fprintf(r.out, "%s building...\n", prefix)
}

// PackageFinished prints the package's outcome with progress accounting.
func (r *Reporter) PackageFinished(name string, outcome domain.BuildOutcome, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++
	counter := fmt.Sprintf("(%d/%d)", r.done, r.total)
	prefix := fmt.Sprintf("[%s]", name)

	switch outcome {
	case domain.OutcomeBuilt:
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		duration := r.durationLocked(name)
		_, _ = fmt.Fprintf(r.out, "%s %s built in %v %s\n", prefix, symbol, duration, counter)
	case domain.OutcomeFailed:
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.out, "%s %s failed: %v %s\n", prefix, symbol, err, counter)
	case domain.OutcomeSkippedUnchanged:
		_, _ = fmt.Fprintf(r.out, "%s up to date %s\n", prefix, counter)
	case domain.OutcomeSkippedNoBuildStep:
		_, _ = fmt.Fprintf(r.out, "%s no build step %s\n", prefix, counter)
	}

	delete(r.started, name)
}

// RunFinished prints the outcome summary.
func (r *Reporter) RunFinished(result domain.RunResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[domain.BuildOutcome]int)
	for _, outcome := range result.Outcomes {
		counts[outcome]++
	}

	_, _ = fmt.Fprintf(r.out, "done: %d built, %d up to date, %d without build step, %d failed\n",
		counts[domain.OutcomeBuilt],
		counts[domain.OutcomeSkippedUnchanged],
		counts[domain.OutcomeSkippedNoBuildStep],
		counts[domain.OutcomeFailed])
}

// durationLocked returns the elapsed time since PackageStarted, truncated
// for readability. Must be called with r.mu held.
func (r *Reporter) durationLocked(name string) time.Duration {
	start, ok := r.started[name]
	if !ok {
		return 0
	}
	return time.Since(start).Truncate(time.Millisecond)
}
