package scheduler

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// ExecuteOptions configures one executor run.
type ExecuteOptions struct {
	// Force marks every buildable package stale, bypassing the freshness
	// check entirely.
	Force bool

	// Concurrency is the maximum number of build steps in flight.
	// Zero or negative means the number of available processing units.
	Concurrency int
}

// Executor consumes ordered layers and runs the build steps of stale
// packages with bounded parallelism. A layer never starts until every
// package in all prior layers has finished.
type Executor struct {
	runner    ports.Runner
	freshness *Freshness
	reporter  ports.Reporter
	logger    ports.Logger

	mu       sync.Mutex
	outcomes map[domain.InternedString]domain.BuildOutcome
}

// NewExecutor creates an Executor with the given collaborators.
func NewExecutor(runner ports.Runner, freshness *Freshness, reporter ports.Reporter, logger ports.Logger) *Executor {
	return &Executor{
		runner:    runner,
		freshness: freshness,
		reporter:  reporter,
		logger:    logger,
	}
}

// Run executes the layers in order and returns the per-package outcomes.
// Packages absent from the result were never attempted: either a prior layer
// failed or a failure in their own layer was observed before admission.
// The returned error joins every per-package failure; algorithmic errors
// never reach here, they abort before the first layer.
func (e *Executor) Run(ctx context.Context, g *domain.DependencyGraph, layers domain.Layers, opts ExecuteOptions) (domain.RunResult, error) {
	e.mu.Lock()
	e.outcomes = make(map[domain.InternedString]domain.BuildOutcome, layers.Count())
	e.mu.Unlock()

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	sem := semaphore.NewWeighted(int64(limit))

	e.reporter.RunStarted(layers.Count())

	var runErr error
	for i, layer := range layers {
		e.reporter.LayerStarted(i, internedToStrings(layer))
		if err := e.runLayer(ctx, g, layer, sem, opts.Force); err != nil {
			runErr = err
			break
		}
	}

	result := e.result()
	e.reporter.RunFinished(result)
	return result, runErr
}

// runLayer admits every stale buildable package in the layer to the
// semaphore-bounded pool and waits for all admitted work to finish. Once a
// failure is observed no further package in the layer is admitted, but
// in-flight invocations are never abandoned mid-run.
func (e *Executor) runLayer(ctx context.Context, g *domain.DependencyGraph, layer []domain.InternedString, sem *semaphore.Weighted, force bool) error {
	var (
		wg     sync.WaitGroup
		errsMu sync.Mutex
		errs   error
		failed bool
	)

	fail := func(err error) {
		errsMu.Lock()
		errs = errors.Join(errs, err)
		failed = true
		errsMu.Unlock()
	}
	hasFailed := func() bool {
		errsMu.Lock()
		defer errsMu.Unlock()
		return failed
	}

	for _, name := range layer {
		if hasFailed() {
			break
		}

		pkg, ok := g.Package(name)
		if !ok {
			// Layers are derived from the graph, so this cannot happen
			// unless the caller mixed structures from different runs.
			fail(zerr.With(domain.ErrLayeringInconsistency, "package", name.String()))
			break
		}

		if !pkg.HasBuildStep() {
			e.finish(name, domain.OutcomeSkippedNoBuildStep, nil)
			continue
		}

		stale := true
		if !force {
			var err error
			stale, err = e.freshness.Stale(pkg)
			if err != nil {
				fail(zerr.With(zerr.Wrap(err, "freshness probe failed"), "package", name.String()))
				break
			}
		}
		if !stale {
			e.finish(name, domain.OutcomeSkippedUnchanged, nil)
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			fail(err)
			break
		}
		// A failure may have landed while we waited for a slot.
		if hasFailed() {
			sem.Release(1)
			break
		}

		wg.Add(1)
		go func(pkg domain.PackageRecord) {
			defer wg.Done()
			defer sem.Release(1)

			e.reporter.PackageStarted(pkg.Name.String())
			if err := e.runner.Run(ctx, pkg); err != nil {
				wrapped := zerr.With(zerr.Wrap(err, "build step failed"), "package", pkg.Name.String())
				e.finish(pkg.Name, domain.OutcomeFailed, wrapped)
				fail(wrapped)
				return
			}
			e.finish(pkg.Name, domain.OutcomeBuilt, nil)
		}(pkg)
	}

	wg.Wait()

	errsMu.Lock()
	defer errsMu.Unlock()
	return errs
}

func (e *Executor) finish(name domain.InternedString, outcome domain.BuildOutcome, err error) {
	e.mu.Lock()
	e.outcomes[name] = outcome
	e.mu.Unlock()
	e.reporter.PackageFinished(name.String(), outcome, err)
}

func (e *Executor) result() domain.RunResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	outcomes := make(map[string]domain.BuildOutcome, len(e.outcomes))
	for name, outcome := range e.outcomes {
		outcomes[name.String()] = outcome
	}
	return domain.RunResult{Outcomes: outcomes}
}

func internedToStrings(names []domain.InternedString) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = name.String()
	}
	return out
}
