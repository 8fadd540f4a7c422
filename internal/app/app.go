// Package app implements the application layer for bdep.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/sourcewizard-ai/bdep/internal/adapters/linear"
	"github.com/sourcewizard-ai/bdep/internal/adapters/progrock"
	"github.com/sourcewizard-ai/bdep/internal/adapters/report"
	"github.com/sourcewizard-ai/bdep/internal/adapters/shell"
	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
	"github.com/sourcewizard-ai/bdep/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App wires the registry, scheduler and executor into the run entrypoint.
type App struct {
	registry ports.Registry
	runner   ports.Runner
	probe    ports.Probe
	logger   ports.Logger
	settings ports.Settings
	report   *report.Writer

	reporter ports.Reporter // test override
}

// New creates a new App instance.
func New(
	registry ports.Registry,
	runner ports.Runner,
	probe ports.Probe,
	logger ports.Logger,
	settings ports.Settings,
	reportWriter *report.Writer,
) *App {
	return &App{
		registry: registry,
		runner:   runner,
		probe:    probe,
		logger:   logger,
		settings: settings,
		report:   reportWriter,
	}
}

// WithReporter replaces the progress reporter. Used by tests.
func (a *App) WithReporter(r ports.Reporter) *App {
	a.reporter = r
	return a
}

// ExecuteOptions configures one run of the entrypoint.
type ExecuteOptions struct {
	// Force marks every buildable package stale.
	Force bool
	// Concurrency overrides the configured build parallelism when positive.
	Concurrency int
	// ReportPath overrides the configured JSON report location.
	ReportPath string
	// Output overrides the configured progress renderer.
	Output string
}

// Execute builds the transitive dependency closure of the package at
// startPath in dependency order. Algorithmic errors (cycle, layering
// inconsistency) abort before any build is attempted; build failures abort
// after the failed layer drains, and the returned result still enumerates
// every attempted package's outcome.
func (a *App) Execute(ctx context.Context, startPath string, opts ExecuteOptions) (domain.RunResult, error) {
	// Re-entrancy guard: a bdep invocation spawned by a build step of an
	// outer run must not recurse into the workspace.
	if os.Getenv(shell.NestedRunEnv) != "" {
		a.logger.Info("nested invocation detected, skipping")
		return domain.RunResult{Outcomes: map[string]domain.BuildOutcome{}}, nil
	}

	packages, err := a.registry.Collect(ctx, startPath)
	if err != nil {
		return domain.RunResult{}, zerr.Wrap(err, "failed to collect workspace members")
	}

	graph := domain.BuildGraph(packages)

	order, err := scheduler.TopologicalOrder(graph)
	if err != nil {
		return domain.RunResult{}, err
	}

	layers, err := scheduler.PartitionLayers(order, graph)
	if err != nil {
		return domain.RunResult{}, err
	}

	reporter := a.reporterFor(opts)
	if closer, ok := reporter.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	freshness := scheduler.NewFreshness(a.probe, a.settings.Excludes)
	executor := scheduler.NewExecutor(a.runner, freshness, reporter, a.logger)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = a.settings.Concurrency
	}

	result, runErr := executor.Run(ctx, graph, layers, scheduler.ExecuteOptions{
		Force:       opts.Force,
		Concurrency: concurrency,
	})

	if err := a.writeReport(result, opts.ReportPath); err != nil {
		a.logger.Error(err)
	}

	if runErr != nil {
		return result, errors.Join(domain.ErrBuildFailed, runErr)
	}
	return result, nil
}

// reporterFor selects the progress renderer for this run.
func (a *App) reporterFor(opts ExecuteOptions) ports.Reporter {
	if a.reporter != nil {
		return a.reporter
	}

	output := opts.Output
	if output == "" {
		output = a.settings.Output
	}
	if output == "progress" {
		return progrock.New()
	}
	return linear.NewReporter(os.Stderr)
}

// writeReport persists the run result when a report path is configured.
// A report failure is logged, never allowed to mask the build result.
func (a *App) writeReport(result domain.RunResult, override string) error {
	writer := a.report
	if override != "" {
		writer = report.NewWriter(override)
	}
	if writer == nil || !writer.Enabled() {
		return nil
	}
	return writer.Write(result)
}
