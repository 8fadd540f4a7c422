package ports

import "github.com/sourcewizard-ai/bdep/internal/core/domain"

// Reporter receives progress events from the executor so a presentation
// collaborator can render them. Implementations must be safe for concurrent
// use: PackageStarted and PackageFinished are called from worker goroutines.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// RunStarted signals the beginning of a run over total packages.
	RunStarted(total int)

	// LayerStarted signals that layer index is about to execute.
	LayerStarted(index int, names []string)

	// PackageStarted signals that a package's build step was admitted.
	PackageStarted(name string)

	// PackageFinished reports a package's final outcome. err is non-nil only
	// for OutcomeFailed.
	PackageFinished(name string, outcome domain.BuildOutcome, err error)

	// RunFinished reports the aggregated result of the run.
	RunFinished(result domain.RunResult)
}
