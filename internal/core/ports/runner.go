package ports

import (
	"context"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
)

// Runner invokes the external build step of a single package.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the package's build step in its directory. The core does
	// not interpret the step's output beyond success or failure; a non-nil
	// error means the step failed.
	Run(ctx context.Context, pkg domain.PackageRecord) error
}
