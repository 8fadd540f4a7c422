// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
)

// Registry supplies the workspace members relevant to one build run.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Collect returns the full transitive internal-dependency closure of the
	// package rooted at startPath, keyed by package name. It is idempotent
	// and side-effect-free.
	Collect(ctx context.Context, startPath string) (map[string]domain.PackageRecord, error)
}
