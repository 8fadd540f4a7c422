// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/sourcewizard-ai/bdep/internal/adapters/config"
	_ "github.com/sourcewizard-ai/bdep/internal/adapters/fs"
	_ "github.com/sourcewizard-ai/bdep/internal/adapters/logger"
	_ "github.com/sourcewizard-ai/bdep/internal/adapters/registry"
	_ "github.com/sourcewizard-ai/bdep/internal/adapters/report"
	_ "github.com/sourcewizard-ai/bdep/internal/adapters/shell"
	// Register app nodes.
	_ "github.com/sourcewizard-ai/bdep/internal/app"
)
