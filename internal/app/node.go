package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/sourcewizard-ai/bdep/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"github.com/sourcewizard-ai/bdep/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"github.com/sourcewizard-ai/bdep/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/sourcewizard-ai/bdep/internal/adapters/registry" //nolint:depguard // Wired in app layer
	"github.com/sourcewizard-ai/bdep/internal/adapters/report"   //nolint:depguard // Wired in app layer
	"github.com/sourcewizard-ai/bdep/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			shell.NodeID,
			fs.ProbeNodeID,
			logger.NodeID,
			config.NodeID,
			report.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	reg, err := graft.Dep[ports.Registry](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.Runner](ctx)
	if err != nil {
		return nil, err
	}

	probe, err := graft.Dep[ports.Probe](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.Settings](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[*report.Writer](ctx)
	if err != nil {
		return nil, err
	}

	return New(reg, runner, probe, log, settings, writer), nil
}
