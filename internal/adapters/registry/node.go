package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/sourcewizard-ai/bdep/internal/adapters/config"
	"github.com/sourcewizard-ai/bdep/internal/adapters/logger"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (ports.Registry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, settings.BuildScript), nil
		},
	})
}
