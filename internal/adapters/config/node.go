package config

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/sourcewizard-ai/bdep/internal/adapters/logger"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
)

// NodeID is the unique identifier for the settings Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Settings, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return ports.Settings{}, err
			}
			return NewLoader(log).Load(".")
		},
	})
}
