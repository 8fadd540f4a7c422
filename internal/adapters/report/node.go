package report

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/sourcewizard-ai/bdep/internal/adapters/config"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
)

// NodeID is the unique identifier for the report writer Graft node.
const NodeID graft.ID = "adapter.report"

func init() {
	graft.Register(graft.Node[*Writer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Writer, error) {
			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(settings.ReportPath), nil
		},
	})
}
