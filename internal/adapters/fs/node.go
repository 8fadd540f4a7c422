package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
)

// ProbeNodeID is the unique identifier for the filesystem probe Graft node.
const ProbeNodeID graft.ID = "adapter.fs.probe"

func init() {
	graft.Register(graft.Node[ports.Probe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Probe, error) {
			return NewProbe(), nil
		},
	})
}
