package source

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports"
)

// NodeID is the unique identifier for the lockfile source Graft node.
const NodeID graft.ID = "adapter.source"

func init() {
	graft.Register(graft.Node[ports.LockfileSource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileSource, error) {
			return New(), nil
		},
	})
}
