package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/logger"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/telemetry"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports"
)

// NodeID is the unique identifier for the lockfile parser Graft node.
const NodeID graft.ID = "adapter.lockfile"

func init() {
	graft.Register(graft.Node[ports.LockfileParser]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.LockfileParser, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewParser(log, tracer), nil
		},
	})
}
