package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/lockfile"  //nolint:depguard // Wired in app layer
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/source"    //nolint:depguard // Wired in app layer
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			source.NodeID,
			lockfile.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
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
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	src, err := graft.Dep[ports.LockfileSource](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.LockfileParser](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(src, parser, w, log, tracer), nil
}
