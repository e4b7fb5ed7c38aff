// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/lockfile"
	_ "github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/logger"
	_ "github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/source"
	_ "github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/telemetry"
	_ "github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/octogonz/pnpm-lockfile-visualizer/internal/app"
)
