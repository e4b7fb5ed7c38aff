package ports

import (
	"context"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
)

// LockfileParser builds a fully resolved Lockfile from YAML text.
//
//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileParser interface {
	// Parse builds the entries and links every dependency.
	// Importer keys are taken relative to the folder of rootManifestPath.
	// It returns either a complete Lockfile or an error, never a partial result.
	Parse(ctx context.Context, text, rootManifestPath string) (*domain.Lockfile, error)
}

// LockfileSource locates and reads lockfiles on disk.
type LockfileSource interface {
	// Discover searches from cwd towards the file system root for a lockfile
	// and returns its absolute path.
	Discover(cwd string) (string, error)
	// Read returns the text of the lockfile at path.
	Read(path string) (string, error)
}
