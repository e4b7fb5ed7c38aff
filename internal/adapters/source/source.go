// Package source locates and reads pnpm lockfiles on disk.
package source

import (
	"os"
	"path/filepath"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockfileSource = (*FileSource)(nil)

// FileSource implements ports.LockfileSource on the local file system.
type FileSource struct{}

// New creates a new FileSource.
func New() *FileSource {
	return &FileSource{}
}

// Discover walks up from cwd and returns the first lockfile found.
// In each directory the candidates of domain.LockfileCandidates are tried in order.
func (s *FileSource) Discover(cwd string) (string, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		cwd = wd
	}

	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	currentDir := abs
	for {
		for _, candidate := range domain.LockfileCandidates() {
			path := filepath.Join(currentDir, filepath.FromSlash(candidate))
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrLockfileNotFound, "lockfile discovery failed"), "cwd", cwd)
}

// Read returns the contents of the lockfile at path.
func (s *FileSource) Read(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", path)
	}
	return string(data), nil
}
