// Package build holds build-time information.
package build

// These default to placeholder values and are overwritten by linker flags, for example:
//
//	go build -ldflags "-X github.com/octogonz/pnpm-lockfile-visualizer/internal/build.Version=v1.0.0"
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
