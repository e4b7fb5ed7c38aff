package domain

const (
	// LockfileName is the file name pnpm writes.
	LockfileName = "pnpm-lock.yaml"

	// RushLockfilePath is where Rush keeps the pnpm lockfile, relative to the repo root.
	RushLockfilePath = "common/config/rush/pnpm-lock.yaml"

	// DataLockfilePath is the lockfile dropped into a local Data folder next to the tool.
	DataLockfilePath = "Data/pnpm-lock.yaml"

	// SettingsFileName is the optional settings file read from the working directory.
	SettingsFileName = ".lockviz.yaml"

	// EnvPrefix prefixes environment variables that override settings.
	EnvPrefix = "LOCKVIZ"
)

// LockfileCandidates returns the relative paths probed in each directory during discovery,
// in priority order.
func LockfileCandidates() []string {
	return []string{RushLockfilePath, LockfileName, DataLockfilePath}
}
