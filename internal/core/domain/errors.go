package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedDocument is returned when the lockfile does not have the expected YAML structure.
	ErrMalformedDocument = zerr.New("malformed lockfile document")

	// ErrMissingRoot is returned when the YAML document has no mapping at its root.
	// It matches ErrMalformedDocument.
	ErrMissingRoot = zerr.Wrap(ErrMalformedDocument, "missing YAML root")

	// ErrExpectingMapping is returned when an importer or package value is not a YAML mapping.
	// It matches ErrMalformedDocument.
	ErrExpectingMapping = zerr.Wrap(ErrMalformedDocument, "expecting mapping")

	// ErrDuplicateIdentifier is returned when two entries derive the same canonical identifier.
	ErrDuplicateIdentifier = zerr.New("duplicate entry identifier")

	// ErrUnresolvedDependency is returned when a dependency's target identifier matches no entry.
	ErrUnresolvedDependency = zerr.New("unable to resolve dependency")

	// ErrLockfileSealed is returned when an entry is added to a lockfile that was already resolved.
	ErrLockfileSealed = zerr.New("lockfile is already resolved")

	// ErrLockfileParseFailed is returned when the lockfile text is not valid YAML.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrLockfileNotFound is returned when no lockfile can be discovered from the working directory.
	ErrLockfileNotFound = zerr.New("could not find pnpm-lock.yaml")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read from disk.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrEntryNotFound is returned when a query matches no entry in the lockfile.
	ErrEntryNotFound = zerr.New("entry not found")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrInvalidFilter is returned when a package filter is not a valid glob pattern.
	ErrInvalidFilter = zerr.New("invalid package filter")

	// ErrNoLockfileLoaded is returned when a watch session has not produced a document yet.
	ErrNoLockfileLoaded = zerr.New("no lockfile loaded")
)
