// Package domain contains the lockfile model: entries, dependency edges and the resolved graph.
package domain

import (
	"slices"
	"strconv"

	"go.trai.ch/zerr"
)

// DefaultRootManifestPath is the root package.json that importer keys are relative to in a Rush repo.
const DefaultRootManifestPath = "common/temp/package.json"

// Lockfile is a parsed pnpm lockfile with every dependency linked to its target entry.
// Build it with AddEntry, then call Resolve once. After that it is read-only.
type Lockfile struct {
	// Source is the original YAML text.
	Source string

	// RootManifestPath is the path used to derive project identifiers.
	RootManifestPath string

	// Digest is a content hash of Source.
	Digest string

	importers []*Entry
	packages  []*Entry
	entries   []*Entry
	index     map[Identifier]*Entry
	resolved  bool
}

// NewLockfile creates an empty Lockfile for the given source text.
func NewLockfile(source, rootManifestPath string) *Lockfile {
	return &Lockfile{
		Source:           source,
		RootManifestPath: rootManifestPath,
		Digest:           ContentDigest(source),
		index:            make(map[Identifier]*Entry),
	}
}

// AddEntry appends an entry and indexes it by canonical identifier.
// It returns an error if another entry already uses the same identifier.
func (l *Lockfile) AddEntry(e *Entry) error {
	if l.resolved {
		return zerr.With(zerr.Wrap(ErrLockfileSealed, "failed to add entry"), "entry_id", e.ID().String())
	}
	if existing, exists := l.index[e.ID()]; exists {
		err := zerr.With(zerr.Wrap(ErrDuplicateIdentifier, "failed to add entry"), "entry_id", e.ID().String())
		err = zerr.With(err, "line", e.Line())
		return zerr.With(err, "first_line", existing.Line())
	}

	l.index[e.ID()] = e
	l.entries = append(l.entries, e)
	if e.Kind() == EntryKindProject {
		l.importers = append(l.importers, e)
	} else {
		l.packages = append(l.packages, e)
	}
	return nil
}

// Resolve links every dependency to the entry named by its target identifier and
// records the reverse edge on the target. If any target is missing, nothing is linked
// and the error names the first unresolved identifier.
func (l *Lockfile) Resolve() error {
	if l.resolved {
		return nil
	}

	targets := make([]*Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		for _, dep := range entry.dependencies {
			match, ok := l.index[dep.TargetID()]
			if !ok {
				err := zerr.Wrap(ErrUnresolvedDependency, "failed to link dependency")
				err = zerr.With(err, "target_id", dep.TargetID().String())
				err = zerr.With(err, "entry_id", entry.ID().String())
				return zerr.With(err, "line", dep.Line())
			}
			targets = append(targets, match)
		}
	}

	i := 0
	for _, entry := range l.entries {
		for _, dep := range entry.dependencies {
			match := targets[i]
			dep.resolved = match
			match.referencers = append(match.referencers, dep)
			i++
		}
	}

	l.resolved = true
	return nil
}

// Importers returns the workspace projects in document order.
func (l *Lockfile) Importers() []*Entry {
	return slices.Clone(l.importers)
}

// Packages returns the package versions in document order.
func (l *Lockfile) Packages() []*Entry {
	return slices.Clone(l.packages)
}

// Entries returns importers followed by packages.
func (l *Lockfile) Entries() []*Entry {
	return slices.Clone(l.entries)
}

// Lookup returns the entry with the given canonical identifier.
func (l *Lockfile) Lookup(id string) (*Entry, bool) {
	e, ok := l.index[InternIdentifier(id)]
	return e, ok
}

// Find locates an entry by canonical identifier, raw key, or display text, in that order.
// A positive integer query is taken as a line number and matches the entry declared on that line.
func (l *Lockfile) Find(query string) (*Entry, error) {
	if e, ok := l.Lookup(query); ok {
		return e, nil
	}
	for _, e := range l.entries {
		if e.RawID() == query {
			return e, nil
		}
	}
	for _, e := range l.entries {
		if e.DisplayText() == query {
			return e, nil
		}
	}
	if line, err := strconv.Atoi(query); err == nil && line > 0 {
		for _, e := range l.entries {
			if e.Line() == line {
				return e, nil
			}
		}
	}
	return nil, zerr.With(zerr.Wrap(ErrEntryNotFound, "failed to find entry"), "query", query)
}

// EdgeCount returns the total number of dependency edges in the lockfile.
func (l *Lockfile) EdgeCount() int {
	n := 0
	for _, e := range l.entries {
		n += len(e.dependencies)
	}
	return n
}
