package domain

import (
	"strings"
	"unique"
)

// Identifier is a canonical entry identifier held as an interned handle.
// The same package identifiers recur across thousands of dependency edges,
// so equality is a handle comparison and the index keys stay small.
type Identifier struct {
	h unique.Handle[string]
}

// InternIdentifier returns the Identifier for id.
func InternIdentifier(id string) Identifier {
	return Identifier{h: unique.Make(id)}
}

// String returns the identifier text, or "" for the zero Identifier.
func (id Identifier) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether the Identifier was never assigned.
func (id Identifier) IsZero() bool {
	return id == Identifier{}
}

// IsProject reports whether the identifier names a workspace project.
func (id Identifier) IsProject() bool {
	return strings.HasPrefix(id.String(), ProjectIDPrefix)
}

// MarshalText implements encoding.TextMarshaler so identifiers serialize as plain strings.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
