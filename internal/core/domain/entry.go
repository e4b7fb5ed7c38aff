package domain

import "slices"

// EntryKind distinguishes workspace projects from resolved package versions.
type EntryKind int

const (
	// EntryKindProject is a workspace project listed under "importers".
	EntryKindProject EntryKind = iota
	// EntryKindPackage is a resolved package version listed under "packages".
	EntryKindPackage
)

// String returns the string representation of the EntryKind.
func (k EntryKind) String() string {
	switch k {
	case EntryKindProject:
		return "project"
	case EntryKindPackage:
		return "package"
	default:
		return "unknown"
	}
}

// Entry is one project or one package version in a lockfile.
// Its fields are set by the constructors and never change afterwards.
type Entry struct {
	kind  EntryKind
	rawID string
	id    Identifier

	packageName    string
	packageVersion string
	peerSuffix     string

	displayText string
	folderPath  string
	line        int

	dependencies []*Dependency
	referencers  []*Dependency
}

// NewProjectEntry creates the entry for an importer key.
// The key is a path relative to the folder of the root package.json.
func NewProjectEntry(rawKey, rootManifestPath string, line int) *Entry {
	folder := ProjectFolderPath(rootManifestPath, rawKey)
	name := lastSegment(rawKey)
	return &Entry{
		kind:        EntryKindProject,
		rawID:       rawKey,
		id:          InternIdentifier(ProjectID(folder)),
		packageName: name,
		displayText: "Project: " + name,
		folderPath:  folder,
		line:        line,
	}
}

// NewPackageEntry creates the entry for a key under "packages".
// Keys that do not parse keep empty name fields and use the raw key as display text.
func NewPackageEntry(rawKey string, line int) *Entry {
	e := &Entry{
		kind:        EntryKindPackage,
		rawID:       rawKey,
		id:          InternIdentifier(rawKey),
		displayText: rawKey,
		line:        line,
	}

	if ref, ok := ParsePackageID(rawKey); ok {
		e.packageName = ref.Name
		e.packageVersion = ref.Version
		e.peerSuffix = ref.PeerSuffix
		e.displayText = ref.DisplayText()
	}

	e.folderPath = PackageFolderPath(e.packageName, e.packageVersion)
	return e
}

// Kind reports whether the entry is a project or a package.
func (e *Entry) Kind() EntryKind { return e.kind }

// RawID returns the key as written in the lockfile.
func (e *Entry) RawID() string { return e.rawID }

// ID returns the canonical identifier, unique within a Lockfile.
func (e *Entry) ID() Identifier { return e.id }

// PackageName returns the package name, or the last folder segment for a project.
// It is empty for a package key that did not parse.
func (e *Entry) PackageName() string { return e.packageName }

// PackageVersion returns the version part of a package key. Projects have none.
func (e *Entry) PackageVersion() string { return e.packageVersion }

// PeerSuffix returns the text after the first "_" of the version part, if any.
func (e *Entry) PeerSuffix() string { return e.peerSuffix }

// DisplayText returns the human-readable name of the entry.
func (e *Entry) DisplayText() string { return e.displayText }

// FolderPath returns a best-effort guess of the folder holding the entry's package.json.
// It is never checked against the file system.
func (e *Entry) FolderPath() string { return e.folderPath }

// Line returns the 1-based line number of the entry's key.
func (e *Entry) Line() int { return e.line }

// AddDependency records a dependency declared by this entry and computes its target identifier.
func (e *Entry) AddDependency(packageName, versionSpec string, devDependency bool, line int) *Dependency {
	d := &Dependency{
		packageName:   packageName,
		versionSpec:   versionSpec,
		devDependency: devDependency,
		line:          line,
		targetID:      InternIdentifier(DependencyTargetID(packageName, versionSpec, e.folderPath)),
		containing:    e,
	}
	e.dependencies = append(e.dependencies, d)
	return d
}

// Dependencies returns the dependencies declared by this entry in document order.
// Regular dependencies come before devDependencies.
func (e *Entry) Dependencies() []*Dependency {
	return slices.Clone(e.dependencies)
}

// Referencers returns the dependencies of other entries that resolved to this entry.
func (e *Entry) Referencers() []*Dependency {
	return slices.Clone(e.referencers)
}

// Dependency is one declared dependency edge of an Entry.
type Dependency struct {
	packageName   string
	versionSpec   string
	devDependency bool
	line          int
	targetID      Identifier

	containing *Entry
	resolved   *Entry
}

// PackageName returns the key under "dependencies" or "devDependencies".
func (d *Dependency) PackageName() string { return d.packageName }

// VersionSpec returns the raw value: a version, a "link:" path, or a full "/name/version" id.
func (d *Dependency) VersionSpec() string { return d.versionSpec }

// DevDependency reports whether the edge was listed under "devDependencies".
func (d *Dependency) DevDependency() bool { return d.devDependency }

// Line returns the 1-based line number of the dependency key.
func (d *Dependency) Line() int { return d.line }

// TargetID returns the identifier of the entry this dependency should resolve to.
func (d *Dependency) TargetID() Identifier { return d.targetID }

// Containing returns the entry that declared this dependency.
func (d *Dependency) Containing() *Entry {
	return d.containing
}

// Resolved returns the entry this dependency points at.
// It is never nil for a Lockfile returned by a successful load.
func (d *Dependency) Resolved() *Entry {
	return d.resolved
}
