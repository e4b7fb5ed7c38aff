package domain

import (
	"path"
	"regexp"
	"strings"
)

const (
	// ProjectIDPrefix prefixes the canonical identifier of every workspace project.
	ProjectIDPrefix = "project:./"

	// LinkPrefix marks a dependency that is a symlink to a workspace project.
	LinkPrefix = "link:"

	// PnpmVirtualStoreDir is where pnpm installs package versions in a Rush repo.
	PnpmVirtualStoreDir = "common/temp/node_modules/.pnpm/"
)

// Example:
//
//	/@rushstack/eslint-config/3.0.1_eslint@8.21.0+typescript@4.7.4
var packageIDRegex = regexp.MustCompile(`^/(.*)/([^/]+)$`)

// PackageRef is the parsed form of a package entry identifier.
type PackageRef struct {
	Name       string
	Version    string
	PeerSuffix string
}

// DisplayText renders the reference the way a person reads it, e.g.
// "@rushstack/eslint-config 3.0.1 (eslint@8.21.0+typescript@4.7.4)".
func (r PackageRef) DisplayText() string {
	if r.PeerSuffix != "" {
		return r.Name + " " + r.Version + " (" + r.PeerSuffix + ")"
	}
	return r.Name + " " + r.Version
}

// ParsePackageID splits a package identifier into name, version and peer suffix.
// It reports false when the identifier does not have the /name/version shape.
func ParsePackageID(id string) (PackageRef, bool) {
	match := packageIDRegex.FindStringSubmatch(id)
	if match == nil {
		return PackageRef{}, false
	}

	ref := PackageRef{Name: match[1]}
	versionPart := match[2]
	if version, suffix, found := strings.Cut(versionPart, "_"); found {
		ref.Version = version
		ref.PeerSuffix = suffix
	} else {
		ref.Version = versionPart
	}
	return ref, true
}

// ProjectFolderPath resolves an importer key against the folder of the root package.json.
//
// If    rootManifestPath = "common/temp/package.json"
// and   rawKey           = "../../libraries/example"
// then  the folder is      "libraries/example"
func ProjectFolderPath(rootManifestPath, rawKey string) string {
	rootFolder := path.Dir(toSlash(rootManifestPath))
	return normalizePath(path.Join(rootFolder, toSlash(rawKey)))
}

// ProjectID returns the canonical identifier of a project living in folder.
func ProjectID(folder string) string {
	return ProjectIDPrefix + folder
}

// PackageFolderPath returns the folder where pnpm installs the given package version.
//
// Example:
//
//	common/temp/node_modules/.pnpm/@babel+register@7.17.7/node_modules/@babel/register
func PackageFolderPath(name, version string) string {
	return PnpmVirtualStoreDir + strings.ReplaceAll(name, "/", "+") + "@" + version +
		"/node_modules/" + name
}

// DependencyTargetID computes the identifier of the entry a dependency points at.
// Link specs are resolved relative to the folder of the entry declaring the dependency.
func DependencyTargetID(packageName, versionSpec, containingFolder string) string {
	switch {
	case strings.HasPrefix(versionSpec, LinkPrefix):
		relativePath := strings.TrimPrefix(versionSpec, LinkPrefix)
		return ProjectID(normalizePath(path.Join(toSlash(containingFolder), toSlash(relativePath))))
	case strings.HasPrefix(versionSpec, "/"):
		return versionSpec
	default:
		return "/" + packageName + "/" + versionSpec
	}
}

// lastSegment returns the final path segment of a raw importer key.
func lastSegment(p string) string {
	p = strings.TrimRight(toSlash(p), "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func normalizePath(p string) string {
	return path.Clean(p)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
