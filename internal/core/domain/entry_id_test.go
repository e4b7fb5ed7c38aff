package domain_test

import (
	"testing"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParsePackageID(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		wantOK      bool
		wantRef     domain.PackageRef
		wantDisplay string
	}{
		{
			name:        "scoped with peer suffix",
			id:          "/@scope/pkg/1.2.3_peer@4.5.6",
			wantOK:      true,
			wantRef:     domain.PackageRef{Name: "@scope/pkg", Version: "1.2.3", PeerSuffix: "peer@4.5.6"},
			wantDisplay: "@scope/pkg 1.2.3 (peer@4.5.6)",
		},
		{
			name:        "plain",
			id:          "/left-pad/1.0.0",
			wantOK:      true,
			wantRef:     domain.PackageRef{Name: "left-pad", Version: "1.0.0"},
			wantDisplay: "left-pad 1.0.0",
		},
		{
			name:   "suffix split at first underscore",
			id:     "/@rushstack/eslint-config/3.0.1_eslint@8.21.0+typescript@4.7.4_x",
			wantOK: true,
			wantRef: domain.PackageRef{
				Name:       "@rushstack/eslint-config",
				Version:    "3.0.1",
				PeerSuffix: "eslint@8.21.0+typescript@4.7.4_x",
			},
			wantDisplay: "@rushstack/eslint-config 3.0.1 (eslint@8.21.0+typescript@4.7.4_x)",
		},
		{
			name:   "no leading slash",
			id:     "left-pad/1.0.0",
			wantOK: false,
		},
		{
			name:   "trailing slash",
			id:     "/left-pad/",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := domain.ParsePackageID(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRef, ref)
			if tt.wantOK {
				assert.Equal(t, tt.wantDisplay, ref.DisplayText())
			}
		})
	}
}

func TestProjectFolderPath(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		raw      string
		expected string
	}{
		{"rush layout", "common/temp/package.json", "../../libraries/example", "libraries/example"},
		{"backslashes", `common\temp\package.json`, `..\..\apps\web`, "apps/web"},
		{"redundant segments", "common/temp/package.json", "../../libraries/./x/../example", "libraries/example"},
		{"root manifest at top", "package.json", "packages/a", "packages/a"},
		{"workspace root itself", "package.json", ".", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ProjectFolderPath(tt.root, tt.raw))
		})
	}
}

func TestProjectFolderPath_Deterministic(t *testing.T) {
	first := domain.ProjectID(domain.ProjectFolderPath("common/temp/package.json", "../../libraries/example"))
	second := domain.ProjectID(domain.ProjectFolderPath("common/temp/package.json", "../../libraries/example"))
	assert.Equal(t, "project:./libraries/example", first)
	assert.Equal(t, first, second)
}

func TestPackageFolderPath(t *testing.T) {
	assert.Equal(t,
		"common/temp/node_modules/.pnpm/@babel+register@7.17.7/node_modules/@babel/register",
		domain.PackageFolderPath("@babel/register", "7.17.7"))
	assert.Equal(t,
		"common/temp/node_modules/.pnpm/left-pad@1.0.0/node_modules/left-pad",
		domain.PackageFolderPath("left-pad", "1.0.0"))
}

func TestDependencyTargetID(t *testing.T) {
	tests := []struct {
		name     string
		pkg      string
		spec     string
		folder   string
		expected string
	}{
		{"link sibling", "bar", "link:../bar", "libraries/foo", "project:./libraries/bar"},
		{"link nested", "baz", "link:../../apps/baz", "libraries/foo", "project:./apps/baz"},
		{"plain version", "left-pad", "1.2.3", "libraries/foo", "/left-pad/1.2.3"},
		{"version with peer suffix", "@scope/pkg", "1.2.3_react@17.0.2", "x", "/@scope/pkg/1.2.3_react@17.0.2"},
		{"full identifier", "alias", "/real-name/2.0.0", "x", "/real-name/2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.DependencyTargetID(tt.pkg, tt.spec, tt.folder))
		})
	}
}
