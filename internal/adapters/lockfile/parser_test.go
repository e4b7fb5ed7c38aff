package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/lockfile"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/telemetry"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newParser(t *testing.T) (*lockfile.Parser, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return lockfile.NewParser(log, telemetry.NewNoOpTracer()), log
}

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "pnpm-lock.yaml"))
	require.NoError(t, err)
	return string(data)
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T: %v", err, err)
	return zErr.Metadata()
}

func TestParse_Fixture(t *testing.T) {
	p, _ := newParser(t)
	text := readFixture(t)

	lock, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.NoError(t, err)

	assert.Equal(t, text, lock.Source)
	assert.Equal(t, domain.ContentDigest(text), lock.Digest)
	assert.Equal(t, domain.DefaultRootManifestPath, lock.RootManifestPath)

	importers := lock.Importers()
	require.Len(t, importers, 3)
	assert.Equal(t, "project:./common/temp", importers[0].ID().String())
	assert.Equal(t, "project:./apps/web", importers[1].ID().String())
	assert.Equal(t, "project:./libraries/core", importers[2].ID().String())
	assert.Equal(t, "Project: web", importers[1].DisplayText())
	assert.Equal(t, 8, importers[1].Line())

	packages := lock.Packages()
	require.Len(t, packages, 6)
	assert.Equal(t, "/js-tokens/4.0.0", packages[0].ID().String())
	assert.Equal(t, "/typescript/4.7.4", packages[5].ID().String())
	assert.Equal(t, "react 17.0.2", packages[4].DisplayText())
	assert.Equal(t, 50, packages[4].Line())

	assert.Len(t, lock.Entries(), 9)
	assert.Equal(t, 8, lock.EdgeCount())
}

func TestParse_Fixture_Dependencies(t *testing.T) {
	p, _ := newParser(t)
	lock, err := p.Parse(t.Context(), readFixture(t), domain.DefaultRootManifestPath)
	require.NoError(t, err)

	web, ok := lock.Lookup("project:./apps/web")
	require.True(t, ok)
	core, ok := lock.Lookup("project:./libraries/core")
	require.True(t, ok)
	typescript, ok := lock.Lookup("/typescript/4.7.4")
	require.True(t, ok)

	deps := web.Dependencies()
	require.Len(t, deps, 3)

	assert.Equal(t, "@lib/core", deps[0].PackageName())
	assert.Equal(t, "link:../../libraries/core", deps[0].VersionSpec())
	assert.Equal(t, 14, deps[0].Line())
	assert.False(t, deps[0].DevDependency())
	assert.Same(t, core, deps[0].Resolved())

	assert.Equal(t, "react", deps[1].PackageName())
	assert.Equal(t, "/react/17.0.2", deps[1].Resolved().ID().String())

	assert.Equal(t, "typescript", deps[2].PackageName())
	assert.True(t, deps[2].DevDependency())
	assert.Equal(t, 17, deps[2].Line())
	assert.Same(t, typescript, deps[2].Resolved())

	refs := typescript.Referencers()
	require.Len(t, refs, 2)
	assert.Same(t, web, refs[0].Containing())
	assert.Same(t, core, refs[1].Containing())

	root, ok := lock.Lookup("project:./common/temp")
	require.True(t, ok)
	assert.Empty(t, root.Dependencies(), "specifiers are not dependencies")
}

func TestParse_RootManifestPath(t *testing.T) {
	p, _ := newParser(t)
	text := "importers:\n  packages/a:\n    dependencies: {}\n"

	lock, err := p.Parse(t.Context(), text, "package.json")
	require.NoError(t, err)
	require.Len(t, lock.Importers(), 1)
	assert.Equal(t, "project:./packages/a", lock.Importers()[0].ID().String())

	lock, err = p.Parse(t.Context(), "importers:\n  ../../apps/a: {}\n", "")
	require.NoError(t, err)
	assert.Equal(t, "project:./apps/a", lock.Importers()[0].ID().String(), "empty path uses the Rush default")
}

func TestParse_MissingSections(t *testing.T) {
	p, _ := newParser(t)

	lock, err := p.Parse(t.Context(), "lockfileVersion: 5.4\n", domain.DefaultRootManifestPath)
	require.NoError(t, err)
	assert.Empty(t, lock.Importers())
	assert.Empty(t, lock.Packages())
	assert.Equal(t, 0, lock.EdgeCount())
}

func TestParse_MissingDevDependencies(t *testing.T) {
	p, _ := newParser(t)
	text := `importers:
  ../../apps/a:
    dependencies:
      left-pad: 1.0.0
packages:
  /left-pad/1.0.0:
    dev: false
`
	lock, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.NoError(t, err)

	deps := lock.Importers()[0].Dependencies()
	require.Len(t, deps, 1)
	assert.False(t, deps[0].DevDependency())
	assert.Empty(t, lock.Packages()[0].Dependencies())
}

func TestParse_SameNameInBothGroups(t *testing.T) {
	p, _ := newParser(t)
	text := `importers:
  ../../apps/a:
    devDependencies:
      left-pad: 1.0.0
    dependencies:
      left-pad: 1.0.0
packages:
  /left-pad/1.0.0: {}
`
	lock, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.NoError(t, err)

	deps := lock.Importers()[0].Dependencies()
	require.Len(t, deps, 2)
	assert.False(t, deps[0].DevDependency(), "dependencies come first regardless of document order")
	assert.Equal(t, 6, deps[0].Line())
	assert.True(t, deps[1].DevDependency())
	assert.Equal(t, 4, deps[1].Line())
	assert.Len(t, lock.Packages()[0].Referencers(), 2)
}

func TestParse_MissingRoot(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty document", ""},
		{"comment only", "# nothing here\n"},
		{"scalar root", "hello"},
		{"sequence root", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newParser(t)
			lock, err := p.Parse(t.Context(), tt.text, domain.DefaultRootManifestPath)
			require.Error(t, err)
			assert.Nil(t, lock)
			assert.ErrorIs(t, err, domain.ErrMalformedDocument)
			assert.ErrorIs(t, err, domain.ErrMissingRoot)
			assert.NotErrorIs(t, err, domain.ErrExpectingMapping)
		})
	}
}

func TestParse_ExpectingMapping(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantSection string
		wantKey     string
		wantLine    int
	}{
		{
			name:        "scalar importer",
			text:        "importers:\n  ../../apps/a: 5\n",
			wantSection: "importers",
			wantKey:     "../../apps/a",
			wantLine:    2,
		},
		{
			name:        "sequence package",
			text:        "importers: {}\npackages:\n  /a/1.0.0: {}\n  /b/1.0.0:\n    - x\n",
			wantSection: "packages",
			wantKey:     "/b/1.0.0",
			wantLine:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newParser(t)
			lock, err := p.Parse(t.Context(), tt.text, domain.DefaultRootManifestPath)
			require.Error(t, err)
			assert.Nil(t, lock)
			assert.ErrorIs(t, err, domain.ErrMalformedDocument)
			assert.ErrorIs(t, err, domain.ErrExpectingMapping)
			assert.NotErrorIs(t, err, domain.ErrMissingRoot)

			meta := metadata(t, err)
			assert.Equal(t, tt.wantSection, meta["section"])
			assert.Equal(t, tt.wantKey, meta["key"])
			assert.Equal(t, tt.wantLine, meta["line"])
		})
	}
}

func TestParse_DuplicateImporter(t *testing.T) {
	p, _ := newParser(t)
	text := `importers:
  ../../libraries/example: {}
  ../../libraries/./example: {}
`
	lock, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.Error(t, err)
	assert.Nil(t, lock)
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	assert.NotErrorIs(t, err, domain.ErrMalformedDocument)

	meta := metadata(t, err)
	assert.Equal(t, "project:./libraries/example", meta["entry_id"])
	assert.Equal(t, "importers", meta["section"])
	assert.Equal(t, 3, meta["line"])
}

func TestParse_UnresolvedDependency(t *testing.T) {
	p, _ := newParser(t)
	text := `importers:
  ../../apps/a:
    dependencies:
      left-pad: 1.0.0
      right-pad: 2.0.0
packages:
  /left-pad/1.0.0: {}
`
	lock, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.Error(t, err)
	assert.Nil(t, lock)
	assert.ErrorIs(t, err, domain.ErrUnresolvedDependency)
	assert.NotErrorIs(t, err, domain.ErrDuplicateIdentifier)

	meta := metadata(t, err)
	assert.Equal(t, "/right-pad/2.0.0", meta["target_id"])
	assert.Equal(t, "project:./apps/a", meta["entry_id"])
	assert.Equal(t, 5, meta["line"])
}

func TestParse_UnresolvedLink(t *testing.T) {
	p, _ := newParser(t)
	text := `importers:
  ../../apps/a:
    dependencies:
      b: link:../b
`
	_, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.ErrorIs(t, err, domain.ErrUnresolvedDependency)
	assert.Equal(t, "project:./apps/b", metadata(t, err)["target_id"])
}

func TestParse_SyntaxError(t *testing.T) {
	p, _ := newParser(t)
	lock, err := p.Parse(t.Context(), "importers: [unclosed\n", domain.DefaultRootManifestPath)
	require.Error(t, err)
	assert.Nil(t, lock)
	assert.ErrorIs(t, err, domain.ErrLockfileParseFailed)
	assert.NotErrorIs(t, err, domain.ErrMalformedDocument)
	assert.ErrorContains(t, err, "yaml: ")
}

func TestParse_LenientPackageKey(t *testing.T) {
	p, log := newParser(t)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	text := `importers:
  ../../apps/a:
    dependencies:
      odd: /odd
packages:
  /odd: {}
`
	lock, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.NoError(t, err)

	pkg := lock.Packages()[0]
	assert.Equal(t, "/odd", pkg.DisplayText())
	assert.Empty(t, pkg.PackageName())
	assert.Same(t, pkg, lock.Importers()[0].Dependencies()[0].Resolved())
}

func TestParse_ForwardAndBackReferences(t *testing.T) {
	p, _ := newParser(t)
	// A package that depends on a later package, and one that links back to an importer.
	text := `importers:
  ../../apps/a:
    dependencies:
      first: 1.0.0
packages:
  /first/1.0.0:
    dependencies:
      second: 1.0.0
  /second/1.0.0:
    dependencies:
      first: /first/1.0.0
`
	lock, err := p.Parse(t.Context(), text, domain.DefaultRootManifestPath)
	require.NoError(t, err)

	first, _ := lock.Lookup("/first/1.0.0")
	second, _ := lock.Lookup("/second/1.0.0")
	assert.Same(t, second, first.Dependencies()[0].Resolved())
	assert.Same(t, first, second.Dependencies()[0].Resolved(), "cycles are allowed")
	assert.Len(t, first.Referencers(), 2)
}
