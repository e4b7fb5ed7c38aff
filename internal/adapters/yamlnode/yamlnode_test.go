package yamlnode_test

import (
	"slices"
	"testing"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/yamlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sample = `lockfileVersion: 5.4
importers:
  ../../apps/web:
    dependencies:
      react: 17.0.2
      lodash: 4.17.21
shared: &shared
  a: 1
alias: *shared
`

func TestParse(t *testing.T) {
	t.Run("mapping root", func(t *testing.T) {
		root, err := yamlnode.Parse(sample)
		require.NoError(t, err)
		require.NotNil(t, root)
		assert.True(t, yamlnode.IsMapping(root))
	})

	t.Run("empty document", func(t *testing.T) {
		root, err := yamlnode.Parse("")
		require.NoError(t, err)
		assert.Nil(t, root)
	})

	t.Run("scalar root", func(t *testing.T) {
		root, err := yamlnode.Parse("just text")
		require.NoError(t, err)
		assert.False(t, yamlnode.IsMapping(root))
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := yamlnode.Parse("importers: [unclosed")
		assert.Error(t, err)
	})
}

func TestChild(t *testing.T) {
	root, err := yamlnode.Parse(sample)
	require.NoError(t, err)

	importers := yamlnode.Child(root, "importers", yaml.MappingNode)
	require.NotNil(t, importers)

	assert.Nil(t, yamlnode.Child(root, "packages", yaml.MappingNode), "missing key")
	assert.Nil(t, yamlnode.Child(root, "lockfileVersion", yaml.MappingNode), "wrong kind")
	assert.NotNil(t, yamlnode.Child(root, "lockfileVersion", yaml.ScalarNode))
	assert.Nil(t, yamlnode.Child(nil, "importers", yaml.MappingNode), "nil node")

	aliased := yamlnode.Child(root, "alias", yaml.MappingNode)
	require.NotNil(t, aliased, "aliases are followed")
	assert.NotNil(t, yamlnode.Child(aliased, "a", yaml.ScalarNode))
}

func TestPairs(t *testing.T) {
	root, err := yamlnode.Parse(sample)
	require.NoError(t, err)

	project := yamlnode.Child(yamlnode.Child(root, "importers", yaml.MappingNode), "../../apps/web", yaml.MappingNode)
	deps := yamlnode.Child(project, "dependencies", yaml.MappingNode)

	pairs := slices.Collect(yamlnode.Pairs(deps))
	require.Len(t, pairs, 2)

	assert.Equal(t, "react", pairs[0].Key)
	assert.Equal(t, "17.0.2", pairs[0].Value.Value)
	assert.Equal(t, 5, pairs[0].Line)

	assert.Equal(t, "lodash", pairs[1].Key)
	assert.Equal(t, "4.17.21", pairs[1].Value.Value)
	assert.Equal(t, 6, pairs[1].Line)

	assert.Empty(t, slices.Collect(yamlnode.Pairs(pairs[0].Value)), "scalar has no pairs")
}
