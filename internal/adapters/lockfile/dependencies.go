package lockfile

import (
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/yamlnode"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// dependencyGroups are read in this order, so regular dependencies precede devDependencies.
var dependencyGroups = []struct {
	key string
	dev bool
}{
	{key: "dependencies", dev: false},
	{key: "devDependencies", dev: true},
}

// addDependencies attaches one Dependency per key/value pair of the entry's dependency mappings.
// A missing mapping contributes nothing, and names listed in both groups produce two records.
func addDependencies(entry *domain.Entry, node *yaml.Node) {
	for _, group := range dependencyGroups {
		deps := yamlnode.Child(node, group.key, yaml.MappingNode)
		for pair := range yamlnode.Pairs(deps) {
			entry.AddDependency(pair.Key, pair.Value.Value, group.dev, pair.Line)
		}
	}
}
