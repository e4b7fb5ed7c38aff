// Package yamlnode provides keyed lookups over a yaml.v3 node tree with source line numbers.
package yamlnode

import (
	"iter"

	"gopkg.in/yaml.v3"
)

// Pair is one key/value entry of a mapping node.
type Pair struct {
	// Key is the key text.
	Key string
	// Line is the 1-based line of the key.
	Line int
	// Value is the value node with aliases already followed.
	Value *yaml.Node
}

// Parse decodes text into a node tree and returns the root content node.
// An empty document has no root and yields nil.
func Parse(text string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil //nolint:nilnil // an empty document is not an error
	}
	return deref(doc.Content[0]), nil
}

// IsMapping reports whether node is a mapping node.
func IsMapping(node *yaml.Node) bool {
	node = deref(node)
	return node != nil && node.Kind == yaml.MappingNode
}

// Child returns the value under key in a mapping node if it has the requested kind.
// It returns nil when node is not a mapping, the key is missing, or the value has another kind.
func Child(node *yaml.Node, key string, kind yaml.Kind) *yaml.Node {
	for pair := range Pairs(node) {
		if pair.Key != key {
			continue
		}
		if pair.Value.Kind != kind {
			return nil
		}
		return pair.Value
	}
	return nil
}

// Pairs iterates over the key/value entries of a mapping node in document order.
// Nothing is yielded for a node that is not a mapping.
func Pairs(node *yaml.Node) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		node = deref(node)
		if node == nil || node.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			pair := Pair{
				Key:   key.Value,
				Line:  key.Line,
				Value: deref(node.Content[i+1]),
			}
			if !yield(pair) {
				return
			}
		}
	}
}

// deref follows alias nodes to the node they point at.
func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}
