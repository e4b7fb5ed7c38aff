package domain

// WhyPaths explains why an entry is in the lockfile. Each returned chain starts at a project
// and ends at target, following dependency edges; chains are shortest-first and at most one
// chain is returned per project. A limit of zero or less means no limit.
func WhyPaths(target *Entry, limit int) [][]*Entry {
	if target == nil {
		return nil
	}

	// Breadth-first over referencers, so the first visit of a node is along a shortest path.
	parent := map[*Entry]*Entry{target: nil}
	queue := []*Entry{target}
	var chains [][]*Entry

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.Kind() == EntryKindProject {
			chains = append(chains, chainFrom(current, parent))
			if limit > 0 && len(chains) >= limit {
				return chains
			}
		}

		for _, ref := range current.referencers {
			from := ref.containing
			if _, seen := parent[from]; seen {
				continue
			}
			parent[from] = current
			queue = append(queue, from)
		}
	}

	return chains
}

// chainFrom follows parent links from a project back down to the target.
func chainFrom(start *Entry, parent map[*Entry]*Entry) []*Entry {
	var chain []*Entry
	for e := start; e != nil; e = parent[e] {
		chain = append(chain, e)
	}
	return chain
}
