// SPDX-License-Identifier: MPL-2.0

package modgraph

// ForwardClosure returns seeds plus every module they transitively require,
// in discovery order. Expansion stops at modules listed in included: they are
// neither added nor expanded, which keeps the result to what a caller would
// newly bring into an existing selection. Seeds are always part of the result.
func (g *Graph) ForwardClosure(seeds, included []string) []string {
	boundary := toSet(included)
	visited := make(map[string]bool, len(seeds))
	var out []string

	var visit func(name string)
	visit = func(name string) {
		for _, r := range g.required[name] {
			if visited[r] || boundary[r] {
				continue
			}
			visited[r] = true
			out = append(out, r)
			visit(r)
		}
	}

	for _, s := range seeds {
		if visited[s] {
			continue
		}
		visited[s] = true
		out = append(out, s)
		visit(s)
	}
	return out
}

// Closure is ForwardClosure with no boundary.
func (g *Graph) Closure(seeds ...string) []string {
	return g.ForwardClosure(seeds, nil)
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
