// SPDX-License-Identifier: MPL-2.0

package modgraph

import "strings"

// ChainSeparator joins module names in a blocking path.
const ChainSeparator = "->"

// Removal is the outcome of CollectModulesToRemove.
type Removal struct {
	// Module is the module the caller asked to remove.
	Module string
	// Modules lists the modules that go away together with Module, Module first.
	Modules []string
	// BlockingPath is set when the focus module depends on Module. It reads
	// "focus->...->module" and names the shortest such requirement chain.
	BlockingPath string
}

// Blocked reports whether removing the module would cut off the focus module.
func (r Removal) Blocked() bool { return r.BlockingPath != "" }

// CollectModulesToRemove computes what else leaves an included selection
// when module is removed from it: every included module that transitively
// requires it, and every included module left with no remaining included
// requirer. The focus module is never part of the set. When focus depends on
// module, the chain from focus to module is reported as BlockingPath and the
// caller decides whether to proceed. Removing focus itself yields no modules
// and a BlockingPath naming focus.
func (g *Graph) CollectModulesToRemove(module string, included []string, focus string) Removal {
	res := Removal{Module: module}
	if focus != "" && module == focus {
		res.BlockingPath = focus
		return res
	}
	in := toSet(included)
	if !in[module] {
		return res
	}

	removing := map[string]bool{module: true}
	res.Modules = []string{module}

	// Breadth-first over requirers so the reported chain is the shortest one.
	parent := make(map[string]string)
	queue := []string{module}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dependent := range g.requiredBy[current] {
			if !in[dependent] || removing[dependent] {
				continue
			}
			if dependent == focus {
				if res.BlockingPath == "" {
					res.BlockingPath = chain(focus, current, parent)
				}
				continue
			}
			removing[dependent] = true
			parent[dependent] = current
			res.Modules = append(res.Modules, dependent)
			queue = append(queue, dependent)
		}
	}

	// Sweep requirements that no remaining included module needs any more.
	for i := 0; i < len(res.Modules); i++ {
		for _, r := range g.required[res.Modules[i]] {
			if !in[r] || removing[r] || r == focus {
				continue
			}
			if g.hasRemainingRequirer(r, in, removing) {
				continue
			}
			removing[r] = true
			res.Modules = append(res.Modules, r)
		}
	}
	return res
}

func (g *Graph) hasRemainingRequirer(name string, in, removing map[string]bool) bool {
	for _, requirer := range g.requiredBy[name] {
		if in[requirer] && !removing[requirer] {
			return true
		}
	}
	return false
}

// chain renders focus->from->...->module by walking parent links from the
// module focus requires directly back to the removed module.
func chain(focus, from string, parent map[string]string) string {
	parts := []string{focus, from}
	for next, ok := parent[from]; ok; next, ok = parent[next] {
		parts = append(parts, next)
	}
	return strings.Join(parts, ChainSeparator)
}
