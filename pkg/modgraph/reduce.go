// SPDX-License-Identifier: MPL-2.0

package modgraph

import "github.com/jmodpath/jmodpath/pkg/modreg"

// ReduceNames returns the smallest root list that reaches the same closure as
// names. Only system modules are candidates for removal: a system module is
// dropped when another system module in names transitively requires it. When
// two system modules require each other the one listed first is kept.
// Non-system modules and the relative order of kept names are preserved.
func ReduceNames(names []string, kindOf func(string) modreg.Kind, requiredByOf func(string) []string) []string {
	unique := make([]string, 0, len(names))
	index := make(map[string]int, len(names))
	for _, n := range names {
		if _, dup := index[n]; dup {
			continue
		}
		index[n] = len(unique)
		unique = append(unique, n)
	}

	ancestors := make(map[string]map[string]bool)
	ancestorsOf := func(name string) map[string]bool {
		if set, ok := ancestors[name]; ok {
			return set
		}
		set := make(map[string]bool)
		stack := []string{name}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, requirer := range requiredByOf(current) {
				if !set[requirer] {
					set[requirer] = true
					stack = append(stack, requirer)
				}
			}
		}
		ancestors[name] = set
		return set
	}

	out := make([]string, 0, len(unique))
	for _, n := range unique {
		if kindOf(n) != modreg.KindSystem || !dominated(n, unique, index, kindOf, ancestorsOf) {
			out = append(out, n)
		}
	}
	return out
}

// dominated reports whether another system module in names requires n, either
// strictly or, inside a requirement cycle, from an earlier position.
func dominated(n string, names []string, index map[string]int, kindOf func(string) modreg.Kind, ancestorsOf func(string) map[string]bool) bool {
	requirers := ancestorsOf(n)
	for _, m := range names {
		if m == n || kindOf(m) != modreg.KindSystem || !requirers[m] {
			continue
		}
		if !ancestorsOf(m)[n] || index[m] < index[n] {
			return true
		}
	}
	return false
}

// Reduce applies ReduceNames using the kinds recorded in reg and the
// requirers recorded in g.
func (g *Graph) Reduce(names []string, reg *modreg.Registry) []string {
	return ReduceNames(names, reg.KindOf, g.RequiredBy)
}
