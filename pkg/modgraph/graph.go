// SPDX-License-Identifier: MPL-2.0

package modgraph

import (
	"slices"

	"github.com/jmodpath/jmodpath/pkg/modreg"
)

type (
	// Edge is a requirement from one module to another.
	Edge struct {
		From string
		To   string
	}

	// Graph is the bidirectional requirement graph of a registry.
	Graph struct {
		// modules holds every registered module in scan order.
		modules []string
		// known provides O(1) membership checks.
		known map[string]bool
		// required maps a module to the modules it requires, in declaration order.
		required map[string][]string
		// requiredBy maps a module to the modules that require it, in scan order.
		requiredBy map[string][]string
		// unresolved lists requirements whose target is not registered.
		unresolved []Edge
	}
)

// Build derives the graph from reg. Requirements naming modules the registry
// does not know are left out of the graph and reported by Unresolved.
func Build(reg *modreg.Registry) *Graph {
	g := &Graph{
		known:      make(map[string]bool, reg.Len()),
		required:   make(map[string][]string, reg.Len()),
		requiredBy: make(map[string][]string, reg.Len()),
	}
	for _, name := range reg.Names() {
		g.known[name] = true
		g.modules = append(g.modules, name)
	}
	for _, m := range reg.Modules() {
		for _, r := range m.Requires {
			if !g.known[r] {
				g.unresolved = append(g.unresolved, Edge{From: m.Name, To: r})
				continue
			}
			g.required[m.Name] = append(g.required[m.Name], r)
			g.requiredBy[r] = append(g.requiredBy[r], m.Name)
		}
	}
	return g
}

// Modules returns every module of the graph in scan order.
func (g *Graph) Modules() []string { return slices.Clone(g.modules) }

// Has reports whether the module is part of the graph.
func (g *Graph) Has(name string) bool { return g.known[name] }

// Required returns the modules directly required by name.
func (g *Graph) Required(name string) []string { return slices.Clone(g.required[name]) }

// RequiredBy returns the modules that directly require name.
func (g *Graph) RequiredBy(name string) []string { return slices.Clone(g.requiredBy[name]) }

// Unresolved returns requirements dropped because their target is unknown.
func (g *Graph) Unresolved() []Edge { return slices.Clone(g.unresolved) }

// Len returns the number of modules in the graph.
func (g *Graph) Len() int { return len(g.modules) }
