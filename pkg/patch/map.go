// SPDX-License-Identifier: MPL-2.0

package patch

import (
	"github.com/jmodpath/jmodpath/pkg/attrstore"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
)

type (
	// Claim is one patch location and the module that patches it.
	Claim struct {
		Location string
		Module   string
		// Element is the classpath element holding the directive.
		Element classpath.ElementID
	}

	// Map is the flattened view of every patch directive in a store. Every
	// claim is kept, so a location may be claimed by several modules.
	Map struct {
		claims []Claim
		index  map[string][]int
	}
)

// BuildPatchMap flattens the patch directives of every element in store,
// in element order.
func BuildPatchMap(store *attrstore.Store) *Map {
	m := &Map{index: make(map[string][]int)}
	for _, elem := range store.Elements() {
		details, _ := store.Get(elem.ID)
		for _, d := range details {
			p, ok := d.(encap.PatchModule)
			if !ok {
				continue
			}
			for _, loc := range p.Locations {
				m.add(Claim{Location: loc, Module: p.Module, Element: elem.ID})
			}
		}
	}
	return m
}

func (m *Map) add(c Claim) {
	m.index[c.Location] = append(m.index[c.Location], len(m.claims))
	m.claims = append(m.claims, c)
}

// Lookup returns the first claim of location.
func (m *Map) Lookup(location string) (Claim, bool) {
	idx := m.index[location]
	if len(idx) == 0 {
		return Claim{}, false
	}
	return m.claims[idx[0]], true
}

// ClaimsOf returns every claim of location in insertion order.
func (m *Map) ClaimsOf(location string) []Claim {
	idx := m.index[location]
	out := make([]Claim, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.claims[i])
	}
	return out
}

// Claims returns every claim in insertion order, including repeated claims
// of one location.
func (m *Map) Claims() []Claim {
	out := make([]Claim, len(m.claims))
	copy(out, m.claims)
	return out
}

// Len returns the number of distinct locations.
func (m *Map) Len() int { return len(m.index) }
