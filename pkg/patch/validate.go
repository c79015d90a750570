// SPDX-License-Identifier: MPL-2.0

package patch

import "slices"

// Validate groups the claims of m by resolved output location and reports
// every output shared by more than one module as a single *AmbiguityError.
// A location the locator cannot resolve is grouped under itself. The result is
// a warning: callers keep the configuration editable.
func Validate(m *Map, locator OutputLocator) error {
	type group struct {
		locations []string
		modules   []string
	}
	groups := make(map[string]*group)
	var order []string

	for _, c := range m.claims {
		output := c.Location
		if locator != nil {
			if resolved, ok := locator.OutputLocationOf(c.Location); ok {
				output = resolved
			}
		}
		g, ok := groups[output]
		if !ok {
			g = &group{}
			groups[output] = g
			order = append(order, output)
		}
		if !slices.Contains(g.locations, c.Location) {
			g.locations = append(g.locations, c.Location)
		}
		if !slices.Contains(g.modules, c.Module) {
			g.modules = append(g.modules, c.Module)
		}
	}

	var ambiguities []Ambiguity
	for _, output := range order {
		g := groups[output]
		if len(g.modules) > 1 {
			ambiguities = append(ambiguities, Ambiguity{Output: output, Locations: g.locations, Modules: g.modules})
		}
	}
	if len(ambiguities) == 0 {
		return nil
	}
	return &AmbiguityError{Ambiguities: ambiguities}
}
