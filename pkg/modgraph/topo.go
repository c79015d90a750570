// SPDX-License-Identifier: MPL-2.0

package modgraph

import (
	"fmt"
	"strings"
)

// CycleError indicates that the requirement graph contains a cycle, so no
// order places every module after the modules it requires.
type CycleError struct {
	// Cycle contains the modules left unordered, enough to identify the problem.
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("module requirement cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// TopologicalOrder returns the modules so that every module follows the
// modules it requires, using Kahn's algorithm. Modules at the same level keep
// scan order. Returns CycleError if the graph contains a cycle.
func (g *Graph) TopologicalOrder() ([]string, error) {
	if len(g.modules) == 0 {
		return nil, nil
	}

	// A module's in-degree is the number of modules it still waits for.
	inDegree := make(map[string]int, len(g.modules))
	for _, m := range g.modules {
		inDegree[m] = len(g.required[m])
	}

	queue := make([]string, 0)
	for _, m := range g.modules {
		if inDegree[m] == 0 {
			queue = append(queue, m)
		}
	}

	var result []string
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		result = append(result, m)

		for _, dependent := range g.requiredBy[m] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.modules) {
		var cycle []string
		for _, m := range g.modules {
			if inDegree[m] > 0 {
				cycle = append(cycle, m)
			}
		}
		return nil, &CycleError{Cycle: cycle}
	}

	return result, nil
}
