// SPDX-License-Identifier: MPL-2.0

package limits

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jmodpath/jmodpath/pkg/attrstore"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
	"github.com/jmodpath/jmodpath/pkg/modgraph"
	"github.com/jmodpath/jmodpath/pkg/modreg"
)

const (
	// StateAbsent means no limit-modules directive is needed.
	StateAbsent State = iota
	// StateDirty means the selection changed since the last commit.
	StateDirty
	// StatePersisted means the directive in the store matches the selection.
	StatePersisted
)

// ErrRemovalBlocked is the sentinel error wrapped by BlockedError.
var ErrRemovalBlocked = errors.New("module removal blocked")

type (
	// State is the lifecycle state of the limit-modules directive.
	State int

	// DefaultRootsProvider computes the platform's default root modules from a
	// list of candidates.
	DefaultRootsProvider interface {
		DefaultRootModules(candidates []string) []string
	}

	// DefaultRootsFunc adapts a function to the DefaultRootsProvider interface.
	DefaultRootsFunc func(candidates []string) []string

	// BlockedError is returned when every requested removal would cut off the
	// focus module. It wraps ErrRemovalBlocked.
	BlockedError struct {
		// Paths holds one requirement chain per blocked module.
		Paths []string
	}

	// RemoveResult describes what a Remove call changed.
	RemoveResult struct {
		// Removed lists the modules dropped from the selection.
		Removed []string
		// Blocked lists the chains of requests that were skipped.
		Blocked []string
	}

	// Editor holds the included module selection of one element.
	Editor struct {
		reg      *modreg.Registry
		graph    *modgraph.Graph
		defaults []string
		included []string
		roots    []string
		state    State
	}
)

// DefaultRootModules calls f(candidates).
func (f DefaultRootsFunc) DefaultRootModules(candidates []string) []string {
	return f(candidates)
}

// Error implements the error interface.
func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: required by the focus module via %s", ErrRemovalBlocked, strings.Join(e.Paths, ", "))
}

// Unwrap returns ErrRemovalBlocked so callers can use errors.Is for programmatic detection.
func (e *BlockedError) Unwrap() error { return ErrRemovalBlocked }

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateDirty:
		return "dirty"
	case StatePersisted:
		return "persisted"
	default:
		return "absent"
	}
}

// DefaultCandidates returns the candidate roots for the platform default
// computation. With a focus module they are the modules it requires; without
// one they are all system modules.
func DefaultCandidates(reg *modreg.Registry) []string {
	if focus, ok := reg.Focus(); ok {
		return slices.Clone(focus.Requires)
	}
	return reg.NamesOfKind(modreg.KindSystem)
}

// NewEditor starts an editor from the element's current directives. An
// existing limit-modules directive seeds the selection with the closure of its
// modules; otherwise the selection is the closure of the default roots.
func NewEditor(reg *modreg.Registry, graph *modgraph.Graph, provider DefaultRootsProvider, current []encap.Detail) *Editor {
	e := &Editor{reg: reg, graph: graph}
	e.defaults = graph.Closure(provider.DefaultRootModules(DefaultCandidates(reg))...)
	if limit, _, ok := encap.FindLimit(current); ok {
		e.included = graph.Closure(limit.Modules...)
		e.state = StatePersisted
	} else {
		e.included = slices.Clone(e.defaults)
		e.state = StateAbsent
	}
	e.roots = graph.Reduce(e.included, reg)
	return e
}

// State returns the current lifecycle state.
func (e *Editor) State() State { return e.state }

// Included returns the selected modules.
func (e *Editor) Included() []string { return slices.Clone(e.included) }

// Roots returns the reduced root list of the current selection.
func (e *Editor) Roots() []string { return slices.Clone(e.roots) }

// IsDefault reports whether the selection equals the default roots closure.
func (e *Editor) IsDefault() bool { return sameSet(e.included, e.defaults) }

// Add includes the modules and everything they require. Modules unknown to
// the graph are ignored. It returns the modules that were not included before.
func (e *Editor) Add(modules ...string) []string {
	var fresh []string
	for _, m := range modules {
		if !e.graph.Has(m) || slices.Contains(e.included, m) {
			continue
		}
		fresh = append(fresh, m)
	}
	if len(fresh) == 0 {
		return nil
	}
	added := e.graph.ForwardClosure(fresh, e.included)
	e.included = append(e.included, added...)
	e.changed()
	return added
}

// Remove drops the modules together with their included requirers and the
// requirements left dangling. Requests blocked by the focus module are skipped
// and reported unless force is set. When every request is blocked and force is
// not set, nothing changes and a *BlockedError is returned.
func (e *Editor) Remove(force bool, modules ...string) (RemoveResult, error) {
	var (
		res      RemoveResult
		removals []modgraph.Removal
	)
	focus := ""
	if f, ok := e.reg.Focus(); ok {
		focus = f.Name
	}
	scope := e.removalScope(focus)
	for _, m := range modules {
		r := e.graph.CollectModulesToRemove(m, scope, focus)
		if r.Blocked() {
			res.Blocked = append(res.Blocked, r.BlockingPath)
			if !force {
				continue
			}
		}
		removals = append(removals, r)
	}
	if len(removals) == 0 && len(res.Blocked) > 0 {
		return res, &BlockedError{Paths: res.Blocked}
	}

	drop := make(map[string]bool)
	for _, r := range removals {
		for _, m := range r.Modules {
			drop[m] = true
		}
	}
	if len(drop) == 0 {
		return res, nil
	}
	kept := e.included[:0:0]
	for _, m := range e.included {
		if drop[m] {
			res.Removed = append(res.Removed, m)
			continue
		}
		kept = append(kept, m)
	}
	e.included = kept
	e.changed()
	return res, nil
}

// Preview computes what Remove would drop for module without changing the
// selection.
func (e *Editor) Preview(module string) modgraph.Removal {
	focus := ""
	if f, ok := e.reg.Focus(); ok {
		focus = f.Name
	}
	return e.graph.CollectModulesToRemove(module, e.removalScope(focus), focus)
}

// removalScope is the selection plus the focus module, which always takes
// part in the module graph whether or not a directive lists it.
func (e *Editor) removalScope(focus string) []string {
	if focus == "" || !e.graph.Has(focus) || slices.Contains(e.included, focus) {
		return e.included
	}
	return append(slices.Clone(e.included), focus)
}

// Directive returns the limit-modules directive for the selection, or false
// when the selection equals the defaults and no directive is needed.
func (e *Editor) Directive() (encap.LimitModules, bool) {
	if e.IsDefault() {
		return encap.LimitModules{}, false
	}
	return encap.LimitModules{Modules: slices.Clone(e.roots)}, true
}

// Commit writes the directive to the element, or deletes it when the
// selection equals the defaults. Other directives of the element are kept.
func (e *Editor) Commit(store *attrstore.Store, id classpath.ElementID) error {
	current, _ := store.Get(id)
	directive, needed := e.Directive()

	next := make([]encap.Detail, 0, len(current)+1)
	placed := false
	for _, d := range current {
		if d.Kind() != encap.KindLimit {
			next = append(next, d)
			continue
		}
		if needed && !placed {
			next = append(next, directive)
			placed = true
		}
	}
	if needed && !placed {
		next = append(next, directive)
	}
	if err := store.Set(id, next); err != nil {
		return fmt.Errorf("commit limit-modules for %s: %w", id, err)
	}
	if needed {
		e.state = StatePersisted
	} else {
		e.state = StateAbsent
	}
	return nil
}

func (e *Editor) changed() {
	e.roots = e.graph.Reduce(e.included, e.reg)
	e.state = StateDirty
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, n := range a {
		set[n] = true
	}
	for _, n := range b {
		if !set[n] {
			return false
		}
	}
	return true
}
