// SPDX-License-Identifier: MPL-2.0

package encap

import (
	"slices"
	"strings"
)

type (
	// Detail is one encapsulation directive. The set of implementations is
	// closed: AddExport, AddOpen, AddRead, LimitModules and PatchModule.
	Detail interface {
		// Kind returns the directive tag.
		Kind() Kind
		// Affects reports whether the directive is keyed on the named module.
		Affects(module string) bool
		// String returns the single-fragment text form.
		String() string

		isDetail()
	}

	// AddExport exports Package of Source to Targets.
	AddExport struct {
		Source  string
		Package string
		// Targets is a comma-separated module list; empty means all unnamed modules.
		Targets string
	}

	// AddOpen opens Package of Source to Targets for deep reflection.
	AddOpen struct {
		Source  string
		Package string
		// Targets is a comma-separated module list; empty means all unnamed modules.
		Targets string
	}

	// AddRead makes Source read Target.
	AddRead struct {
		Source string
		Target string
	}

	// LimitModules restricts the observable root modules to Modules.
	// Modules is a set; order is kept only for stable formatting.
	LimitModules struct {
		Modules []string
	}

	// PatchModule adds Locations to the content of Module.
	// Locations is never empty for a stored directive.
	PatchModule struct {
		Module    string
		Locations []string
	}
)

func (AddExport) Kind() Kind { return KindExport }
func (AddOpen) Kind() Kind { return KindOpen }
func (AddRead) Kind() Kind { return KindRead }
func (LimitModules) Kind() Kind { return KindLimit }
func (PatchModule) Kind() Kind { return KindPatch }

func (d AddExport) Affects(module string) bool { return d.Source == module }
func (d AddOpen) Affects(module string) bool { return d.Source == module }
func (d AddRead) Affects(module string) bool { return d.Source == module }

// Affects is always false: limit-modules acts on the set of roots, never on one module.
func (LimitModules) Affects(string) bool { return false }
func (d PatchModule) Affects(module string) bool { return d.Module == module }

func (d AddExport) String() string { return Format(d) }
func (d AddOpen) String() string { return Format(d) }
func (d AddRead) String() string { return Format(d) }
func (d LimitModules) String() string { return Format(d) }
func (d PatchModule) String() string { return Format(d) }

func (AddExport) isDetail() {}
func (AddOpen) isDetail() {}
func (AddRead) isDetail() {}
func (LimitModules) isDetail() {}
func (PatchModule) isDetail() {}

// TargetList splits Targets into module names. An empty result means all unnamed modules.
func (d AddExport) TargetList() []string { return splitNames(d.Targets) }

// TargetList splits Targets into module names. An empty result means all unnamed modules.
func (d AddOpen) TargetList() []string { return splitNames(d.Targets) }

// Contains reports whether name is one of the explicitly included modules.
func (d LimitModules) Contains(name string) bool {
	return slices.Contains(d.Modules, name)
}

// Equal reports whether a and b are the same directive by value.
// LimitModules compare their module sets; all other fields compare exactly.
func Equal(a, b Detail) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case AddExport:
		y, ok := b.(AddExport)
		return ok && x == y
	case AddOpen:
		y, ok := b.(AddOpen)
		return ok && x == y
	case AddRead:
		y, ok := b.(AddRead)
		return ok && x == y
	case LimitModules:
		y, ok := b.(LimitModules)
		return ok && sameSet(x.Modules, y.Modules)
	case PatchModule:
		y, ok := b.(PatchModule)
		return ok && x.Module == y.Module && slices.Equal(x.Locations, y.Locations)
	default:
		return false
	}
}

// EqualAll reports whether two directive sequences are equal element by element.
func EqualAll(a, b []Detail) bool {
	return slices.EqualFunc(a, b, Equal)
}

// OfKind returns the directives of the given kind, preserving order.
func OfKind(details []Detail, kind Kind) []Detail {
	var out []Detail
	for _, d := range details {
		if d.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}

// FindPatch returns the patch directive for module and its index in details.
func FindPatch(details []Detail, module string) (PatchModule, int, bool) {
	for i, d := range details {
		if p, ok := d.(PatchModule); ok && p.Affects(module) {
			return p, i, true
		}
	}
	return PatchModule{}, -1, false
}

// FindLimit returns the limit-modules directive and its index in details.
func FindLimit(details []Detail) (LimitModules, int, bool) {
	for i, d := range details {
		if l, ok := d.(LimitModules); ok {
			return l, i, true
		}
	}
	return LimitModules{}, -1, false
}

func sameSet(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, s := range a {
		as[s] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, s := range b {
		if _, ok := as[s]; !ok {
			return false
		}
		bs[s] = struct{}{}
	}
	return len(as) == len(bs)
}

// splitNames splits a comma-separated list, trimming blanks and dropping empties.
func splitNames(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
