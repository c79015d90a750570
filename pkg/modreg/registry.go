// SPDX-License-Identifier: MPL-2.0

package modreg

import (
	"slices"

	"github.com/jmodpath/jmodpath/pkg/classpath"
)

type (
	// Provided is one module reported for a classpath element.
	Provided struct {
		Name     string
		Kind     Kind
		Requires []string
	}

	// ModuleResolver answers which modules, if any, a classpath element provides.
	// A container may provide many modules; a plain library provides zero or one.
	ModuleResolver interface {
		ResolveProvidedModules(elem classpath.Element) []Provided
	}

	// ModuleResolverFunc adapts a function to the ModuleResolver interface.
	ModuleResolverFunc func(elem classpath.Element) []Provided

	// Registry is the immutable result of a scan.
	Registry struct {
		modules map[string]Module
		order   []string
		focus   string
		source  map[string]classpath.ElementID
	}
)

// ResolveProvidedModules calls f(elem).
func (f ModuleResolverFunc) ResolveProvidedModules(elem classpath.Element) []Provided {
	return f(elem)
}

// Scan walks entries once, in order, and records every newly seen module.
func Scan(entries []classpath.Element, resolver ModuleResolver) *Registry {
	r := &Registry{
		modules: make(map[string]Module),
		source:  make(map[string]classpath.ElementID),
	}
	for _, entry := range entries {
		for _, p := range resolver.ResolveProvidedModules(entry) {
			if p.Name == "" {
				continue
			}
			if _, seen := r.modules[p.Name]; seen {
				continue
			}
			kind := p.Kind
			if kind == KindFocus {
				if r.focus != "" {
					kind = KindNormal
				} else {
					r.focus = p.Name
				}
			}
			r.modules[p.Name] = Module{
				Name:     p.Name,
				Requires: cleanRequires(p.Name, p.Requires),
				Kind:     kind,
			}
			r.order = append(r.order, p.Name)
			r.source[p.Name] = entry.ID
		}
	}
	return r
}

// cleanRequires drops empty names, self-requirements and repeated names.
func cleanRequires(self string, requires []string) []string {
	if len(requires) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(requires))
	out := make([]string, 0, len(requires))
	for _, name := range requires {
		if name == "" || name == self || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Lookup returns the module with the given name.
func (r *Registry) Lookup(name string) (Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Has reports whether name was recorded by the scan.
func (r *Registry) Has(name string) bool {
	_, ok := r.modules[name]
	return ok
}

// KindOf returns the kind of the named module, KindNormal when unknown.
func (r *Registry) KindOf(name string) Kind {
	return r.modules[name].Kind
}

// Modules returns all modules in scan order.
func (r *Registry) Modules() []Module {
	out := make([]Module, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.modules[name])
	}
	return out
}

// Names returns all module names in scan order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// NamesOfKind returns the names of modules of the given kind in scan order.
func (r *Registry) NamesOfKind(kind Kind) []string {
	var out []string
	for _, name := range r.order {
		if r.modules[name].Kind == kind {
			out = append(out, name)
		}
	}
	return out
}

// Focus returns the project's own module, if it contributes one.
func (r *Registry) Focus() (Module, bool) {
	if r.focus == "" {
		return Module{}, false
	}
	return r.modules[r.focus], true
}

// SourceOf returns the classpath element through which the module was first seen.
func (r *Registry) SourceOf(name string) (classpath.ElementID, bool) {
	id, ok := r.source[name]
	return id, ok
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.order)
}
