// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/jmodpath/jmodpath/internal/descriptor"
	"github.com/jmodpath/jmodpath/internal/issue"
	"github.com/jmodpath/jmodpath/pkg/attrstore"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
	"github.com/jmodpath/jmodpath/pkg/modgraph"
	"github.com/jmodpath/jmodpath/pkg/modreg"
	"github.com/jmodpath/jmodpath/pkg/platform"
)

type (
	// Snapshot is one consistent view of the scanned modules. A snapshot is
	// never modified after it is published.
	Snapshot struct {
		Registry   *modreg.Registry
		Graph      *modgraph.Graph
		Generation uint64
	}

	// Workspace is an opened project descriptor.
	Workspace struct {
		path    string
		project *descriptor.Project
		catalog map[string]descriptor.Module
		store   *attrstore.Store
		sep     string
		logger  *log.Logger
		current atomic.Pointer[Snapshot]
		gen     atomic.Uint64
	}

	// Option configures a Workspace.
	Option func(*Workspace)
)

// WithLogger sets the logger used for skipped descriptor items and rescans.
func WithLogger(l *log.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithPathSeparator overrides the path-list separator used by the codec.
// An empty value keeps the host separator.
func WithPathSeparator(sep string) Option {
	return func(w *Workspace) {
		if sep != "" {
			w.sep = sep
		}
	}
}

// Open loads the descriptor at path and performs the first scan.
func Open(path string, opts ...Option) (*Workspace, error) {
	p, err := descriptor.Load(path)
	if err != nil {
		return nil, err
	}
	return New(p, path, opts...)
}

// New builds a workspace from an already decoded descriptor. path is where
// Save writes and may be empty for in-memory use. The descriptor is validated
// first, so every attribute it carries round-trips through Save.
func New(p *descriptor.Project, path string, opts ...Option) (*Workspace, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w := &Workspace{
		path:    path,
		project: p,
		catalog: make(map[string]descriptor.Module, len(p.Modules)),
		store:   attrstore.New(),
		sep:     platform.ListSeparator(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}

	for i, m := range p.Modules {
		if m.Name == "" {
			w.logger.Debug("module without a name, skipped", "index", i)
			continue
		}
		if _, dup := w.catalog[m.Name]; dup {
			w.logger.Debug("duplicate module in catalog, keeping first", "module", m.Name)
			continue
		}
		w.catalog[m.Name] = m
	}

	for _, e := range p.Classpath {
		elem := e.ClasspathElement()
		if err := w.store.Add(elem); err != nil {
			return nil, fmt.Errorf("add classpath element %s: %w", e.ID, err)
		}
		if err := w.loadAttributes(e); err != nil {
			return nil, fmt.Errorf("load attributes of %s: %w", e.ID, err)
		}
	}

	w.Rescan()
	return w, nil
}

func (w *Workspace) loadAttributes(e descriptor.Element) error {
	if !e.IsModuleAware() {
		return nil
	}
	return w.store.LoadAttributes(classpath.ElementID(e.ID), e.Attributes, w.CodecOptions()...)
}

// Path returns the descriptor path.
func (w *Workspace) Path() string { return w.path }

// Project returns the project name.
func (w *Workspace) Project() string { return w.project.Project }

// Store returns the attribute store. The store is not safe for concurrent
// mutation.
func (w *Workspace) Store() *attrstore.Store { return w.store }

// Separator returns the path-list separator in use.
func (w *Workspace) Separator() string { return w.sep }

// CodecOptions returns the codec options for this project: its separator and
// the project root as the default patch location.
func (w *Workspace) CodecOptions() []encap.Option {
	return []encap.Option{
		encap.WithPathListSeparator(w.sep),
		encap.WithDefaultPatchLocation("/" + w.project.Project),
	}
}

// Snapshot returns the current module snapshot.
func (w *Workspace) Snapshot() *Snapshot { return w.current.Load() }

// Rescan rebuilds the registry and graph from the store's elements and
// publishes them as a new snapshot. Readers holding the previous snapshot
// keep a complete view.
func (w *Workspace) Rescan() *Snapshot {
	reg := modreg.Scan(w.store.Elements(), w)
	graph := modgraph.Build(reg)
	for _, e := range graph.Unresolved() {
		w.logger.Debug("requirement not in registry", "module", e.From, "requires", e.To)
	}
	snap := &Snapshot{Registry: reg, Graph: graph, Generation: w.gen.Add(1)}
	w.current.Store(snap)
	w.logger.Debug("rescanned modules", "generation", snap.Generation, "modules", reg.Len())
	return snap
}

// AddElement appends a classpath element and rescans.
func (w *Workspace) AddElement(e descriptor.Element) error {
	elem := e.ClasspathElement()
	if err := elem.Kind.Validate(); err != nil {
		return err
	}
	for key := range e.Attributes {
		if _, err := encap.ParseKind(key); err != nil {
			return fmt.Errorf("element %s: %w", e.ID, err)
		}
	}
	if err := w.store.Add(elem); err != nil {
		return err
	}
	if err := w.loadAttributes(e); err != nil {
		return err
	}
	w.project.Classpath = append(w.project.Classpath, e)
	w.Rescan()
	return nil
}

// Element returns the store element with the given id, or an actionable
// error naming the known ids.
func (w *Workspace) Element(id string) (classpath.Element, error) {
	elem, ok := w.store.Element(classpath.ElementID(id))
	if ok {
		return elem, nil
	}
	ids := make([]string, 0, w.store.Len())
	for _, e := range w.store.Elements() {
		ids = append(ids, string(e.ID))
	}
	return classpath.Element{}, issue.NewErrorContext().
		WithOperation("select classpath element").
		WithResource(id).
		WithSuggestion("Known elements: " + strings.Join(ids, ", ")).
		WithIssue(issue.ElementNotFoundId).
		Wrap(&attrstore.ElementError{ID: classpath.ElementID(id), Err: attrstore.ErrUnknownElement}).
		BuildError()
}

// Save writes the store's attributes back into the descriptor file.
func (w *Workspace) Save() error {
	if w.path == "" {
		return fmt.Errorf("save workspace: no descriptor path")
	}
	w.SyncAttributes()
	return descriptor.Save(w.project, w.path)
}

// SyncAttributes copies the store's directives into the descriptor document.
func (w *Workspace) SyncAttributes() *descriptor.Project {
	for i := range w.project.Classpath {
		e := &w.project.Classpath[i]
		attrs := w.store.Attributes(classpath.ElementID(e.ID), w.CodecOptions()...)
		e.Module = attrs != nil && len(attrs) == 0
		if len(attrs) == 0 {
			e.Attributes = nil
			continue
		}
		e.Attributes = make(map[string]string, len(attrs))
		for kind, value := range attrs {
			e.Attributes[kind.String()] = value
		}
	}
	return w.project
}

// ResolveProvidedModules maps the element's provides list through the module
// catalog. Names missing from the catalog are skipped.
func (w *Workspace) ResolveProvidedModules(elem classpath.Element) []modreg.Provided {
	e, ok := w.project.Element(string(elem.ID))
	if !ok {
		return nil
	}
	var out []modreg.Provided
	for _, name := range e.Provides {
		m, ok := w.catalog[name]
		if !ok {
			w.logger.Debug("provided module not in catalog", "element", elem.ID, "module", name)
			continue
		}
		kind, err := modreg.ParseKind(m.Kind)
		if err != nil {
			w.logger.Debug("skipping module with invalid kind", "module", name, "kind", m.Kind)
			continue
		}
		out = append(out, modreg.Provided{Name: m.Name, Kind: kind, Requires: slices.Clone(m.Requires)})
	}
	return out
}

// OutputLocationOf returns the output folder of a source location. Exact
// entries win; otherwise the longest mapped ancestor is used and the
// remaining suffix is appended to its output.
func (w *Workspace) OutputLocationOf(location string) (string, bool) {
	loc := strings.TrimRight(strings.TrimSpace(location), "/")
	if out, ok := w.project.Outputs[loc]; ok {
		return out, true
	}
	best := ""
	for _, src := range slices.Sorted(maps.Keys(w.project.Outputs)) {
		src = strings.TrimRight(src, "/")
		if strings.HasPrefix(loc, src+"/") && len(src) > len(best) {
			best = src
		}
	}
	if best == "" {
		return "", false
	}
	out := w.project.Outputs[best]
	if out == "" {
		out = w.project.Outputs[best+"/"]
	}
	return strings.TrimRight(out, "/") + loc[len(best):], true
}

// DefaultRootModules keeps the candidates listed in the descriptor's
// default_roots, or all candidates when the list is absent.
func (w *Workspace) DefaultRootModules(candidates []string) []string {
	if w.project.DefaultRoots == nil {
		return slices.Clone(candidates)
	}
	var out []string
	for _, c := range candidates {
		if slices.Contains(w.project.DefaultRoots, c) {
			out = append(out, c)
		}
	}
	return out
}
