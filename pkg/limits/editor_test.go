// SPDX-License-Identifier: MPL-2.0

package limits

import (
	"errors"
	"slices"
	"testing"

	"github.com/jmodpath/jmodpath/pkg/attrstore"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
	"github.com/jmodpath/jmodpath/pkg/modgraph"
	"github.com/jmodpath/jmodpath/pkg/modreg"
)

// allDefaults treats every candidate as a default root.
var allDefaults = DefaultRootsFunc(func(c []string) []string { return c })

func scan(mods ...modreg.Provided) (*modreg.Registry, *modgraph.Graph) {
	resolver := modreg.ModuleResolverFunc(func(classpath.Element) []modreg.Provided { return mods })
	reg := modreg.Scan([]classpath.Element{{ID: "jre", Kind: classpath.KindContainer}}, resolver)
	return reg, modgraph.Build(reg)
}

func sys(name string, requires ...string) modreg.Provided {
	return modreg.Provided{Name: name, Kind: modreg.KindSystem, Requires: requires}
}

func platformModules() (*modreg.Registry, *modgraph.Graph) {
	return scan(
		sys("java.base"),
		sys("java.logging", "java.base"),
		sys("java.xml", "java.base"),
		sys("java.sql", "java.logging", "java.xml"),
		sys("java.desktop", "java.xml"),
	)
}

func sameSet(a, b []string) bool {
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func TestNewEditorDefaults(t *testing.T) {
	t.Parallel()

	reg, g := platformModules()
	e := NewEditor(reg, g, allDefaults, nil)

	if e.State() != StateAbsent {
		t.Errorf("State() = %v, want absent", e.State())
	}
	if !sameSet(e.Included(), reg.Names()) {
		t.Errorf("Included() = %v, want every system module", e.Included())
	}
	if _, ok := e.Directive(); ok {
		t.Error("default selection should need no directive")
	}
	if !slices.Equal(e.Roots(), []string{"java.sql", "java.desktop"}) {
		t.Errorf("Roots() = %v", e.Roots())
	}
}

func TestNewEditorFromDirective(t *testing.T) {
	t.Parallel()

	reg, g := platformModules()
	e := NewEditor(reg, g, allDefaults, []encap.Detail{encap.LimitModules{Modules: []string{"java.sql"}}})

	if e.State() != StatePersisted {
		t.Errorf("State() = %v, want persisted", e.State())
	}
	if !sameSet(e.Included(), []string{"java.sql", "java.logging", "java.xml", "java.base"}) {
		t.Errorf("Included() = %v", e.Included())
	}
	d, ok := e.Directive()
	if !ok || !slices.Equal(d.Modules, []string{"java.sql"}) {
		t.Errorf("Directive() = %v, %v", d, ok)
	}
}

func TestDefaultCandidates(t *testing.T) {
	t.Parallel()

	reg, _ := platformModules()
	if got := DefaultCandidates(reg); len(got) != 5 {
		t.Errorf("unnamed context candidates = %v, want all system modules", got)
	}

	named, _ := scan(
		sys("java.base"),
		sys("java.xml", "java.base"),
		modreg.Provided{Name: "app", Kind: modreg.KindFocus, Requires: []string{"java.xml"}},
	)
	if got := DefaultCandidates(named); !slices.Equal(got, []string{"java.xml"}) {
		t.Errorf("named context candidates = %v, want [java.xml]", got)
	}
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	reg, g := platformModules()
	store := attrstore.New()
	if err := store.Add(classpath.Element{ID: "jre", Kind: classpath.KindContainer}); err != nil {
		t.Fatal(err)
	}
	if err := store.Set("jre", []encap.Detail{encap.AddRead{Source: "a", Target: "b"}}); err != nil {
		t.Fatal(err)
	}

	e := NewEditor(reg, g, allDefaults, nil)

	// Absent -> Dirty
	res, err := e.Remove(false, "java.desktop")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !slices.Equal(res.Removed, []string{"java.desktop"}) {
		t.Errorf("Removed = %v, want [java.desktop]", res.Removed)
	}
	if e.State() != StateDirty {
		t.Errorf("State() = %v, want dirty", e.State())
	}

	// Dirty -> Persisted
	if err := e.Commit(store, "jre"); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if e.State() != StatePersisted {
		t.Errorf("State() = %v, want persisted", e.State())
	}
	details, _ := store.Get("jre")
	limit, _, ok := encap.FindLimit(details)
	if !ok || !slices.Equal(limit.Modules, []string{"java.sql"}) {
		t.Fatalf("stored limit = %v, %v, want [java.sql]", limit, ok)
	}
	if len(details) != 2 {
		t.Errorf("other directives must be kept, got %v", details)
	}

	// Back to the defaults -> Absent, directive deleted.
	if added := e.Add("java.desktop"); !slices.Equal(added, []string{"java.desktop"}) {
		t.Errorf("Add() = %v, want [java.desktop]", added)
	}
	if err := e.Commit(store, "jre"); err != nil {
		t.Fatal(err)
	}
	if e.State() != StateAbsent {
		t.Errorf("State() = %v, want absent", e.State())
	}
	details, ok = store.Get("jre")
	if !ok || len(encap.OfKind(details, encap.KindLimit)) != 0 || len(details) != 1 {
		t.Errorf("stored details = %v, want only the read directive", details)
	}
}

func TestAddPullsRequirements(t *testing.T) {
	t.Parallel()

	reg, g := platformModules()
	e := NewEditor(reg, g, allDefaults, []encap.Detail{encap.LimitModules{Modules: []string{"java.base"}}})

	added := e.Add("java.sql", "unknown.module")
	if !slices.Equal(added, []string{"java.sql", "java.logging", "java.xml"}) {
		t.Errorf("Add() = %v", added)
	}
	if e.Add("java.sql") != nil {
		t.Error("adding an included module should change nothing")
	}
	if !slices.Equal(e.Roots(), []string{"java.sql"}) {
		t.Errorf("Roots() = %v, want [java.sql]", e.Roots())
	}
}

func TestRemoveBlockedByFocus(t *testing.T) {
	t.Parallel()

	reg, g := scan(
		modreg.Provided{Name: "a", Kind: modreg.KindFocus, Requires: []string{"b"}},
		sys("b", "c"),
		sys("c"),
		sys("d"),
	)
	// Default roots are the focus module's requirements; include the focus too.
	e := NewEditor(reg, g, allDefaults, []encap.Detail{encap.LimitModules{Modules: []string{"a", "d"}}})

	_, err := e.Remove(false, "b")
	var blocked *BlockedError
	if !errors.As(err, &blocked) || !errors.Is(err, ErrRemovalBlocked) {
		t.Fatalf("Remove() error = %v, want *BlockedError", err)
	}
	if !slices.Equal(blocked.Paths, []string{"a->b"}) {
		t.Errorf("Paths = %v, want [a->b]", blocked.Paths)
	}
	if e.State() != StatePersisted {
		t.Errorf("blocked removal must not change state, got %v", e.State())
	}

	// Partial: d is removable, b is skipped.
	res, err := e.Remove(false, "b", "d")
	if err != nil {
		t.Fatalf("partial Remove() error = %v", err)
	}
	if !slices.Equal(res.Removed, []string{"d"}) || !slices.Equal(res.Blocked, []string{"a->b"}) {
		t.Errorf("Remove() = %+v", res)
	}

	// Forced: b and its dangling requirement go, the focus stays.
	res, err = e.Remove(true, "b")
	if err != nil {
		t.Fatalf("forced Remove() error = %v", err)
	}
	if !sameSet(res.Removed, []string{"b", "c"}) {
		t.Errorf("forced Removed = %v, want [b c]", res.Removed)
	}
	if !slices.Equal(e.Included(), []string{"a"}) {
		t.Errorf("Included() = %v, want [a]", e.Included())
	}
}

func TestRemoveBlockedByUnlistedFocus(t *testing.T) {
	t.Parallel()

	reg, g := scan(
		modreg.Provided{Name: "app", Kind: modreg.KindFocus, Requires: []string{"b"}},
		sys("b", "c"),
		sys("c"),
	)
	// The defaults are the closure of the focus requirements; the focus
	// itself is not part of the selection but still blocks.
	e := NewEditor(reg, g, allDefaults, nil)
	if !sameSet(e.Included(), []string{"b", "c"}) {
		t.Fatalf("Included() = %v, want [b c]", e.Included())
	}

	_, err := e.Remove(false, "c")
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("Remove() error = %v, want *BlockedError", err)
	}
	if !slices.Equal(blocked.Paths, []string{"app->b->c"}) {
		t.Errorf("Paths = %v, want [app->b->c]", blocked.Paths)
	}
	if slices.Contains(e.Included(), "app") {
		t.Error("focus leaked into the selection")
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	reg, g := scan(
		modreg.Provided{Name: "app", Kind: modreg.KindFocus, Requires: []string{"b"}},
		sys("b", "c"),
		sys("c"),
		sys("d", "c"),
	)
	e := NewEditor(reg, g, allDefaults, []encap.Detail{encap.LimitModules{Modules: []string{"b", "d"}}})
	before := e.Included()

	r := e.Preview("d")
	if r.Blocked() || !slices.Equal(r.Modules, []string{"d"}) {
		t.Errorf("Preview(d) = %+v, want [d] unblocked", r)
	}
	r = e.Preview("c")
	if r.BlockingPath != "app->b->c" {
		t.Errorf("Preview(c).BlockingPath = %q", r.BlockingPath)
	}
	if !slices.Equal(e.Included(), before) {
		t.Errorf("Preview changed the selection: %v", e.Included())
	}
}
