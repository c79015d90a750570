// SPDX-License-Identifier: MPL-2.0

package patch

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/jmodpath/jmodpath/pkg/attrstore"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
)

// outputs resolves locations through a fixed table.
type outputs map[string]string

func (o outputs) OutputLocationOf(loc string) (string, bool) {
	out, ok := o[loc]
	return out, ok
}

func newStore(t *testing.T, elements map[classpath.ElementID][]encap.Detail, order ...classpath.ElementID) *attrstore.Store {
	t.Helper()
	s := attrstore.New()
	for _, id := range order {
		if err := s.Add(classpath.Element{ID: id, Kind: classpath.KindProject, Path: "/" + string(id)}); err != nil {
			t.Fatal(err)
		}
		if details, ok := elements[id]; ok {
			if err := s.Set(id, details); err != nil {
				t.Fatal(err)
			}
		}
	}
	return s
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"/proj1", "/proj1", true},
		{"/proj1", "/proj1/sub", true},
		{"/proj1/sub", "/proj1", true},
		{"/proj1/", "/proj1/sub/deeper", true},
		{"/proj1", "/proj10/sub", false},
		{"/proj1/a", "/proj1/b", false},
		{"/proj1/a", "/proj1/a/b", false},
		{"/proj1", "/proj2", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			t.Parallel()
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestProjectHelpers(t *testing.T) {
	t.Parallel()

	if !IsProjectLevel("/proj") || IsProjectLevel("/proj/src") || IsProjectLevel("/") {
		t.Error("IsProjectLevel misclassified a location")
	}
	if got := ProjectOf("/proj/src/main"); got != "proj" {
		t.Errorf("ProjectOf() = %q, want proj", got)
	}
}

func TestBuildPatchMapKeepsEveryClaim(t *testing.T) {
	t.Parallel()

	s := newStore(t, map[classpath.ElementID][]encap.Detail{
		"e1": {encap.PatchModule{Module: "modA", Locations: []string{"/p1", "/p2"}}},
		"e2": {
			encap.AddRead{Source: "x", Target: "y"},
			encap.PatchModule{Module: "modB", Locations: []string{"/p2", "/p3"}},
		},
	}, "e1", "e2", "e3")

	m := BuildPatchMap(s)
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if c, _ := m.Lookup("/p2"); c.Module != "modA" || c.Element != "e1" {
		t.Errorf("Lookup(/p2) = %+v, want first claim by modA", c)
	}
	var modules []string
	for _, c := range m.ClaimsOf("/p2") {
		modules = append(modules, c.Module)
	}
	if !slices.Equal(modules, []string{"modA", "modB"}) {
		t.Errorf("ClaimsOf(/p2) modules = %v, want [modA modB]", modules)
	}
	if got := m.ClaimsOf("/nowhere"); len(got) != 0 {
		t.Errorf("ClaimsOf(/nowhere) = %v, want none", got)
	}
	var locs []string
	for _, c := range m.Claims() {
		locs = append(locs, c.Location)
	}
	if !slices.Equal(locs, []string{"/p1", "/p2", "/p2", "/p3"}) {
		t.Errorf("Claims() order = %v", locs)
	}
}

func TestValidateSameLocationTwoModules(t *testing.T) {
	t.Parallel()

	s := newStore(t, map[classpath.ElementID][]encap.Detail{
		"e1": {encap.PatchModule{Module: "modA", Locations: []string{"/p/src"}}},
		"e2": {encap.PatchModule{Module: "modB", Locations: []string{"/p/src"}}},
	}, "e1", "e2")
	m := BuildPatchMap(s)

	for _, locator := range []OutputLocator{nil, outputs{"/p/src": "/p/bin"}} {
		err := Validate(m, locator)
		var ambErr *AmbiguityError
		if !errors.As(err, &ambErr) {
			t.Fatalf("Validate(locator=%v) = %v, want *AmbiguityError", locator, err)
		}
		a := ambErr.Ambiguities[0]
		if !slices.Equal(a.Modules, []string{"modA", "modB"}) || !slices.Equal(a.Locations, []string{"/p/src"}) {
			t.Errorf("ambiguity = %+v", a)
		}
	}

	conflicts := FindConflicts(m, "modC", []string{"/p/src"}, nil)
	var holders []string
	for _, c := range conflicts {
		holders = append(holders, c.Existing.Module)
	}
	if !slices.Equal(holders, []string{"modA", "modB"}) {
		t.Errorf("FindConflicts() existing modules = %v, want [modA modB]", holders)
	}
}

func TestAddPatchLocations(t *testing.T) {
	t.Parallel()

	base := []encap.Detail{
		encap.AddExport{Source: "m", Package: "p"},
		encap.PatchModule{Module: "m", Locations: []string{"/a"}},
	}

	got := AddPatchLocations(base, "m", "/b:/a:", ":")
	want := []encap.Detail{base[0], encap.PatchModule{Module: "m", Locations: []string{"/a", "/b"}}}
	if !encap.EqualAll(got, want) {
		t.Errorf("AddPatchLocations() = %v, want %v", got, want)
	}
	if p := base[1].(encap.PatchModule); len(p.Locations) != 1 {
		t.Error("input must not be modified")
	}

	got = AddPatchLocations(base, "n", "/c;/d", ";")
	if p, _, ok := encap.FindPatch(got, "n"); !ok || !slices.Equal(p.Locations, []string{"/c", "/d"}) {
		t.Errorf("new patch = %v, %v", p, ok)
	}
	if got := AddPatchLocations(base, "n", "", ":"); len(got) != 2 {
		t.Errorf("empty text should change nothing, got %v", got)
	}
}

func TestRemovePatchLocation(t *testing.T) {
	t.Parallel()

	base := []encap.Detail{
		encap.PatchModule{Module: "m", Locations: []string{"/a", "/b"}},
		encap.AddRead{Source: "m", Target: "n"},
	}

	got := RemovePatchLocation(base, "m", "/a", ":")
	if p, _, _ := encap.FindPatch(got, "m"); !slices.Equal(p.Locations, []string{"/b"}) {
		t.Errorf("after removing /a: %v", got)
	}

	got = RemovePatchLocation(base, "m", "/a:/b", ":")
	if _, _, ok := encap.FindPatch(got, "m"); ok || len(got) != 1 {
		t.Errorf("emptied patch must be deleted, got %v", got)
	}
	if len(base) != 2 {
		t.Error("input must not be modified")
	}
	if got := RemovePatchLocation(base, "other", "/a", ":"); !encap.EqualAll(got, base) {
		t.Errorf("unknown module should change nothing, got %v", got)
	}
}

func TestAddDetectsShadowedLocation(t *testing.T) {
	t.Parallel()

	s := newStore(t, map[classpath.ElementID][]encap.Detail{
		"e1": {encap.PatchModule{Module: "modA", Locations: []string{"/proj1"}}},
	}, "e1", "e2")

	err := Add(s, "e2", "modB", "/proj1/sub", ":", nil)
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) || !errors.Is(err, ErrPatchConflict) {
		t.Fatalf("Add() error = %v, want *ConflictError", err)
	}
	c := conflictErr.Conflicts[0]
	if c.Existing.Module != "modA" || c.Existing.Location != "/proj1" || c.Location != "/proj1/sub" || c.Reason != ReasonSource {
		t.Errorf("conflict = %+v", c)
	}
	if !strings.Contains(err.Error(), "modA") || !strings.Contains(err.Error(), "modB") {
		t.Errorf("error should name both sides: %v", err)
	}
	if s.IsModuleAware("e2") {
		t.Error("nothing may be written on conflict")
	}
}

func TestAddAndUnpatchFlow(t *testing.T) {
	t.Parallel()

	s := newStore(t, map[classpath.ElementID][]encap.Detail{
		"e1": {encap.PatchModule{Module: "modA", Locations: []string{"/proj1/sub", "/proj2"}}},
	}, "e1")

	if err := Add(s, "e1", "modB", "/proj1", ":", nil); !errors.Is(err, ErrPatchConflict) {
		t.Fatalf("coarser location should conflict, got %v", err)
	}
	if err := Remove(s, "e1", "modA", "/proj1/sub", ":"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := Add(s, "e1", "modB", "/proj1", ":", nil); err != nil {
		t.Fatalf("Add() after unpatch error = %v", err)
	}
	// The same module may extend its own locations.
	if err := Add(s, "e1", "modB", "/proj1/other", ":", nil); err != nil {
		t.Errorf("Add() for own module error = %v", err)
	}

	details, _ := s.Get("e1")
	b, _, ok := encap.FindPatch(details, "modB")
	if !ok || !slices.Equal(b.Locations, []string{"/proj1", "/proj1/other"}) {
		t.Errorf("modB = %v, %v", b, ok)
	}

	if err := Remove(s, "missing", "modA", "/x", ":"); !errors.Is(err, attrstore.ErrUnknownElement) {
		t.Errorf("Remove() on unknown element error = %v", err)
	}
}

func TestAddOutputConflict(t *testing.T) {
	t.Parallel()

	s := newStore(t, map[classpath.ElementID][]encap.Detail{
		"e1": {encap.PatchModule{Module: "modA", Locations: []string{"/proj1/src"}}},
	}, "e1")
	locator := outputs{"/proj1/src": "/proj1/bin", "/proj1/test": "/proj1/bin"}

	err := Add(s, "e1", "modB", "/proj1/test", ":", locator)
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("Add() error = %v, want *ConflictError", err)
	}
	if c := conflictErr.Conflicts[0]; c.Reason != ReasonOutput || c.Output != "/proj1/bin" {
		t.Errorf("conflict = %+v", c)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	s := newStore(t, map[classpath.ElementID][]encap.Detail{
		"e1": {
			encap.PatchModule{Module: "modA", Locations: []string{"/proj1/src", "/proj1/gen"}},
			encap.PatchModule{Module: "modB", Locations: []string{"/proj1/test"}},
		},
		"e2": {encap.PatchModule{Module: "modC", Locations: []string{"/proj2"}}},
	}, "e1", "e2")

	clean := outputs{"/proj1/src": "/proj1/bin", "/proj1/gen": "/proj1/bin", "/proj1/test": "/proj1/test-bin"}
	if err := Validate(BuildPatchMap(s), clean); err != nil {
		t.Errorf("Validate() = %v, want nil (same module may share an output)", err)
	}

	shared := outputs{"/proj1/src": "/proj1/bin", "/proj1/gen": "/proj1/bin", "/proj1/test": "/proj1/bin"}
	err := Validate(BuildPatchMap(s), shared)
	var ambErr *AmbiguityError
	if !errors.As(err, &ambErr) || !errors.Is(err, ErrOutputAmbiguity) {
		t.Fatalf("Validate() = %v, want *AmbiguityError", err)
	}
	if len(ambErr.Ambiguities) != 1 {
		t.Fatalf("Ambiguities = %+v, want one output", ambErr.Ambiguities)
	}
	a := ambErr.Ambiguities[0]
	if a.Output != "/proj1/bin" || !slices.Equal(a.Modules, []string{"modA", "modB"}) {
		t.Errorf("ambiguity = %+v", a)
	}
	if !slices.Equal(ambErr.Locations(), []string{"/proj1/src", "/proj1/gen", "/proj1/test"}) {
		t.Errorf("Locations() = %v", ambErr.Locations())
	}

	if err := Validate(BuildPatchMap(s), nil); err != nil {
		t.Errorf("Validate() without locator = %v, want nil", err)
	}
}
