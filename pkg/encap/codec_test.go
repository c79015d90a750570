// SPDX-License-Identifier: MPL-2.0

package encap

import (
	"errors"
	"slices"
	"testing"
)

func TestParseExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   Detail
		wantOK bool
	}{
		{"with targets", "m1/pkg.a=m2,m3", AddExport{Source: "m1", Package: "pkg.a", Targets: "m2,m3"}, true},
		{"all unnamed", "m1/pkg.a=", AddExport{Source: "m1", Package: "pkg.a"}, true},
		{"equals in targets kept", "m1/p=a=b", AddExport{Source: "m1", Package: "p", Targets: "a=b"}, true},
		{"slash in package kept", "m1/p/q=t", AddExport{Source: "m1", Package: "p/q", Targets: "t"}, true},
		{"missing slash", "m1pkg=m2", nil, false},
		{"missing equals", "m1/pkg", nil, false},
		{"empty source", "/pkg=m2", nil, false},
		{"empty", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Parse(KindExport, tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseOpenKeepsDistinctTag(t *testing.T) {
	t.Parallel()

	d, ok := Parse(KindOpen, "m1/pkg.a=m2")
	if !ok {
		t.Fatal("expected open fragment to parse")
	}
	if _, isOpen := d.(AddOpen); !isOpen {
		t.Fatalf("Parse(KindOpen) returned %T, want AddOpen", d)
	}
	if Equal(d, AddExport{Source: "m1", Package: "pkg.a", Targets: "m2"}) {
		t.Error("AddOpen must not equal AddExport with the same fields")
	}
}

func TestParseRead(t *testing.T) {
	t.Parallel()

	d, ok := Parse(KindRead, "m1=m2")
	if !ok || !Equal(d, AddRead{Source: "m1", Target: "m2"}) {
		t.Fatalf("Parse(read) = %#v, %v", d, ok)
	}
	if _, ok := Parse(KindRead, "m1m2"); ok {
		t.Error("read without '=' should be malformed")
	}
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	d, ok := Parse(KindLimit, " java.sql , java.xml,,java.sql ")
	if !ok {
		t.Fatal("expected limit to parse")
	}
	l := d.(LimitModules)
	if !slices.Equal(l.Modules, []string{"java.sql", "java.xml"}) {
		t.Errorf("Modules = %v, want [java.sql java.xml]", l.Modules)
	}
	if _, ok := Parse(KindLimit, " , "); ok {
		t.Error("blank limit should be malformed")
	}
}

func TestParsePatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		opts   []Option
		want   Detail
		wantOK bool
	}{
		{
			name:   "posix separator",
			text:   "m=/p1:/p2",
			opts:   []Option{WithPathListSeparator(":")},
			want:   PatchModule{Module: "m", Locations: []string{"/p1", "/p2"}},
			wantOK: true,
		},
		{
			name:   "windows separator",
			text:   `m=C:\p1;C:\p2`,
			opts:   []Option{WithPathListSeparator(";")},
			want:   PatchModule{Module: "m", Locations: []string{`C:\p1`, `C:\p2`}},
			wantOK: true,
		},
		{
			name:   "module only uses default location",
			text:   "m",
			opts:   []Option{WithDefaultPatchLocation("/proj")},
			want:   PatchModule{Module: "m", Locations: []string{"/proj"}},
			wantOK: true,
		},
		{
			name:   "module only without default",
			text:   "m",
			wantOK: false,
		},
		{
			name:   "empty payload without default",
			text:   "m=",
			opts:   []Option{WithPathListSeparator(":")},
			wantOK: false,
		},
		{
			name:   "empty module",
			text:   "=/p1",
			opts:   []Option{WithPathListSeparator(":")},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Parse(KindPatch, tt.text, tt.opts...)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if tt.wantOK && !Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFormatExportScenario(t *testing.T) {
	t.Parallel()

	d := AddExport{Source: "m1", Package: "pkg.a", Targets: "m2,m3"}
	text := Format(d)
	if text != "m1/pkg.a=m2,m3" {
		t.Fatalf("Format() = %q, want %q", text, "m1/pkg.a=m2,m3")
	}
	back, ok := Parse(KindExport, text)
	if !ok || !Equal(back, d) {
		t.Errorf("Parse(Format(d)) = %#v, want %#v", back, d)
	}
	if !slices.Equal(d.TargetList(), []string{"m2", "m3"}) {
		t.Errorf("TargetList() = %v", d.TargetList())
	}
}

func TestRoundTripEveryKind(t *testing.T) {
	t.Parallel()

	opts := []Option{WithPathListSeparator(":")}
	details := []Detail{
		AddExport{Source: "a", Package: "a.internal", Targets: "b"},
		AddExport{Source: "a", Package: "a.api"},
		AddOpen{Source: "a", Package: "a.model", Targets: "b,c"},
		AddRead{Source: "a", Target: "b"},
		LimitModules{Modules: []string{"java.sql", "java.xml"}},
		PatchModule{Module: "a", Locations: []string{"/proj/src", "/proj/gen"}},
	}

	for _, d := range details {
		t.Run(Format(d, opts...), func(t *testing.T) {
			t.Parallel()
			back, ok := Parse(d.Kind(), Format(d, opts...), opts...)
			if !ok {
				t.Fatalf("round trip of %#v failed to parse", d)
			}
			if !Equal(back, d) {
				t.Errorf("round trip = %#v, want %#v", back, d)
			}
		})
	}
}

func TestMultiRoundTrip(t *testing.T) {
	t.Parallel()

	opts := []Option{WithPathListSeparator(":")}
	tests := []struct {
		kind    Kind
		details []Detail
	}{
		{KindExport, []Detail{
			AddExport{Source: "a", Package: "p1", Targets: "b"},
			AddExport{Source: "c", Package: "p2", Targets: "d,e"},
		}},
		{KindOpen, []Detail{
			AddOpen{Source: "a", Package: "p1"},
			AddOpen{Source: "b", Package: "p2", Targets: "c"},
		}},
		{KindRead, []Detail{
			AddRead{Source: "a", Target: "b"},
			AddRead{Source: "b", Target: "c"},
		}},
		{KindPatch, []Detail{
			PatchModule{Module: "m", Locations: []string{"/p1", "/p3"}},
			PatchModule{Module: "m2", Locations: []string{"/p2"}},
		}},
		{KindLimit, []Detail{
			LimitModules{Modules: []string{"a", "b"}},
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			text := FormatMulti(tt.details, tt.kind, opts...)
			back := ParseMulti(tt.kind, text, opts...)
			if !EqualAll(back, tt.details) {
				t.Errorf("ParseMulti(FormatMulti()) = %#v, want %#v (text %q)", back, tt.details, text)
			}
		})
	}
}

func TestFormatMultiPatchScenario(t *testing.T) {
	t.Parallel()

	opts := []Option{WithPathListSeparator(":")}
	details := []Detail{
		PatchModule{Module: "m", Locations: []string{"/p1"}},
		PatchModule{Module: "m2", Locations: []string{"/p2"}},
	}
	text := FormatMulti(details, KindPatch, opts...)
	if text != "m=/p1::m2=/p2" {
		t.Fatalf("FormatMulti() = %q, want %q", text, "m=/p1::m2=/p2")
	}
	back := ParseMulti(KindPatch, text, opts...)
	if !EqualAll(back, details) {
		t.Errorf("ParseMulti() = %#v, want %#v", back, details)
	}
}

func TestFormatMultiFiltersByKind(t *testing.T) {
	t.Parallel()

	details := []Detail{
		AddExport{Source: "a", Package: "p", Targets: "b"},
		AddRead{Source: "a", Target: "b"},
		LimitModules{Modules: []string{"x"}},
		AddExport{Source: "c", Package: "q", Targets: ""},
		LimitModules{Modules: []string{"y", "x"}},
	}

	if got := FormatMulti(details, KindExport); got != "a/p=b:c/q=" {
		t.Errorf("FormatMulti(export) = %q", got)
	}
	if got := FormatMulti(details, KindRead); got != "a=b" {
		t.Errorf("FormatMulti(read) = %q", got)
	}
	if got := FormatMulti(details, KindLimit); got != "x,y" {
		t.Errorf("FormatMulti(limit) = %q, want merged %q", got, "x,y")
	}
	if got := FormatMulti(details, KindOpen); got != "" {
		t.Errorf("FormatMulti(open) = %q, want empty", got)
	}
}

func TestParseMultiDropsMalformedFragments(t *testing.T) {
	t.Parallel()

	got := ParseMulti(KindExport, "a/p=b:broken:c/q=d:/x=y")
	want := []Detail{
		AddExport{Source: "a", Package: "p", Targets: "b"},
		AddExport{Source: "c", Package: "q", Targets: "d"},
	}
	if !EqualAll(got, want) {
		t.Errorf("ParseMulti() = %#v, want %#v", got, want)
	}

	if got := ParseMulti(KindRead, "   "); got != nil {
		t.Errorf("ParseMulti(blank) = %#v, want nil", got)
	}
}

func TestAffects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		detail Detail
		module string
		want   bool
	}{
		{"export source", AddExport{Source: "a", Package: "p", Targets: "b"}, "a", true},
		{"export target", AddExport{Source: "a", Package: "p", Targets: "b"}, "b", false},
		{"open source", AddOpen{Source: "a", Package: "p"}, "a", true},
		{"read source", AddRead{Source: "a", Target: "b"}, "a", true},
		{"read target", AddRead{Source: "a", Target: "b"}, "b", false},
		{"limit never", LimitModules{Modules: []string{"a"}}, "a", false},
		{"patch module", PatchModule{Module: "a", Locations: []string{"/p"}}, "a", true},
		{"patch other", PatchModule{Module: "a", Locations: []string{"/p"}}, "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.detail.Affects(tt.module); got != tt.want {
				t.Errorf("Affects(%q) = %v, want %v", tt.module, got, tt.want)
			}
		})
	}
}

func TestEqualLimitIsSetBased(t *testing.T) {
	t.Parallel()

	a := LimitModules{Modules: []string{"x", "y"}}
	b := LimitModules{Modules: []string{"y", "x"}}
	if !Equal(a, b) {
		t.Error("limit directives with the same set should be equal")
	}
	if Equal(a, LimitModules{Modules: []string{"x"}}) {
		t.Error("limit directives with different sets should differ")
	}
	if !Equal(nil, nil) || Equal(a, nil) {
		t.Error("nil handling is wrong")
	}
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	details := []Detail{
		AddRead{Source: "a", Target: "b"},
		PatchModule{Module: "m", Locations: []string{"/p"}},
		LimitModules{Modules: []string{"x"}},
	}
	if p, i, ok := FindPatch(details, "m"); !ok || i != 1 || p.Module != "m" {
		t.Errorf("FindPatch() = %#v, %d, %v", p, i, ok)
	}
	if _, _, ok := FindPatch(details, "other"); ok {
		t.Error("FindPatch() should not match other modules")
	}
	if l, i, ok := FindLimit(details); !ok || i != 2 || !l.Contains("x") {
		t.Errorf("FindLimit() = %#v, %d, %v", l, i, ok)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}

	_, err := ParseKind("add-everything")
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("ParseKind(invalid) error = %v, want ErrInvalidKind", err)
	}
	var kindErr *InvalidKindError
	if !errors.As(err, &kindErr) || kindErr.Value != "add-everything" {
		t.Errorf("expected *InvalidKindError carrying the value, got %v", err)
	}
}

func TestKindJoiner(t *testing.T) {
	t.Parallel()

	if KindPatch.Joiner() != "::" || KindExport.Joiner() != ":" || KindLimit.Joiner() != "" {
		t.Error("unexpected joiners")
	}
	if KindPatch.Option() != "--patch-module" {
		t.Errorf("Option() = %q", KindPatch.Option())
	}
}

func TestCommandLineArgs(t *testing.T) {
	t.Parallel()

	details := []Detail{
		AddExport{Source: "a", Package: "p"},
		AddOpen{Source: "a", Package: "q", Targets: "b"},
		AddRead{Source: "a", Target: "b"},
		LimitModules{Modules: []string{"java.sql", "java.xml"}},
		PatchModule{Module: "a", Locations: []string{"/x", "/y"}},
	}
	got := CommandLineArgs(details, WithPathListSeparator(":"))
	want := []string{
		"--add-exports", "a/p=ALL-UNNAMED",
		"--add-opens", "a/q=b",
		"--add-reads", "a=b",
		"--limit-modules", "java.sql,java.xml",
		"--patch-module", "a=/x:/y",
	}
	if !slices.Equal(got, want) {
		t.Errorf("CommandLineArgs() = %q, want %q", got, want)
	}
}
