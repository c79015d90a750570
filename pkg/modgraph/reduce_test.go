// SPDX-License-Identifier: MPL-2.0

package modgraph

import (
	"slices"
	"testing"

	"github.com/jmodpath/jmodpath/pkg/modreg"
)

func TestReduceNames(t *testing.T) {
	t.Parallel()

	reg := jdk()
	g := Build(reg)

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"sql dominates base", []string{"java.base", "java.sql"}, []string{"java.sql"}},
		{"transitive", []string{"java.se", "java.logging", "java.base"}, []string{"java.se"}},
		{"independent kept", []string{"java.sql", "java.desktop"}, []string{"java.sql", "java.desktop"}},
		{"duplicates collapse", []string{"java.xml", "java.xml"}, []string{"java.xml"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := g.Reduce(tt.names, reg)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Reduce(%v) = %v, want %v", tt.names, got, tt.want)
			}
		})
	}
}

func TestReduceNamesKeepsNonSystem(t *testing.T) {
	t.Parallel()

	reg := registry(
		mod("java.base", modreg.KindSystem),
		mod("lib", modreg.KindAutomatic, "java.base"),
		mod("app", modreg.KindNormal, "lib"),
	)
	g := Build(reg)
	got := g.Reduce([]string{"app", "lib", "java.base"}, reg)
	if !slices.Equal(got, []string{"app", "lib", "java.base"}) {
		t.Errorf("Reduce() = %v, want all names kept", got)
	}
}

func TestReduceNamesCycleKeepsFirst(t *testing.T) {
	t.Parallel()

	reg := registry(
		mod("s1", modreg.KindSystem, "s2"),
		mod("s2", modreg.KindSystem, "s1", "s3"),
		mod("s3", modreg.KindSystem),
	)
	g := Build(reg)
	if got := g.Reduce([]string{"s2", "s1", "s3"}, reg); !slices.Equal(got, []string{"s2"}) {
		t.Errorf("Reduce() = %v, want [s2]", got)
	}
	if got := g.Reduce([]string{"s1", "s2"}, reg); !slices.Equal(got, []string{"s1"}) {
		t.Errorf("Reduce() = %v, want [s1]", got)
	}
}

func TestReductionPreservesClosure(t *testing.T) {
	t.Parallel()

	reg := jdk()
	g := Build(reg)
	all := g.Modules()

	// Every subset of the system collection.
	for mask := 0; mask < 1<<len(all); mask++ {
		var set []string
		for i, m := range all {
			if mask&(1<<i) != 0 {
				set = append(set, m)
			}
		}
		reduced := g.Reduce(set, reg)
		if !sameSet(g.Closure(reduced...), g.Closure(set...)) {
			t.Errorf("closure changed for %v: reduced to %v", set, reduced)
		}
		if len(reduced) > len(set) {
			t.Errorf("reduction grew %v to %v", set, reduced)
		}
	}
}
