// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"errors"
	"testing"
)

func TestElementKindValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    ElementKind
		wantErr bool
	}{
		{KindLibrary, false},
		{KindContainer, false},
		{KindProject, false},
		{KindSource, false},
		{KindVariable, false},
		{"", true},
		{"jar", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			err := tt.kind.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidElementKind) {
				t.Errorf("error should wrap ErrInvalidElementKind, got %v", err)
			}
		})
	}
}

func TestElementString(t *testing.T) {
	t.Parallel()

	e := Element{ID: "jre", Kind: KindContainer, Path: "JRE_CONTAINER"}
	if got, want := e.String(), "jre[container] JRE_CONTAINER"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
