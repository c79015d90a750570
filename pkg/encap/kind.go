// SPDX-License-Identifier: MPL-2.0

package encap

import (
	"errors"
	"fmt"
)

const (
	// KindExport is the add-exports directive.
	KindExport Kind = "add-exports"
	// KindOpen is the add-opens directive.
	KindOpen Kind = "add-opens"
	// KindRead is the add-reads directive.
	KindRead Kind = "add-reads"
	// KindLimit is the limit-modules directive.
	KindLimit Kind = "limit-modules"
	// KindPatch is the patch-module directive.
	KindPatch Kind = "patch-module"

	// MultiJoiner joins several fragments of the same kind in one attribute value.
	MultiJoiner = ":"
	// PatchJoiner joins patch-module fragments. It differs from MultiJoiner
	// because a patch payload already contains the POSIX path-list separator.
	PatchJoiner = "::"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid directive kind")

type (
	// Kind tags the directive variant. Its value is the attribute name under
	// which the directive is persisted.
	Kind string

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid directive kind %q (valid: add-exports, add-opens, add-reads, limit-modules, patch-module)", e.Value)
}

// Unwrap returns ErrInvalidKind so callers can use errors.Is for programmatic detection.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// Kinds returns every directive kind in canonical order.
func Kinds() []Kind {
	return []Kind{KindExport, KindOpen, KindRead, KindLimit, KindPatch}
}

// ParseKind converts an attribute name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate returns nil if the Kind is one of the defined directive kinds.
func (k Kind) Validate() error {
	switch k {
	case KindExport, KindOpen, KindRead, KindLimit, KindPatch:
		return nil
	default:
		return &InvalidKindError{Value: string(k)}
	}
}

// Joiner returns the separator used between fragments of this kind.
// Limit-modules has no outer joiner and returns "".
func (k Kind) Joiner() string {
	switch k {
	case KindPatch:
		return PatchJoiner
	case KindLimit:
		return ""
	default:
		return MultiJoiner
	}
}

// Option returns the launcher/compiler option that carries this directive.
func (k Kind) Option() string {
	return "--" + string(k)
}

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }
