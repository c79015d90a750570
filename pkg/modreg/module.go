// SPDX-License-Identifier: MPL-2.0

package modreg

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KindNormal is an explicit module from a library or project dependency.
	KindNormal Kind = iota
	// KindFocus is the module contributed by the project being configured.
	KindFocus
	// KindAutomatic is a non-modular archive whose module name is inferred.
	KindAutomatic
	// KindSystem is a module of the platform's built-in module collection.
	KindSystem
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid module kind")

type (
	// Kind classifies where a module comes from.
	Kind int

	// InvalidKindError is returned when a module kind name is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value string
	}

	// Module is one named module with its declared requirements.
	Module struct {
		// Name is the module name. Never empty for a registered module.
		Name string
		// Requires lists directly required module names in declaration order.
		Requires []string
		// Kind tells where the module comes from.
		Kind Kind
	}
)

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid module kind %q (valid: focus, normal, automatic, system)", e.Value)
}

// Unwrap returns ErrInvalidKind so callers can use errors.Is for programmatic detection.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// ParseKind converts a lower-case kind name into a Kind. The empty string means KindNormal.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return KindNormal, nil
	case "focus":
		return KindFocus, nil
	case "automatic":
		return KindAutomatic, nil
	case "system":
		return KindSystem, nil
	default:
		return KindNormal, &InvalidKindError{Value: s}
	}
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFocus:
		return "focus"
	case KindAutomatic:
		return "automatic"
	case KindSystem:
		return "system"
	default:
		return "normal"
	}
}

// IsSystem reports whether the module belongs to the platform module collection.
func (m Module) IsSystem() bool { return m.Kind == KindSystem }
