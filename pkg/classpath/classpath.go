// SPDX-License-Identifier: MPL-2.0

// Package classpath defines the classpath element values that the module
// registry scans and the attribute store indexes.
package classpath

import (
	"errors"
	"fmt"
)

const (
	// KindLibrary is a single archive or class folder on the path.
	KindLibrary ElementKind = "library"
	// KindContainer is a container entry that expands to several roots (e.g. the JRE).
	KindContainer ElementKind = "container"
	// KindProject is a reference to another project in the workspace.
	KindProject ElementKind = "project"
	// KindSource is a source root of the configured project.
	KindSource ElementKind = "source"
	// KindVariable is a library entry addressed through a path variable.
	KindVariable ElementKind = "variable"
)

// ErrInvalidElementKind is the sentinel error wrapped by InvalidElementKindError.
var ErrInvalidElementKind = errors.New("invalid classpath element kind")

type (
	// ElementID identifies a classpath element inside one project configuration.
	ElementID string

	// ElementKind distinguishes the kinds of dependency entries.
	ElementKind string

	// InvalidElementKindError is returned when an ElementKind value is not recognized.
	// It wraps ErrInvalidElementKind for errors.Is() compatibility.
	InvalidElementKindError struct {
		Value ElementKind
	}

	// Element is one entry of a project's ordered dependency list.
	Element struct {
		// ID is unique within the project configuration.
		ID ElementID
		// Kind is the entry kind.
		Kind ElementKind
		// Path is the entry's path, container id or project name.
		Path string
	}
)

// Error implements the error interface.
func (e *InvalidElementKindError) Error() string {
	return fmt.Sprintf("invalid classpath element kind %q (valid: library, container, project, source, variable)", e.Value)
}

// Unwrap returns ErrInvalidElementKind so callers can use errors.Is for programmatic detection.
func (e *InvalidElementKindError) Unwrap() error { return ErrInvalidElementKind }

// Validate returns nil if the ElementKind is one of the defined kinds.
func (k ElementKind) Validate() error {
	switch k {
	case KindLibrary, KindContainer, KindProject, KindSource, KindVariable:
		return nil
	default:
		return &InvalidElementKindError{Value: k}
	}
}

// String returns the string representation of the ElementKind.
func (k ElementKind) String() string { return string(k) }

// String returns a human-readable representation of the element.
func (e Element) String() string {
	return fmt.Sprintf("%s[%s] %s", e.ID, e.Kind, e.Path)
}
