// SPDX-License-Identifier: MPL-2.0

package patch

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ReasonSource means the source locations overlap.
	ReasonSource Reason = "source"
	// ReasonOutput means both locations compile into the same output.
	ReasonOutput Reason = "output"
)

var (
	// ErrPatchConflict is the sentinel error wrapped by ConflictError.
	ErrPatchConflict = errors.New("patch location conflict")

	// ErrOutputAmbiguity is the sentinel error wrapped by AmbiguityError.
	ErrOutputAmbiguity = errors.New("patch output ambiguity")
)

type (
	// Reason tells why two claims conflict.
	Reason string

	// Conflict pairs a requested location with the existing claim it collides with.
	Conflict struct {
		// Module is the module the location was requested for.
		Module string
		// Location is the requested location.
		Location string
		// Existing is the claim already held by another module.
		Existing Claim
		// Output is the shared output location for ReasonOutput conflicts.
		Output string
		Reason Reason
	}

	// ConflictError is returned when a patch request collides with another
	// module's locations. Nothing is written. It wraps ErrPatchConflict.
	ConflictError struct {
		Conflicts []Conflict
	}

	// Ambiguity groups source locations of different modules sharing one output.
	Ambiguity struct {
		Output    string
		Locations []string
		Modules   []string
	}

	// AmbiguityError aggregates every ambiguous output. It wraps ErrOutputAmbiguity.
	AmbiguityError struct {
		Ambiguities []Ambiguity
	}
)

// String describes the conflict in one line.
func (c Conflict) String() string {
	if c.Reason == ReasonOutput {
		return fmt.Sprintf("%s (%s) and %s (%s) both compile into %s", c.Location, c.Module, c.Existing.Location, c.Existing.Module, c.Output)
	}
	return fmt.Sprintf("%s (%s) overlaps %s already patched by %s", c.Location, c.Module, c.Existing.Location, c.Existing.Module)
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("%s: %s", ErrPatchConflict, strings.Join(parts, "; "))
}

// Unwrap returns ErrPatchConflict so callers can use errors.Is for programmatic detection.
func (e *ConflictError) Unwrap() error { return ErrPatchConflict }

// Error implements the error interface.
func (e *AmbiguityError) Error() string {
	parts := make([]string, 0, len(e.Ambiguities))
	for _, a := range e.Ambiguities {
		parts = append(parts, fmt.Sprintf("%s <- %s (modules %s)", a.Output, strings.Join(a.Locations, ", "), strings.Join(a.Modules, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrOutputAmbiguity, strings.Join(parts, "; "))
}

// Unwrap returns ErrOutputAmbiguity so callers can use errors.Is for programmatic detection.
func (e *AmbiguityError) Unwrap() error { return ErrOutputAmbiguity }

// Locations returns every conflicting source location across all outputs.
func (e *AmbiguityError) Locations() []string {
	var out []string
	for _, a := range e.Ambiguities {
		out = append(out, a.Locations...)
	}
	return out
}

// FindConflicts checks the requested locations for module against the claims
// of every other module. Source overlap is reported first; otherwise, when
// locator resolves both sides, a shared output location is reported.
// A nil locator disables the output check.
func FindConflicts(m *Map, module string, locations []string, locator OutputLocator) []Conflict {
	var out []Conflict
	for _, loc := range locations {
		for _, claim := range m.claims {
			if claim.Module == module {
				continue
			}
			if Overlaps(loc, claim.Location) {
				out = append(out, Conflict{Module: module, Location: loc, Existing: claim, Reason: ReasonSource})
				continue
			}
			if locator == nil {
				continue
			}
			newOut, ok1 := locator.OutputLocationOf(loc)
			oldOut, ok2 := locator.OutputLocationOf(claim.Location)
			if ok1 && ok2 && newOut == oldOut {
				out = append(out, Conflict{Module: module, Location: loc, Existing: claim, Output: newOut, Reason: ReasonOutput})
			}
		}
	}
	return out
}
