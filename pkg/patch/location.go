// SPDX-License-Identifier: MPL-2.0

package patch

import "strings"

// OutputLocator maps a patch source location to the output location it
// compiles into.
type OutputLocator interface {
	OutputLocationOf(location string) (string, bool)
}

// OutputLocatorFunc adapts a function to the OutputLocator interface.
type OutputLocatorFunc func(location string) (string, bool)

// OutputLocationOf calls f(location).
func (f OutputLocatorFunc) OutputLocationOf(location string) (string, bool) {
	return f(location)
}

// Overlaps reports whether two locations claim the same sources: either they
// are equal, or one is a project-level location and the other a folder inside
// that same project.
func Overlaps(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == b {
		return true
	}
	return shadows(a, b) || shadows(b, a)
}

// IsProjectLevel reports whether loc names a whole project, i.e. it has a
// single path segment.
func IsProjectLevel(loc string) bool {
	trimmed := strings.Trim(normalize(loc), "/")
	return trimmed != "" && !strings.Contains(trimmed, "/")
}

// ProjectOf returns the project segment of a location.
func ProjectOf(loc string) string {
	trimmed := strings.TrimPrefix(normalize(loc), "/")
	project, _, _ := strings.Cut(trimmed, "/")
	return project
}

// shadows reports whether the project-level location coarse contains fine.
func shadows(coarse, fine string) bool {
	return IsProjectLevel(coarse) && strings.HasPrefix(fine, coarse+"/")
}

func normalize(loc string) string {
	loc = strings.TrimSpace(loc)
	if len(loc) > 1 {
		loc = strings.TrimRight(loc, "/")
	}
	return loc
}

// SplitLocations splits a location list on sep, dropping empty items.
func SplitLocations(text, sep string) []string {
	var out []string
	for loc := range strings.SplitSeq(text, sep) {
		if loc = strings.TrimSpace(loc); loc != "" {
			out = append(out, loc)
		}
	}
	return out
}
