// SPDX-License-Identifier: MPL-2.0

// Package patch validates patch-module directives across a classpath.
//
// A patch location is a path-like token scoped to a project ("/proj") or to a
// folder inside one ("/proj/src"). Two modules must never patch overlapping
// locations, and no two modules may compile into the same output location.
// The first rule is enforced when locations are added; the second is reported
// by Validate as a non-fatal warning.
package patch
