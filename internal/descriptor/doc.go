// SPDX-License-Identifier: MPL-2.0

// Package descriptor reads and writes the project descriptor: the module
// catalog, the ordered classpath with each element's encapsulation attributes,
// the source-to-output folder mapping and the platform default roots.
//
// Two formats are supported, chosen by file extension: CUE (jmodpath.cue),
// validated against the embedded schema, and TOML (jmodpath.toml).
package descriptor
