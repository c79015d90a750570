// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes and encodes the CUE documents jmodpath reads and
// writes: the project descriptor and the user configuration.
//
// Decoding follows one flow for every document:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode into a Go struct
//
// Errors carry the file name and a JSON-style path to the offending field,
// e.g. "jmodpath.cue: classpath[0].kind: ...".
package cueutil
