// SPDX-License-Identifier: MPL-2.0

// Package modgraph derives the module requirement graph from a registry scan
// and answers closure, removal and reduction queries over it.
//
// The graph stores both directions of every edge: Required(m) lists what m
// requires and RequiredBy(m) lists what requires m. Only modules recorded by
// the registry appear in either direction. A Graph is immutable once built; a
// rescan builds a new one.
package modgraph
