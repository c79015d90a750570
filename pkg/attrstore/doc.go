// SPDX-License-Identifier: MPL-2.0

// Package attrstore keeps the encapsulation directives attached to classpath
// elements.
//
// The store is an arena keyed by element ID. Each element either has no
// attribute at all or owns an ordered list of directives; an empty list still
// marks the element as module-aware. Every stored directive gets a DetailID so
// callers can find its owner without holding a pointer back into the arena.
package attrstore
