// SPDX-License-Identifier: MPL-2.0

// Package limits edits the limit-modules directive of a classpath element.
//
// An Editor tracks the set of included modules across edits. The directive is
// Absent while the selection matches the platform defaults, Dirty after an
// edit that has not been committed, and Persisted once a reduced root list was
// written back to the attribute store.
package limits
