// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into messages a user can act on.
//
// ActionableError carries the failed operation, the resource involved and
// suggested fixes. Errors may also point at an entry of the issue catalog, a
// set of Markdown pages rendered with glamour that explain common problems
// with descriptors, patch conflicts and module removal in more depth.
package issue
