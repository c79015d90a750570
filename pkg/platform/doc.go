// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// Patch-module directives embed the platform path-list separator in their
// payload, so the separator in use must be the one of the platform the
// descriptor targets rather than a hard-coded character.
package platform
