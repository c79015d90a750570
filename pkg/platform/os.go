// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

const (
	// PosixListSeparator separates path entries on POSIX systems.
	PosixListSeparator = ":"
	// WindowsListSeparator separates path entries on Windows.
	WindowsListSeparator = ";"
)

// ListSeparatorFor returns the path-list separator used by the given GOOS.
func ListSeparatorFor(goos string) string {
	if goos == Windows {
		return WindowsListSeparator
	}
	return PosixListSeparator
}

// ListSeparator returns the path-list separator of the host platform.
func ListSeparator() string {
	return ListSeparatorFor(runtime.GOOS)
}
