// SPDX-License-Identifier: MPL-2.0

// Package encap models module encapsulation directives and their text codec.
//
// A directive is one of five closed variants, all implementing [Detail]:
//   - [AddExport]: "source/package=targets", exports a package to other modules
//   - [AddOpen]: same shape as AddExport, opens the package for deep reflection
//   - [AddRead]: "source=target", adds a readability edge
//   - [LimitModules]: "a,b,c", limits the set of observable root modules
//   - [PatchModule]: "module=loc1<PATHSEP>loc2", patches a module with extra content
//
// Several directives of one kind are persisted in a single attribute value.
// Every kind joins its fragments with ":" except patch-module, whose payload
// already contains the path-list separator and therefore uses "::". A
// limit-modules attribute is a single value and is never joined.
//
// Parsing never fails loudly: a fragment that is missing a separator is
// reported as not ok by [Parse] and silently dropped by [ParseMulti].
package encap
