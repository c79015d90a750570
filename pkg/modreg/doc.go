// SPDX-License-Identifier: MPL-2.0

// Package modreg catalogs every module visible to a project.
//
// A [Registry] is built by a single [Scan] over the project's ordered
// dependency list. For each entry a [ModuleResolver] reports which modules the
// entry provides; the first occurrence of a module name wins, so a module that
// is reachable through two entries is recorded once. Modules with an empty
// name are treated as mis-configured and skipped without error.
//
// A Registry is read-only. A changed dependency list is handled by scanning
// again and replacing the registry as a whole.
package modreg
