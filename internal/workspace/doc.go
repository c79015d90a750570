// SPDX-License-Identifier: MPL-2.0

// Package workspace binds a project descriptor to the encapsulation core.
//
// A Workspace owns the attribute store loaded from the descriptor and the
// current module snapshot (registry plus dependency graph). It implements the
// collaborator interfaces the core asks for: modreg.ModuleResolver,
// patch.OutputLocator and limits.DefaultRootsProvider.
package workspace
