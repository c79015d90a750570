// SPDX-License-Identifier: MPL-2.0

package patch

import (
	"fmt"
	"slices"

	"github.com/jmodpath/jmodpath/pkg/attrstore"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
)

// AddPatchLocations returns details with the locations in text, split on sep,
// appended to the patch directive of module. A directive is created at the
// end when module has none. Locations already listed are not repeated. The
// input slice is not modified.
func AddPatchLocations(details []encap.Detail, module, text, sep string) []encap.Detail {
	locations := SplitLocations(text, sep)
	out := slices.Clone(details)
	if len(locations) == 0 || module == "" {
		return out
	}
	existing, idx, ok := encap.FindPatch(out, module)
	if !ok {
		return append(out, encap.PatchModule{Module: module, Locations: uniq(nil, locations)})
	}
	out[idx] = encap.PatchModule{Module: module, Locations: uniq(existing.Locations, locations)}
	return out
}

// RemovePatchLocation returns details with the locations in text, split on
// sep, removed from the patch directive of module. The directive is dropped
// when no location remains. The input slice is not modified.
func RemovePatchLocation(details []encap.Detail, module, text, sep string) []encap.Detail {
	out := slices.Clone(details)
	existing, idx, ok := encap.FindPatch(out, module)
	if !ok {
		return out
	}
	drop := SplitLocations(text, sep)
	remaining := slices.DeleteFunc(slices.Clone(existing.Locations), func(loc string) bool {
		return slices.Contains(drop, loc)
	})
	if len(remaining) == 0 {
		return slices.Delete(out, idx, idx+1)
	}
	out[idx] = encap.PatchModule{Module: module, Locations: remaining}
	return out
}

// Add patches the locations in text into module on element id after checking
// every other module's claims in the store. On conflict nothing is written
// and a *ConflictError lists both sides.
func Add(store *attrstore.Store, id classpath.ElementID, module, text, sep string, locator OutputLocator) error {
	locations := SplitLocations(text, sep)
	if len(locations) == 0 {
		return nil
	}
	if conflicts := FindConflicts(BuildPatchMap(store), module, locations, locator); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	details, _ := store.Get(id)
	if err := store.Set(id, AddPatchLocations(details, module, text, sep)); err != nil {
		return fmt.Errorf("patch %s: %w", module, err)
	}
	return nil
}

// Remove drops the locations in text from the patch directive of module on
// element id.
func Remove(store *attrstore.Store, id classpath.ElementID, module, text, sep string) error {
	details, ok := store.Get(id)
	if !ok {
		if _, known := store.Element(id); !known {
			return &attrstore.ElementError{ID: id, Err: attrstore.ErrUnknownElement}
		}
		return nil
	}
	if err := store.Set(id, RemovePatchLocation(details, module, text, sep)); err != nil {
		return fmt.Errorf("unpatch %s: %w", module, err)
	}
	return nil
}

func uniq(base, extra []string) []string {
	out := slices.Clone(base)
	for _, loc := range extra {
		if !slices.Contains(out, loc) {
			out = append(out, loc)
		}
	}
	return out
}
