// SPDX-License-Identifier: MPL-2.0

package attrstore

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
)

var (
	// ErrUnknownElement is returned when an operation names an element that was never added.
	ErrUnknownElement = errors.New("unknown classpath element")

	// ErrDuplicateElement is returned when an element ID is added twice.
	ErrDuplicateElement = errors.New("duplicate classpath element")
)

type (
	// DetailID identifies one stored directive for the lifetime of the store.
	DetailID uint64

	// Entry is a stored directive together with its identifier.
	Entry struct {
		ID     DetailID
		Detail encap.Detail
	}

	// ElementError reports an operation on a missing or duplicated element.
	// It wraps ErrUnknownElement or ErrDuplicateElement.
	ElementError struct {
		ID  classpath.ElementID
		Err error
	}

	// Store is the attribute arena. The zero value is not usable; call New.
	Store struct {
		slots  map[classpath.ElementID]*slot
		order  []classpath.ElementID
		owners map[DetailID]classpath.ElementID
		next   DetailID
	}

	slot struct {
		elem    classpath.Element
		present bool
		entries []Entry
	}
)

// Error implements the error interface.
func (e *ElementError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.ID)
}

// Unwrap returns the underlying sentinel.
func (e *ElementError) Unwrap() error { return e.Err }

// New returns an empty store.
func New() *Store {
	return &Store{
		slots:  make(map[classpath.ElementID]*slot),
		owners: make(map[DetailID]classpath.ElementID),
	}
}

// Add registers a classpath element with no attribute.
func (s *Store) Add(elem classpath.Element) error {
	if _, exists := s.slots[elem.ID]; exists {
		return &ElementError{ID: elem.ID, Err: ErrDuplicateElement}
	}
	s.slots[elem.ID] = &slot{elem: elem}
	s.order = append(s.order, elem.ID)
	return nil
}

// Element returns the element registered under id.
func (s *Store) Element(id classpath.ElementID) (classpath.Element, bool) {
	sl, ok := s.slots[id]
	if !ok {
		return classpath.Element{}, false
	}
	return sl.elem, true
}

// Elements returns every element in insertion order.
func (s *Store) Elements() []classpath.Element {
	out := make([]classpath.Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.slots[id].elem)
	}
	return out
}

// Len returns the number of registered elements.
func (s *Store) Len() int { return len(s.order) }

// Get returns the directives of an element. The boolean is false when the
// element carries no attribute, which differs from an empty list.
func (s *Store) Get(id classpath.ElementID) ([]encap.Detail, bool) {
	sl, ok := s.slots[id]
	if !ok || !sl.present {
		return nil, false
	}
	out := make([]encap.Detail, 0, len(sl.entries))
	for _, e := range sl.entries {
		out = append(out, e.Detail)
	}
	return out, true
}

// Entries returns the stored directives of an element with their IDs.
func (s *Store) Entries(id classpath.ElementID) []Entry {
	sl, ok := s.slots[id]
	if !ok {
		return nil
	}
	return slices.Clone(sl.entries)
}

// IsModuleAware reports whether the element carries the attribute, even empty.
func (s *Store) IsModuleAware(id classpath.ElementID) bool {
	sl, ok := s.slots[id]
	return ok && sl.present
}

// Set replaces all directives of an element and marks it module-aware.
// Nil details and patches without locations are skipped. Several
// limit-modules directives collapse into one holding the last value, placed
// where the first one was.
func (s *Store) Set(id classpath.ElementID, details []encap.Detail) error {
	sl, err := s.slot(id)
	if err != nil {
		return err
	}
	s.dropEntries(sl)
	sl.present = true
	for _, d := range details {
		switch x := d.(type) {
		case nil:
		case encap.LimitModules:
			s.replaceLimit(id, sl, x)
		case encap.PatchModule:
			if len(x.Locations) > 0 {
				s.appendEntry(id, sl, x)
			}
		default:
			s.appendEntry(id, sl, d)
		}
	}
	return nil
}

// Clear removes the attribute from an element.
func (s *Store) Clear(id classpath.ElementID) error {
	sl, err := s.slot(id)
	if err != nil {
		return err
	}
	s.dropEntries(sl)
	sl.present = false
	return nil
}

// Merge parses text as a value of kind and folds it into the element's
// directives. A limit-modules value replaces the existing one; exports, opens
// and reads are appended; a patch is merged into the existing directive for
// the same module by appending locations it does not list yet.
// Malformed fragments are skipped. Merge reports whether anything changed.
func (s *Store) Merge(id classpath.ElementID, kind encap.Kind, text string, opts ...encap.Option) (bool, error) {
	if err := kind.Validate(); err != nil {
		return false, err
	}
	sl, err := s.slot(id)
	if err != nil {
		return false, err
	}
	parsed := encap.ParseMulti(kind, text, opts...)
	if len(parsed) == 0 {
		return false, nil
	}
	sl.present = true
	changed := false
	for _, d := range parsed {
		switch x := d.(type) {
		case encap.LimitModules:
			changed = s.replaceLimit(id, sl, x) || changed
		case encap.PatchModule:
			changed = s.mergePatch(id, sl, x) || changed
		default:
			s.appendEntry(id, sl, d)
			changed = true
		}
	}
	return changed, nil
}

// OwnerOf returns the element that holds the directive.
func (s *Store) OwnerOf(detailID DetailID) (classpath.ElementID, bool) {
	id, ok := s.owners[detailID]
	return id, ok
}

// Lookup returns the stored directive with the given ID.
func (s *Store) Lookup(detailID DetailID) (encap.Detail, bool) {
	owner, ok := s.owners[detailID]
	if !ok {
		return nil, false
	}
	for _, e := range s.slots[owner].entries {
		if e.ID == detailID {
			return e.Detail, true
		}
	}
	return nil, false
}

// Remove deletes one stored directive. The owner stays module-aware.
func (s *Store) Remove(detailID DetailID) bool {
	owner, ok := s.owners[detailID]
	if !ok {
		return false
	}
	sl := s.slots[owner]
	sl.entries = slices.DeleteFunc(sl.entries, func(e Entry) bool { return e.ID == detailID })
	delete(s.owners, detailID)
	return true
}

// Attributes returns the wire form of the element's directives, one value per
// kind present. It is nil when the element carries no attribute.
func (s *Store) Attributes(id classpath.ElementID, opts ...encap.Option) map[encap.Kind]string {
	details, ok := s.Get(id)
	if !ok {
		return nil
	}
	out := make(map[encap.Kind]string)
	for _, kind := range encap.Kinds() {
		if v := encap.FormatMulti(details, kind, opts...); v != "" {
			out[kind] = v
		}
	}
	return out
}

// LoadAttributes replaces the element's directives with the ones decoded from
// attrs, keyed by kind name. Unknown keys are ignored. Kinds are loaded in the
// canonical kind order.
func (s *Store) LoadAttributes(id classpath.ElementID, attrs map[string]string, opts ...encap.Option) error {
	var details []encap.Detail
	for _, kind := range encap.Kinds() {
		value, ok := attrs[kind.String()]
		if !ok {
			continue
		}
		details = append(details, encap.ParseMulti(kind, value, opts...)...)
	}
	return s.Set(id, details)
}

func (s *Store) slot(id classpath.ElementID) (*slot, error) {
	sl, ok := s.slots[id]
	if !ok {
		return nil, &ElementError{ID: id, Err: ErrUnknownElement}
	}
	return sl, nil
}

func (s *Store) appendEntry(owner classpath.ElementID, sl *slot, d encap.Detail) {
	s.next++
	sl.entries = append(sl.entries, Entry{ID: s.next, Detail: d})
	s.owners[s.next] = owner
}

func (s *Store) dropEntries(sl *slot) {
	for _, e := range sl.entries {
		delete(s.owners, e.ID)
	}
	sl.entries = nil
}

// replaceLimit keeps at most one limit-modules directive per element. The new
// value takes the position of the first existing one.
func (s *Store) replaceLimit(owner classpath.ElementID, sl *slot, limit encap.LimitModules) bool {
	idx := slices.IndexFunc(sl.entries, func(e Entry) bool { return e.Detail.Kind() == encap.KindLimit })
	if idx < 0 {
		s.appendEntry(owner, sl, limit)
		return true
	}
	changed := !encap.Equal(sl.entries[idx].Detail, limit)
	sl.entries[idx].Detail = limit
	kept := sl.entries[:idx+1]
	for _, e := range sl.entries[idx+1:] {
		if e.Detail.Kind() == encap.KindLimit {
			delete(s.owners, e.ID)
			changed = true
			continue
		}
		kept = append(kept, e)
	}
	sl.entries = kept
	return changed
}

func (s *Store) mergePatch(owner classpath.ElementID, sl *slot, patch encap.PatchModule) bool {
	for i, e := range sl.entries {
		existing, ok := e.Detail.(encap.PatchModule)
		if !ok || existing.Module != patch.Module {
			continue
		}
		locations := slices.Clone(existing.Locations)
		for _, loc := range patch.Locations {
			if !slices.Contains(locations, loc) {
				locations = append(locations, loc)
			}
		}
		if len(locations) == len(existing.Locations) {
			return false
		}
		sl.entries[i].Detail = encap.PatchModule{Module: existing.Module, Locations: locations}
		return true
	}
	s.appendEntry(owner, sl, patch)
	return true
}
