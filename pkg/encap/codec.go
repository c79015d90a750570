// SPDX-License-Identifier: MPL-2.0

package encap

import (
	"fmt"
	"strings"
)

// Parse decodes a single fragment of the given kind.
// It returns false for a malformed fragment; callers skip such fragments.
func Parse(kind Kind, text string, opts ...Option) (Detail, bool) {
	o := applyOptions(opts)
	switch kind {
	case KindExport:
		src, pkg, targets, ok := parseExpose(text)
		if !ok {
			return nil, false
		}
		return AddExport{Source: src, Package: pkg, Targets: targets}, true
	case KindOpen:
		src, pkg, targets, ok := parseExpose(text)
		if !ok {
			return nil, false
		}
		return AddOpen{Source: src, Package: pkg, Targets: targets}, true
	case KindRead:
		src, target, found := strings.Cut(text, "=")
		if !found || src == "" {
			return nil, false
		}
		return AddRead{Source: src, Target: target}, true
	case KindLimit:
		mods := splitNames(text)
		if len(mods) == 0 {
			return nil, false
		}
		return LimitModules{Modules: dedupe(mods)}, true
	case KindPatch:
		return parsePatch(text, o)
	default:
		return nil, false
	}
}

// parseExpose splits "source/package=targets" on the first "/" and then the
// first "=" after it.
func parseExpose(text string) (src, pkg, targets string, ok bool) {
	src, rest, found := strings.Cut(text, "/")
	if !found || src == "" {
		return "", "", "", false
	}
	pkg, targets, found = strings.Cut(rest, "=")
	if !found || pkg == "" {
		return "", "", "", false
	}
	return src, pkg, targets, true
}

func parsePatch(text string, o codecOptions) (Detail, bool) {
	module, payload, found := strings.Cut(text, "=")
	if module == "" {
		return nil, false
	}
	var locations []string
	if found {
		for loc := range strings.SplitSeq(payload, o.listSeparator) {
			if loc != "" {
				locations = append(locations, loc)
			}
		}
	}
	if len(locations) == 0 {
		if o.defaultPatchLocation == "" {
			return nil, false
		}
		locations = []string{o.defaultPatchLocation}
	}
	return PatchModule{Module: module, Locations: locations}, true
}

// Format encodes a single directive in its fragment text form.
func Format(d Detail, opts ...Option) string {
	o := applyOptions(opts)
	switch x := d.(type) {
	case AddExport:
		return fmt.Sprintf("%s/%s=%s", x.Source, x.Package, x.Targets)
	case AddOpen:
		return fmt.Sprintf("%s/%s=%s", x.Source, x.Package, x.Targets)
	case AddRead:
		return x.Source + "=" + x.Target
	case LimitModules:
		return strings.Join(x.Modules, ",")
	case PatchModule:
		return x.Module + "=" + strings.Join(x.Locations, o.listSeparator)
	default:
		return ""
	}
}

// ParseMulti decodes a joined attribute value of the given kind.
// Fragments that fail to parse are dropped; the remaining order is preserved.
func ParseMulti(kind Kind, text string, opts ...Option) []Detail {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	joiner := kind.Joiner()
	if joiner == "" {
		if d, ok := Parse(kind, text, opts...); ok {
			return []Detail{d}
		}
		return nil
	}
	var out []Detail
	for fragment := range strings.SplitSeq(text, joiner) {
		if d, ok := Parse(kind, fragment, opts...); ok {
			out = append(out, d)
		}
	}
	return out
}

// FormatMulti encodes every directive of the given kind found in details as one
// attribute value. Several limit-modules directives are merged into one list.
func FormatMulti(details []Detail, kind Kind, opts ...Option) string {
	selected := OfKind(details, kind)
	if len(selected) == 0 {
		return ""
	}
	if kind == KindLimit {
		var mods []string
		for _, d := range selected {
			mods = append(mods, d.(LimitModules).Modules...)
		}
		return Format(LimitModules{Modules: dedupe(mods)}, opts...)
	}
	parts := make([]string, 0, len(selected))
	for _, d := range selected {
		parts = append(parts, Format(d, opts...))
	}
	return strings.Join(parts, kind.Joiner())
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
