// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
	"github.com/jmodpath/jmodpath/pkg/modreg"
)

var (
	// ErrInvalidDescriptor is the sentinel error wrapped by InvalidDescriptorError.
	ErrInvalidDescriptor = errors.New("invalid project descriptor")
)

type (
	// Project is the decoded project descriptor.
	Project struct {
		Project      string            `json:"project" toml:"project"`
		Modules      []Module          `json:"modules,omitempty" toml:"modules,omitempty"`
		Classpath    []Element         `json:"classpath" toml:"classpath"`
		Outputs      map[string]string `json:"outputs,omitempty" toml:"outputs,omitempty"`
		DefaultRoots []string          `json:"default_roots,omitempty" toml:"default_roots,omitempty"`
	}

	// Module is one catalog entry.
	Module struct {
		Name     string   `json:"name" toml:"name"`
		Kind     string   `json:"kind,omitempty" toml:"kind,omitempty"`
		Requires []string `json:"requires,omitempty" toml:"requires,omitempty"`
	}

	// Element is one classpath entry. Module marks the element module-aware
	// even when it carries no attribute.
	Element struct {
		ID         string            `json:"id" toml:"id"`
		Kind       string            `json:"kind" toml:"kind"`
		Path       string            `json:"path,omitempty" toml:"path,omitempty"`
		Provides   []string          `json:"provides,omitempty" toml:"provides,omitempty"`
		Module     bool              `json:"module,omitempty" toml:"module,omitempty"`
		Attributes map[string]string `json:"attributes,omitempty" toml:"attributes,omitempty"`
	}

	// InvalidDescriptorError collects the problems found by Validate.
	InvalidDescriptorError struct {
		Problems []error
	}
)

// Error implements the error interface.
func (e *InvalidDescriptorError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %v", ErrInvalidDescriptor, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems, first: %v", ErrInvalidDescriptor, len(e.Problems), e.Problems[0])
}

// Unwrap returns ErrInvalidDescriptor and every problem.
func (e *InvalidDescriptorError) Unwrap() []error {
	return append([]error{ErrInvalidDescriptor}, e.Problems...)
}

// Validate checks what the TOML decoder cannot: kinds, attribute names,
// unique non-empty element IDs and a non-empty project name. CUE documents are checked by the
// schema as well. Modules without a name are accepted; the workspace skips
// them.
func (p *Project) Validate() error {
	var problems []error
	if p.Project == "" {
		problems = append(problems, errors.New("project: must not be empty"))
	}
	for i, m := range p.Modules {
		if _, err := modreg.ParseKind(m.Kind); err != nil {
			problems = append(problems, fmt.Errorf("modules[%d].kind: %w", i, err))
		}
	}
	seen := make(map[string]int, len(p.Classpath))
	for i, e := range p.Classpath {
		if e.ID == "" {
			problems = append(problems, fmt.Errorf("classpath[%d].id: must not be empty", i))
		} else if first, dup := seen[e.ID]; dup {
			problems = append(problems, fmt.Errorf("classpath[%d].id: duplicate %q (same as classpath[%d])", i, e.ID, first))
		} else {
			seen[e.ID] = i
		}
		if err := classpath.ElementKind(e.Kind).Validate(); err != nil {
			problems = append(problems, fmt.Errorf("classpath[%d].kind: %w", i, err))
		}
		for _, key := range slices.Sorted(maps.Keys(e.Attributes)) {
			if _, err := encap.ParseKind(key); err != nil {
				problems = append(problems, fmt.Errorf("classpath[%d].attributes: %w", i, err))
			}
		}
	}
	if len(problems) > 0 {
		return &InvalidDescriptorError{Problems: problems}
	}
	return nil
}

// Element returns the classpath entry with the given ID.
func (p *Project) Element(id string) (*Element, bool) {
	i := slices.IndexFunc(p.Classpath, func(e Element) bool { return e.ID == id })
	if i < 0 {
		return nil, false
	}
	return &p.Classpath[i], true
}

// IsModuleAware reports whether the element carries encapsulation attributes,
// possibly none.
func (e Element) IsModuleAware() bool {
	return e.Module || len(e.Attributes) > 0
}

// ClasspathElement converts the entry to its core form.
func (e Element) ClasspathElement() classpath.Element {
	return classpath.Element{ID: classpath.ElementID(e.ID), Kind: classpath.ElementKind(e.Kind), Path: e.Path}
}
