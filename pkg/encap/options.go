// SPDX-License-Identifier: MPL-2.0

package encap

import "github.com/jmodpath/jmodpath/pkg/platform"

type (
	// codecOptions holds configuration for parsing and formatting patch payloads.
	codecOptions struct {
		listSeparator        string
		defaultPatchLocation string
	}

	// Option configures codec behavior.
	Option func(*codecOptions)
)

// defaultOptions returns the default codec options.
func defaultOptions() codecOptions {
	return codecOptions{
		listSeparator: platform.ListSeparator(),
	}
}

func applyOptions(opts []Option) codecOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPathListSeparator sets the separator between patch locations.
// Default is the host platform's path-list separator.
func WithPathListSeparator(sep string) Option {
	return func(o *codecOptions) {
		if sep != "" {
			o.listSeparator = sep
		}
	}
}

// WithDefaultPatchLocation sets the location used for a patch fragment that
// names only a module. This is normally the configured project's own root.
func WithDefaultPatchLocation(loc string) Option {
	return func(o *codecOptions) {
		o.defaultPatchLocation = loc
	}
}
