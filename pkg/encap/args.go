// SPDX-License-Identifier: MPL-2.0

package encap

// AllUnnamed is the target used on the command line when an export or open
// names no target modules.
const AllUnnamed = "ALL-UNNAMED"

// CommandLineArgs renders directives as compiler/launcher options, one
// option/value pair per directive, in the order given.
func CommandLineArgs(details []Detail, opts ...Option) []string {
	args := make([]string, 0, 2*len(details))
	for _, d := range details {
		value := Format(d, opts...)
		switch x := d.(type) {
		case AddExport:
			if x.Targets == "" {
				value += AllUnnamed
			}
		case AddOpen:
			if x.Targets == "" {
				value += AllUnnamed
			}
		}
		args = append(args, d.Kind().Option(), value)
	}
	return args
}
