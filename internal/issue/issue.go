// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	DescriptorNotFoundId Id = iota + 1
	DescriptorParseErrorId
	ElementNotFoundId
	ModuleNotFoundId
	RemovalBlockedId
	PatchConflictId
	OutputAmbiguityId
	RequirementCycleId
	ConfigLoadFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to look the issue up
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink  // documentation pages about this issue
		extLinks []HttpLink  // external links that might help the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the page with the glamour style at stylePath ("dark",
// "light", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			md += "\n- <" + string(link) + ">"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	descriptorNotFoundIssue = &Issue{
		id: DescriptorNotFoundId,
		mdMsg: `
# No project descriptor found!

jmodpath reads the project's classpath from a descriptor in the current
directory.

## Search order
1. The path given with ` + "`--descriptor`" + `
2. The ` + "`descriptor`" + ` setting of your config file
3. ` + "`jmodpath.cue`" + `, then ` + "`jmodpath.toml`" + ` in the current directory

## Minimal descriptor
~~~cue
project: "app"
modules: [{name: "java.base", kind: "system"}]
classpath: [{id: "jre", kind: "container", path: "JRE_CONTAINER", provides: ["java.base"]}]
~~~`,
	}

	descriptorParseErrorIssue = &Issue{
		id: DescriptorParseErrorId,
		mdMsg: `
# The project descriptor is invalid!

The descriptor could not be decoded or failed schema validation. The error
above names the file and the field path, e.g. ` + "`classpath[0].kind`" + `.

## Things you can try
- Element kinds are one of: library, container, project, source, variable
- Module kinds are one of: normal, focus, automatic, system
- Every classpath element needs a unique, non-empty ` + "`id`" + `
- Attribute keys are directive names such as ` + "`add-exports`" + ` or ` + "`patch-module`",
	}

	elementNotFoundIssue = &Issue{
		id: ElementNotFoundId,
		mdMsg: `
# Classpath element not found!

The element id you passed is not part of the descriptor's classpath.

## Things you can try
~~~
$ jmodpath modules --elements
~~~
lists every element id together with the modules it provides.`,
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

The module is not provided by any classpath element. Module names come from
the ` + "`modules`" + ` catalog and are attached to elements through ` + "`provides`" + `.

## Things you can try
- Check the spelling, module names are case-sensitive
- Run ` + "`jmodpath modules`" + ` to list every registered module`,
	}

	removalBlockedIssue = &Issue{
		id: RemovalBlockedId,
		mdMsg: `
# Removal blocked by the project's own module!

The project's focus module requires the module you tried to remove, directly
or through the chain shown above. The focus module is never removed, so the
limited module set must keep everything it requires.

## Things you can try
- Remove the requirement from the focus module first
- Pass ` + "`--force`" + ` to drop the module anyway and accept an unresolvable focus module`,
	}

	patchConflictIssue = &Issue{
		id: PatchConflictId,
		mdMsg: `
# Patch location already claimed!

Another module already patches a location that overlaps the one you asked
for. A project-level location such as ` + "`/proj`" + ` overlaps every folder in that
project, and two locations compiling into the same output overlap too.

## Things you can try
Remove the location from the other module first, then add it again:
~~~
$ jmodpath patch remove --element <id> <other.module> /proj/src
$ jmodpath patch add --element <id> <module> /proj/src
~~~`,
	}

	outputAmbiguityIssue = &Issue{
		id: OutputAmbiguityId,
		mdMsg: `
# Several modules patch the same output!

Different patch locations of different modules compile into one output
location, so the runtime cannot tell which module a class belongs to. The
configuration stays editable; this is a warning.

## Things you can try
- Give each patched source folder its own output folder
- Patch only one module from each output`,
	}

	requirementCycleIssue = &Issue{
		id: RequirementCycleId,
		mdMsg: `
# Module requirement cycle!

The modules listed above require each other, so no dependency order exists.
Closure and reduction still work, but ` + "`jmodpath graph --order`" + ` cannot print
a topological order.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try
- Check the CUE syntax of your config file
- Compare it with the defaults:
~~~
$ jmodpath config show
~~~
- Remove the file to fall back to defaults`,
	}

	issues = map[Id]*Issue{
		descriptorNotFoundIssue.Id():   descriptorNotFoundIssue,
		descriptorParseErrorIssue.Id(): descriptorParseErrorIssue,
		elementNotFoundIssue.Id():      elementNotFoundIssue,
		moduleNotFoundIssue.Id():       moduleNotFoundIssue,
		removalBlockedIssue.Id():       removalBlockedIssue,
		patchConflictIssue.Id():        patchConflictIssue,
		outputAmbiguityIssue.Id():      outputAmbiguityIssue,
		requirementCycleIssue.Id():     requirementCycleIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

// Values returns every catalog page ordered by Id.
func Values() []*Issue {
	out := slices.Collect(maps.Values(issues))
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
