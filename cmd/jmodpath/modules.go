// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmodpath/jmodpath/internal/issue"
	"github.com/jmodpath/jmodpath/internal/workspace"
	"github.com/jmodpath/jmodpath/pkg/limits"
	"github.com/jmodpath/jmodpath/pkg/modgraph"
	"github.com/jmodpath/jmodpath/pkg/modreg"
)

// newModulesCommand creates the `jmodpath modules` command.
func newModulesCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the modules found on the classpath",
		Long: `List every module the scan registered, in classpath order, with its kind,
the element that provides it and its direct requirements.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			reg := s.ws.Snapshot().Registry

			names := reg.Names()
			if kindFilter != "" {
				kind, err := modreg.ParseKind(kindFilter)
				if err != nil {
					return err
				}
				names = reg.NamesOfKind(kind)
			}

			app.println(TitleStyle.Render(fmt.Sprintf("Modules (%d)", len(names))))
			for _, name := range names {
				m, _ := reg.Lookup(name)
				src, _ := reg.SourceOf(name)
				line := nameColumnStyle.Render(name) + " " + kindStyle.Render(m.Kind.String()) + " " + SubtitleStyle.Render(string(src))
				if len(m.Requires) > 0 {
					line += "  requires " + strings.Join(m.Requires, ", ")
				}
				app.println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kindFilter, "kind", "", "only list modules of this kind (normal, focus, automatic, system)")
	return cmd
}

// newGraphCommand creates the `jmodpath graph` command.
func newGraphCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var order bool

	cmd := &cobra.Command{
		Use:   "graph [module...]",
		Short: "Show requirement edges",
		Long: `Show what each module requires and is required by. With --order, print the
modules in dependency order (requirements first).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			g := s.ws.Snapshot().Graph

			if order {
				sorted, err := g.TopologicalOrder()
				if err != nil {
					return cycleError(err)
				}
				for _, name := range sorted {
					app.println(name)
				}
				return nil
			}

			names := args
			if len(names) == 0 {
				names = g.Modules()
			}
			for _, name := range names {
				if !g.Has(name) {
					return unknownModuleError(s.ws, name)
				}
				app.println(NameStyle.Render(name))
				app.printf("  requires:    %s\n", listOrNone(g.Required(name)))
				app.printf("  required by: %s\n", listOrNone(g.RequiredBy(name)))
			}
			if unresolved := g.Unresolved(); len(unresolved) > 0 && len(args) == 0 {
				app.println()
				app.println(WarningStyle.Render("Unresolved requirements:"))
				for _, e := range unresolved {
					app.printf("  %s -> %s\n", e.From, e.To)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&order, "order", false, "print modules in dependency order")
	return cmd
}

// newClosureCommand creates the `jmodpath closure` command.
func newClosureCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "closure <module...>",
		Short: "Show the modules transitively required by the given modules",
		Long: `Show the forward closure of the given modules in discovery order. Modules
passed with --exclude are treated as already included: they are neither
listed nor expanded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			g := s.ws.Snapshot().Graph
			for _, name := range args {
				if !g.Has(name) {
					return unknownModuleError(s.ws, name)
				}
			}
			for _, name := range g.ForwardClosure(args, exclude) {
				app.println(name)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "modules already included")
	return cmd
}

// newReduceCommand creates the `jmodpath reduce` command.
func newReduceCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "reduce <module...>",
		Short: "Drop system modules implied by other listed system modules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			snap := s.ws.Snapshot()
			app.println(strings.Join(snap.Graph.Reduce(args, snap.Registry), ","))
			return nil
		},
	}
}

// newRemoveCommand creates the `jmodpath remove` command.
func newRemoveCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var element string

	cmd := &cobra.Command{
		Use:   "remove <module>",
		Short: "Preview what removing a module from the limit set would remove",
		Long: `Preview the modules that would leave the limit-modules set together with
the given module: everything that requires it, and requirements nothing else
needs any more. Nothing is written; use "limit remove" to apply.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			editor, _, err := limitEditor(s.ws, element)
			if err != nil {
				return err
			}
			removal := editor.Preview(args[0])
			if removal.Blocked() {
				app.println(WarningStyle.Render("Blocked by the focus module: ") + formatChain(removal.BlockingPath))
			}
			if len(removal.Modules) == 0 {
				app.println(SubtitleStyle.Render("(nothing to remove)"))
				return nil
			}
			app.println(TitleStyle.Render("Would remove:"))
			for _, name := range removal.Modules {
				app.println("  " + name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&element, "element", "e", "", "element holding the limit-modules directive (default: first container)")
	return cmd
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return SubtitleStyle.Render("(none)")
	}
	return strings.Join(names, ", ")
}

func formatChain(path string) string {
	return strings.Join(strings.Split(path, modgraph.ChainSeparator), " -> ")
}

func cycleError(err error) error {
	var cycle *modgraph.CycleError
	if !errors.As(err, &cycle) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation("order modules").
		WithResource(strings.Join(cycle.Cycle, " -> ")).
		WithSuggestion("Break the cycle in the module catalog's requires lists").
		WithIssue(issue.RequirementCycleId).
		Wrap(err).
		BuildError()
}

func unknownModuleError(ws *workspace.Workspace, name string) error {
	return issue.NewErrorContext().
		WithOperation("look up module").
		WithResource(name).
		WithSuggestion("Run 'jmodpath modules' to list the scanned modules").
		WithSuggestion("Check that an element in " + ws.Path() + " provides it").
		WithIssue(issue.ModuleNotFoundId).
		Wrap(fmt.Errorf("module %q is not on the module path", name)).
		BuildError()
}

// limitEditor returns an editor for the limit-modules directive of element,
// or of the first container element when element is empty.
func limitEditor(ws *workspace.Workspace, element string) (*limits.Editor, string, error) {
	id, err := limitElement(ws, element)
	if err != nil {
		return nil, "", err
	}
	details, _ := ws.Store().Get(id)
	snap := ws.Snapshot()
	return limits.NewEditor(snap.Registry, snap.Graph, ws, details), string(id), nil
}
