// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmodpath/jmodpath/internal/issue"
	"github.com/jmodpath/jmodpath/internal/workspace"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/limits"
)

// newLimitCommand creates the `jmodpath limit` command tree.
func newLimitCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var element string

	limitCmd := &cobra.Command{
		Use:   "limit",
		Short: "Inspect and edit the limit-modules directive",
		Long: `Inspect and edit the limit-modules directive of a container element.

Without a directive the platform default root modules and their closure are
included. Adding a module pulls in its requirements; removing one also removes
every included module that requires it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	limitCmd.PersistentFlags().StringVarP(&element, "element", "e", "", "element holding the directive (default: first container)")

	limitCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the included modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			editor, id, err := limitEditor(s.ws, element)
			if err != nil {
				return err
			}
			showLimit(app, editor, id)
			return nil
		},
	})

	limitCmd.AddCommand(&cobra.Command{
		Use:   "add <module...>",
		Short: "Include modules and their requirements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			editor, id, err := limitEditor(s.ws, element)
			if err != nil {
				return err
			}
			added := editor.Add(args...)
			for _, name := range args {
				if !s.ws.Snapshot().Graph.Has(name) {
					app.warnf("ignoring unknown module %s", name)
				}
			}
			if len(added) == 0 {
				app.println(SubtitleStyle.Render("Nothing to add."))
				return nil
			}
			if err := commitLimit(s.ws, editor, id); err != nil {
				return err
			}
			app.println(SuccessStyle.Render("Added: ") + strings.Join(added, ", "))
			return nil
		},
	})

	var force bool
	removeCmd := &cobra.Command{
		Use:   "remove <module...>",
		Short: "Exclude modules and everything that requires them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			editor, id, err := limitEditor(s.ws, element)
			if err != nil {
				return err
			}
			result, err := editor.Remove(force, args...)
			if err != nil {
				return blockedError(err)
			}
			for _, path := range result.Blocked {
				app.warnf("kept, the focus module needs it: %s", formatChain(path))
			}
			if len(result.Removed) == 0 {
				app.println(SubtitleStyle.Render("Nothing to remove."))
				return nil
			}
			if err := commitLimit(s.ws, editor, id); err != nil {
				return err
			}
			app.println(SuccessStyle.Render("Removed: ") + strings.Join(result.Removed, ", "))
			return nil
		},
	}
	removeCmd.Flags().BoolVar(&force, "force", false, "remove even when the focus module requires the module")
	limitCmd.AddCommand(removeCmd)

	return limitCmd
}

func showLimit(app *App, editor *limits.Editor, id string) {
	app.println(TitleStyle.Render("limit-modules of " + id))
	app.printf("%s %s\n", SubtitleStyle.Render("state:"), editor.State())
	if editor.IsDefault() {
		app.println(SubtitleStyle.Render("(platform defaults)"))
	}
	if directive, ok := editor.Directive(); ok {
		app.printf("%s %s\n", SubtitleStyle.Render("roots:"), strings.Join(directive.Modules, ","))
	}
	for _, name := range editor.Included() {
		app.println("  " + name)
	}
}

func commitLimit(ws *workspace.Workspace, editor *limits.Editor, id string) error {
	if err := editor.Commit(ws.Store(), classpath.ElementID(id)); err != nil {
		return err
	}
	return ws.Save()
}

// limitElement resolves the element that holds the limit directive.
func limitElement(ws *workspace.Workspace, element string) (classpath.ElementID, error) {
	if element != "" {
		elem, err := ws.Element(element)
		if err != nil {
			return "", err
		}
		return elem.ID, nil
	}
	for _, elem := range ws.Store().Elements() {
		if elem.Kind == classpath.KindContainer {
			return elem.ID, nil
		}
	}
	return "", issue.NewErrorContext().
		WithOperation("select limit-modules element").
		WithResource(ws.Path()).
		WithSuggestion("Pass --element with the id of the element holding the system modules").
		WithIssue(issue.ElementNotFoundId).
		Wrap(errors.New("no container element on the classpath")).
		BuildError()
}

func blockedError(err error) error {
	var blocked *limits.BlockedError
	if !errors.As(err, &blocked) {
		return err
	}
	chains := make([]string, 0, len(blocked.Paths))
	for _, p := range blocked.Paths {
		chains = append(chains, formatChain(p))
	}
	return issue.NewErrorContext().
		WithOperation("remove modules from limit-modules").
		WithResource(strings.Join(chains, "; ")).
		WithSuggestion("Remove the requirement from the focus module first").
		WithSuggestion("Use --force to remove the modules anyway").
		WithIssue(issue.RemovalBlockedId).
		Wrap(err).
		BuildError()
}
