// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmodpath/jmodpath/internal/issue"
	"github.com/jmodpath/jmodpath/pkg/patch"
)

// newPatchCommand creates the `jmodpath patch` command tree.
func newPatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	patchCmd := &cobra.Command{
		Use:   "patch",
		Short: "Manage patch-module directives",
		Long: `Manage patch-module directives. A location may be patched into one module
only: a project-level location (/project) overlaps every folder of that
project, and two source folders compiling into the same output folder are
ambiguous.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	patchCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List patched locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			claims := patch.BuildPatchMap(s.ws.Store()).Claims()
			if len(claims) == 0 {
				app.println(SubtitleStyle.Render("(no patch-module directives)"))
				return nil
			}
			for _, c := range claims {
				app.println(nameColumnStyle.Render(c.Location) + " " + NameStyle.Render(c.Module) + " " + SubtitleStyle.Render(string(c.Element)))
			}
			return nil
		},
	})

	patchCmd.AddCommand(&cobra.Command{
		Use:   "add <element> <module> <locations>",
		Short: "Patch locations into a module",
		Long: `Patch locations into a module. Locations are separated by the path-list
separator. Nothing is written when a location overlaps another module's
location.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			elem, err := s.ws.Element(args[0])
			if err != nil {
				return err
			}
			if err := patch.Add(s.ws.Store(), elem.ID, args[1], args[2], s.ws.Separator(), s.ws); err != nil {
				return conflictError(args[1], err)
			}
			if err := s.ws.Save(); err != nil {
				return err
			}
			app.println(SuccessStyle.Render("Patched ") + NameStyle.Render(args[1]) + " with " + args[2])
			return nil
		},
	})

	patchCmd.AddCommand(&cobra.Command{
		Use:   "remove <element> <module> <locations>",
		Short: "Remove patched locations from a module",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			elem, err := s.ws.Element(args[0])
			if err != nil {
				return err
			}
			if err := patch.Remove(s.ws.Store(), elem.ID, args[1], args[2], s.ws.Separator()); err != nil {
				return err
			}
			if err := s.ws.Save(); err != nil {
				return err
			}
			app.println(SuccessStyle.Render("Unpatched ") + NameStyle.Render(args[1]) + " from " + args[2])
			return nil
		},
	})

	var strict bool
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Report source folders of different modules sharing an output folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			err = patch.Validate(patch.BuildPatchMap(s.ws.Store()), s.ws)
			var amb *patch.AmbiguityError
			if !errors.As(err, &amb) {
				if err != nil {
					return err
				}
				app.println(SuccessStyle.Render("No ambiguous output locations."))
				return nil
			}
			for _, a := range amb.Ambiguities {
				app.warnf("%s is the output of %s (modules %s)", a.Output, strings.Join(a.Locations, ", "), strings.Join(a.Modules, ", "))
			}
			if strict {
				return &ExitError{Code: ExitAmbiguous, Err: err}
			}
			return nil
		},
	}
	validateCmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when outputs are ambiguous")
	patchCmd.AddCommand(validateCmd)

	return patchCmd
}

func conflictError(module string, err error) error {
	var conflict *patch.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}
	ctx := issue.NewErrorContext().
		WithOperation("patch module " + module).
		WithSuggestion("Remove the location from the other module first with 'jmodpath patch remove'").
		WithIssue(issue.PatchConflictId).
		Wrap(err)
	for _, c := range conflict.Conflicts {
		ctx = ctx.WithSuggestion("Conflict: " + c.String())
	}
	return ctx.BuildError()
}
