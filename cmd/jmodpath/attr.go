// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmodpath/jmodpath/internal/workspace"
	"github.com/jmodpath/jmodpath/pkg/attrstore"
	"github.com/jmodpath/jmodpath/pkg/classpath"
	"github.com/jmodpath/jmodpath/pkg/encap"
	"github.com/jmodpath/jmodpath/pkg/patch"
)

// newAttrCommand creates the `jmodpath attr` command tree.
func newAttrCommand(app *App, flags *rootFlagValues) *cobra.Command {
	attrCmd := &cobra.Command{
		Use:   "attr",
		Short: "Show and edit raw encapsulation attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	attrCmd.AddCommand(&cobra.Command{
		Use:   "show [element...]",
		Short: "Show the directives of classpath elements",
		Long: `Show the directives of the given classpath elements, or of every element.
Each directive is prefixed with the id accepted by "attr remove".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			ids, err := selectElements(s.ws, args)
			if err != nil {
				return err
			}
			for _, id := range ids {
				showAttributes(app, s.ws, id)
			}
			return nil
		},
	})

	attrCmd.AddCommand(&cobra.Command{
		Use:   "merge <element> <kind> <value>",
		Short: "Merge a wire-format value into an element's directives",
		Long: `Merge a wire-format value into an element's directives. kind is one of
add-exports, add-opens, add-reads, limit-modules or patch-module. A
limit-modules value replaces the current one; a patch-module value adds
locations to the directive of the same module, and nothing is written when a
location overlaps another module's location; other kinds are appended.
Malformed fragments are skipped.`,
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
			kind, err := encap.ParseKind(args[1])
			if err != nil {
				return err
			}
			if kind == encap.KindPatch {
				if err := checkPatchClaims(s.ws, args[2]); err != nil {
					return err
				}
			}
			changed, err := s.ws.Store().Merge(elem.ID, kind, args[2], s.ws.CodecOptions()...)
			if err != nil {
				return err
			}
			if !changed {
				app.println(SubtitleStyle.Render("Nothing changed."))
				return nil
			}
			if err := s.ws.Save(); err != nil {
				return err
			}
			showAttributes(app, s.ws, elem.ID)
			return nil
		},
	})

	attrCmd.AddCommand(&cobra.Command{
		Use:   "remove <directive-id>",
		Short: "Remove one directive by the id shown by 'attr show'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid directive id %q: %w", args[0], err)
			}
			id := attrstore.DetailID(n)
			owner, ok := s.ws.Store().OwnerOf(id)
			if !ok {
				return fmt.Errorf("no directive with id %d", n)
			}
			s.ws.Store().Remove(id)
			if err := s.ws.Save(); err != nil {
				return err
			}
			showAttributes(app, s.ws, owner)
			return nil
		},
	})

	attrCmd.AddCommand(&cobra.Command{
		Use:   "clear <element>",
		Short: "Remove the encapsulation attributes of an element",
		Long: `Remove the encapsulation attributes of an element. The element is no
longer module-aware afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			elem, err := s.ws.Element(args[0])
			if err != nil {
				return err
			}
			if err := s.ws.Store().Clear(elem.ID); err != nil {
				return err
			}
			if err := s.ws.Save(); err != nil {
				return err
			}
			app.println(SuccessStyle.Render("Cleared ") + NameStyle.Render(args[0]))
			return nil
		},
	})

	return attrCmd
}

// newArgsCommand creates the `jmodpath args` command.
func newArgsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var oneLine bool

	cmd := &cobra.Command{
		Use:   "args [element...]",
		Short: "Print the directives as compiler and launcher options",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			ids, err := selectElements(s.ws, args)
			if err != nil {
				return err
			}
			var out []string
			for _, id := range ids {
				details, _ := s.ws.Store().Get(id)
				out = append(out, encap.CommandLineArgs(details, s.ws.CodecOptions()...)...)
			}
			if oneLine {
				app.println(strings.Join(out, " "))
				return nil
			}
			for i := 0; i+1 < len(out); i += 2 {
				app.println(out[i] + " " + out[i+1])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&oneLine, "one-line", false, "print all options on one line")
	return cmd
}

// checkPatchClaims refuses patch-module text whose locations collide with
// another module's claims.
func checkPatchClaims(ws *workspace.Workspace, text string) error {
	claims := patch.BuildPatchMap(ws.Store())
	for _, d := range encap.ParseMulti(encap.KindPatch, text, ws.CodecOptions()...) {
		p, ok := d.(encap.PatchModule)
		if !ok {
			continue
		}
		if conflicts := patch.FindConflicts(claims, p.Module, p.Locations, ws); len(conflicts) > 0 {
			return conflictError(p.Module, &patch.ConflictError{Conflicts: conflicts})
		}
	}
	return nil
}

func selectElements(ws *workspace.Workspace, names []string) ([]classpath.ElementID, error) {
	if len(names) == 0 {
		elems := ws.Store().Elements()
		ids := make([]classpath.ElementID, 0, len(elems))
		for _, e := range elems {
			ids = append(ids, e.ID)
		}
		return ids, nil
	}
	ids := make([]classpath.ElementID, 0, len(names))
	for _, name := range names {
		elem, err := ws.Element(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, elem.ID)
	}
	return ids, nil
}

func showAttributes(app *App, ws *workspace.Workspace, id classpath.ElementID) {
	elem, _ := ws.Store().Element(id)
	header := NameStyle.Render(string(id)) + " " + SubtitleStyle.Render(elem.Kind.String()+" "+elem.Path)
	if !ws.Store().IsModuleAware(id) {
		app.println(header + " " + SubtitleStyle.Render("(not module-aware)"))
		return
	}
	app.println(header)
	entries := ws.Store().Entries(id)
	if len(entries) == 0 {
		app.println("  " + SubtitleStyle.Render("(empty)"))
	}
	for _, e := range entries {
		app.printf("  %s %s=%s\n", SubtitleStyle.Render(fmt.Sprintf("#%d", e.ID)), e.Detail.Kind(), encap.Format(e.Detail, ws.CodecOptions()...))
	}
}
