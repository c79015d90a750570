// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmodpath/jmodpath/internal/watch"
	"github.com/jmodpath/jmodpath/internal/workspace"
	"github.com/jmodpath/jmodpath/pkg/patch"
)

// newWatchCommand creates the `jmodpath watch` command.
func newWatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rescan and re-check the project whenever the descriptor changes",
		Long: `Print a summary of the project, then rescan the modules and re-run the
patch output check every time the descriptor or config file changes. Stop with
Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.openSession(cmd.Context(), flags)
			if err != nil {
				return err
			}
			printSummary(app, s.ws)

			files := []string{s.ws.Path()}
			if flags.configPath != "" {
				files = append(files, flags.configPath)
			}
			w, err := watch.New(watch.Config{
				Files:    files,
				Debounce: debounce,
				Logger:   s.logger,
				OnChange: func(ctx context.Context, changed []string) error {
					s.logger.Info("reloading", "changed", strings.Join(changed, ", "))
					next, err := app.openSession(ctx, flags)
					if err != nil {
						return err
					}
					printSummary(app, next.ws)
					return nil
				},
			})
			if err != nil {
				return err
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before reloading (default 300ms)")
	return cmd
}

func printSummary(app *App, ws *workspace.Workspace) {
	snap := ws.Snapshot()
	app.printf("%s %s: %d modules, %d unresolved requirements\n",
		TitleStyle.Render(ws.Project()), SubtitleStyle.Render(ws.Path()), snap.Registry.Len(), len(snap.Graph.Unresolved()))
	if _, err := snap.Graph.TopologicalOrder(); err != nil {
		app.warnf("%v", err)
	}
	if err := patch.Validate(patch.BuildPatchMap(ws.Store()), ws); err != nil {
		app.warnf("%v", err)
	}
}
