// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for jmodpath.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/jmodpath/jmodpath/internal/config"
	"github.com/jmodpath/jmodpath/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "jmodpath",
		Short: "Inspect and edit module-path encapsulation directives",
		Long: TitleStyle.Render("jmodpath") + SubtitleStyle.Render(" - module-path encapsulation editor") + `

jmodpath reads a project descriptor (jmodpath.cue or jmodpath.toml) that lists
the classpath, the module catalog and each element's encapsulation
attributes (add-exports, add-opens, add-reads, limit-modules, patch-module).

` + SubtitleStyle.Render("Examples:") + `
  jmodpath modules                      List scanned modules
  jmodpath closure java.sql             Show what java.sql pulls in
  jmodpath limit remove java.desktop    Shrink the limit-modules set
  jmodpath patch add src app.core /app  Patch a module from this project
  jmodpath args                         Print the resulting JVM options`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/jmodpath/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&flags.descriptor, "descriptor", "d", "", "project descriptor (default: ./jmodpath.cue or ./jmodpath.toml)")
	rootCmd.PersistentFlags().StringVar(&flags.separator, "path-separator", "", "path-list separator for patch locations (default: platform)")

	rootCmd.AddCommand(
		newModulesCommand(app, flags),
		newGraphCommand(app, flags),
		newClosureCommand(app, flags),
		newReduceCommand(app, flags),
		newRemoveCommand(app, flags),
		newLimitCommand(app, flags),
		newPatchCommand(app, flags),
		newAttrCommand(app, flags),
		newArgsCommand(app, flags),
		newWatchCommand(app, flags),
		newConfigCommand(app, flags),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's exit code.
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		if verbose {
			renderIssuePage(app, err)
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssuePage prints the catalog page linked from an ActionableError.
func renderIssuePage(app *App, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID == 0 {
		return
	}
	page := issue.Get(ae.IssueID)
	if page == nil {
		return
	}
	style := string(config.ColorSchemeAuto)
	if cfg, loadErr := app.Config.Load(context.Background(), config.LoadOptions{}); loadErr == nil {
		style = cfg.UI.ColorScheme.String()
	}
	rendered, renderErr := page.Render(style)
	if renderErr != nil {
		return
	}
	fmt.Fprint(app.stderr, rendered)
}
