// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmodpath/jmodpath/internal/config"
	"github.com/jmodpath/jmodpath/internal/issue"
)

// newConfigCommand creates the `jmodpath config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jmodpath configuration",
		Long: `Manage jmodpath configuration.

Configuration is stored in:
  - Linux: ~/.config/jmodpath/config.cue
  - macOS: ~/Library/Application Support/jmodpath/config.cue
  - Windows: %APPDATA%\jmodpath\config.cue

Every setting can be overridden with a JMODPATH_ environment variable, e.g.
JMODPATH_PATH_SEPARATOR or JMODPATH_LOG_LEVEL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath})
			if err != nil {
				if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("auto"); renderErr == nil {
					fmt.Fprint(app.stderr, rendered)
				}
				return err
			}
			cfg := loaded.Config

			app.println(TitleStyle.Render("Current Configuration"))
			app.println()
			if loaded.Path != "" {
				app.printf("%s: %s\n", NameStyle.Render("Config file"), loaded.Path)
			} else {
				app.printf("%s: %s\n", NameStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
			}
			app.println()
			sep := string(cfg.PathSeparator)
			if sep == "" {
				sep = SubtitleStyle.Render("(platform: " + cfg.PathSeparator.Resolve() + ")")
			}
			app.printf("%s: %s\n", NameStyle.Render("descriptor"), SuccessStyle.Render(cfg.Descriptor.String()))
			app.printf("%s: %s\n", NameStyle.Render("path_separator"), sep)
			app.printf("%s: %s\n", NameStyle.Render("ui.verbose"), SuccessStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
			app.printf("%s: %s\n", NameStyle.Render("ui.color_scheme"), SuccessStyle.Render(cfg.UI.ColorScheme.String()))
			app.printf("%s: %s\n", NameStyle.Render("log.level"), SuccessStyle.Render(string(cfg.Log.Level)))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.configPath != "" {
				app.println(flags.configPath)
				return nil
			}
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			app.println(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: flags.configPath})
			if err != nil {
				return err
			}
			content, err := config.GenerateCUE(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, content)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Save(config.DefaultConfig())
			if err != nil {
				return err
			}
			app.println(SuccessStyle.Render("Created ") + path)
			return nil
		},
	})

	return cfgCmd
}
