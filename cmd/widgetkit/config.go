// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/widgetkit/internal/config"
)

// newConfigCommand creates the `widgetkit config` command tree. Every
// subcommand reads the configuration the root command already loaded.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage widgetkit configuration",
		Long: `Manage widgetkit configuration.

Configuration is stored in:
  - Linux: ~/.config/widgetkit/config.cue
  - macOS: ~/Library/Application Support/widgetkit/config.cue
  - Windows: %APPDATA%\widgetkit\config.cue

Environment variables prefixed with WIDGETKIT_ override file values,
e.g. WIDGETKIT_LOG_LEVEL=debug or WIDGETKIT_SLIDER_STEP=5.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, app)
		},
	})

	var dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, dir)
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to write config.cue into (default is the platform config directory)")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(app.cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	rendered, err := config.MarshalTOML(app.cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	source := SubtitleStyle.Render("(using defaults)")
	if app.cfgPath != "" {
		source = app.cfgPath
	}
	fmt.Fprintf(out, "%s: %s\n\n", CmdStyle.Render("Config file"), source)
	fmt.Fprint(out, rendered)
	return nil
}

func initConfig(cmd *cobra.Command, dir string) error {
	path, err := config.CreateDefaultConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(out, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
