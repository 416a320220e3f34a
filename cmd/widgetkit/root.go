// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for widgetkit.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the widgetkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	var flags globalFlags
	rootCmd := &cobra.Command{
		Use:   "widgetkit",
		Short: "Headless accessible widget primitives",
		Long: TitleStyle.Render("widgetkit") + SubtitleStyle.Render(" - Headless accessible widget primitives") + `

widgetkit drives keyboard navigation, focus management, overlays, sliders,
one-time-password fields, input masks and toggles without rendering
anything. The CLI formats masked values, replays widget scenarios written
in CUE and opens an interactive playground.

` + SubtitleStyle.Render("Examples:") + `
  widgetkit mask format --preset phone 5551234567
  widgetkit mask presets                 List built-in and configured presets
  widgetkit run scenarios/otp.cue        Replay a scenario and check expectations
  widgetkit play                         Try the widgets in the terminal
  widgetkit config show                  Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd.Context(), flags)
		},
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetIn(app.stdin)

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/widgetkit/config.cue)")

	rootCmd.AddCommand(
		newMaskCommand(app),
		newRunCommand(app),
		newPlayCommand(app),
		newConfigCommand(app),
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

// Execute runs the root command with fang styling and exits with the code
// carried by an ExitError, or 1 for any other error.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
