// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/invowk/widgetkit/internal/issue"
	"github.com/invowk/widgetkit/internal/tui"
)

// ErrTerminalRequired is returned by `play` when stdin is not a terminal.
var ErrTerminalRequired = errors.New("widgetkit play needs an interactive terminal")

// isTerminal reports whether stdin is connected to a terminal. Tests replace it.
var isTerminal = func(app *App) bool {
	f, ok := app.stdin.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newPlayCommand creates the `widgetkit play` command.
func newPlayCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Try the widgets interactively in the terminal",
		Long: `Try the widgets interactively in the terminal.

Each page mounts real widgets and shows the ARIA state they render. Use
ctrl+n and ctrl+p to switch pages, f1 for help and ctrl+c to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(app) {
				app.renderIssue(issue.TerminalRequiredId)
				return &ExitError{Code: ExitUsage, Err: ErrTerminalRequired}
			}
			return tui.Run(cmd.Context(), tui.Options{
				Config: app.cfg,
				Logger: app.logger,
				Input:  app.stdin,
				Output: app.stdout,
			})
		},
	}
}
