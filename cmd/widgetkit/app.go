// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/internal/config"
	"github.com/invowk/widgetkit/internal/issue"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and reads the loaded configuration and logger from it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		stdin  io.Reader

		cfg     *config.Config
		cfgPath string
		verbose bool
		logger  *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
		Stdin  io.Reader
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		verbose    bool
		configPath string
	}
)

// NewApp creates an App, filling unset dependencies with the process
// streams and the file-backed config provider.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		stdin:  deps.Stdin,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	app.cfg = config.DefaultConfig()
	app.logger = newLogger(app.stderr, app.cfg.Log.Level.Level())
	return app
}

// Cfg returns the loaded configuration.
func (a *App) Cfg() *config.Config { return a.cfg }

// Logger returns the CLI logger.
func (a *App) Logger() *log.Logger { return a.logger }

// load resolves configuration and the logger level before a command runs.
// An explicit --config that fails is fatal; otherwise the failure is shown
// as a warning and defaults apply.
func (a *App) load(ctx context.Context, flags globalFlags) error {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	switch {
	case err != nil && flags.configPath != "":
		a.renderIssue(issue.ConfigLoadFailedId)
		return err
	case err != nil:
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		a.cfg = config.DefaultConfig()
		a.cfgPath = ""
	default:
		a.cfg = loaded.Config
		a.cfgPath = loaded.Path
	}

	a.verbose = flags.verbose || a.cfg.UI.Verbose
	level := a.cfg.Log.Level.Level()
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = newLogger(a.stderr, level)
	a.logger.Debug("configuration loaded", "path", a.cfgPath, "scroll_lock", a.cfg.ScrollLock)
	return nil
}

// renderIssue writes the catalog entry for id to stderr. Rendering problems
// are logged and otherwise ignored.
func (a *App) renderIssue(id issue.Id) {
	rendered, err := issue.Get(id).Render("dark")
	if err != nil {
		a.logger.Warn("failed to render help", "issue", int(id), "err", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{Prefix: "widgetkit", Level: level})
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method, which lists the error chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
