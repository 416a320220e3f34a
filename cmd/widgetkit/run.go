// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/invowk/widgetkit/internal/issue"
	"github.com/invowk/widgetkit/internal/scenario"
	"github.com/invowk/widgetkit/pkg/mask"
)

type runFlags struct {
	failFast bool
}

// newRunCommand creates the `widgetkit run` command.
func newRunCommand(app *App) *cobra.Command {
	var flags runFlags
	runCmd := &cobra.Command{
		Use:   "run <scenario.cue>...",
		Short: "Replay widget scenarios and check their expectations",
		Long: `Replay widget scenarios and check their expectations.

A scenario mounts one widget on a fresh headless document, feeds it key
presses, typed and pasted text, clicks and pointer gestures, and compares
the widget state with every expect step. After the last step the widget is
unmounted; listeners, scroll locks or layers it left behind fail the run.`,
		Example: `  widgetkit run scenarios/otp.cue
  widgetkit run --verbose scenarios/*.cue`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd, app, flags, args)
		},
	}
	runCmd.Flags().BoolVar(&flags.failFast, "fail-fast", false, "stop after the first failing scenario")
	return runCmd
}

func runScenarios(cmd *cobra.Command, app *App, flags runFlags, paths []string) error {
	runner := scenario.NewRunner(app.cfg, app.logger)
	out := cmd.OutOrStdout()

	ran, failed := 0, 0
	for _, path := range paths {
		s, err := scenario.LoadFile(path)
		if err != nil {
			id := issue.ScenarioParseErrorId
			if errors.Is(err, fs.ErrNotExist) {
				id = issue.ScenarioNotFoundId
			}
			app.renderIssue(id)
			return &ExitError{Code: ExitUsage, Err: issue.WrapWithContext(err, "load scenario", path)}
		}

		report, err := runner.Run(cmd.Context(), s)
		if report == nil {
			app.renderIssue(mountIssue(err))
			return &ExitError{Code: ExitUsage, Err: issue.WrapWithContext(err, "run scenario", path)}
		}
		ran++
		printReport(out, path, report, app.verbose)
		if err != nil {
			return err
		}
		if !report.Passed() {
			failed++
			if flags.failFast {
				break
			}
		}
	}

	summary := SuccessStyle.Render(fmt.Sprintf("%d passed", ran-failed))
	if failed > 0 {
		summary += ", " + ErrorStyle.Render(fmt.Sprintf("%d failed", failed))
	}
	fmt.Fprintln(out, summary)
	if failed > 0 {
		if app.verbose {
			app.renderIssue(issue.ScenarioFailedId)
		}
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d of %d scenarios failed", failed, ran)}
	}
	return nil
}

// mountIssue picks the catalog entry explaining why a widget could not be built.
func mountIssue(err error) issue.Id {
	var patternErr *mask.PatternError
	switch {
	case errors.As(err, &patternErr):
		return issue.InvalidMaskPatternId
	case errors.Is(err, mask.ErrUnknownPreset):
		return issue.UnknownPresetId
	case errors.Is(err, scenario.ErrInvalidScenario):
		return issue.UnknownWidgetId
	default:
		return issue.ScenarioParseErrorId
	}
}

// printReport writes one line per scenario, the failing steps beneath it and,
// in verbose mode, every step with the state it produced.
func printReport(w io.Writer, path string, r *scenario.Report, verbose bool) {
	name := r.Name
	if name == "" {
		name = path
	}
	mark := SuccessStyle.Render("✓")
	if !r.Passed() {
		mark = ErrorStyle.Render("✗")
	}
	fmt.Fprintf(w, "%s %s %s\n", mark, TitleStyle.Render(name), SubtitleStyle.Render(fmt.Sprintf("(%s, %d steps)", r.Kind, len(r.Steps))))

	for _, step := range r.Steps {
		if len(step.Failures) == 0 && !verbose {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(fmt.Sprintf("steps[%d]", step.Index)), step.Description)
		if verbose {
			fmt.Fprintf(w, "      %s\n", SubtitleStyle.Render(describeState(step)))
		}
		for _, f := range step.Failures {
			fmt.Fprintf(w, "      %s %s\n", ErrorStyle.Render("✗"), f)
		}
	}
	for _, leak := range r.Leaks {
		fmt.Fprintf(w, "  %s %s\n", ErrorStyle.Render("leak"), leak)
	}
}

func describeState(step scenario.StepResult) string {
	st := step.State
	s := fmt.Sprintf("handled=%v value=%q", step.Handled, st.Value)
	if st.Raw != "" {
		s += fmt.Sprintf(" raw=%q", st.Raw)
	}
	if st.Focus != "" {
		s += fmt.Sprintf(" focus=%s", st.Focus)
	}
	if st.Highlighted != "" {
		s += fmt.Sprintf(" highlighted=%s", st.Highlighted)
	}
	return s + fmt.Sprintf(" open=%v checked=%v complete=%v", st.Open, st.Checked, st.Complete)
}
