// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/widgetkit/internal/issue"
	"github.com/invowk/widgetkit/pkg/mask"
)

type maskFormatFlags struct {
	pattern  string
	preset   string
	complete bool
}

// newMaskCommand creates the `widgetkit mask` command tree.
func newMaskCommand(app *App) *cobra.Command {
	maskCmd := &cobra.Command{
		Use:   "mask",
		Short: "Format values with input masks",
		Long: `Format values with input masks.

Patterns use 9 for a digit, a for a letter and * for a letter or digit.
Every other character is a literal inserted as the user types.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var flags maskFormatFlags
	formatCmd := &cobra.Command{
		Use:   "format <raw>...",
		Short: "Format raw input with a pattern or preset",
		Example: `  widgetkit mask format --pattern "(999) 999-9999" 5551234567
  widgetkit mask format --preset date --complete 01022024`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaskFormat(cmd, app, flags, args)
		},
	}
	formatCmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "", "mask pattern")
	formatCmd.Flags().StringVar(&flags.preset, "preset", "", "named pattern (see 'widgetkit mask presets')")
	formatCmd.Flags().BoolVar(&flags.complete, "complete", false, "exit 1 unless every value fills the mask")
	formatCmd.MarkFlagsMutuallyExclusive("pattern", "preset")
	formatCmd.MarkFlagsOneRequired("pattern", "preset")

	maskCmd.AddCommand(formatCmd, &cobra.Command{
		Use:   "presets",
		Short: "List built-in and configured mask presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listPresets(cmd, app)
		},
	})
	return maskCmd
}

func runMaskFormat(cmd *cobra.Command, app *App, flags maskFormatFlags, args []string) error {
	tpl, err := resolveTemplate(app, flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	incomplete := 0
	for _, raw := range args {
		formatted := tpl.Format(raw)
		complete := tpl.Complete(formatted)
		if !complete {
			incomplete++
		}
		if app.verbose {
			status := SuccessStyle.Render("complete")
			if !complete {
				status = WarningStyle.Render("incomplete")
			}
			app.logger.Debug("formatted", "raw", raw, "formatted", formatted)
			fmt.Fprintf(out, "%s  %s  %s\n", formatted, SubtitleStyle.Render("raw "+tpl.Raw(formatted)), status)
			continue
		}
		fmt.Fprintln(out, formatted)
	}

	if flags.complete && incomplete > 0 {
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d of %d values do not fill %q", incomplete, len(args), tpl.String())}
	}
	return nil
}

// resolveTemplate compiles the --pattern flag or looks up the --preset among
// the built-in and configured presets.
func resolveTemplate(app *App, flags maskFormatFlags) (*mask.Template, error) {
	if flags.preset != "" {
		tpl, err := app.cfg.Mask.MergedPresets().Template(flags.preset)
		if err != nil {
			if errors.Is(err, mask.ErrUnknownPreset) {
				app.renderIssue(issue.UnknownPresetId)
			}
			return nil, &ExitError{Code: ExitUsage, Err: issue.NewErrorContext().
				WithOperation("resolve mask preset").
				WithResource(flags.preset).
				WithSuggestion("run 'widgetkit mask presets' to list the available names").
				Wrap(err).
				BuildError()}
		}
		return tpl, nil
	}

	tpl, err := mask.Parse(flags.pattern)
	if err != nil {
		app.renderIssue(issue.InvalidMaskPatternId)
		return nil, &ExitError{Code: ExitUsage, Err: issue.WrapWithContext(err, "parse mask pattern", flags.pattern)}
	}
	return tpl, nil
}

func listPresets(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	presets := app.cfg.Mask.MergedPresets()
	builtin := mask.DefaultPresets()
	for _, name := range presets.Names() {
		pattern := presets[name]
		note := ""
		if _, ok := app.cfg.Mask.Presets[name]; ok {
			note = SubtitleStyle.Render("  (configured)")
			if def, shadowed := builtin[name]; shadowed && def != pattern {
				note = SubtitleStyle.Render("  (overrides " + def + ")")
			}
		}
		fmt.Fprintf(out, "%s %s%s\n", CmdStyle.Render(fmt.Sprintf("%-8s", name)), pattern, note)
	}
	return nil
}
