// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ScenarioNotFoundId
	ScenarioParseErrorId
	ScenarioFailedId
	UnknownWidgetId
	InvalidMaskPatternId
	UnknownPresetId
	TerminalRequiredId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // lookup key
	mdMsg    MarkdownMsg // rendered with glamour
	docLinks []HttpLink
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the glamour style at
// stylePath ("dark", "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The widgetkit configuration file could not be read or did not match the schema.

## Configuration file locations:
- Linux: ~/.config/widgetkit/config.cue
- macOS: ~/Library/Application Support/widgetkit/config.cue
- Windows: %APPDATA%\widgetkit\config.cue
- ./config.cue in the current directory

## Things you can try:
- Write a default configuration and edit it:
~~~
$ widgetkit config init
~~~

- Print the effective configuration:
~~~
$ widgetkit config show
~~~

## Example configuration:
~~~cue
log: level: "debug"
scroll_lock: "refcount"
slider: {min: 0, max: 100, step: 5}
otp: {max_length: 6, groups: [3, 3]}
mask: presets: plate: "aaa-9999"
~~~`,
	}

	scenarioNotFoundIssue = &Issue{
		id: ScenarioNotFoundId,
		mdMsg: `
# Scenario file not found!

The path given to ` + "`widgetkit run`" + ` does not exist or is a directory.

## Things you can try:
- Check the path and pass a single .cue file:
~~~
$ widgetkit run ./scenarios/otp.cue
~~~`,
	}

	scenarioParseErrorIssue = &Issue{
		id: ScenarioParseErrorId,
		mdMsg: `
# Failed to parse scenario!

The scenario file is not valid CUE or does not match the scenario schema.

## Things you can try:
- Every scenario needs a widget kind and a list of steps
- Every step sets exactly one action: key, type, paste, click, pointer or expect

## Example scenario:
~~~cue
widget: {kind: "otp", max_length: 4}
steps: [
  {paste: "12345"},
  {expect: value: "1234"},
]
~~~`,
	}

	scenarioFailedIssue = &Issue{
		id: ScenarioFailedId,
		mdMsg: `
# Scenario expectations failed!

At least one ` + "`expect`" + ` step did not match the widget state, or the widget left
listeners, scroll locks or layers behind after unmounting.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to list every step with its resulting state
- Compare the reported value with the expectation in the scenario file`,
	}

	unknownWidgetIssue = &Issue{
		id: UnknownWidgetId,
		mdMsg: `
# Unknown widget kind!

## Supported kinds:
mask, otp, slider, switch, checkbox, toggle, radio, tabs, accordion, select,
dialog, sheet, popover`,
	}

	invalidMaskPatternIssue = &Issue{
		id: InvalidMaskPatternId,
		mdMsg: `
# Invalid mask pattern!

## Pattern syntax:
- ` + "`9`" + ` accepts a digit
- ` + "`a`" + ` accepts a letter
- ` + "`*`" + ` accepts a letter or digit
- anything else is a literal, but literals must not be letters or digits`,
	}

	unknownPresetIssue = &Issue{
		id: UnknownPresetId,
		mdMsg: `
# Unknown mask preset!

## Things you can try:
- List the built-in and configured presets:
~~~
$ widgetkit mask presets
~~~

- Add your own under ` + "`mask: presets:`" + ` in the configuration file`,
	}

	terminalRequiredIssue = &Issue{
		id: TerminalRequiredId,
		mdMsg: `
# An interactive terminal is required!

` + "`widgetkit play`" + ` drives the widgets from the keyboard and needs a TTY.

## Things you can try:
- Run it directly in a terminal, not through a pipe
- Use ` + "`widgetkit run`" + ` with a scenario file for non-interactive checks`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		scenarioNotFoundIssue.Id():   scenarioNotFoundIssue,
		scenarioParseErrorIssue.Id(): scenarioParseErrorIssue,
		scenarioFailedIssue.Id():     scenarioFailedIssue,
		unknownWidgetIssue.Id():      unknownWidgetIssue,
		invalidMaskPatternIssue.Id(): invalidMaskPatternIssue,
		unknownPresetIssue.Id():      unknownPresetIssue,
		terminalRequiredIssue.Id():   terminalRequiredIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id - b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
