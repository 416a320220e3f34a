// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		contains string
	}{
		{ConfigLoadFailedId, "Failed to load configuration"},
		{ScenarioNotFoundId, "Scenario file not found"},
		{ScenarioParseErrorId, "Failed to parse scenario"},
		{ScenarioFailedId, "Scenario expectations failed"},
		{UnknownWidgetId, "Unknown widget kind"},
		{InvalidMaskPatternId, "Invalid mask pattern"},
		{UnknownPresetId, "Unknown mask preset"},
		{TerminalRequiredId, "interactive terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			got := Get(tt.id)
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if got.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", got.Id(), tt.id)
			}
			if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
				t.Errorf("MarkdownMsg() should contain %q", tt.contains)
			}
		})
	}

	if Get(Id(9999)) != nil {
		t.Error("Get(9999) should return nil")
	}
}

func TestValues_OrderedById(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != int(TerminalRequiredId) {
		t.Fatalf("Values() returned %d issues, want %d", len(all), TerminalRequiredId)
	}
	for i, is := range all {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d", i, is.Id())
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	is := &Issue{id: ScenarioFailedId, docLinks: []HttpLink{"https://example.com/a"}}
	links := is.DocLinks()
	links[0] = "modified"
	if is.DocLinks()[0] != "https://example.com/a" {
		t.Error("DocLinks() should return a clone")
	}
	if is.ExtLinks() != nil {
		t.Error("ExtLinks() should be nil when unset")
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	defer func() { render = original }()
	render = func(in, _ string) (string, error) { return in, nil }

	is := &Issue{
		id:       UnknownWidgetId,
		mdMsg:    "# Unknown",
		docLinks: []HttpLink{"https://example.com/docs"},
		extLinks: []HttpLink{"https://example.com/ext"},
	}
	out, err := is.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"# Unknown", "## See also", "<https://example.com/docs>", "<https://example.com/ext>"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}
