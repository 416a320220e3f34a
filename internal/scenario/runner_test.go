// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/invowk/widgetkit/internal/config"
	"github.com/invowk/widgetkit/pkg/host"
)

func run(t *testing.T, cfg *config.Config, src string) *Report {
	t.Helper()
	s, err := Parse([]byte(src), "test.cue")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	report, err := NewRunner(cfg, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return report
}

func assertPassed(t *testing.T, r *Report) {
	t.Helper()
	for _, s := range r.Failed() {
		t.Errorf("step %d (%s): %s", s.Index, s.Description, strings.Join(s.Failures, "; "))
	}
	for _, l := range r.Leaks {
		t.Errorf("leak: %s", l)
	}
}

func TestRun_Widgets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"mask typing and backspace", `
widget: {kind: "mask", preset: "phone"}
steps: [
	{type: "5551234567"},
	{expect: {value: "(555) 123-4567", raw: "5551234567", complete: true}},
	{type: "9"},
	{expect: value: "(555) 123-4567"},
	{key: "Backspace"},
	{expect: {raw: "555123456", complete: false}},
	{expect: attr: {node: "mask", name: "placeholder", equals: "(999) 999-9999"}},
]`},
		{"mask pattern with paste", `
widget: {kind: "mask", pattern: "99/99/9999", default: "01"}
steps: [
	{expect: value: "01"},
	{paste: "0220x24"},
	{expect: {value: "01/02/2024", complete: true}},
]`},
		{"otp paste and backspace", `
widget: {kind: "otp", max_length: 4}
steps: [
	{paste: "12345"},
	{expect: {value: "1234", complete: true, focus: "3"}},
	{click: "1"},
	{key: "Delete"},
	{expect: {value: "134", complete: false, focus: "1"}},
]`},
		{"otp typing from config layout", `
widget: kind: "otp"
steps: [
	{type: "98"},
	{expect: {value: "98", focus: "2"}},
	{key: "Backspace"},
	{expect: {value: "9", focus: "1"}},
	{expect: attr: {node: "otp-slot-0", name: "value", equals: "9"}},
]`},
		{"slider keys and drag", `
widget: {kind: "slider", default: 50}
steps: [
	{key: "ArrowRight"},
	{expect: {value: 51, focus: "0"}},
	{key: "Shift+ArrowRight"},
	{expect: value: 61},
	{key: "Home"},
	{expect: value: 0},
	{pointer: {action: "down", x: 25, y: 5}},
	{expect: {value: 25, sessions: 1}},
	{pointer: {action: "move", x: 75, y: 5}},
	{pointer: {action: "up", x: 75, y: 5}},
	{expect: {value: 75, sessions: 0}},
]`},
		{"range slider", `
widget: {kind: "slider", min: 0, max: 10, step: 0.5, default: [2, 8]}
steps: [
	{click: "1"},
	{key: "ArrowLeft", repeat: 3},
	{expect: value: [2, 6.5]},
]`},
		{"switch", `
widget: kind: "switch"
steps: [
	{click: ""},
	{expect: {checked: true, value: true}},
	{key: "Space"},
	{expect: checked: false},
	{key: "Enter"},
	{expect: {checked: true, attr: {node: "switch", name: "data-state", equals: "checked"}}},
]`},
		{"checkbox ignores enter", `
widget: {kind: "checkbox", default: true}
steps: [
	{key: "Enter"},
	{expect: checked: true},
	{key: "Space"},
	{expect: checked: false},
]`},
		{"radio arrows select", `
widget: {kind: "radio", items: ["a", "b", "c"], default: "a"}
steps: [
	{key: "ArrowDown"},
	{expect: {value: "b", focus: "b"}},
	{click: "c"},
	{expect: {value: "c", focus: "c"}},
]`},
		{"tabs automatic activation", `
widget: {kind: "tabs", items: ["one", "two", "three"], default: "one"}
steps: [
	{key: "ArrowRight"},
	{expect: {value: "two", focus: "two"}},
	{key: "End"},
	{expect: {value: "three", focus: "three"}},
	{click: "one"},
	{expect: value: "one"},
]`},
		{"tabs manual activation", `
widget: {kind: "tabs", items: ["one", "two"], default: "one", activation: "manual"}
steps: [
	{key: "ArrowRight"},
	{expect: {value: "one", focus: "two"}},
	{key: "Enter"},
	{expect: value: "two"},
]`},
		{"accordion multiple", `
widget: {kind: "accordion", items: ["x", "y"], multiple: true}
steps: [
	{click: "x"},
	{click: "y"},
	{expect: {value: ["x", "y"], open: true, focus: "y"}},
	{click: "x"},
	{expect: value: "y"},
]`},
		{"accordion single", `
widget: {kind: "accordion", items: ["x", "y"], default: "x"}
steps: [
	{click: "y"},
	{expect: value: "y"},
	{click: "y"},
	{expect: value: "y"},
]`},
		{"select keyboard commit", `
widget: {kind: "select", items: ["apple", "banana", "cherry"], placeholder: "Pick"}
steps: [
	{click: "trigger"},
	{expect: {open: true, sessions: 2}},
	{key: "ArrowDown", repeat: 2},
	{expect: highlighted: "banana"},
	{key: "Enter"},
	{expect: {value: "banana", open: false, focus: "trigger", sessions: 0}},
]`},
		{"select outside press", `
widget: {kind: "select", items: ["apple"], default: "apple"}
steps: [
	{key: "Enter"},
	{expect: open: true},
	{pointer: {action: "down", x: 50, y: 50}},
	{expect: open: true},
	{pointer: {action: "down", x: 150, y: 50}},
	{expect: {open: false, value: "apple"}},
]`},
		{"dialog escape restores focus", `
widget: {kind: "dialog", focusables: ["name", "save"]}
steps: [
	{click: "trigger"},
	{expect: {open: true, focus: "name", scroll_locked: true}},
	{key: "Tab"},
	{expect: focus: "save"},
	{key: "Escape"},
	{expect: {open: false, focus: "trigger", scroll_locked: false}},
]`},
		{"sheet backdrop", `
widget: {kind: "sheet", side: "left", default: true}
steps: [
	{expect: {open: true, attr: {node: "sheet-content", name: "data-side", equals: "left"}}},
	{click: "backdrop"},
	{expect: open: false},
]`},
		{"popover toggle", `
widget: kind: "popover"
steps: [
	{click: "trigger"},
	{expect: open: true},
	{key: "Escape"},
	{expect: {open: false, focus: "trigger"}},
]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assertPassed(t, run(t, nil, tt.src))
		})
	}
}

func TestRun_ReportsFailures(t *testing.T) {
	t.Parallel()

	r := run(t, nil, `
name: "wrong"
widget: kind: "toggle"
steps: [
	{click: ""},
	{expect: {checked: false, value: false}},
	{expect: attr: {node: "nope", name: "x", equals: ""}},
]`)
	if r.Passed() {
		t.Fatal("Passed() = true")
	}
	if r.Name != "wrong" || r.Kind != KindToggle {
		t.Errorf("report = %s/%s", r.Name, r.Kind)
	}
	if n := r.FailureCount(); n != 3 {
		t.Errorf("FailureCount() = %d, want 3", n)
	}
	failed := r.Failed()
	if len(failed) != 2 || failed[0].Index != 1 {
		t.Fatalf("Failed() = %+v", failed)
	}
	if !strings.Contains(failed[1].Failures[0], `node "nope" is not rendered`) {
		t.Errorf("attr failure = %q", failed[1].Failures[0])
	}
	if !r.Steps[0].Handled {
		t.Error("click on a toggle should be handled")
	}
}

func TestRun_ClickTargetErrors(t *testing.T) {
	t.Parallel()

	r := run(t, nil, `
widget: {kind: "tabs", items: ["a"]}
steps: [{click: "b"}]`)
	if r.Passed() || !strings.Contains(r.Steps[0].Failures[0], `unknown tab "b"`) {
		t.Errorf("steps = %+v", r.Steps)
	}
}

func TestRun_UsesConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Slider.Min, cfg.Slider.Max, cfg.Slider.Step = 0, 10, 2
	cfg.OTP.MaxLength, cfg.OTP.Groups = 2, nil
	cfg.Mask.Presets = map[string]string{"plate": "aaa-999"}

	assertPassed(t, run(t, cfg, `
widget: kind: "slider"
steps: [{key: "End"}, {key: "ArrowLeft"}, {expect: value: 8}]`))
	assertPassed(t, run(t, cfg, `
widget: kind: "otp"
steps: [{paste: "123"}, {expect: {value: "12", complete: true}}]`))
	assertPassed(t, run(t, cfg, `
widget: {kind: "mask", preset: "plate"}
steps: [{type: "abc123"}, {expect: value: "abc-123"}]`))
}

func TestRun_MountErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unknown preset", `widget: {kind: "mask", preset: "iban"}, steps: [{type: "1"}]`},
		{"bad pattern", `widget: {kind: "mask", pattern: "A-99"}, steps: [{type: "1"}]`},
		{"otp groups", `widget: {kind: "otp", max_length: 4, groups: [3]}, steps: [{paste: "1"}]`},
		{"slider range", `widget: {kind: "slider", min: 5, max: 5}, steps: [{key: "Home"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Parse([]byte(tt.src), "s.cue")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := NewRunner(nil, nil).Run(context.Background(), s); err == nil {
				t.Error("Run() error = nil")
			}
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	s, err := Parse([]byte(`widget: kind: "dialog", steps: [{click: "trigger"}]`), "s.cue")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := NewRunner(nil, nil).Run(ctx, s)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if report == nil || len(report.Steps) != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestLeaks(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	if got := leaks(doc); len(got) != 0 {
		t.Fatalf("leaks() on a fresh document = %v", got)
	}
	doc.Listen("stray", host.Handlers{})
	doc.LockScroll("stray")
	doc.PushLayer("stray-layer")
	got := leaks(doc)
	if len(got) != 3 {
		t.Fatalf("leaks() = %v, want 3 entries", got)
	}
	if !strings.Contains(got[0], "stray") || !strings.Contains(got[2], "stray-layer") {
		t.Errorf("leaks() = %v", got)
	}
}
