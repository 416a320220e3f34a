// SPDX-License-Identifier: MPL-2.0

package indicator

import (
	"testing"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
)

func TestProgress_Clamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in        float64
		wantNow   string
		wantState string
	}{
		{-5, "0", "loading"},
		{42.5, "42.5", "loading"},
		{100, "100", "complete"},
		{250, "100", "complete"},
	}
	for _, tt := range tests {
		p := NewProgress("upload")
		p.Set(tt.in)
		n := p.Node()
		if got := n.Attr(aria.ValueNow); got != tt.wantNow {
			t.Errorf("Set(%v) aria-valuenow = %q, want %q", tt.in, got, tt.wantNow)
		}
		if got := n.Attr(aria.DataState); got != tt.wantState {
			t.Errorf("Set(%v) data-state = %q, want %q", tt.in, got, tt.wantState)
		}
	}
}

func TestProgress_Indeterminate(t *testing.T) {
	t.Parallel()

	p := NewProgress("p")
	n := p.Node()
	if n.Has(aria.ValueNow) || n.Attr(aria.DataState) != "indeterminate" {
		t.Errorf("Node() = %s", n)
	}
	p.Set(30)
	if p.Offset() != 70 {
		t.Errorf("Offset() = %v, want 70", p.Offset())
	}
	p.Clear()
	if _, ok := p.Value(); ok {
		t.Error("Clear() must drop the value")
	}
}

func TestSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sep      Separator
		wantRole aria.Role
		wantOri  string
	}{
		{"decorative", Separator{ID: "s", Decorative: true}, aria.RoleNone, ""},
		{"semantic default", Separator{ID: "s"}, aria.RoleSeparator, "horizontal"},
		{"semantic vertical", Separator{ID: "s", Orientation: event.Vertical}, aria.RoleSeparator, "vertical"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := tt.sep.Node()
			if n.Role != tt.wantRole {
				t.Errorf("Role = %s, want %s", n.Role, tt.wantRole)
			}
			if got := n.Attr(aria.Orientation); got != tt.wantOri {
				t.Errorf("aria-orientation = %q, want %q", got, tt.wantOri)
			}
		})
	}
}
