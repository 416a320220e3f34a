// SPDX-License-Identifier: MPL-2.0

package dialog

import (
	"errors"
	"testing"

	"github.com/invowk/widgetkit/internal/testutil"
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/overlay"
)

func TestDialog_DismissalRestoresFocus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dismiss func(*Dialog, *host.Document)
	}{
		{"escape", func(_ *Dialog, doc *host.Document) { doc.DispatchKey(event.Press(event.KeyEscape)) }},
		{"backdrop", func(d *Dialog, _ *host.Document) { d.BackdropClick() }},
		{"close button", func(d *Dialog, _ *host.Document) { d.CloseClick() }},
		{"programmatic", func(d *Dialog, _ *host.Document) { d.Close() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := host.NewDocument()
			d, err := New(Options{Document: doc, ID: "confirm"})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			d.AddFocusable("confirm-name", 0)
			d.AddFocusable("confirm-save", 1)

			d.TriggerClick()
			if !d.IsOpen() || doc.ActiveElement() != "confirm-name" {
				t.Fatalf("open: IsOpen()=%v focus=%q", d.IsOpen(), doc.ActiveElement())
			}
			if !doc.ScrollLocked() {
				t.Error("open dialog must lock scroll")
			}

			tt.dismiss(d, doc)
			if d.IsOpen() {
				t.Fatal("dialog still open")
			}
			if got := doc.ActiveElement(); got != d.TriggerID() {
				t.Errorf("focus = %q, want %q", got, d.TriggerID())
			}
			testutil.AssertReleased(t, doc)
		})
	}
}

func TestDialog_TabWrapsThroughCloseButton(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	d, err := New(Options{Document: doc, ID: "d"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.AddFocusable("d-ok", 0)
	d.Open()

	steps := []host.ElementID{d.CloseID(), "d-ok", d.CloseID()}
	for i, want := range steps {
		doc.DispatchKey(event.Press(event.KeyTab))
		if got := doc.ActiveElement(); got != want {
			t.Fatalf("Tab #%d focus = %q, want %q", i+1, got, want)
		}
	}
	doc.DispatchKey(event.Press(event.KeyTab, event.ModShift))
	if got := doc.ActiveElement(); got != "d-ok" {
		t.Errorf("Shift+Tab focus = %q, want d-ok", got)
	}
}

func TestDialog_HideCloseFocusesContent(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	d, err := New(Options{Document: doc, ID: "d", HideClose: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.Open()
	if got := doc.ActiveElement(); got != d.ContentID() {
		t.Errorf("focus = %q, want the content element", got)
	}
	if _, ok := aria.Find(d.Nodes(), string(d.CloseID())); ok {
		t.Error("HideClose must omit the close button node")
	}
}

func TestDialog_ControlledRejectsClose(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	open := true
	var requests []bool
	d, err := New(Options{Document: doc, Open: &open, OnOpenChange: func(v bool) { requests = append(requests, v) }})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.BackdropClick()
	if !d.IsOpen() || len(requests) != 1 || requests[0] {
		t.Fatalf("IsOpen()=%v requests=%v", d.IsOpen(), requests)
	}
	open = false
	if err := d.Sync(&open); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	testutil.AssertReleased(t, doc)
}

func TestDialog_Nodes(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	d, err := New(Options{Document: doc, ID: "d", Animated: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if n := len(d.Nodes()); n != 1 {
		t.Fatalf("closed Nodes() = %d, want only the trigger", n)
	}

	d.Open()
	content, ok := aria.Find(d.Nodes(), string(d.ContentID()))
	if !ok {
		t.Fatal("content node missing")
	}
	checks := map[string]string{
		aria.Modal:       "true",
		aria.LabelledBy:  "d-title",
		aria.DescribedBy: "d-description",
		aria.DataState:   "open",
	}
	for attr, want := range checks {
		if got := content.Attr(attr); got != want {
			t.Errorf("%s = %q, want %q", attr, got, want)
		}
	}

	d.Close()
	if d.Overlay().Phase() != overlay.PhaseClosing {
		t.Fatalf("Phase() = %s, want closing", d.Overlay().Phase())
	}
	content, ok = aria.Find(d.Nodes(), string(d.ContentID()))
	if !ok || content.Attr(aria.DataState) != "closed" {
		t.Errorf("closing content = %v (found %v), want data-state closed", content, ok)
	}
	d.FinishTransition()
	if n := len(d.Nodes()); n != 1 {
		t.Errorf("Nodes() after transition = %d, want 1", n)
	}
}

func TestSheet(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	_, err := NewSheet(SheetOptions{Options: Options{Document: doc}, Side: "middle"})
	if !errors.Is(err, ErrInvalidSide) {
		t.Errorf("NewSheet() error = %v, want ErrInvalidSide", err)
	}

	s, err := NewSheet(SheetOptions{Options: Options{Document: doc, ID: "nav"}})
	if err != nil {
		t.Fatalf("NewSheet() error = %v", err)
	}
	if s.Side() != SideRight {
		t.Errorf("Side() = %s, want right", s.Side())
	}
	s.TriggerClick()
	content, ok := aria.Find(s.Nodes(), string(s.ContentID()))
	if !ok || content.Attr("data-side") != "right" {
		t.Errorf("sheet content = %v", content)
	}
	doc.DispatchKey(event.Press(event.KeyEscape))
	testutil.AssertReleased(t, doc)
}

func TestNestedDialogs_EscapeClosesTopmost(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	outer, _ := New(Options{Document: doc, ID: "outer"})
	inner, _ := New(Options{Document: doc, ID: "inner"})

	outer.TriggerClick()
	inner.TriggerClick()
	if doc.TopLayer() != inner.ContentID() {
		t.Fatalf("TopLayer() = %q, want inner", doc.TopLayer())
	}
	doc.DispatchKey(event.Press(event.KeyEscape))
	if inner.IsOpen() || !outer.IsOpen() {
		t.Fatalf("after Escape inner=%v outer=%v", inner.IsOpen(), outer.IsOpen())
	}
	if doc.ActiveElement() != inner.TriggerID() {
		t.Errorf("focus = %q, want inner trigger", doc.ActiveElement())
	}
	doc.DispatchKey(event.Press(event.KeyEscape))
	testutil.AssertReleased(t, doc)
}
