// SPDX-License-Identifier: MPL-2.0

package popover

import (
	"errors"
	"testing"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
)

func TestPopover_Options(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	if _, err := New(Options{Document: doc, Align: "middle"}); !errors.Is(err, ErrInvalidAlign) {
		t.Errorf("New() error = %v, want ErrInvalidAlign", err)
	}

	p, err := New(Options{Document: doc})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Align() != AlignCenter || p.SideOffset() != DefaultSideOffset {
		t.Errorf("defaults = %s/%d", p.Align(), p.SideOffset())
	}

	zero := 0
	p, err = New(Options{Document: doc, Align: AlignEnd, SideOffset: &zero})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p.TriggerClick()
	content, ok := aria.Find(p.Nodes(), string(p.ContentID()))
	if !ok || content.Attr("data-align") != "end" || content.Attr("data-side-offset") != "0" {
		t.Errorf("content = %v", content)
	}
}

func TestPopover_Dismissal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dismiss   func(*Popover, *host.Document)
		wantFocus host.ElementID
	}{
		{"outside press keeps focus", func(_ *Popover, doc *host.Document) { doc.DispatchPointerDown(event.At(300, 300)) }, "search"},
		{"escape restores trigger", func(_ *Popover, doc *host.Document) { doc.DispatchKey(event.Press(event.KeyEscape)) }, "pop-trigger"},
		{"trigger toggles", func(p *Popover, _ *host.Document) { p.TriggerClick() }, "pop-trigger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := host.NewDocument()
			p, err := New(Options{
				Document: doc,
				ID:       "pop",
				Bounds:   func() []event.Rect { return []event.Rect{{X: 0, Y: 0, W: 50, H: 50}} },
			})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			p.TriggerClick()
			doc.DispatchPointerDown(event.At(10, 10))
			if !p.IsOpen() {
				t.Fatal("press inside must keep the popover open")
			}
			doc.Focus("search")

			tt.dismiss(p, doc)
			if p.IsOpen() {
				t.Fatal("popover still open")
			}
			if got := doc.ActiveElement(); got != tt.wantFocus {
				t.Errorf("focus = %q, want %q", got, tt.wantFocus)
			}
			if doc.SessionCount() != 0 || doc.ScrollLocked() {
				t.Error("popover leaked a session or scroll lock")
			}
		})
	}
}

func TestTooltip(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	tip, err := NewTooltip(TooltipOptions{Document: doc, ID: "hint"})
	if err != nil {
		t.Fatalf("NewTooltip() error = %v", err)
	}

	trigger := tip.Nodes()[0]
	if trigger.Has(aria.DescribedBy) {
		t.Error("closed tooltip must not describe its trigger")
	}

	tip.PointerEnter()
	nodes := tip.Nodes()
	if len(nodes) != 2 || nodes[0].Attr(aria.DescribedBy) != string(tip.ContentID()) {
		t.Fatalf("open nodes = %v", nodes)
	}
	if nodes[1].Role != aria.RoleTooltip || nodes[1].Attr("data-side") != "top" {
		t.Errorf("tooltip node = %s", nodes[1])
	}
	tip.PointerLeave()
	if tip.IsOpen() {
		t.Error("PointerLeave must close")
	}

	tip.Focus()
	doc.DispatchKey(event.Press(event.KeyEscape))
	if tip.IsOpen() {
		t.Error("Escape must close the tooltip")
	}
	tip.Focus()
	tip.Blur()
	if tip.IsOpen() || doc.SessionCount() != 0 {
		t.Errorf("after Blur open=%v sessions=%d", tip.IsOpen(), doc.SessionCount())
	}
}
