// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"errors"
	"testing"

	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/widget"
)

func newModal(t *testing.T, doc *host.Document, ids ...host.ElementID) *Engine {
	t.Helper()
	content := roving.NewFocusSet()
	for i, id := range ids {
		content.Register(roving.Item{ID: id, Order: i})
	}
	e, err := New(Options{Kind: KindModal, Document: doc, ID: "dialog", Trigger: "open-btn", Content: content})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func assertBaseline(t *testing.T, doc *host.Document) {
	t.Helper()
	if n := doc.SessionCount(); n != 0 {
		t.Errorf("SessionCount() = %d, want 0 (owners %v)", n, doc.SessionOwners())
	}
	if doc.ScrollLocked() || doc.ScrollHolders() != 0 {
		t.Errorf("scroll lock leaked: locked=%v holders=%d", doc.ScrollLocked(), doc.ScrollHolders())
	}
	if top := doc.TopLayer(); top != "" {
		t.Errorf("TopLayer() = %q, want empty", top)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Kind: "floating", Document: host.NewDocument()})
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("New() error = %v, want ErrInvalidKind", err)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, widget.ErrMissingRoot) {
			t.Errorf("recover() = %v, want ErrMissingRoot", r)
		}
	}()
	_, _ = New(Options{Kind: KindModal})
}

func TestModal_OpenFocusesFirstAndEscapeRestores(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	doc.Focus("open-btn")
	e := newModal(t, doc, "name", "email", "save")

	e.TriggerClick()
	if !e.IsOpen() || e.Phase() != PhaseOpen {
		t.Fatalf("after TriggerClick phase = %s", e.Phase())
	}
	if got := doc.ActiveElement(); got != "name" {
		t.Errorf("focus on open = %q, want name", got)
	}
	if !doc.ScrollLocked() || doc.TopLayer() != "dialog" {
		t.Error("modal must lock scroll and render on the top layer")
	}

	doc.Focus("email")
	if !doc.DispatchKey(event.Press(event.KeyEscape)) {
		t.Error("Escape must be consumed by the open overlay")
	}
	if e.IsOpen() {
		t.Fatal("Escape must close the overlay")
	}
	if got := doc.ActiveElement(); got != "open-btn" {
		t.Errorf("focus after Escape = %q, want open-btn", got)
	}
	assertBaseline(t, doc)
}

func TestModal_FocusTrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		from  host.ElementID
		shift bool
		want  host.ElementID
	}{
		{name: "tab on last wraps", from: "c", want: "a"},
		{name: "shift tab on first wraps", from: "a", shift: true, want: "c"},
		{name: "tab in middle", from: "a", want: "b"},
		{name: "shift tab in middle", from: "c", shift: true, want: "b"},
		{name: "focus outside pulls in", from: "elsewhere", want: "a"},
		{name: "shift focus outside pulls in", from: "elsewhere", shift: true, want: "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := host.NewDocument()
			e := newModal(t, doc, "a", "b", "c")
			e.Show(ReasonTrigger)
			doc.Focus(tt.from)

			ev := event.Press(event.KeyTab)
			if tt.shift {
				ev = event.Press(event.KeyTab, event.ModShift)
			}
			doc.DispatchKey(ev)
			if got := doc.ActiveElement(); got != tt.want {
				t.Errorf("focus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModal_FocusTrapFollowsRegistration(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	e := newModal(t, doc, "a", "b")
	e.Show(ReasonTrigger)
	if _, last := e.Session().Bounds(); last != "b" {
		t.Fatalf("last = %q, want b", last)
	}

	late := e.Content().Register(roving.Item{ID: "c", Order: 5})
	doc.Focus("b")
	doc.DispatchKey(event.Press(event.KeyTab))
	if got := doc.ActiveElement(); got != "c" {
		t.Errorf("focus = %q, want c after c registered", got)
	}
	late.SetDisabled(true)
	doc.Focus("b")
	doc.DispatchKey(event.Press(event.KeyTab))
	if got := doc.ActiveElement(); got != "a" {
		t.Errorf("focus = %q, want a once c is disabled", got)
	}
}

func TestModal_EmptyContentFocusesContainer(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	e := newModal(t, doc)
	e.Show(ReasonTrigger)
	if got := doc.ActiveElement(); got != "dialog" {
		t.Errorf("focus = %q, want the dialog container", got)
	}
	doc.DispatchKey(event.Press(event.KeyTab))
	if got := doc.ActiveElement(); got != "dialog" {
		t.Errorf("Tab moved focus to %q", got)
	}
}

func TestModal_BackdropVersusOutside(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	modal := newModal(t, doc, "a")
	modal.Show(ReasonTrigger)

	doc.DispatchPointerDown(event.At(500, 500))
	if !modal.IsOpen() {
		t.Fatal("modal overlays ignore outside presses")
	}
	modal.BackdropClick()
	if modal.IsOpen() {
		t.Fatal("backdrop click must close a modal")
	}

	anchored, err := New(Options{Kind: KindAnchored, Document: doc, DefaultOpen: true,
		Bounds: func() []event.Rect { return []event.Rect{{X: 0, Y: 0, W: 10, H: 10}} }})
	if err != nil {
		t.Fatal(err)
	}
	anchored.BackdropClick()
	if !anchored.IsOpen() {
		t.Fatal("anchored overlays have no backdrop")
	}
	doc.DispatchPointerDown(event.At(5, 5))
	if !anchored.IsOpen() {
		t.Fatal("press inside the bounds must not close")
	}
	doc.DispatchPointerDown(event.At(50, 5))
	if anchored.IsOpen() {
		t.Fatal("press outside the bounds must close")
	}
	assertBaseline(t, doc)
}

func TestAnchored_OutsideCloseKeepsFocus(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	e, err := New(Options{Kind: KindAnchored, Document: doc, Trigger: "trigger"})
	if err != nil {
		t.Fatal(err)
	}
	e.TriggerClick()
	doc.Focus("search")
	doc.DispatchPointerDown(event.At(1, 1))
	if e.IsOpen() {
		t.Fatal("outside press must close")
	}
	if got := doc.ActiveElement(); got != "search" {
		t.Errorf("focus = %q, outside close must not restore focus", got)
	}
	if e.Layer() != 0 || doc.ScrollLocked() {
		t.Error("anchored overlays take no layer or scroll lock")
	}

	e.TriggerClick()
	e.TriggerClick()
	if e.IsOpen() {
		t.Error("TriggerClick toggles anchored overlays")
	}
}

func TestTriggerKeys(t *testing.T) {
	t.Parallel()

	for _, k := range []event.Key{event.KeyEnter, event.KeySpace, event.KeyArrowDown} {
		doc := host.NewDocument()
		e, _ := New(Options{Kind: KindAnchored, Document: doc})
		if !e.HandleTriggerKey(event.Press(k)) || !e.IsOpen() {
			t.Errorf("%q must open the overlay", k)
		}
	}
	doc := host.NewDocument()
	e, _ := New(Options{Kind: KindAnchored, Document: doc})
	if e.HandleTriggerKey(event.Char('x')) || e.IsOpen() {
		t.Error("printable keys must not open the overlay")
	}
}

func TestHover(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	doc.Focus("info")
	e, err := New(Options{Kind: KindHover, Document: doc})
	if err != nil {
		t.Fatal(err)
	}
	e.PointerEnter()
	if !e.IsOpen() {
		t.Fatal("pointer enter must open a hover overlay")
	}
	e.PointerLeave()
	if e.IsOpen() {
		t.Fatal("pointer leave must close a hover overlay")
	}
	e.TriggerFocus()
	doc.DispatchKey(event.Press(event.KeyEscape))
	if e.IsOpen() {
		t.Fatal("Escape closes hover overlays too")
	}
	e.TriggerFocus()
	e.TriggerBlur()
	if e.IsOpen() {
		t.Fatal("blur must close a hover overlay")
	}
	e.BackdropClick()
	assertBaseline(t, doc)
}

func TestControlled_RejectedClose(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	open := true
	var requests []bool
	e, err := New(Options{
		Kind:         KindModal,
		Document:     doc,
		Trigger:      "t",
		Open:         &open,
		OnOpenChange: func(v bool) { requests = append(requests, v) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Session() == nil {
		t.Fatal("a controlled engine opened by its caller needs a session")
	}

	doc.DispatchKey(event.Press(event.KeyEscape))
	if !e.IsOpen() || e.Session() == nil {
		t.Fatal("caller has not applied the close yet")
	}
	if len(requests) != 1 || requests[0] {
		t.Fatalf("requests = %v, want [false]", requests)
	}
	if err := e.Sync(&open); err != nil {
		t.Fatal(err)
	}
	if !e.IsOpen() {
		t.Fatal("caller rejected the close")
	}

	open = false
	doc.DispatchKey(event.Press(event.KeyEscape))
	if err := e.Sync(&open); err != nil {
		t.Fatal(err)
	}
	if e.IsOpen() {
		t.Fatal("caller accepted the close")
	}
	if got := doc.ActiveElement(); got != "t" {
		t.Errorf("focus = %q, want t", got)
	}
	if err := e.Sync(nil); !errors.Is(err, cell.ErrOwnershipSwitch) {
		t.Errorf("Sync(nil) error = %v, want ErrOwnershipSwitch", err)
	}
	assertBaseline(t, doc)
}

func TestRapidToggleLeavesNoLeaks(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	a := newModal(t, doc, "a1")
	b, _ := New(Options{Kind: KindModal, Document: doc, ID: "sheet"})
	pop, _ := New(Options{Kind: KindAnchored, Document: doc})

	for i := range 50 {
		a.Toggle(ReasonTrigger)
		if i%3 == 0 {
			b.Toggle(ReasonTrigger)
		}
		pop.TriggerClick()
	}
	if a.IsOpen() || pop.IsOpen() {
		t.Fatal("an even number of toggles must end closed")
	}
	// 17 toggles leave the sheet open.
	if !b.IsOpen() {
		t.Fatal("sheet must be open after an odd number of toggles")
	}
	if !doc.ScrollLocked() || doc.ScrollHolders() != 1 {
		t.Errorf("open sheet must still hold the scroll lock")
	}
	b.Hide(ReasonProgrammatic)
	if a.Opened() != 25 {
		t.Errorf("Opened() = %d, want 25", a.Opened())
	}
	assertBaseline(t, doc)
}

func TestNestedModalsKeepScrollLock(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	outer := newModal(t, doc, "x")
	inner, _ := New(Options{Kind: KindModal, Document: doc, ID: "confirm"})

	outer.Show(ReasonTrigger)
	inner.Show(ReasonTrigger)
	if doc.TopLayer() != "confirm" || inner.Layer() <= outer.Layer() {
		t.Fatal("the newest modal renders on top")
	}

	doc.DispatchKey(event.Press(event.KeyEscape))
	if inner.IsOpen() || !outer.IsOpen() {
		t.Fatal("Escape closes only the topmost overlay")
	}
	if !doc.ScrollLocked() {
		t.Fatal("outer dialog still holds the scroll lock")
	}
	doc.DispatchKey(event.Press(event.KeyEscape))
	assertBaseline(t, doc)
}

func TestAnimatedPhases(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	e, _ := New(Options{Kind: KindAnchored, Document: doc, Animated: true})
	e.Show(ReasonTrigger)
	if e.Phase() != PhaseOpening {
		t.Fatalf("phase = %s, want opening", e.Phase())
	}
	e.FinishTransition()
	if e.Phase() != PhaseOpen {
		t.Fatalf("phase = %s, want open", e.Phase())
	}
	e.Hide(ReasonTrigger)
	if e.Phase() != PhaseClosing || !e.Phase().Mounted() {
		t.Fatalf("phase = %s, want closing and still mounted", e.Phase())
	}
	if doc.SessionCount() != 0 {
		t.Error("the session ends when closing starts")
	}
	e.FinishTransition()
	if e.Phase() != PhaseClosed || e.Phase().Mounted() {
		t.Fatalf("phase = %s, want closed", e.Phase())
	}
}

func TestDisabledAndUnmount(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	e := newModal(t, doc, "a")
	e.SetDisabled(true)
	e.TriggerClick()
	if e.IsOpen() {
		t.Fatal("disabled overlays never open")
	}
	e.SetDisabled(false)
	e.Show(ReasonTrigger)
	doc.Focus("a")

	e.Unmount()
	e.Unmount()
	if e.IsOpen() || !e.Unmounted() {
		t.Fatal("unmounted overlay reports open")
	}
	if got := doc.ActiveElement(); got != "a" {
		t.Errorf("Unmount moved focus to %q", got)
	}
	e.Show(ReasonTrigger)
	assertBaseline(t, doc)
}
