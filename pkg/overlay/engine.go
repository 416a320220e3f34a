// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/widget"
)

type (
	// Options configures an Engine.
	Options struct {
		Kind     Kind
		Document *host.Document
		// ID is the content element id. Empty mints one from the document.
		ID host.ElementID
		// Trigger is the element focus returns to. Empty uses the element
		// focused when the overlay opens.
		Trigger host.ElementID
		// Content holds the focusable descendants used by the focus trap and
		// initial focus of modal overlays.
		Content *roving.FocusSet
		// Bounds returns the rectangles counting as inside an anchored overlay,
		// normally the content and the trigger.
		Bounds func() []event.Rect

		Open         *bool
		DefaultOpen  bool
		OnOpenChange func(bool)

		// Animated keeps the opening and closing phases until FinishTransition.
		Animated bool
		Disabled bool
		Strict   bool
		Logger   *log.Logger
	}

	// Engine drives one overlay instance.
	Engine struct {
		kind     Kind
		doc      *host.Document
		id       host.ElementID
		trigger  host.ElementID
		content  *roving.FocusSet
		bounds   func() []event.Rect
		open     *cell.Cell[bool]
		phase    Phase
		animated bool
		disabled bool
		pending  Reason
		session  *Session
		opened   int
		logger   *log.Logger

		unmounted bool
	}
)

// New creates an Engine. It panics when opts.Document is nil and returns an
// error for an unknown Kind.
func New(opts Options) (*Engine, error) {
	widget.MustRoot(opts.Document, "overlay.Engine", "host.Document")
	if ok, errs := opts.Kind.IsValid(); !ok {
		return nil, errs[0]
	}

	e := &Engine{
		kind:     opts.Kind,
		doc:      opts.Document,
		id:       opts.ID,
		trigger:  opts.Trigger,
		content:  opts.Content,
		bounds:   opts.Bounds,
		phase:    PhaseClosed,
		animated: opts.Animated,
		disabled: opts.Disabled,
		logger:   opts.Logger,
	}
	if e.id == "" {
		e.id = e.doc.NewID(string(e.kind))
	}
	if e.content == nil {
		e.content = roving.NewFocusSet()
	}
	if e.logger == nil {
		e.logger = e.doc.Logger()
	}
	e.open = cell.New(cell.Options[bool]{
		Value:    opts.Open,
		Default:  opts.DefaultOpen,
		OnChange: opts.OnOpenChange,
		Strict:   opts.Strict,
	})
	e.apply()
	return e, nil
}

// ID returns the content element id.
func (e *Engine) ID() host.ElementID { return e.id }

// Kind returns the overlay kind.
func (e *Engine) Kind() Kind { return e.kind }

// Document returns the host document the overlay is attached to.
func (e *Engine) Document() *host.Document { return e.doc }

// Content returns the focusable descendants of the overlay.
func (e *Engine) Content() *roving.FocusSet { return e.content }

// IsOpen reports the effective open state.
func (e *Engine) IsOpen() bool { return !e.unmounted && e.open.Get() }

// Controlled reports whether the caller owns the open state.
func (e *Engine) Controlled() bool { return e.open.Controlled() }

// Phase returns the lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// State returns the data-state value: "open" or "closed".
func (e *Engine) State() string {
	if e.IsOpen() {
		return "open"
	}
	return "closed"
}

// Session returns the live session, or nil while closed.
func (e *Engine) Session() *Session { return e.session }

// Layer returns the z-order of a modal overlay while open, or 0.
func (e *Engine) Layer() int { return e.doc.Layer(e.id) }

// Opened counts how many sessions the engine has started.
func (e *Engine) Opened() int { return e.opened }

// SetTrigger changes the element focus returns to on later opens.
func (e *Engine) SetTrigger(id host.ElementID) { e.trigger = id }

// Trigger returns the configured trigger element.
func (e *Engine) Trigger() host.ElementID { return e.trigger }

// SetDisabled enables or disables every transition.
func (e *Engine) SetDisabled(disabled bool) { e.disabled = disabled }

// Disabled reports whether transitions are suppressed.
func (e *Engine) Disabled() bool { return e.disabled }

// SetBounds replaces the outside-press bounds callback.
func (e *Engine) SetBounds(fn func() []event.Rect) { e.bounds = fn }

// Show requests the open state.
func (e *Engine) Show(reason Reason) { e.request(true, reason) }

// Hide requests the closed state.
func (e *Engine) Hide(reason Reason) { e.request(false, reason) }

// Toggle requests the opposite of the current state.
func (e *Engine) Toggle(reason Reason) { e.request(!e.IsOpen(), reason) }

// Sync re-supplies the caller-owned open state and applies it.
func (e *Engine) Sync(open *bool) error {
	if err := e.open.Sync(open); err != nil {
		return err
	}
	if !e.unmounted {
		e.apply()
	}
	return nil
}

// FinishTransition ends an opening or closing phase.
func (e *Engine) FinishTransition() {
	switch e.phase {
	case PhaseOpening:
		e.setPhase(PhaseOpen)
	case PhaseClosing:
		e.setPhase(PhaseClosed)
	}
}

// TriggerClick handles a click on the trigger: modal overlays open, the others toggle.
func (e *Engine) TriggerClick() {
	if e.kind == KindModal {
		e.Show(ReasonTrigger)
		return
	}
	e.Toggle(ReasonTrigger)
}

// HandleTriggerKey opens the overlay on Enter, Space or ArrowDown pressed on
// the trigger. It reports whether the key was handled.
func (e *Engine) HandleTriggerKey(ev event.KeyEvent) bool {
	switch ev.Key {
	case event.KeyEnter, event.KeySpace, event.KeyArrowDown:
		if e.disabled {
			return false
		}
		e.Show(ReasonTrigger)
		return true
	default:
		return false
	}
}

// BackdropClick closes a modal overlay. Other kinds have no backdrop.
func (e *Engine) BackdropClick() {
	if e.kind != KindModal {
		return
	}
	e.Hide(ReasonBackdrop)
}

// PointerEnter opens a hover overlay.
func (e *Engine) PointerEnter() {
	if e.kind == KindHover {
		e.Show(ReasonHover)
	}
}

// PointerLeave closes a hover overlay.
func (e *Engine) PointerLeave() {
	if e.kind == KindHover {
		e.Hide(ReasonHover)
	}
}

// TriggerFocus opens a hover overlay when its trigger gains focus.
func (e *Engine) TriggerFocus() {
	if e.kind == KindHover {
		e.Show(ReasonHover)
	}
}

// TriggerBlur closes a hover overlay when its trigger loses focus.
func (e *Engine) TriggerBlur() {
	if e.kind == KindHover {
		e.Hide(ReasonHover)
	}
}

// Unmount releases the live session without restoring focus. Every later
// call on the engine is ignored.
func (e *Engine) Unmount() {
	if e.unmounted {
		return
	}
	if e.session != nil {
		e.release()
	}
	e.unmounted = true
	e.setPhase(PhaseClosed)
	e.logger.Debug("overlay unmounted", "id", e.id)
}

// Unmounted reports whether Unmount has run.
func (e *Engine) Unmounted() bool { return e.unmounted }

func (e *Engine) request(open bool, reason Reason) {
	if e.disabled || e.unmounted || open == e.open.Get() {
		return
	}
	e.pending = reason
	e.open.Request(open)
	if !e.open.Controlled() {
		e.apply()
	}
}

// apply brings the session in line with the effective open state.
func (e *Engine) apply() {
	reason := e.pending
	if reason == "" {
		reason = ReasonProgrammatic
	}
	e.pending = ""

	switch open := e.open.Get(); {
	case open && e.session == nil:
		e.begin()
	case !open && e.session != nil:
		e.end(reason)
	}
}

func (e *Engine) begin() {
	trigger := e.trigger
	if trigger == "" {
		trigger = e.doc.ActiveElement()
	}
	s := &Session{engine: e, trigger: trigger}
	s.listener = e.doc.Listen(string(e.id), host.Handlers{
		Key:         s.handleKey,
		PointerDown: s.handlePointerDown,
	})
	if e.kind == KindModal {
		s.scroll = e.doc.LockScroll(string(e.id))
		e.doc.PushLayer(e.id)
	}
	s.refresh()
	e.session = s
	e.opened++

	if e.animated {
		e.setPhase(PhaseOpening)
	} else {
		e.setPhase(PhaseOpen)
	}
	e.logger.Debug("overlay opened", "id", e.id, "kind", e.kind, "trigger", trigger)

	if e.kind == KindModal {
		if s.first != "" {
			e.doc.Focus(s.first)
		} else {
			e.doc.Focus(e.id)
		}
	}
}

func (e *Engine) end(reason Reason) {
	trigger := e.session.trigger
	e.release()
	if e.animated {
		e.setPhase(PhaseClosing)
	} else {
		e.setPhase(PhaseClosed)
	}
	e.logger.Debug("overlay closed", "id", e.id, "kind", e.kind, "reason", reason)
	if reason.restoresFocus(e.kind) && trigger != "" {
		e.doc.Focus(trigger)
	}
}

func (e *Engine) release() {
	e.session.release()
	e.session = nil
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	e.logger.Debug("overlay phase", "id", e.id, "from", e.phase, "to", p)
	e.phase = p
}
