// SPDX-License-Identifier: MPL-2.0

// Package dialog composes modal overlays: a Dialog centred over a backdrop and
// a Sheet sliding in from one edge of the viewport. Both trap focus, lock body
// scrolling while open and return focus to their trigger when dismissed.
package dialog

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/overlay"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/widget"
)

// closeOrder places the close button after every content focusable.
const closeOrder = 1 << 30

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// ErrInvalidSide is the sentinel error wrapped by InvalidSideError.
var ErrInvalidSide = errors.New("invalid sheet side")

type (
	// Options configures a Dialog.
	Options struct {
		Document     *host.Document
		ID           host.ElementID
		Open         *bool
		DefaultOpen  bool
		OnOpenChange func(bool)
		// HideClose omits the built-in close button.
		HideClose bool
		Animated  bool
		Strict    bool
		Logger    *log.Logger
	}

	// Dialog is a modal overlay with a trigger, title, description and close button.
	Dialog struct {
		doc       *host.Document
		id        host.ElementID
		trigger   host.ElementID
		engine    *overlay.Engine
		content   *roving.FocusSet
		hideClose bool
		logger    *log.Logger
	}

	// Side is the viewport edge a Sheet is attached to.
	Side string

	// InvalidSideError is returned when a Side value is not recognized.
	// It wraps ErrInvalidSide for errors.Is() compatibility.
	InvalidSideError struct {
		Value Side
	}

	// SheetOptions configures a Sheet.
	SheetOptions struct {
		Options
		// Side defaults to SideRight.
		Side Side
	}

	// Sheet is a Dialog attached to one viewport edge.
	Sheet struct {
		*Dialog
		side Side
	}
)

// New creates a Dialog. It panics when opts.Document is nil.
func New(opts Options) (*Dialog, error) {
	return build(opts, "dialog")
}

// NewSheet creates a Sheet. It panics when opts.Document is nil and returns an
// error for an unknown Side.
func NewSheet(opts SheetOptions) (*Sheet, error) {
	side := opts.Side
	if side == "" {
		side = SideRight
	}
	if ok, errs := side.IsValid(); !ok {
		return nil, errs[0]
	}
	d, err := build(opts.Options, "sheet")
	if err != nil {
		return nil, err
	}
	return &Sheet{Dialog: d, side: side}, nil
}

func build(opts Options, prefix string) (*Dialog, error) {
	widget.MustRoot(opts.Document, "dialog.Dialog", "host.Document")
	d := &Dialog{
		doc:       opts.Document,
		id:        opts.ID,
		content:   roving.NewFocusSet(),
		hideClose: opts.HideClose,
		logger:    opts.Logger,
	}
	if d.id == "" {
		d.id = d.doc.NewID(prefix)
	}
	if d.logger == nil {
		d.logger = d.doc.Logger()
	}
	d.trigger = d.id + "-trigger"
	if !d.hideClose {
		d.content.Register(roving.Item{ID: d.CloseID(), Order: closeOrder})
	}

	engine, err := overlay.New(overlay.Options{
		Kind:         overlay.KindModal,
		Document:     d.doc,
		ID:           d.id + "-content",
		Trigger:      d.trigger,
		Content:      d.content,
		Open:         opts.Open,
		DefaultOpen:  opts.DefaultOpen,
		OnOpenChange: opts.OnOpenChange,
		Animated:     opts.Animated,
		Strict:       opts.Strict,
		Logger:       d.logger,
	})
	if err != nil {
		return nil, err
	}
	d.engine = engine
	return d, nil
}

// ID returns the root id.
func (d *Dialog) ID() host.ElementID { return d.id }

// TriggerID returns the trigger button id.
func (d *Dialog) TriggerID() host.ElementID { return d.trigger }

// ContentID returns the dialog element id.
func (d *Dialog) ContentID() host.ElementID { return d.engine.ID() }

// TitleID returns the id referenced by aria-labelledby.
func (d *Dialog) TitleID() host.ElementID { return d.id + "-title" }

// DescriptionID returns the id referenced by aria-describedby.
func (d *Dialog) DescriptionID() host.ElementID { return d.id + "-description" }

// CloseID returns the built-in close button id.
func (d *Dialog) CloseID() host.ElementID { return d.id + "-close" }

// BackdropID returns the backdrop element id.
func (d *Dialog) BackdropID() host.ElementID { return d.id + "-overlay" }

// Overlay returns the engine driving the dialog.
func (d *Dialog) Overlay() *overlay.Engine { return d.engine }

// AddFocusable registers a focusable descendant of the dialog content.
func (d *Dialog) AddFocusable(id host.ElementID, order int) *roving.Registration {
	return d.content.Register(roving.Item{ID: id, Order: order})
}

// IsOpen reports the effective open state.
func (d *Dialog) IsOpen() bool { return d.engine.IsOpen() }

// Sync re-supplies the caller-owned open state.
func (d *Dialog) Sync(open *bool) error { return d.engine.Sync(open) }

// Open requests the open state programmatically.
func (d *Dialog) Open() { d.engine.Show(overlay.ReasonProgrammatic) }

// Close requests the closed state programmatically.
func (d *Dialog) Close() { d.engine.Hide(overlay.ReasonProgrammatic) }

// TriggerClick opens the dialog from its trigger.
func (d *Dialog) TriggerClick() {
	d.doc.Focus(d.trigger)
	d.engine.TriggerClick()
}

// CloseClick closes the dialog from its close button.
func (d *Dialog) CloseClick() { d.engine.Hide(overlay.ReasonCloseButton) }

// BackdropClick closes the dialog from its backdrop.
func (d *Dialog) BackdropClick() { d.engine.BackdropClick() }

// FinishTransition ends an animated opening or closing phase.
func (d *Dialog) FinishTransition() { d.engine.FinishTransition() }

// Unmount releases the dialog without restoring focus.
func (d *Dialog) Unmount() { d.engine.Unmount() }

// Nodes renders the trigger and, while mounted, the backdrop, content and
// close button.
func (d *Dialog) Nodes() []aria.Node {
	return d.nodes(nil)
}

func (d *Dialog) nodes(decorate func(aria.Node) aria.Node) []aria.Node {
	state := d.engine.State()
	nodes := []aria.Node{
		aria.NewNode(string(d.trigger), aria.RoleButton).
			Set(aria.HasPopup, string(aria.RoleDialog)).
			Set(aria.Expanded, aria.Bool(d.IsOpen())).
			Set(aria.Controls, string(d.ContentID())).
			Set(aria.DataState, state),
	}
	if !d.engine.Phase().Mounted() {
		return nodes
	}
	content := aria.NewNode(string(d.ContentID()), aria.RoleDialog).
		Set(aria.Modal, aria.Bool(true)).
		Set(aria.LabelledBy, string(d.TitleID())).
		Set(aria.DescribedBy, string(d.DescriptionID())).
		Set(aria.DataState, state).
		Set(aria.TabIndex, "-1")
	if decorate != nil {
		content = decorate(content)
	}
	nodes = append(nodes,
		aria.NewNode(string(d.BackdropID()), aria.RoleNone).
			Set(aria.DataState, state).
			Set(aria.Hidden, aria.Bool(true)),
		content,
	)
	if !d.hideClose {
		nodes = append(nodes, aria.NewNode(string(d.CloseID()), aria.RoleButton).
			Set("aria-label", "Close"))
	}
	return nodes
}

// IsValid returns whether the Side is one of the defined values.
func (s Side) IsValid() (bool, []error) {
	switch s {
	case SideTop, SideRight, SideBottom, SideLeft:
		return true, nil
	default:
		return false, []error{&InvalidSideError{Value: s}}
	}
}

// Error implements the error interface for InvalidSideError.
func (e *InvalidSideError) Error() string {
	return fmt.Sprintf("invalid side %q (valid: top, right, bottom, left)", e.Value)
}

// Unwrap returns ErrInvalidSide for errors.Is() compatibility.
func (e *InvalidSideError) Unwrap() error { return ErrInvalidSide }

// Side returns the viewport edge.
func (s *Sheet) Side() Side { return s.side }

// Nodes renders the sheet like a Dialog with a data-side attribute on the content.
func (s *Sheet) Nodes() []aria.Node {
	return s.nodes(func(n aria.Node) aria.Node {
		return n.Set("data-side", string(s.side))
	})
}
