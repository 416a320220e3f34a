// SPDX-License-Identifier: MPL-2.0

// Package popover implements non-modal floating content: a Popover toggled by
// its trigger and dismissed by outside presses, and a Tooltip that follows
// pointer hover and trigger focus.
package popover

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/overlay"
	"github.com/invowk/widgetkit/pkg/widget"
)

// DefaultSideOffset is the gap between trigger and content when none is set.
const DefaultSideOffset = 4

const (
	AlignCenter Align = "center"
	AlignStart  Align = "start"
	AlignEnd    Align = "end"
)

// ErrInvalidAlign is the sentinel error wrapped by InvalidAlignError.
var ErrInvalidAlign = errors.New("invalid alignment")

type (
	// Align positions the content along the trigger edge.
	Align string

	// InvalidAlignError is returned when an Align value is not recognized.
	// It wraps ErrInvalidAlign for errors.Is() compatibility.
	InvalidAlignError struct {
		Value Align
	}

	// Options configures a Popover.
	Options struct {
		Document     *host.Document
		ID           host.ElementID
		Open         *bool
		DefaultOpen  bool
		OnOpenChange func(bool)
		// Align defaults to AlignCenter.
		Align Align
		// SideOffset nil means DefaultSideOffset.
		SideOffset *int
		// Bounds returns the trigger and content rectangles.
		Bounds   func() []event.Rect
		Disabled bool
		Strict   bool
		Logger   *log.Logger
	}

	// Popover is an anchored overlay bound to a trigger button.
	Popover struct {
		doc     *host.Document
		id      host.ElementID
		trigger host.ElementID
		engine  *overlay.Engine
		align   Align
		offset  int
	}
)

// IsValid returns whether the Align is one of the defined values.
// The zero value is valid and means AlignCenter.
func (a Align) IsValid() (bool, []error) {
	switch a {
	case "", AlignCenter, AlignStart, AlignEnd:
		return true, nil
	default:
		return false, []error{&InvalidAlignError{Value: a}}
	}
}

// Error implements the error interface for InvalidAlignError.
func (e *InvalidAlignError) Error() string {
	return fmt.Sprintf("invalid alignment %q (valid: center, start, end)", e.Value)
}

// Unwrap returns ErrInvalidAlign for errors.Is() compatibility.
func (e *InvalidAlignError) Unwrap() error { return ErrInvalidAlign }

// New creates a Popover. It panics when opts.Document is nil.
func New(opts Options) (*Popover, error) {
	widget.MustRoot(opts.Document, "popover.Popover", "host.Document")
	if ok, errs := opts.Align.IsValid(); !ok {
		return nil, errs[0]
	}
	p := &Popover{
		doc:    opts.Document,
		id:     opts.ID,
		align:  opts.Align,
		offset: DefaultSideOffset,
	}
	if p.align == "" {
		p.align = AlignCenter
	}
	if opts.SideOffset != nil {
		p.offset = *opts.SideOffset
	}
	if p.id == "" {
		p.id = p.doc.NewID("popover")
	}
	p.trigger = p.id + "-trigger"

	engine, err := overlay.New(overlay.Options{
		Kind:         overlay.KindAnchored,
		Document:     p.doc,
		ID:           p.id + "-content",
		Trigger:      p.trigger,
		Bounds:       opts.Bounds,
		Open:         opts.Open,
		DefaultOpen:  opts.DefaultOpen,
		OnOpenChange: opts.OnOpenChange,
		Disabled:     opts.Disabled,
		Strict:       opts.Strict,
		Logger:       opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	p.engine = engine
	return p, nil
}

// TriggerID returns the trigger button id.
func (p *Popover) TriggerID() host.ElementID { return p.trigger }

// ContentID returns the content element id.
func (p *Popover) ContentID() host.ElementID { return p.engine.ID() }

// Overlay returns the engine driving the popover.
func (p *Popover) Overlay() *overlay.Engine { return p.engine }

// Align returns the content alignment.
func (p *Popover) Align() Align { return p.align }

// SideOffset returns the gap between trigger and content.
func (p *Popover) SideOffset() int { return p.offset }

// IsOpen reports the effective open state.
func (p *Popover) IsOpen() bool { return p.engine.IsOpen() }

// Sync re-supplies the caller-owned open state.
func (p *Popover) Sync(open *bool) error { return p.engine.Sync(open) }

// TriggerClick toggles the popover.
func (p *Popover) TriggerClick() { p.engine.TriggerClick() }

// Close hides the popover.
func (p *Popover) Close() { p.engine.Hide(overlay.ReasonProgrammatic) }

// Unmount releases the popover.
func (p *Popover) Unmount() { p.engine.Unmount() }

// Nodes renders the trigger and, while open, the content.
func (p *Popover) Nodes() []aria.Node {
	open := p.IsOpen()
	nodes := []aria.Node{
		aria.NewNode(string(p.trigger), aria.RoleButton).
			Set(aria.HasPopup, string(aria.RoleDialog)).
			Set(aria.Expanded, aria.Bool(open)).
			Set(aria.Controls, string(p.ContentID())).
			Set(aria.DataState, p.engine.State()),
	}
	if !open {
		return nodes
	}
	return append(nodes, aria.NewNode(string(p.ContentID()), aria.RoleDialog).
		Set(aria.DataState, p.engine.State()).
		Set("data-align", string(p.align)).
		Set("data-side-offset", strconv.Itoa(p.offset)))
}
