// SPDX-License-Identifier: MPL-2.0

package popover

import (
	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/overlay"
	"github.com/invowk/widgetkit/pkg/widget"
)

type (
	// TooltipOptions configures a Tooltip.
	TooltipOptions struct {
		Document     *host.Document
		ID           host.ElementID
		Open         *bool
		DefaultOpen  bool
		OnOpenChange func(bool)
		// Side defaults to "top".
		Side     string
		Disabled bool
		Strict   bool
		Logger   *log.Logger
	}

	// Tooltip is a hover overlay describing its trigger.
	Tooltip struct {
		id      host.ElementID
		trigger host.ElementID
		side    string
		engine  *overlay.Engine
	}
)

// NewTooltip creates a Tooltip. It panics when opts.Document is nil.
func NewTooltip(opts TooltipOptions) (*Tooltip, error) {
	widget.MustRoot(opts.Document, "popover.Tooltip", "host.Document")
	t := &Tooltip{id: opts.ID, side: opts.Side}
	if t.id == "" {
		t.id = opts.Document.NewID("tooltip")
	}
	if t.side == "" {
		t.side = "top"
	}
	t.trigger = t.id + "-trigger"
	engine, err := overlay.New(overlay.Options{
		Kind:         overlay.KindHover,
		Document:     opts.Document,
		ID:           t.id + "-content",
		Trigger:      t.trigger,
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
	t.engine = engine
	return t, nil
}

// TriggerID returns the described element id.
func (t *Tooltip) TriggerID() host.ElementID { return t.trigger }

// ContentID returns the tooltip element id.
func (t *Tooltip) ContentID() host.ElementID { return t.engine.ID() }

// Overlay returns the engine driving the tooltip.
func (t *Tooltip) Overlay() *overlay.Engine { return t.engine }

// IsOpen reports the effective open state.
func (t *Tooltip) IsOpen() bool { return t.engine.IsOpen() }

// Sync re-supplies the caller-owned open state.
func (t *Tooltip) Sync(open *bool) error { return t.engine.Sync(open) }

func (t *Tooltip) PointerEnter() { t.engine.PointerEnter() }
func (t *Tooltip) PointerLeave() { t.engine.PointerLeave() }
func (t *Tooltip) Focus()        { t.engine.TriggerFocus() }
func (t *Tooltip) Blur()         { t.engine.TriggerBlur() }

// Unmount releases the tooltip.
func (t *Tooltip) Unmount() { t.engine.Unmount() }

// Nodes renders the trigger and, while open, the tooltip. The trigger is
// described by the tooltip only while it is shown.
func (t *Tooltip) Nodes() []aria.Node {
	open := t.IsOpen()
	trigger := aria.NewNode(string(t.trigger), aria.RoleNone).
		Set(aria.DataState, t.engine.State()).
		SetIf(open, aria.DescribedBy, string(t.ContentID()))
	if !open {
		return []aria.Node{trigger}
	}
	return []aria.Node{
		trigger,
		aria.NewNode(string(t.ContentID()), aria.RoleTooltip).
			Set(aria.DataState, t.engine.State()).
			Set("data-side", t.side),
	}
}
