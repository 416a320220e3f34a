// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"fmt"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/dialog"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/popover"
)

type (
	dialogDriver struct {
		base
		d      *dialog.Dialog
		render func() []aria.Node
	}

	popoverDriver struct {
		base
		p *popover.Popover
	}
)

// newDialogDriver mounts a Dialog, or a Sheet for KindSheet. Focusables are
// registered in order as "<id>-<name>".
func newDialogDriver(w Widget, e env) (driver, error) {
	def, _ := w.Default.(bool)
	opts := dialog.Options{
		Document:    e.doc,
		ID:          e.id,
		DefaultOpen: def,
		HideClose:   w.HideClose,
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	}
	drv := &dialogDriver{base: newBase(e.doc)}
	if w.Kind == KindSheet {
		s, err := dialog.NewSheet(dialog.SheetOptions{Options: opts, Side: dialog.Side(w.Side)})
		if err != nil {
			return nil, err
		}
		drv.d, drv.render = s.Dialog, s.Nodes
	} else {
		d, err := dialog.New(opts)
		if err != nil {
			return nil, err
		}
		drv.d, drv.render = d, d.Nodes
	}
	for i, name := range w.Focusables {
		drv.d.AddFocusable(e.child(name), i)
		drv.name(e.child(name), name)
	}
	drv.name(drv.d.TriggerID(), "trigger")
	drv.name(drv.d.ContentID(), "content")
	drv.name(drv.d.CloseID(), "close")
	return drv, nil
}

// click presses "trigger", "close" or "backdrop".
func (d *dialogDriver) click(target string) (bool, error) {
	before := d.d.IsOpen()
	switch target {
	case "trigger":
		d.d.TriggerClick()
	case "close":
		d.d.CloseClick()
	case "backdrop":
		d.d.BackdropClick()
	default:
		return false, fmt.Errorf("dialog click target must be trigger, close or backdrop, got %q", target)
	}
	return d.d.IsOpen() != before, nil
}

func (d *dialogDriver) state() State {
	return d.focus(State{Value: Canonical(d.d.IsOpen()), Open: d.d.IsOpen()})
}

func (d *dialogDriver) nodes() []aria.Node { return d.render() }

func (d *dialogDriver) unmount() { d.d.Unmount() }

func newPopoverDriver(w Widget, e env) (driver, error) {
	def, _ := w.Default.(bool)
	p, err := popover.New(popover.Options{
		Document:    e.doc,
		ID:          e.id,
		DefaultOpen: def,
		Bounds:      func() []event.Rect { return []event.Rect{viewport} },
		Disabled:    w.Disabled,
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, err
	}
	d := &popoverDriver{base: newBase(e.doc), p: p}
	d.name(p.TriggerID(), "trigger")
	d.name(p.ContentID(), "content")
	return d, nil
}

// click presses the trigger, the only clickable part of a popover.
func (d *popoverDriver) click(target string) (bool, error) {
	if target != "trigger" {
		return false, fmt.Errorf("popover click target must be trigger, got %q", target)
	}
	d.doc.Focus(d.p.TriggerID())
	before := d.p.IsOpen()
	d.p.TriggerClick()
	return d.p.IsOpen() != before, nil
}

func (d *popoverDriver) state() State {
	return d.focus(State{Value: Canonical(d.p.IsOpen()), Open: d.p.IsOpen()})
}

func (d *popoverDriver) nodes() []aria.Node { return d.p.Nodes() }

func (d *popoverDriver) unmount() { d.p.Unmount() }
