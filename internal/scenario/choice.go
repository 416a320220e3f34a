// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"fmt"
	"slices"

	"github.com/invowk/widgetkit/pkg/accordion"
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/listbox"
	"github.com/invowk/widgetkit/pkg/tabs"
	"github.com/invowk/widgetkit/pkg/toggle"
)

type (
	binaryDriver struct {
		base
		b *toggle.Binary
	}

	radioDriver struct {
		base
		group  *toggle.RadioGroup
		radios map[string]*toggle.Radio
	}

	tabsDriver struct {
		base
		t    *tabs.Tabs
		tabs map[string]*tabs.Tab
	}

	accordionDriver struct {
		base
		acc   *accordion.Accordion
		items map[string]*accordion.Item
		first host.ElementID
	}

	selectDriver struct {
		base
		s     *listbox.Select
		items map[string]*listbox.Item
	}
)

func newBinaryDriver(w Widget, e env) (driver, error) {
	def, _ := w.Default.(bool)
	opts := toggle.Options{
		ID:       string(e.id),
		Default:  def,
		Disabled: w.Disabled,
		Strict:   e.cfg.StrictOwnership,
		Logger:   e.logger,
	}
	var b *toggle.Binary
	switch w.Kind {
	case KindCheckbox:
		b = toggle.NewCheckbox(opts)
	case KindToggle:
		b = toggle.NewToggle(opts)
	default:
		b = toggle.NewSwitch(opts)
	}
	return &binaryDriver{base: newBase(e.doc), b: b}, nil
}

func (d *binaryDriver) key(ev event.KeyEvent) bool { return d.b.HandleKey(ev) }

// click activates the control whatever the target.
func (d *binaryDriver) click(string) (bool, error) { return d.b.Activate(), nil }

func (d *binaryDriver) state() State {
	return State{Value: Canonical(d.b.Checked()), Checked: d.b.Checked()}
}

func (d *binaryDriver) nodes() []aria.Node { return []aria.Node{d.b.Node()} }

func newRadioDriver(w Widget, e env) (driver, error) {
	def, _ := w.Default.(string)
	group := toggle.NewRadioGroup(toggle.GroupOptions{
		Document:    e.doc,
		ID:          e.id,
		Default:     def,
		Orientation: event.Orientation(w.Orientation),
		Disabled:    w.Disabled,
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	})
	d := &radioDriver{base: newBase(e.doc), group: group, radios: map[string]*toggle.Radio{}}
	for i, v := range w.Items {
		r := toggle.NewRadio(group, toggle.RadioOptions{Value: v, Order: i, Disabled: slices.Contains(w.DisabledItems, v)})
		d.radios[v] = r
		d.name(r.ID(), v)
	}
	return d, nil
}

func (d *radioDriver) key(ev event.KeyEvent) bool {
	d.enter(d.group.TabStop())
	return d.group.HandleFocusedKey(ev)
}

func (d *radioDriver) click(target string) (bool, error) {
	r, ok := d.radios[target]
	if !ok {
		return false, fmt.Errorf("unknown radio %q", target)
	}
	return r.Click(), nil
}

func (d *radioDriver) state() State {
	return d.focus(State{Value: d.group.Value()})
}

func (d *radioDriver) nodes() []aria.Node { return d.group.Nodes() }

func (d *radioDriver) unmount() {
	for _, r := range d.radios {
		r.Unregister()
	}
}

func newTabsDriver(w Widget, e env) (driver, error) {
	def, _ := w.Default.(string)
	t, err := tabs.New(tabs.Options{
		Document:    e.doc,
		ID:          e.id,
		Default:     def,
		Orientation: event.Orientation(w.Orientation),
		Activation:  tabs.Activation(w.Activation),
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, err
	}
	d := &tabsDriver{base: newBase(e.doc), t: t, tabs: map[string]*tabs.Tab{}}
	for i, v := range w.Items {
		tab := tabs.NewTab(t, tabs.TabOptions{Value: v, Order: i, Disabled: w.Disabled || slices.Contains(w.DisabledItems, v)})
		d.tabs[v] = tab
		d.name(tab.TriggerID(), v)
	}
	return d, nil
}

func (d *tabsDriver) key(ev event.KeyEvent) bool {
	d.enter(d.t.TabStop())
	return d.t.HandleFocusedKey(ev)
}

func (d *tabsDriver) click(target string) (bool, error) {
	tab, ok := d.tabs[target]
	if !ok {
		return false, fmt.Errorf("unknown tab %q", target)
	}
	return tab.Click(), nil
}

func (d *tabsDriver) state() State {
	return d.focus(State{Value: d.t.Value()})
}

func (d *tabsDriver) nodes() []aria.Node { return d.t.Nodes() }

func (d *tabsDriver) unmount() {
	for _, tab := range d.tabs {
		tab.Unregister()
	}
}

func newAccordionDriver(w Widget, e env) (driver, error) {
	var def []string
	if w.Default != nil {
		def, _ = strs(w.Default)
	}
	typ := accordion.TypeSingle
	if w.Multiple {
		typ = accordion.TypeMultiple
	}
	acc, err := accordion.New(accordion.Options{
		Document:    e.doc,
		ID:          e.id,
		Type:        typ,
		Collapsible: w.Collapsible,
		Default:     def,
		Disabled:    w.Disabled,
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, err
	}
	d := &accordionDriver{base: newBase(e.doc), acc: acc, items: map[string]*accordion.Item{}}
	for i, v := range w.Items {
		it := accordion.NewItem(acc, accordion.ItemOptions{Value: v, Order: i, Disabled: slices.Contains(w.DisabledItems, v)})
		d.items[v] = it
		d.name(it.TriggerID(), v)
		if d.first == "" && !slices.Contains(w.DisabledItems, v) {
			d.first = it.TriggerID()
		}
	}
	return d, nil
}

func (d *accordionDriver) key(ev event.KeyEvent) bool {
	d.enter(d.first)
	return d.acc.HandleFocusedKey(ev)
}

func (d *accordionDriver) click(target string) (bool, error) {
	it, ok := d.items[target]
	if !ok {
		return false, fmt.Errorf("unknown accordion item %q", target)
	}
	return it.Click(), nil
}

// state reports open when any item is expanded.
func (d *accordionDriver) state() State {
	value := d.acc.Value()
	return d.focus(State{Value: Canonical(value), Open: len(value) > 0})
}

func (d *accordionDriver) nodes() []aria.Node { return d.acc.Nodes() }

func (d *accordionDriver) unmount() {
	for _, it := range d.items {
		it.Unregister()
	}
}

func newSelectDriver(w Widget, e env) (driver, error) {
	def, _ := w.Default.(string)
	s, err := listbox.New(listbox.Options{
		Document:    e.doc,
		ID:          e.id,
		Default:     def,
		Placeholder: w.Placeholder,
		Bounds:      func() []event.Rect { return []event.Rect{viewport} },
		Disabled:    w.Disabled,
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, err
	}
	d := &selectDriver{base: newBase(e.doc), s: s, items: map[string]*listbox.Item{}}
	d.name(s.TriggerID(), "trigger")
	for i, v := range w.Items {
		it := listbox.NewItem(s, listbox.ItemOptions{Value: v, Order: i, Disabled: slices.Contains(w.DisabledItems, v)})
		d.items[v] = it
		d.name(it.ID(), v)
	}
	return d, nil
}

// key routes to the open list through the document, or to the trigger.
func (d *selectDriver) key(ev event.KeyEvent) bool {
	if d.s.IsOpen() {
		return d.doc.DispatchKey(ev)
	}
	d.doc.Focus(d.s.TriggerID())
	return d.s.HandleTriggerKey(ev)
}

// click presses the trigger ("trigger") or the option with the given value.
func (d *selectDriver) click(target string) (bool, error) {
	if target == "trigger" {
		d.doc.Focus(d.s.TriggerID())
		before := d.s.IsOpen()
		d.s.TriggerClick()
		return d.s.IsOpen() != before, nil
	}
	it, ok := d.items[target]
	if !ok {
		return false, fmt.Errorf("unknown option %q", target)
	}
	return it.Click(), nil
}

func (d *selectDriver) state() State {
	st := State{Value: d.s.Value(), Open: d.s.IsOpen()}
	if h := d.s.Highlighted(); h != nil {
		st.Highlighted = h.Value()
	}
	return d.focus(st)
}

func (d *selectDriver) nodes() []aria.Node { return d.s.Nodes() }

func (d *selectDriver) unmount() { d.s.Unmount() }
