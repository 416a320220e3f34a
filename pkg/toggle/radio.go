// SPDX-License-Identifier: MPL-2.0

package toggle

import (
	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/widget"
)

type (
	// GroupOptions configures a RadioGroup.
	GroupOptions struct {
		Document *host.Document
		ID       host.ElementID
		Value    *string
		Default  string
		// OnValueChange is invoked with the newly selected value.
		OnValueChange func(string)
		// Orientation limits arrow navigation to one axis. Empty accepts both.
		Orientation event.Orientation
		Disabled    bool
		// Name emits a hidden input carrying the selected value.
		Name   string
		Strict bool
		Logger *log.Logger
	}

	// RadioGroup holds exactly one selected value among its radios.
	RadioGroup struct {
		doc         *host.Document
		id          host.ElementID
		value       *cell.Cell[string]
		focus       *roving.FocusSet
		radios      []*Radio
		orientation event.Orientation
		disabled    bool
		name        string
		logger      *log.Logger
	}

	// RadioOptions configures one radio of a group.
	RadioOptions struct {
		Value    string
		Order    int
		Disabled bool
	}

	// Radio is one option of a RadioGroup.
	Radio struct {
		group    *RadioGroup
		id       host.ElementID
		value    string
		disabled bool
		reg      *roving.Registration
	}
)

// NewRadioGroup creates a RadioGroup.
func NewRadioGroup(opts GroupOptions) *RadioGroup {
	widget.MustRoot(opts.Document, "toggle.RadioGroup", "host.Document")
	g := &RadioGroup{
		doc:         opts.Document,
		id:          opts.ID,
		focus:       roving.NewFocusSet(),
		orientation: opts.Orientation.OrDefault(event.Both),
		disabled:    opts.Disabled,
		name:        opts.Name,
		logger:      opts.Logger,
	}
	if g.id == "" {
		g.id = g.doc.NewID("radiogroup")
	}
	if g.logger == nil {
		g.logger = g.doc.Logger()
	}
	g.value = cell.New(cell.Options[string]{
		Value:    opts.Value,
		Default:  opts.Default,
		OnChange: opts.OnValueChange,
		Strict:   opts.Strict,
	})
	return g
}

// NewRadio registers a radio in group. It panics when group is nil.
func NewRadio(group *RadioGroup, opts RadioOptions) *Radio {
	widget.MustRoot(group, "toggle.Radio", "toggle.RadioGroup")
	r := &Radio{
		group:    group,
		id:       group.doc.NewID(string(group.id) + "-radio"),
		value:    opts.Value,
		disabled: opts.Disabled,
	}
	r.reg = group.focus.Register(roving.Item{ID: r.id, Order: opts.Order, Disabled: r.inert()})
	group.radios = append(group.radios, r)
	return r
}

// ID returns the group element id.
func (g *RadioGroup) ID() host.ElementID { return g.id }

// Value returns the selected value, or "" when nothing is selected.
func (g *RadioGroup) Value() string { return g.value.Get() }

// Sync re-supplies the caller-owned value.
func (g *RadioGroup) Sync(value *string) error { return g.value.Sync(value) }

// Select requests value as the selection.
func (g *RadioGroup) Select(value string) {
	if g.disabled || value == g.value.Get() {
		return
	}
	g.logger.Debug("radio select", "group", g.id, "value", value)
	g.value.Request(value)
}

// SetDisabled enables or disables the whole group.
func (g *RadioGroup) SetDisabled(disabled bool) {
	g.disabled = disabled
	for _, r := range g.radios {
		r.reg.SetDisabled(r.inert())
	}
}

// Radios returns the registered radios in document order.
func (g *RadioGroup) Radios() []*Radio {
	out := make([]*Radio, 0, len(g.radios))
	for _, item := range g.focus.Items() {
		if r := g.byID(item.ID); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Selected returns the radio carrying the selected value, or nil.
func (g *RadioGroup) Selected() *Radio {
	for _, r := range g.radios {
		if r.value == g.value.Get() {
			return r
		}
	}
	return nil
}

// TabStop returns the radio reachable with Tab: the selected one when it is
// enabled, the first enabled radio otherwise.
func (g *RadioGroup) TabStop() host.ElementID {
	if sel := g.Selected(); sel != nil && !sel.inert() {
		return sel.id
	}
	id, _ := g.focus.First()
	return id
}

// Nodes renders the group followed by its radios in document order.
func (g *RadioGroup) Nodes() []aria.Node {
	nodes := []aria.Node{
		aria.NewNode(string(g.id), aria.RoleRadioGroup).
			SetIf(g.orientation != event.Both, aria.Orientation, string(g.orientation)).
			SetIf(g.disabled, aria.Disabled, aria.Bool(true)),
	}
	for _, r := range g.Radios() {
		nodes = append(nodes, r.Node())
	}
	return nodes
}

// HiddenInput returns the companion form input, or nil without a name.
func (g *RadioGroup) HiddenInput() *aria.HiddenInput {
	if g.name == "" {
		return nil
	}
	return &aria.HiddenInput{Name: g.name, Value: g.value.Get(), Type: "hidden"}
}

// HandleFocusedKey routes ev to the focused radio.
func (g *RadioGroup) HandleFocusedKey(ev event.KeyEvent) bool {
	if r := g.byID(g.doc.ActiveElement()); r != nil {
		return r.HandleKey(ev)
	}
	return false
}

func (g *RadioGroup) byID(id host.ElementID) *Radio {
	for _, r := range g.radios {
		if r.id == id {
			return r
		}
	}
	return nil
}

// ID returns the radio element id.
func (r *Radio) ID() host.ElementID { return r.id }

// Value returns the radio value.
func (r *Radio) Value() string { return r.value }

// Checked reports whether the radio is selected.
func (r *Radio) Checked() bool { return r.group.value.Get() == r.value }

// SetDisabled enables or disables this radio.
func (r *Radio) SetDisabled(disabled bool) {
	r.disabled = disabled
	r.reg.SetDisabled(r.inert())
}

// Click focuses and selects the radio.
func (r *Radio) Click() bool {
	if r.inert() {
		return false
	}
	r.group.doc.Focus(r.id)
	r.group.Select(r.value)
	return true
}

// HandleKey selects on Space; arrows move focus to the next enabled radio and
// select it.
func (r *Radio) HandleKey(ev event.KeyEvent) bool {
	if r.inert() {
		return false
	}
	if ev.Key == event.KeySpace {
		r.group.Select(r.value)
		return true
	}
	dir := event.DirectionForKey(ev.Key, r.group.orientation)
	if dir == event.DirNone || dir == event.DirFirst || dir == event.DirLast {
		return false
	}
	next, ok := r.group.focus.Move(r.group.doc, r.id, dir)
	if !ok {
		return false
	}
	if target := r.group.byID(next); target != nil {
		r.group.Select(target.value)
	}
	return true
}

// Unregister removes the radio from its group.
func (r *Radio) Unregister() {
	r.reg.Unregister()
	g := r.group
	for i, other := range g.radios {
		if other == r {
			g.radios = append(g.radios[:i], g.radios[i+1:]...)
			return
		}
	}
}

// Node renders the radio.
func (r *Radio) Node() aria.Node {
	tab := "-1"
	if r.group.TabStop() == r.id {
		tab = "0"
	}
	return aria.NewNode(string(r.id), aria.RoleRadio).
		Set("value", r.value).
		Set(aria.Checked, aria.Bool(r.Checked())).
		Set(aria.DataState, aria.State(r.Checked(), "checked", "unchecked")).
		Set(aria.TabIndex, tab).
		SetIf(r.inert(), aria.Disabled, aria.Bool(true))
}

func (r *Radio) inert() bool { return r.disabled || r.group.disabled }
