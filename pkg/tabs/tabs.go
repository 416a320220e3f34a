// SPDX-License-Identifier: MPL-2.0

// Package tabs implements a tab list with roving focus: arrow keys, Home
// and End move between tabs and, in automatic mode, activate the focused tab.
package tabs

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/widget"
)

const (
	// ActivationAutomatic activates a tab as soon as it receives focus.
	ActivationAutomatic Activation = "automatic"
	// ActivationManual waits for Enter or Space.
	ActivationManual Activation = "manual"
)

// ErrInvalidActivation is the sentinel error wrapped by InvalidActivationError.
var ErrInvalidActivation = errors.New("invalid activation mode")

type (
	// Activation selects when a focused tab becomes active.
	Activation string

	// InvalidActivationError is returned when an Activation value is not recognized.
	// It wraps ErrInvalidActivation for errors.Is() compatibility.
	InvalidActivationError struct {
		Value Activation
	}

	// Options configures Tabs.
	Options struct {
		Document      *host.Document
		ID            host.ElementID
		Value         *string
		Default       string
		OnValueChange func(string)
		// Orientation defaults to horizontal.
		Orientation event.Orientation
		// Activation defaults to automatic.
		Activation Activation
		Strict     bool
		Logger     *log.Logger
	}

	// Tabs holds the active tab value.
	Tabs struct {
		doc         *host.Document
		id          host.ElementID
		value       *cell.Cell[string]
		triggers    *roving.FocusSet
		tabs        []*Tab
		orientation event.Orientation
		activation  Activation
		logger      *log.Logger
	}

	// TabOptions configures one tab.
	TabOptions struct {
		Value    string
		Order    int
		Disabled bool
	}

	// Tab is one trigger and its panel.
	Tab struct {
		root     *Tabs
		value    string
		trigger  host.ElementID
		panel    host.ElementID
		disabled bool
		reg      *roving.Registration
	}
)

// IsValid returns whether the Activation is one of the defined values.
// The zero value is valid and means ActivationAutomatic.
func (a Activation) IsValid() (bool, []error) {
	switch a {
	case "", ActivationAutomatic, ActivationManual:
		return true, nil
	default:
		return false, []error{&InvalidActivationError{Value: a}}
	}
}

// Error implements the error interface for InvalidActivationError.
func (e *InvalidActivationError) Error() string {
	return fmt.Sprintf("invalid activation mode %q (valid: automatic, manual)", e.Value)
}

// Unwrap returns ErrInvalidActivation for errors.Is() compatibility.
func (e *InvalidActivationError) Unwrap() error { return ErrInvalidActivation }

// New creates Tabs.
func New(opts Options) (*Tabs, error) {
	widget.MustRoot(opts.Document, "tabs.Tabs", "host.Document")
	if ok, errs := opts.Activation.IsValid(); !ok {
		return nil, errs[0]
	}
	o := opts.Orientation.OrDefault(event.Horizontal)
	if o == event.Both {
		return nil, &event.InvalidOrientationError{Value: o}
	}
	if ok, errs := o.IsValid(); !ok {
		return nil, errs[0]
	}
	t := &Tabs{
		doc:         opts.Document,
		id:          opts.ID,
		triggers:    roving.NewFocusSet(),
		orientation: o,
		activation:  opts.Activation,
		logger:      opts.Logger,
	}
	if t.activation == "" {
		t.activation = ActivationAutomatic
	}
	if t.id == "" {
		t.id = t.doc.NewID("tabs")
	}
	if t.logger == nil {
		t.logger = t.doc.Logger()
	}
	t.value = cell.New(cell.Options[string]{
		Value:    opts.Value,
		Default:  opts.Default,
		OnChange: opts.OnValueChange,
		Strict:   opts.Strict,
	})
	return t, nil
}

// NewTab registers a tab. It panics when root is nil.
func NewTab(root *Tabs, opts TabOptions) *Tab {
	widget.MustRoot(root, "tabs.Tab", "tabs.Tabs")
	tab := &Tab{
		root:     root,
		value:    opts.Value,
		trigger:  root.doc.NewID(string(root.id) + "-trigger"),
		panel:    root.doc.NewID(string(root.id) + "-content"),
		disabled: opts.Disabled,
	}
	tab.reg = root.triggers.Register(roving.Item{ID: tab.trigger, Order: opts.Order, Disabled: opts.Disabled})
	root.tabs = append(root.tabs, tab)
	return tab
}

// ID returns the root element id.
func (t *Tabs) ID() host.ElementID { return t.id }

// Value returns the active tab value.
func (t *Tabs) Value() string { return t.value.Get() }

// Sync re-supplies the caller-owned value.
func (t *Tabs) Sync(value *string) error { return t.value.Sync(value) }

// Activate requests v as the active tab.
func (t *Tabs) Activate(v string) {
	if v == t.value.Get() {
		return
	}
	t.logger.Debug("tab activate", "id", t.id, "value", v)
	t.value.Request(v)
}

// Tabs returns the registered tabs in document order.
func (t *Tabs) Tabs() []*Tab {
	out := make([]*Tab, 0, len(t.tabs))
	for _, item := range t.triggers.Items() {
		if tab := t.byTrigger(item.ID); tab != nil {
			out = append(out, tab)
		}
	}
	return out
}

// Active returns the active tab, or nil.
func (t *Tabs) Active() *Tab {
	for _, tab := range t.tabs {
		if tab.value == t.value.Get() {
			return tab
		}
	}
	return nil
}

// TabStop returns the trigger reachable with Tab: the active tab when it is
// enabled, the first enabled tab otherwise.
func (t *Tabs) TabStop() host.ElementID {
	if a := t.Active(); a != nil && !a.disabled {
		return a.trigger
	}
	id, _ := t.triggers.First()
	return id
}

// HandleFocusedKey routes ev to the focused trigger.
func (t *Tabs) HandleFocusedKey(ev event.KeyEvent) bool {
	if tab := t.byTrigger(t.doc.ActiveElement()); tab != nil {
		return tab.HandleKey(ev)
	}
	return false
}

// Nodes renders the tab list, its triggers, and the active panel.
func (t *Tabs) Nodes() []aria.Node {
	nodes := []aria.Node{
		aria.NewNode(string(t.id)+"-list", aria.RoleTabList).
			Set(aria.Orientation, string(t.orientation)),
	}
	tabs := t.Tabs()
	for _, tab := range tabs {
		nodes = append(nodes, tab.TriggerNode())
	}
	for _, tab := range tabs {
		if tab.Selected() {
			nodes = append(nodes, tab.PanelNode())
		}
	}
	return nodes
}

func (t *Tabs) byTrigger(id host.ElementID) *Tab {
	for _, tab := range t.tabs {
		if tab.trigger == id {
			return tab
		}
	}
	return nil
}

// Value returns the tab value.
func (tab *Tab) Value() string { return tab.value }

// TriggerID returns the trigger element id.
func (tab *Tab) TriggerID() host.ElementID { return tab.trigger }

// PanelID returns the panel element id.
func (tab *Tab) PanelID() host.ElementID { return tab.panel }

// Selected reports whether the tab is active.
func (tab *Tab) Selected() bool { return tab.root.value.Get() == tab.value }

// SetDisabled enables or disables the tab.
func (tab *Tab) SetDisabled(disabled bool) {
	tab.disabled = disabled
	tab.reg.SetDisabled(disabled)
}

// Click focuses and activates the tab.
func (tab *Tab) Click() bool {
	if tab.disabled {
		return false
	}
	tab.root.doc.Focus(tab.trigger)
	tab.root.Activate(tab.value)
	return true
}

// HandleKey moves focus along the list orientation (activating in automatic
// mode) and activates on Enter or Space.
func (tab *Tab) HandleKey(ev event.KeyEvent) bool {
	t := tab.root
	if tab.disabled {
		return false
	}
	if ev.Key.IsActivation() {
		t.Activate(tab.value)
		return true
	}
	dir := event.DirectionForKey(ev.Key, t.orientation)
	if dir == event.DirNone {
		return false
	}
	next, ok := t.triggers.Move(t.doc, tab.trigger, dir)
	if !ok {
		return false
	}
	if t.activation == ActivationAutomatic {
		if target := t.byTrigger(next); target != nil {
			t.Activate(target.value)
		}
	}
	return true
}

// Unregister removes the tab.
func (tab *Tab) Unregister() {
	tab.reg.Unregister()
	t := tab.root
	for i, other := range t.tabs {
		if other == tab {
			t.tabs = append(t.tabs[:i], t.tabs[i+1:]...)
			return
		}
	}
}

// TriggerNode renders the tab trigger.
func (tab *Tab) TriggerNode() aria.Node {
	selected := tab.Selected()
	tabIndex := "-1"
	if tab.root.TabStop() == tab.trigger {
		tabIndex = "0"
	}
	return aria.NewNode(string(tab.trigger), aria.RoleTab).
		Set(aria.Selected, aria.Bool(selected)).
		Set(aria.Controls, string(tab.panel)).
		Set(aria.DataState, aria.State(selected, "active", "inactive")).
		Set(aria.TabIndex, tabIndex).
		SetIf(tab.disabled, aria.Disabled, aria.Bool(true)).
		SetIf(tab.disabled, aria.DataDisabled, "")
}

// PanelNode renders the tab panel.
func (tab *Tab) PanelNode() aria.Node {
	selected := tab.Selected()
	return aria.NewNode(string(tab.panel), aria.RoleTabPanel).
		Set(aria.LabelledBy, string(tab.trigger)).
		Set(aria.DataState, aria.State(selected, "active", "inactive")).
		Set(aria.TabIndex, "0").
		SetIf(!selected, "hidden", "")
}
