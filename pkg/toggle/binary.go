// SPDX-License-Identifier: MPL-2.0

// Package toggle implements binary controls (Switch, Checkbox, Toggle button)
// and mutually exclusive selection (RadioGroup).
package toggle

import (
	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/widget"
)

const (
	// VariantSwitch renders role=switch with aria-checked.
	VariantSwitch Variant = "switch"
	// VariantCheckbox renders role=checkbox with aria-checked.
	VariantCheckbox Variant = "checkbox"
	// VariantToggle renders a button with aria-pressed.
	VariantToggle Variant = "toggle"
)

type (
	// Variant selects the role and keyboard contract of a Binary.
	Variant string

	// Options configures a Binary.
	Options struct {
		ID       string
		Checked  *bool
		Default  bool
		OnChange func(bool)
		Disabled bool
		// Name emits a hidden checkbox input when set.
		Name string
		// Value is the submitted value while checked. Empty means "on".
		Value  string
		Strict bool
		Logger *log.Logger
	}

	// Binary is a two-state control.
	Binary struct {
		variant  Variant
		id       string
		checked  *cell.Cell[bool]
		disabled bool
		name     string
		value    string
		logger   *log.Logger
	}
)

// NewSwitch creates a switch.
func NewSwitch(opts Options) *Binary { return newBinary(VariantSwitch, opts) }

// NewCheckbox creates a checkbox.
func NewCheckbox(opts Options) *Binary { return newBinary(VariantCheckbox, opts) }

// NewToggle creates a toggle button.
func NewToggle(opts Options) *Binary { return newBinary(VariantToggle, opts) }

func newBinary(v Variant, opts Options) *Binary {
	b := &Binary{
		variant:  v,
		id:       opts.ID,
		disabled: opts.Disabled,
		name:     opts.Name,
		value:    opts.Value,
		logger:   widget.Logger(opts.Logger),
	}
	if b.value == "" {
		b.value = "on"
	}
	b.checked = cell.New(cell.Options[bool]{
		Value:    opts.Checked,
		Default:  opts.Default,
		OnChange: opts.OnChange,
		Strict:   opts.Strict,
	})
	return b
}

// Variant returns the control variant.
func (b *Binary) Variant() Variant { return b.variant }

// Checked reports the current state.
func (b *Binary) Checked() bool { return b.checked.Get() }

// Disabled reports whether activation is suppressed.
func (b *Binary) Disabled() bool { return b.disabled }

// SetDisabled enables or disables activation.
func (b *Binary) SetDisabled(disabled bool) { b.disabled = disabled }

// Sync re-supplies the caller-owned state.
func (b *Binary) Sync(checked *bool) error { return b.checked.Sync(checked) }

// Activate requests the opposite state. It reports false when disabled.
func (b *Binary) Activate() bool {
	if b.disabled {
		return false
	}
	next := !b.checked.Get()
	b.logger.Debug("toggle", "variant", b.variant, "id", b.id, "checked", next)
	b.checked.Request(next)
	return true
}

// HandleKey activates on Space, and on Enter for switches and toggle buttons.
func (b *Binary) HandleKey(ev event.KeyEvent) bool {
	switch {
	case ev.Key == event.KeySpace:
		return b.Activate()
	case ev.Key == event.KeyEnter && b.variant != VariantCheckbox:
		return b.Activate()
	default:
		return false
	}
}

// State returns the data-state value.
func (b *Binary) State() string {
	if b.variant == VariantToggle {
		return aria.State(b.Checked(), "on", "off")
	}
	return aria.State(b.Checked(), "checked", "unchecked")
}

// Node renders the control.
func (b *Binary) Node() aria.Node {
	var n aria.Node
	switch b.variant {
	case VariantToggle:
		n = aria.NewNode(b.id, aria.RoleButton).Set(aria.Pressed, aria.Bool(b.Checked()))
	case VariantSwitch:
		n = aria.NewNode(b.id, aria.RoleSwitch).Set(aria.Checked, aria.Bool(b.Checked()))
	default:
		n = aria.NewNode(b.id, aria.RoleCheckbox).Set(aria.Checked, aria.Bool(b.Checked()))
	}
	return n.Set(aria.DataState, b.State()).
		SetIf(b.disabled, aria.Disabled, aria.Bool(true)).
		SetIf(b.disabled, aria.DataDisabled, "")
}

// HiddenInput returns the companion form input, or nil without a name.
// Toggle buttons have no form value.
func (b *Binary) HiddenInput() *aria.HiddenInput {
	if b.name == "" || b.variant == VariantToggle {
		return nil
	}
	return &aria.HiddenInput{Name: b.name, Value: b.value, Type: "checkbox", Checked: b.Checked()}
}
