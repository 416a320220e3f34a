// SPDX-License-Identifier: MPL-2.0

package mask

import (
	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/widget"
)

type (
	// InputOptions configures an Input.
	InputOptions struct {
		ID       string
		Template *Template
		Value    *string
		// Default seeds an uncontrolled input. It is formatted on construction.
		Default  string
		OnChange func(string)
		Disabled bool
		Strict   bool
		Logger   *log.Logger
	}

	// Input is a masked text field. Every edit is committed formatted.
	Input struct {
		id       string
		tpl      *Template
		value    *cell.Cell[string]
		disabled bool
		logger   *log.Logger
	}
)

// NewInput creates an Input. It panics when opts.Template is nil.
func NewInput(opts InputOptions) *Input {
	widget.MustRoot(opts.Template, "mask.Input", "mask.Template")
	in := &Input{
		id:       opts.ID,
		tpl:      opts.Template,
		disabled: opts.Disabled,
		logger:   widget.Logger(opts.Logger),
	}
	in.value = cell.New(cell.Options[string]{
		Value:    opts.Value,
		Default:  opts.Template.Format(opts.Default),
		OnChange: opts.OnChange,
		Strict:   opts.Strict,
	})
	return in
}

// Template returns the input's template.
func (in *Input) Template() *Template { return in.tpl }

// Value returns the displayed text.
func (in *Input) Value() string { return in.value.Get() }

// Raw returns the accepted characters of the displayed text.
func (in *Input) Raw() string { return in.tpl.Raw(in.value.Get()) }

// Complete reports whether every placeholder is filled.
func (in *Input) Complete() bool { return in.tpl.Complete(in.value.Get()) }

// Sync re-supplies the caller-owned text.
func (in *Input) Sync(value *string) error { return in.value.Sync(value) }

// SetDisabled enables or disables editing.
func (in *Input) SetDisabled(disabled bool) { in.disabled = disabled }

// Change commits the host's edited text after formatting it.
func (in *Input) Change(text string) string {
	if in.disabled {
		return in.value.Get()
	}
	formatted := in.tpl.Format(text)
	in.logger.Debug("mask change", "id", in.id, "input", text, "formatted", formatted)
	in.value.Request(formatted)
	return formatted
}

// Append formats the displayed text followed by s, as typing s at the end does.
func (in *Input) Append(s string) string { return in.Change(in.value.Get() + s) }

// DeleteBackward removes the last accepted character. A trailing literal goes
// with the character in front of it.
func (in *Input) DeleteBackward() string {
	raw := in.Raw()
	if raw == "" {
		return in.Change("")
	}
	return in.Change(raw[:len(raw)-1])
}

// Node renders the text field.
func (in *Input) Node() aria.Node {
	return aria.NewNode(in.id, aria.RoleTextbox).
		Set("value", in.value.Get()).
		Set("placeholder", in.tpl.String()).
		SetIf(in.Complete(), "data-complete", "").
		SetIf(in.disabled, aria.Disabled, aria.Bool(true))
}
