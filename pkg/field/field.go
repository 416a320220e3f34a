// SPDX-License-Identifier: MPL-2.0

// Package field wires a form control to its label, description and
// validation message through element ids.
package field

import (
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/widget"
)

// Item groups the elements describing one form control. The zero value is
// not usable; create items with New.
type Item struct {
	id          host.ElementID
	description string
	message     string
	err         string
}

// New creates an Item for the control id. An empty id mints one from doc.
func New(doc *host.Document, id host.ElementID) *Item {
	if id == "" {
		widget.MustRoot(doc, "field.Item", "host.Document")
		id = doc.NewID("field")
	}
	return &Item{id: id}
}

// ControlID returns the control id, which the label targets.
func (f *Item) ControlID() host.ElementID { return f.id }

// DescriptionID returns the description element id.
func (f *Item) DescriptionID() host.ElementID { return f.id + "-form-item-description" }

// MessageID returns the message element id.
func (f *Item) MessageID() host.ElementID { return f.id + "-form-item-message" }

// SetDescription sets the help text shown under the control.
func (f *Item) SetDescription(text string) { f.description = text }

// SetMessage sets the message shown while the control is valid.
func (f *Item) SetMessage(text string) { f.message = text }

// SetError marks the control invalid with text. An empty text clears the error.
func (f *Item) SetError(text string) { f.err = text }

// Invalid reports whether an error is set.
func (f *Item) Invalid() bool { return f.err != "" }

// Message returns the text of the message element: the error while invalid,
// the message otherwise.
func (f *Item) Message() string {
	if f.err != "" {
		return f.err
	}
	return f.message
}

// DescribedBy returns the aria-describedby value for the control. The
// message is referenced only while the control is invalid.
func (f *Item) DescribedBy() string {
	if f.Invalid() {
		return string(f.DescriptionID()) + " " + string(f.MessageID())
	}
	return string(f.DescriptionID())
}

// Decorate adds the field attributes to a rendered control node.
func (f *Item) Decorate(control aria.Node) aria.Node {
	return control.
		Set(aria.DescribedBy, f.DescribedBy()).
		Set(aria.Invalid, aria.Bool(f.Invalid()))
}

// Nodes renders the label, description and, when it has text, the message.
func (f *Item) Nodes() []aria.Node {
	nodes := []aria.Node{
		aria.NewNode(string(f.id)+"-label", aria.RoleNone).
			Set("for", string(f.id)).
			SetIf(f.Invalid(), "data-error", ""),
		aria.NewNode(string(f.DescriptionID()), aria.RoleNone).
			Set("text", f.description),
	}
	if msg := f.Message(); msg != "" {
		nodes = append(nodes, aria.NewNode(string(f.MessageID()), aria.RoleNone).
			Set("text", msg).
			SetIf(f.Invalid(), "data-error", ""))
	}
	return nodes
}
