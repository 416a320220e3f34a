// SPDX-License-Identifier: MPL-2.0

// Package accordion implements stacked disclosure sections in single mode
// (at most one open, optionally collapsible) and multiple mode (an open set).
package accordion

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/widget"
)

const (
	// TypeSingle keeps at most one item open.
	TypeSingle Type = "single"
	// TypeMultiple opens and closes items independently.
	TypeMultiple Type = "multiple"
)

// ErrInvalidType is the sentinel error wrapped by InvalidTypeError.
var ErrInvalidType = errors.New("invalid accordion type")

type (
	// Type selects single or multiple mode.
	Type string

	// InvalidTypeError is returned when a Type value is not recognized.
	// It wraps ErrInvalidType for errors.Is() compatibility.
	InvalidTypeError struct {
		Value Type
	}

	// Options configures an Accordion.
	Options struct {
		Document *host.Document
		ID       host.ElementID
		// Type defaults to TypeSingle.
		Type Type
		// Collapsible lets a single-mode accordion close its open item.
		Collapsible bool

		Value         *[]string
		Default       []string
		OnValueChange func([]string)

		Disabled bool
		Strict   bool
		Logger   *log.Logger
	}

	// Accordion holds the open items.
	Accordion struct {
		doc         *host.Document
		id          host.ElementID
		typ         Type
		collapsible bool
		value       *cell.Cell[[]string]
		headers     *roving.FocusSet
		items       []*Item
		disabled    bool
		logger      *log.Logger
	}

	// ItemOptions configures one accordion item.
	ItemOptions struct {
		Value    string
		Order    int
		Disabled bool
	}

	// Item is one section: a header trigger and its content region.
	Item struct {
		acc      *Accordion
		value    string
		trigger  host.ElementID
		content  host.ElementID
		disabled bool
		reg      *roving.Registration
	}
)

// IsValid returns whether the Type is one of the defined values.
// The zero value is valid and means TypeSingle.
func (t Type) IsValid() (bool, []error) {
	switch t {
	case "", TypeSingle, TypeMultiple:
		return true, nil
	default:
		return false, []error{&InvalidTypeError{Value: t}}
	}
}

// Error implements the error interface for InvalidTypeError.
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid accordion type %q (valid: single, multiple)", e.Value)
}

// Unwrap returns ErrInvalidType for errors.Is() compatibility.
func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// New creates an Accordion. A single-mode default keeps only its first value.
func New(opts Options) (*Accordion, error) {
	widget.MustRoot(opts.Document, "accordion.Accordion", "host.Document")
	if ok, errs := opts.Type.IsValid(); !ok {
		return nil, errs[0]
	}
	a := &Accordion{
		doc:         opts.Document,
		id:          opts.ID,
		typ:         opts.Type,
		collapsible: opts.Collapsible,
		headers:     roving.NewFocusSet(),
		disabled:    opts.Disabled,
		logger:      opts.Logger,
	}
	if a.typ == "" {
		a.typ = TypeSingle
	}
	if a.id == "" {
		a.id = a.doc.NewID("accordion")
	}
	if a.logger == nil {
		a.logger = a.doc.Logger()
	}
	def := slices.Clone(opts.Default)
	if a.typ == TypeSingle && len(def) > 1 {
		def = def[:1]
	}
	a.value = cell.New(cell.Options[[]string]{
		Value:    opts.Value,
		Default:  def,
		OnChange: opts.OnValueChange,
		Strict:   opts.Strict,
	})
	return a, nil
}

// NewItem registers an item in acc. It panics when acc is nil.
func NewItem(acc *Accordion, opts ItemOptions) *Item {
	widget.MustRoot(acc, "accordion.Item", "accordion.Accordion")
	it := &Item{
		acc:      acc,
		value:    opts.Value,
		trigger:  acc.doc.NewID(string(acc.id) + "-trigger"),
		content:  acc.doc.NewID(string(acc.id) + "-content"),
		disabled: opts.Disabled,
	}
	it.reg = acc.headers.Register(roving.Item{ID: it.trigger, Order: opts.Order, Disabled: it.inert()})
	acc.items = append(acc.items, it)
	return it
}

// ID returns the root element id.
func (a *Accordion) ID() host.ElementID { return a.id }

// Type returns the accordion mode.
func (a *Accordion) Type() Type { return a.typ }

// Value returns a copy of the open item values.
func (a *Accordion) Value() []string { return slices.Clone(a.value.Get()) }

// IsOpen reports whether the item with value v is open.
func (a *Accordion) IsOpen(v string) bool { return slices.Contains(a.value.Get(), v) }

// Sync re-supplies the caller-owned open values.
func (a *Accordion) Sync(value *[]string) error { return a.value.Sync(value) }

// SetDisabled enables or disables every item.
func (a *Accordion) SetDisabled(disabled bool) {
	a.disabled = disabled
	for _, it := range a.items {
		it.reg.SetDisabled(it.inert())
	}
}

// Toggle flips the item with value v. In single mode opening v closes the
// others; closing the open item requires Collapsible.
func (a *Accordion) Toggle(v string) {
	if a.disabled {
		return
	}
	cur := a.value.Get()
	open := slices.Contains(cur, v)

	var next []string
	switch {
	case a.typ == TypeMultiple && open:
		next = slices.DeleteFunc(slices.Clone(cur), func(s string) bool { return s == v })
	case a.typ == TypeMultiple:
		next = append(slices.Clone(cur), v)
	case open && !a.collapsible:
		return
	case open:
		next = []string{}
	default:
		next = []string{v}
	}
	a.logger.Debug("accordion toggle", "id", a.id, "item", v, "open", next)
	a.value.Request(next)
}

// Items returns the registered items in document order.
func (a *Accordion) Items() []*Item {
	out := make([]*Item, 0, len(a.items))
	for _, entry := range a.headers.Items() {
		if it := a.byTrigger(entry.ID); it != nil {
			out = append(out, it)
		}
	}
	return out
}

// HandleFocusedKey routes ev to the item whose header has focus.
func (a *Accordion) HandleFocusedKey(ev event.KeyEvent) bool {
	if it := a.byTrigger(a.doc.ActiveElement()); it != nil {
		return it.HandleKey(ev)
	}
	return false
}

// Nodes renders every item's header and content in document order.
func (a *Accordion) Nodes() []aria.Node {
	var nodes []aria.Node
	for _, it := range a.Items() {
		nodes = append(nodes, it.Nodes()...)
	}
	return nodes
}

func (a *Accordion) byTrigger(id host.ElementID) *Item {
	for _, it := range a.items {
		if it.trigger == id {
			return it
		}
	}
	return nil
}

// Value returns the item value.
func (it *Item) Value() string { return it.value }

// TriggerID returns the header button id.
func (it *Item) TriggerID() host.ElementID { return it.trigger }

// ContentID returns the content region id.
func (it *Item) ContentID() host.ElementID { return it.content }

// IsOpen reports whether the item is open.
func (it *Item) IsOpen() bool { return it.acc.IsOpen(it.value) }

// SetDisabled enables or disables this item.
func (it *Item) SetDisabled(disabled bool) {
	it.disabled = disabled
	it.reg.SetDisabled(it.inert())
}

// Click focuses the header and toggles the item.
func (it *Item) Click() bool {
	if it.inert() {
		return false
	}
	it.acc.doc.Focus(it.trigger)
	it.acc.Toggle(it.value)
	return true
}

// HandleKey toggles on Enter or Space. ArrowUp, ArrowDown, Home and End move
// focus between headers without opening anything.
func (it *Item) HandleKey(ev event.KeyEvent) bool {
	if it.inert() {
		return false
	}
	if ev.Key.IsActivation() {
		it.acc.Toggle(it.value)
		return true
	}
	dir := event.DirectionForKey(ev.Key, event.Vertical)
	if dir == event.DirNone {
		return false
	}
	_, ok := it.acc.headers.Move(it.acc.doc, it.trigger, dir)
	return ok
}

// Unregister removes the item from its accordion.
func (it *Item) Unregister() {
	it.reg.Unregister()
	a := it.acc
	a.items = slices.DeleteFunc(a.items, func(other *Item) bool { return other == it })
}

// Nodes renders the header button and the content region.
func (it *Item) Nodes() []aria.Node {
	open := it.IsOpen()
	state := aria.State(open, "open", "closed")
	header := aria.NewNode(string(it.trigger), aria.RoleButton).
		Set(aria.Expanded, aria.Bool(open)).
		Set(aria.Controls, string(it.content)).
		Set(aria.DataState, state).
		SetIf(it.inert(), aria.Disabled, aria.Bool(true))
	region := aria.NewNode(string(it.content), aria.RoleRegion).
		Set(aria.LabelledBy, string(it.trigger)).
		Set(aria.DataState, state).
		SetIf(!open, "hidden", "")
	return []aria.Node{header, region}
}

func (it *Item) inert() bool { return it.disabled || it.acc.disabled }
