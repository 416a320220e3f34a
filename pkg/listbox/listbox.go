// SPDX-License-Identifier: MPL-2.0

// Package listbox implements a single-value select: a trigger button that
// opens an anchored list of options. While the list is open ArrowDown and
// ArrowUp move a highlight over the enabled options (wrapping at both ends),
// Enter commits it, and Escape or a press outside the list closes it.
package listbox

import (
	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/overlay"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/widget"
)

// noHighlight is the highlight index while nothing is highlighted.
const noHighlight = -1

type (
	// Options configures a Select.
	Options struct {
		Document      *host.Document
		ID            host.ElementID
		Value         *string
		Default       string
		OnValueChange func(string)
		OnOpenChange  func(bool)
		// Placeholder is shown while no option matches the value.
		Placeholder string
		// Bounds returns the trigger and list rectangles for outside-press detection.
		Bounds   func() []event.Rect
		Disabled bool
		// Name adds a hidden input carrying the value.
		Name   string
		Strict bool
		Logger *log.Logger
	}

	// Select holds the value, open state and highlight of one select.
	Select struct {
		doc          *host.Document
		id           host.ElementID
		trigger      host.ElementID
		value        *cell.Cell[string]
		overlay      *overlay.Engine
		options      *roving.FocusSet
		items        []*Item
		highlight    int
		keys         *host.Session
		placeholder  string
		name         string
		disabled     bool
		onOpenChange func(bool)
		logger       *log.Logger
	}

	// ItemOptions configures one option.
	ItemOptions struct {
		Value    string
		Label    string
		Order    int
		Disabled bool
	}

	// Item is one option of a Select.
	Item struct {
		root     *Select
		id       host.ElementID
		value    string
		label    string
		disabled bool
		reg      *roving.Registration
	}
)

// New creates a Select. It panics when opts.Document is nil.
func New(opts Options) (*Select, error) {
	widget.MustRoot(opts.Document, "listbox.Select", "host.Document")
	s := &Select{
		doc:          opts.Document,
		id:           opts.ID,
		options:      roving.NewFocusSet(),
		highlight:    noHighlight,
		placeholder:  opts.Placeholder,
		name:         opts.Name,
		disabled:     opts.Disabled,
		onOpenChange: opts.OnOpenChange,
		logger:       opts.Logger,
	}
	if s.id == "" {
		s.id = s.doc.NewID("select")
	}
	if s.logger == nil {
		s.logger = s.doc.Logger()
	}
	s.trigger = s.id + "-trigger"
	s.value = cell.New(cell.Options[string]{
		Value:    opts.Value,
		Default:  opts.Default,
		OnChange: opts.OnValueChange,
		Strict:   opts.Strict,
	})

	engine, err := overlay.New(overlay.Options{
		Kind:         overlay.KindAnchored,
		Document:     s.doc,
		ID:           s.id + "-content",
		Trigger:      s.trigger,
		Bounds:       opts.Bounds,
		OnOpenChange: s.openChanged,
		Disabled:     opts.Disabled,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, err
	}
	s.overlay = engine
	return s, nil
}

// ID returns the root element id.
func (s *Select) ID() host.ElementID { return s.id }

// TriggerID returns the trigger button id.
func (s *Select) TriggerID() host.ElementID { return s.trigger }

// ContentID returns the list element id.
func (s *Select) ContentID() host.ElementID { return s.overlay.ID() }

// Overlay returns the engine driving the list.
func (s *Select) Overlay() *overlay.Engine { return s.overlay }

// Value returns the selected value.
func (s *Select) Value() string { return s.value.Get() }

// Sync re-supplies the caller-owned value.
func (s *Select) Sync(value *string) error { return s.value.Sync(value) }

// IsOpen reports whether the list is shown.
func (s *Select) IsOpen() bool { return s.overlay.IsOpen() }

// SetDisabled enables or disables the select. Disabling closes an open list.
func (s *Select) SetDisabled(disabled bool) {
	if disabled {
		s.Close()
	}
	s.disabled = disabled
	s.overlay.SetDisabled(disabled)
}

// Open shows the list.
func (s *Select) Open() { s.overlay.Show(overlay.ReasonTrigger) }

// Close hides the list without changing the value.
func (s *Select) Close() { s.overlay.Hide(overlay.ReasonProgrammatic) }

// TriggerClick toggles the list.
func (s *Select) TriggerClick() { s.overlay.TriggerClick() }

// HandleTriggerKey opens the list on Enter, Space, ArrowDown or ArrowUp
// pressed on the trigger.
func (s *Select) HandleTriggerKey(ev event.KeyEvent) bool {
	if s.disabled {
		return false
	}
	switch ev.Key {
	case event.KeyEnter, event.KeySpace, event.KeyArrowDown, event.KeyArrowUp:
		if !s.IsOpen() {
			s.Open()
		}
		return true
	default:
		return false
	}
}

// Items returns the registered options in document order.
func (s *Select) Items() []*Item {
	out := make([]*Item, 0, len(s.items))
	for _, entry := range s.options.Items() {
		if item := s.byID(entry.ID); item != nil {
			out = append(out, item)
		}
	}
	return out
}

// Highlighted returns the highlighted option, or nil.
func (s *Select) Highlighted() *Item {
	enabled := s.options.Enabled()
	if s.highlight < 0 || s.highlight >= len(enabled) {
		return nil
	}
	return s.byID(enabled[s.highlight])
}

// HighlightIndex returns the highlight position among the enabled options, or -1.
func (s *Select) HighlightIndex() int { return s.highlight }

// Label returns the label of the selected option, or the placeholder when no
// option carries the value.
func (s *Select) Label() string {
	if item := s.selected(); item != nil {
		return item.label
	}
	return s.placeholder
}

// Commit selects v and closes the list.
func (s *Select) Commit(v string) {
	if s.disabled {
		return
	}
	s.logger.Debug("select commit", "id", s.id, "value", v)
	if v != s.value.Get() {
		s.value.Request(v)
	}
	s.overlay.Hide(overlay.ReasonCommit)
}

// Unmount closes the list without restoring focus.
func (s *Select) Unmount() {
	s.overlay.Unmount()
	s.stopKeys()
}

// HiddenInput returns the form input carrying the value, or nil without a name.
func (s *Select) HiddenInput() *aria.HiddenInput {
	if s.name == "" {
		return nil
	}
	return &aria.HiddenInput{Name: s.name, Value: s.value.Get(), Type: "hidden"}
}

// Nodes renders the trigger and, while open, the list and its options.
func (s *Select) Nodes() []aria.Node {
	open := s.IsOpen()
	trigger := aria.NewNode(string(s.trigger), aria.RoleButton).
		Set(aria.Expanded, aria.Bool(open)).
		Set(aria.HasPopup, string(aria.RoleListbox)).
		Set(aria.Controls, string(s.overlay.ID())).
		Set(aria.DataState, s.overlay.State()).
		SetIf(s.selected() == nil, "data-placeholder", "").
		SetIf(s.disabled, aria.Disabled, aria.Bool(true)).
		SetIf(s.disabled, aria.DataDisabled, "")
	nodes := []aria.Node{trigger}
	if !open {
		return nodes
	}

	list := aria.NewNode(string(s.overlay.ID()), aria.RoleListbox).
		Set(aria.LabelledBy, string(s.trigger)).
		Set(aria.DataState, s.overlay.State())
	if h := s.Highlighted(); h != nil {
		list = list.Set(aria.ActiveDesc, string(h.id))
	}
	nodes = append(nodes, list)
	for _, item := range s.Items() {
		nodes = append(nodes, item.Node())
	}
	return nodes
}

// openChanged runs before the engine applies the new open state.
func (s *Select) openChanged(open bool) {
	if open {
		s.startKeys()
	} else {
		s.stopKeys()
	}
	if s.onOpenChange != nil {
		s.onOpenChange(open)
	}
}

func (s *Select) startKeys() {
	if s.keys != nil {
		return
	}
	s.keys = s.doc.Listen(string(s.id), host.Handlers{Key: s.handleListKey})
}

func (s *Select) stopKeys() {
	s.keys.Close()
	s.keys = nil
	s.highlight = noHighlight
}

func (s *Select) handleListKey(ev event.KeyEvent) bool {
	enabled := s.options.Enabled()
	switch ev.Key {
	case event.KeyArrowDown:
		if len(enabled) == 0 {
			return true
		}
		if s.highlight < len(enabled)-1 {
			s.highlight++
		} else {
			s.highlight = 0
		}
		return true
	case event.KeyArrowUp:
		if len(enabled) == 0 {
			return true
		}
		if s.highlight > 0 && s.highlight < len(enabled) {
			s.highlight--
		} else {
			s.highlight = len(enabled) - 1
		}
		return true
	case event.KeyEnter:
		if item := s.Highlighted(); item != nil {
			s.Commit(item.value)
		}
		return true
	default:
		return false
	}
}

func (s *Select) selected() *Item {
	v := s.value.Get()
	if v == "" {
		return nil
	}
	for _, item := range s.items {
		if item.value == v {
			return item
		}
	}
	return nil
}

func (s *Select) byID(id host.ElementID) *Item {
	for _, item := range s.items {
		if item.id == id {
			return item
		}
	}
	return nil
}

// NewItem registers an option. It panics when root is nil.
func NewItem(root *Select, opts ItemOptions) *Item {
	widget.MustRoot(root, "listbox.Item", "listbox.Select")
	label := opts.Label
	if label == "" {
		label = opts.Value
	}
	item := &Item{
		root:     root,
		id:       root.doc.NewID(string(root.id) + "-option"),
		value:    opts.Value,
		label:    label,
		disabled: opts.Disabled,
	}
	item.reg = root.options.Register(roving.Item{ID: item.id, Order: opts.Order, Disabled: opts.Disabled})
	root.items = append(root.items, item)
	return item
}

// ID returns the option element id.
func (it *Item) ID() host.ElementID { return it.id }

// Value returns the option value.
func (it *Item) Value() string { return it.value }

// Label returns the option label.
func (it *Item) Label() string { return it.label }

// Selected reports whether the option carries the select's value.
func (it *Item) Selected() bool { return it.root.value.Get() == it.value }

// Highlighted reports whether the option is highlighted.
func (it *Item) Highlighted() bool { return it.root.Highlighted() == it }

// SetDisabled enables or disables the option. The highlight is cleared
// because enabled positions shift.
func (it *Item) SetDisabled(disabled bool) {
	if it.disabled == disabled {
		return
	}
	it.disabled = disabled
	it.reg.SetDisabled(disabled)
	it.root.highlight = noHighlight
}

// Click commits the option unless it is disabled.
func (it *Item) Click() bool {
	if it.disabled {
		return false
	}
	it.root.Commit(it.value)
	return true
}

// Unregister removes the option.
func (it *Item) Unregister() {
	it.reg.Unregister()
	s := it.root
	for i, other := range s.items {
		if other == it {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	enabled := len(s.options.Enabled())
	if s.highlight >= enabled {
		s.highlight = noHighlight
	}
}

// Node renders the option.
func (it *Item) Node() aria.Node {
	return aria.NewNode(string(it.id), aria.RoleOption).
		Set(aria.Selected, aria.Bool(it.Selected())).
		Set("data-value", it.value).
		SetIf(it.Highlighted(), "data-highlighted", "").
		SetIf(it.disabled, aria.Disabled, aria.Bool(true)).
		SetIf(it.disabled, aria.DataDisabled, "")
}
