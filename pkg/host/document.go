// SPDX-License-Identifier: MPL-2.0

package host

import (
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/invowk/widgetkit/pkg/widget"
)

type (
	// ElementID identifies a focusable or rendered element within a Document.
	ElementID string

	// Option configures a Document.
	Option func(*Document)

	// Document tracks focus, interaction sessions, the scroll lock and the
	// layer stack for a single host surface.
	Document struct {
		active   ElementID
		history  []ElementID
		onFocus  func(prev, next ElementID)
		nextID   int
		sessions []*Session
		scroll   scrollState
		layers   []ElementID
		logger   *log.Logger
	}
)

// WithLogger sets the logger used for debug-level lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// WithScrollPolicy selects how overlapping scroll locks are released.
func WithScrollPolicy(p ScrollPolicy) Option {
	return func(d *Document) { d.scroll.policy = p }
}

// WithBody registers an observer for scroll lock state changes.
func WithBody(b Body) Option {
	return func(d *Document) { d.scroll.body = b }
}

// WithFocusObserver registers a callback invoked after every focus change.
func WithFocusObserver(fn func(prev, next ElementID)) Option {
	return func(d *Document) { d.onFocus = fn }
}

// NewDocument creates an empty Document. The default scroll policy is
// PolicyRefCount.
func NewDocument(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = widget.Logger(d.logger)
	return d
}

// Logger returns the document logger. Widgets attached to the document use it
// when they are not given their own.
func (d *Document) Logger() *log.Logger { return d.logger }

// NewID returns a document-unique element id of the form "<prefix>-<n>".
func (d *Document) NewID(prefix string) ElementID {
	d.nextID++
	if prefix == "" {
		prefix = "wk"
	}
	return ElementID(prefix + "-" + strconv.Itoa(d.nextID))
}

// Focus moves keyboard focus to id. Focusing the active element again is a no-op.
func (d *Document) Focus(id ElementID) {
	if id == "" || id == d.active {
		return
	}
	prev := d.active
	d.active = id
	d.history = append(d.history, id)
	d.logger.Debug("focus", "from", prev, "to", id)
	if d.onFocus != nil {
		d.onFocus(prev, id)
	}
}

// Blur clears keyboard focus.
func (d *Document) Blur() {
	if d.active == "" {
		return
	}
	prev := d.active
	d.active = ""
	if d.onFocus != nil {
		d.onFocus(prev, "")
	}
}

// ActiveElement returns the focused element, or "" when nothing has focus.
func (d *Document) ActiveElement() ElementID { return d.active }

// FocusHistory returns every element that received focus, oldest first.
func (d *Document) FocusHistory() []ElementID {
	out := make([]ElementID, len(d.history))
	copy(out, d.history)
	return out
}
