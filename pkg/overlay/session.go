// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
)

// Session holds the side effects of one open overlay. It is created on open
// and released exactly once.
type Session struct {
	engine   *Engine
	trigger  host.ElementID
	first    host.ElementID
	last     host.ElementID
	version  int
	listener *host.Session
	scroll   *host.ScrollToken
	released bool
}

// Trigger returns the element focus returns to when the overlay closes.
func (s *Session) Trigger() host.ElementID { return s.trigger }

// Bounds returns the first and last focusable descendants captured for the
// focus trap, refreshing the snapshot when the focus set changed.
func (s *Session) Bounds() (first, last host.ElementID) {
	s.refresh()
	return s.first, s.last
}

// Released reports whether the session's side effects were given back.
func (s *Session) Released() bool { return s.released }

// ScrollToken returns the scroll lock held by a modal session, or nil.
func (s *Session) ScrollToken() *host.ScrollToken { return s.scroll }

// Listener returns the document session receiving key and pointer events.
func (s *Session) Listener() *host.Session { return s.listener }

func (s *Session) refresh() {
	set := s.engine.content
	if s.version == set.Version() && s.first != "" {
		return
	}
	s.version = set.Version()
	s.first, _ = set.First()
	s.last, _ = set.Last()
}

func (s *Session) release() {
	if s.released {
		return
	}
	s.released = true
	s.listener.Close()
	s.scroll.Release()
	if s.engine.kind == KindModal {
		s.engine.doc.PopLayer(s.engine.id)
	}
}

func (s *Session) handleKey(ev event.KeyEvent) bool {
	e := s.engine
	switch ev.Key {
	case event.KeyEscape:
		if e.disabled {
			return false
		}
		e.Hide(ReasonEscape)
		return true
	case event.KeyTab:
		if e.kind != KindModal {
			return false
		}
		s.trapTab(ev.Shift())
		return true
	default:
		return false
	}
}

// trapTab keeps Tab and Shift+Tab inside the modal content, wrapping from the
// last focusable to the first and back.
func (s *Session) trapTab(backward bool) {
	e := s.engine
	first, last := s.Bounds()
	if first == "" {
		e.doc.Focus(e.id)
		return
	}
	active := e.doc.ActiveElement()
	inside := e.content.Contains(active) && !e.content.IsDisabled(active)
	switch {
	case backward && (!inside || active == first):
		e.doc.Focus(last)
	case !backward && (!inside || active == last):
		e.doc.Focus(first)
	case backward:
		e.content.Move(e.doc, active, event.DirPrev)
	default:
		e.content.Move(e.doc, active, event.DirNext)
	}
}

func (s *Session) handlePointerDown(ev event.PointerEvent) bool {
	e := s.engine
	if e.kind != KindAnchored || e.disabled {
		return false
	}
	var rects []event.Rect
	if e.bounds != nil {
		rects = e.bounds()
	}
	if !event.ContainsAny(rects, ev.Pos) {
		e.Hide(ReasonOutside)
	}
	return false
}
