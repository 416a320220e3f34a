// SPDX-License-Identifier: MPL-2.0

package host

import (
	"github.com/google/uuid"
	"github.com/invowk/widgetkit/pkg/event"
)

type (
	// Handlers are the document-level callbacks of an interaction session.
	// Each returns true when it consumed the event, which stops delivery to
	// older sessions. Nil handlers are skipped.
	Handlers struct {
		Key         func(event.KeyEvent) bool
		PointerDown func(event.PointerEvent) bool
		PointerMove func(event.PointerEvent) bool
		PointerUp   func(event.PointerEvent) bool
	}

	// Session is one registration in the document dispatch table, created when
	// an interaction starts (a drag, an open overlay) and closed when it ends.
	Session struct {
		id       string
		owner    string
		handlers Handlers
		doc      *Document
		closed   bool
	}
)

// Listen registers handlers under a new session owned by owner. The caller
// must Close the session on every exit path; Close is idempotent.
func (d *Document) Listen(owner string, h Handlers) *Session {
	s := &Session{
		id:       uuid.NewString(),
		owner:    owner,
		handlers: h,
		doc:      d,
	}
	d.sessions = append(d.sessions, s)
	d.logger.Debug("session opened", "owner", owner, "session", s.id, "active", len(d.sessions))
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Owner returns the name the session was registered under.
func (s *Session) Owner() string { return s.owner }

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s == nil || s.closed }

// Close removes the session from the dispatch table. Calling Close more than
// once, or on a nil session, does nothing.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	d := s.doc
	for i, other := range d.sessions {
		if other == s {
			d.sessions = append(d.sessions[:i], d.sessions[i+1:]...)
			break
		}
	}
	d.logger.Debug("session closed", "owner", s.owner, "session", s.id, "active", len(d.sessions))
}

// SessionCount returns the number of open sessions.
func (d *Document) SessionCount() int { return len(d.sessions) }

// SessionOwners returns the owners of open sessions, oldest first.
func (d *Document) SessionOwners() []string {
	out := make([]string, len(d.sessions))
	for i, s := range d.sessions {
		out[i] = s.owner
	}
	return out
}

// DispatchKey delivers a key event to sessions, newest first.
func (d *Document) DispatchKey(ev event.KeyEvent) bool {
	return d.dispatch(func(h Handlers) bool {
		return h.Key != nil && h.Key(ev)
	})
}

// DispatchPointerDown delivers a pointer press to sessions, newest first.
func (d *Document) DispatchPointerDown(ev event.PointerEvent) bool {
	return d.dispatch(func(h Handlers) bool {
		return h.PointerDown != nil && h.PointerDown(ev)
	})
}

// DispatchPointerMove delivers a pointer move to sessions, newest first.
func (d *Document) DispatchPointerMove(ev event.PointerEvent) bool {
	return d.dispatch(func(h Handlers) bool {
		return h.PointerMove != nil && h.PointerMove(ev)
	})
}

// DispatchPointerUp delivers a pointer release to sessions, newest first.
func (d *Document) DispatchPointerUp(ev event.PointerEvent) bool {
	return d.dispatch(func(h Handlers) bool {
		return h.PointerUp != nil && h.PointerUp(ev)
	})
}

// dispatch walks a snapshot of the table so handlers may open or close
// sessions. Sessions opened during delivery miss the current event and
// sessions closed during delivery receive nothing further.
func (d *Document) dispatch(deliver func(Handlers) bool) bool {
	snapshot := make([]*Session, len(d.sessions))
	copy(snapshot, d.sessions)
	for i := len(snapshot) - 1; i >= 0; i-- {
		s := snapshot[i]
		if s.closed {
			continue
		}
		if deliver(s.handlers) {
			return true
		}
	}
	return false
}
