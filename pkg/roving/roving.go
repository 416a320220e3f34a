// SPDX-License-Identifier: MPL-2.0

// Package roving implements keyboard navigation among a dynamic set of
// focusable peers (tabs, accordion headers, radio items, listbox options).
//
// Peers register and deregister explicitly, so the set is maintained
// incrementally instead of being rediscovered on every key press. The set keeps
// peers in document order, not registration order.
package roving

import (
	"sort"

	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
)

type (
	// Item is one focusable peer.
	Item struct {
		// ID is the element that receives focus.
		ID host.ElementID
		// Order is the peer's position in document order. Ties keep registration order.
		Order int
		// Disabled peers are skipped by directional navigation.
		Disabled bool
	}

	// FocusSet is an ordered registry of focusable peers.
	FocusSet struct {
		entries []*entry
		nextSeq int
		version int
	}

	// Registration is the handle returned by Register.
	Registration struct {
		set   *FocusSet
		entry *entry
	}

	entry struct {
		item    Item
		seq     int
		removed bool
	}
)

// NewFocusSet creates an empty set.
func NewFocusSet() *FocusSet {
	return &FocusSet{}
}

// Register adds a peer. Registering an id that is already present replaces it.
func (s *FocusSet) Register(item Item) *Registration {
	s.remove(item.ID)
	s.nextSeq++
	e := &entry{item: item, seq: s.nextSeq}
	s.entries = append(s.entries, e)
	s.sort()
	s.version++
	return &Registration{set: s, entry: e}
}

// Unregister removes the peer registered by r. It is safe to call more than once.
func (r *Registration) Unregister() {
	if r == nil || r.entry.removed {
		return
	}
	r.set.removeEntry(r.entry)
}

// ID returns the registered element id.
func (r *Registration) ID() host.ElementID { return r.entry.item.ID }

// SetDisabled changes whether navigation skips the peer.
func (r *Registration) SetDisabled(disabled bool) {
	if r.entry.removed || r.entry.item.Disabled == disabled {
		return
	}
	r.entry.item.Disabled = disabled
	r.set.version++
}

// SetOrder moves the peer to a new document position.
func (r *Registration) SetOrder(order int) {
	if r.entry.removed || r.entry.item.Order == order {
		return
	}
	r.entry.item.Order = order
	r.set.sort()
	r.set.version++
}

// Len returns the number of registered peers, disabled ones included.
func (s *FocusSet) Len() int { return len(s.entries) }

// Version changes whenever membership, order or disabled state changes.
func (s *FocusSet) Version() int { return s.version }

// Items returns the peers in document order.
func (s *FocusSet) Items() []Item {
	out := make([]Item, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.item
	}
	return out
}

// Enabled returns the ids of peers that are not disabled, in document order.
func (s *FocusSet) Enabled() []host.ElementID {
	var out []host.ElementID
	for _, e := range s.entries {
		if !e.item.Disabled {
			out = append(out, e.item.ID)
		}
	}
	return out
}

// Index returns the document position of id, or -1.
func (s *FocusSet) Index(id host.ElementID) int {
	for i, e := range s.entries {
		if e.item.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is registered.
func (s *FocusSet) Contains(id host.ElementID) bool { return s.Index(id) >= 0 }

// IsDisabled reports whether id is registered and disabled.
func (s *FocusSet) IsDisabled(id host.ElementID) bool {
	i := s.Index(id)
	return i >= 0 && s.entries[i].item.Disabled
}

// First returns the first enabled peer.
func (s *FocusSet) First() (host.ElementID, bool) { return s.Next("", event.DirFirst) }

// Last returns the last enabled peer.
func (s *FocusSet) Last() (host.ElementID, bool) { return s.Next("", event.DirLast) }

// Next returns the peer reached from `from` in direction dir, wrapping around
// and skipping disabled peers. When `from` is not registered, DirNext starts
// before the first peer and DirPrev after the last. It reports false when no
// enabled peer exists or dir is DirNone.
func (s *FocusSet) Next(from host.ElementID, dir event.Direction) (host.ElementID, bool) {
	n := len(s.entries)
	if n == 0 {
		return "", false
	}
	switch dir {
	case event.DirFirst:
		return s.scan(-1, 1)
	case event.DirLast:
		return s.scan(n, -1)
	case event.DirNext:
		start := s.Index(from)
		if start < 0 {
			return s.scan(-1, 1)
		}
		return s.scan(start, 1)
	case event.DirPrev:
		start := s.Index(from)
		if start < 0 {
			return s.scan(n, -1)
		}
		return s.scan(start, -1)
	default:
		return "", false
	}
}

// Move focuses the peer reached from `from` in direction dir on doc and
// returns it. Focus changes synchronously before Move returns.
func (s *FocusSet) Move(doc *host.Document, from host.ElementID, dir event.Direction) (host.ElementID, bool) {
	id, ok := s.Next(from, dir)
	if !ok {
		return "", false
	}
	doc.Focus(id)
	return id, true
}

// scan walks at most one full cycle from start (exclusive) in steps of step.
func (s *FocusSet) scan(start, step int) (host.ElementID, bool) {
	n := len(s.entries)
	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		if !s.entries[idx].item.Disabled {
			return s.entries[idx].item.ID, true
		}
	}
	return "", false
}

func (s *FocusSet) remove(id host.ElementID) {
	if i := s.Index(id); i >= 0 {
		s.removeEntry(s.entries[i])
	}
}

func (s *FocusSet) removeEntry(e *entry) {
	for i, other := range s.entries {
		if other == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	e.removed = true
	s.version++
}

func (s *FocusSet) sort() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		a, b := s.entries[i], s.entries[j]
		if a.item.Order != b.item.Order {
			return a.item.Order < b.item.Order
		}
		return a.seq < b.seq
	})
}
