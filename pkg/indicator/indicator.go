// SPDX-License-Identifier: MPL-2.0

// Package indicator renders display-only widgets: a progress bar and a
// separator.
package indicator

import (
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
)

const (
	progressMin = 0
	progressMax = 100
)

type (
	// Progress is a determinate or indeterminate progress bar.
	Progress struct {
		id    string
		value float64
		set   bool
	}

	// Separator divides content along an orientation. A decorative separator
	// is hidden from assistive technology.
	Separator struct {
		ID          string
		Orientation event.Orientation
		Decorative  bool
	}
)

// NewProgress creates an indeterminate progress bar.
func NewProgress(id string) *Progress { return &Progress{id: id} }

// Set stores v clamped to [0, 100].
func (p *Progress) Set(v float64) {
	p.value = min(max(v, progressMin), progressMax)
	p.set = true
}

// Clear makes the progress bar indeterminate.
func (p *Progress) Clear() {
	p.value = 0
	p.set = false
}

// Value returns the clamped value and whether one is set.
func (p *Progress) Value() (float64, bool) { return p.value, p.set }

// Offset returns how far the indicator is translated out of view, in percent.
func (p *Progress) Offset() float64 { return progressMax - p.value }

// Node renders the progress bar.
func (p *Progress) Node() aria.Node {
	state := "indeterminate"
	switch {
	case p.set && p.value >= progressMax:
		state = "complete"
	case p.set:
		state = "loading"
	}
	return aria.NewNode(p.id, aria.RoleProgressbar).
		Set(aria.ValueMin, aria.Number(progressMin)).
		Set(aria.ValueMax, aria.Number(progressMax)).
		SetIf(p.set, aria.ValueNow, aria.Number(p.value)).
		Set(aria.DataState, state)
}

// Node renders the separator.
func (s Separator) Node() aria.Node {
	o := s.Orientation.OrDefault(event.Horizontal)
	if s.Decorative {
		return aria.NewNode(s.ID, aria.RoleNone).Set("data-orientation", string(o))
	}
	return aria.NewNode(s.ID, aria.RoleSeparator).
		Set(aria.Orientation, string(o)).
		Set("data-orientation", string(o))
}
