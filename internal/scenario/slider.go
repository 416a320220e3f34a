// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"fmt"
	"strconv"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/slider"
)

type sliderDriver struct {
	base
	s *slider.Slider
}

// newSliderDriver mounts a slider whose track fills the viewport, so a
// pointer x (or y when vertical) between 0 and 100 is a track percentage.
func newSliderDriver(w Widget, e env) (driver, error) {
	m := e.cfg.Slider.Mapper()
	if w.Min != nil {
		m.Min = *w.Min
	}
	if w.Max != nil {
		m.Max = *w.Max
	}
	if w.Step != nil {
		m.Step = *w.Step
	}
	var def []float64
	if w.Default != nil {
		def, _ = numbers(w.Default)
	}
	s, err := slider.New(slider.Options{
		Document:    e.doc,
		ID:          e.id,
		Mapper:      m,
		Orientation: event.Orientation(w.Orientation),
		Default:     def,
		Track:       func() event.Rect { return viewport },
		Disabled:    w.Disabled,
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, err
	}
	d := &sliderDriver{base: newBase(e.doc), s: s}
	for i := range s.Values() {
		d.name(s.ThumbID(i), strconv.Itoa(i))
	}
	return d, nil
}

func (d *sliderDriver) key(ev event.KeyEvent) bool {
	d.enter(d.s.ThumbID(0))
	return d.s.HandleFocusedKey(ev)
}

// click focuses the thumb with the given index.
func (d *sliderDriver) click(target string) (bool, error) {
	n := len(d.s.Values())
	i, err := strconv.Atoi(target)
	if err != nil || i < 0 || i >= n {
		return false, fmt.Errorf("slider click target must be a thumb index in [0, %d), got %q", n, target)
	}
	d.doc.Focus(d.s.ThumbID(i))
	return true, nil
}

// pointer presses the track directly; moves and releases go through the
// document like a captured drag.
func (d *sliderDriver) pointer(p Pointer) bool {
	if p.Action == "down" {
		return d.s.PointerDownTrack(event.Point{X: p.X, Y: p.Y})
	}
	return d.base.pointer(p)
}

func (d *sliderDriver) state() State {
	return d.focus(State{Value: Canonical(d.s.Values())})
}

func (d *sliderDriver) nodes() []aria.Node { return d.s.Nodes() }

func (d *sliderDriver) unmount() { d.s.Unmount() }
