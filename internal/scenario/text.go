// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"fmt"
	"strconv"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/mask"
	"github.com/invowk/widgetkit/pkg/otp"
)

type (
	maskDriver struct {
		base
		in *mask.Input
	}

	otpDriver struct {
		base
		in *otp.Input
	}
)

func newMaskDriver(w Widget, e env) (driver, error) {
	var (
		tpl *mask.Template
		err error
	)
	if w.Preset != "" {
		tpl, err = e.cfg.Mask.MergedPresets().Template(w.Preset)
	} else {
		tpl, err = mask.Parse(w.Pattern)
	}
	if err != nil {
		return nil, err
	}
	def, _ := w.Default.(string)
	in := mask.NewInput(mask.InputOptions{
		ID:       string(e.id),
		Template: tpl,
		Default:  def,
		Disabled: w.Disabled,
		Strict:   e.cfg.StrictOwnership,
		Logger:   e.logger,
	})
	return &maskDriver{base: newBase(e.doc), in: in}, nil
}

// typeText feeds text one character at a time, like keystrokes.
func (d *maskDriver) typeText(text string) bool {
	before := d.in.Value()
	for _, r := range text {
		d.in.Append(string(r))
	}
	return d.in.Value() != before
}

func (d *maskDriver) paste(text string) bool {
	before := d.in.Value()
	return d.in.Append(text) != before
}

func (d *maskDriver) key(ev event.KeyEvent) bool {
	switch {
	case ev.Key == event.KeyBackspace:
		before := d.in.Value()
		return d.in.DeleteBackward() != before
	case ev.Printable():
		return d.typeText(ev.Text)
	default:
		return false
	}
}

func (d *maskDriver) state() State {
	return State{Value: d.in.Value(), Raw: d.in.Raw(), Complete: d.in.Complete()}
}

func (d *maskDriver) nodes() []aria.Node { return []aria.Node{d.in.Node()} }

func newOTPDriver(w Widget, e env) (driver, error) {
	maxLength, groups := w.MaxLength, w.Groups
	if maxLength == 0 {
		maxLength = e.cfg.OTP.MaxLength
		if len(groups) == 0 {
			groups = e.cfg.OTP.Groups
		}
	}
	def, _ := w.Default.(string)
	in, err := otp.New(otp.Options{
		Document:  e.doc,
		ID:        e.id,
		MaxLength: maxLength,
		Groups:    groups,
		Default:   def,
		Disabled:  w.Disabled,
		Strict:    e.cfg.StrictOwnership,
		Logger:    e.logger,
	})
	if err != nil {
		return nil, err
	}
	d := &otpDriver{base: newBase(e.doc), in: in}
	for i := range maxLength {
		d.name(in.SlotID(i), strconv.Itoa(i))
	}
	return d, nil
}

func (d *otpDriver) typeText(text string) bool {
	before := d.in.Value()
	for _, r := range text {
		d.in.Type(d.in.Active(), string(r))
	}
	return d.in.Value() != before
}

func (d *otpDriver) paste(text string) bool {
	before := d.in.Value()
	d.in.Paste(text)
	return d.in.Value() != before
}

func (d *otpDriver) key(ev event.KeyEvent) bool {
	d.enter(d.in.SlotID(d.in.Active()))
	if ev.Printable() {
		return d.typeText(ev.Text)
	}
	return d.in.HandleFocusedKey(ev)
}

// click focuses the slot with the given index.
func (d *otpDriver) click(target string) (bool, error) {
	i, err := strconv.Atoi(target)
	if err != nil || i < 0 || i >= d.in.MaxLength() {
		return false, fmt.Errorf("otp click target must be a slot index in [0, %d), got %q", d.in.MaxLength(), target)
	}
	d.in.Focus(i)
	return d.doc.ActiveElement() == d.in.SlotID(i), nil
}

func (d *otpDriver) state() State {
	return d.focus(State{Value: d.in.Value(), Complete: d.in.Complete()})
}

func (d *otpDriver) nodes() []aria.Node { return d.in.Nodes() }
