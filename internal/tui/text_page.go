// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/mask"
	"github.com/invowk/widgetkit/pkg/otp"
)

type (
	otpPage struct {
		doc *host.Document
		in  *otp.Input
	}

	// maskPage edits one masked field; Tab cycles through the presets.
	maskPage struct {
		e       env
		presets mask.Presets
		names   []string
		current int
		in      *mask.Input
	}
)

func newOTPPage(e env) (*otpPage, error) {
	in, err := otp.New(otp.Options{
		Document:  e.doc,
		ID:        "play-code",
		MaxLength: e.cfg.OTP.MaxLength,
		Groups:    e.cfg.OTP.Groups,
		Strict:    e.cfg.StrictOwnership,
		Logger:    e.logger,
	})
	if err != nil {
		return nil, err
	}
	return &otpPage{doc: e.doc, in: in}, nil
}

func (p *otpPage) Name() string { return "otp" }

func (p *otpPage) Enter() { p.in.Focus(p.in.Active()) }

func (p *otpPage) Leave() {}

func (p *otpPage) HandleKey(ev event.KeyEvent) bool { return p.in.HandleFocusedKey(ev) }

func (p *otpPage) Paste(text string) bool {
	before := p.in.Value()
	p.in.Paste(text)
	return p.in.Value() != before
}

func (p *otpPage) View(st styles) string {
	slots := p.in.Slots()
	groups := p.in.Groups()
	if len(groups) == 0 {
		groups = []int{len(slots)}
	}
	var rendered []string
	i := 0
	for _, size := range groups {
		cells := make([]string, 0, size)
		for range size {
			text := slots[i]
			if text == "" {
				text = "·"
			}
			cells = append(cells, st.label("["+text+"]", p.in.SlotID(i) == p.doc.ActiveElement()))
			i++
		}
		rendered = append(rendered, strings.Join(cells, ""))
	}

	var b strings.Builder
	b.WriteString(strings.Join(rendered, st.Muted.Render(" - ")))
	b.WriteString("\n")
	fmt.Fprintf(&b, "value %q  %s\n", p.in.Value(), st.state(aria.State(p.in.Complete(), "complete", "incomplete"), p.in.Complete()))
	b.WriteString(st.Muted.Render("type to fill • paste fills from the active slot • backspace and delete clear • arrows move"))
	return b.String()
}

func (p *otpPage) Nodes() []aria.Node { return p.in.Nodes() }

func newMaskPage(e env) (*maskPage, error) {
	p := &maskPage{e: e, presets: e.cfg.Mask.MergedPresets()}
	p.names = p.presets.Names()
	if err := p.load(0); err != nil {
		return nil, err
	}
	return p, nil
}

// load swaps in the preset at index i. The typed value starts over.
func (p *maskPage) load(i int) error {
	tpl, err := p.presets.Template(p.names[i])
	if err != nil {
		return err
	}
	p.current = i
	p.in = mask.NewInput(mask.InputOptions{
		ID:       "play-masked",
		Template: tpl,
		Strict:   p.e.cfg.StrictOwnership,
		Logger:   p.e.logger,
	})
	return nil
}

func (p *maskPage) Name() string { return "mask" }

func (p *maskPage) Enter() { p.e.doc.Focus("play-masked") }

func (p *maskPage) Leave() {}

func (p *maskPage) HandleKey(ev event.KeyEvent) bool {
	before := p.in.Value()
	switch {
	case ev.Key == event.KeyTab:
		next := (p.current + 1) % len(p.names)
		if ev.Shift() {
			next = (p.current + len(p.names) - 1) % len(p.names)
		}
		if err := p.load(next); err != nil {
			p.e.logger.Warn("mask preset rejected", "preset", p.names[next], "err", err)
			return false
		}
		return true
	case ev.Key == event.KeyBackspace:
		p.in.DeleteBackward()
	case ev.Printable():
		p.in.Append(ev.Text)
	default:
		return false
	}
	return p.in.Value() != before
}

func (p *maskPage) Paste(text string) bool {
	before := p.in.Value()
	return p.in.Append(text) != before
}

func (p *maskPage) View(st styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", st.Title.Render(p.names[p.current]), st.Muted.Render(p.in.Template().String()))
	value := p.in.Value()
	if value == "" {
		value = st.Muted.Render("(empty)")
	}
	fmt.Fprintf(&b, "%s\n", st.label(value, p.e.doc.ActiveElement() == "play-masked"))
	fmt.Fprintf(&b, "raw %q  %s\n", p.in.Raw(), st.state(aria.State(p.in.Complete(), "complete", "incomplete"), p.in.Complete()))
	b.WriteString(st.Muted.Render("type to fill • backspace deletes • tab cycles presets"))
	return b.String()
}

func (p *maskPage) Nodes() []aria.Node { return []aria.Node{p.in.Node()} }
