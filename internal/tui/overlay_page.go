// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/invowk/widgetkit/pkg/accordion"
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/dialog"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
)

type (
	accordionPage struct {
		doc   *host.Document
		acc   *accordion.Accordion
		items []*accordion.Item
		text  map[string]string
	}

	dialogPage struct {
		doc     *host.Document
		d       *dialog.Dialog
		ok      host.ElementID
		cancel  host.ElementID
		outcome string
	}
)

var faq = []struct{ question, answer string }{
	{"shipping", "Orders leave the warehouse within two days."},
	{"returns", "Unused items can be returned for thirty days."},
	{"warranty", "Hardware carries a two year limited warranty."},
}

func newAccordionPage(e env) (*accordionPage, error) {
	acc, err := accordion.New(accordion.Options{
		Document:    e.doc,
		ID:          "play-faq",
		Collapsible: true,
		Strict:      e.cfg.StrictOwnership,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, err
	}
	p := &accordionPage{doc: e.doc, acc: acc, text: map[string]string{}}
	for i, q := range faq {
		p.items = append(p.items, accordion.NewItem(acc, accordion.ItemOptions{Value: q.question, Order: i}))
		p.text[q.question] = q.answer
	}
	return p, nil
}

func (p *accordionPage) Name() string { return "accordion" }

func (p *accordionPage) Enter() { p.doc.Focus(p.items[0].TriggerID()) }

func (p *accordionPage) Leave() {}

func (p *accordionPage) HandleKey(ev event.KeyEvent) bool { return p.acc.HandleFocusedKey(ev) }

func (p *accordionPage) Paste(string) bool { return false }

func (p *accordionPage) View(st styles) string {
	var b strings.Builder
	for _, it := range p.items {
		marker := "▸"
		if it.IsOpen() {
			marker = "▾"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, st.label(it.Value(), it.TriggerID() == p.doc.ActiveElement()))
		if it.IsOpen() {
			fmt.Fprintf(&b, "  %s\n", st.Muted.Render(p.text[it.Value()]))
		}
	}
	b.WriteString(st.Muted.Render("up/down move between headers • enter or space toggles • home/end"))
	return b.String()
}

func (p *accordionPage) Nodes() []aria.Node { return p.acc.Nodes() }

func newDialogPage(e env) (*dialogPage, error) {
	d, err := dialog.New(dialog.Options{
		Document: e.doc,
		ID:       "play-confirm",
		Strict:   e.cfg.StrictOwnership,
		Logger:   e.logger,
	})
	if err != nil {
		return nil, err
	}
	p := &dialogPage{doc: e.doc, d: d, ok: "play-confirm-ok", cancel: "play-confirm-cancel"}
	d.AddFocusable(p.ok, 0)
	d.AddFocusable(p.cancel, 1)
	return p, nil
}

func (p *dialogPage) Name() string { return "dialog" }

func (p *dialogPage) Enter() { p.doc.Focus(p.d.TriggerID()) }

// Leave closes the dialog so its focus trap does not outlive the page.
func (p *dialogPage) Leave() {
	if p.d.IsOpen() {
		p.d.Close()
	}
}

func (p *dialogPage) HandleKey(ev event.KeyEvent) bool {
	if !ev.Key.IsActivation() {
		return false
	}
	switch p.doc.ActiveElement() {
	case p.d.TriggerID():
		p.d.TriggerClick()
		p.outcome = ""
	case p.ok:
		p.outcome = "confirmed"
		p.d.Close()
	case p.cancel:
		p.outcome = "cancelled"
		p.d.Close()
	case p.d.CloseID():
		p.outcome = "dismissed"
		p.d.CloseClick()
	default:
		return false
	}
	return true
}

func (p *dialogPage) Paste(string) bool { return false }

func (p *dialogPage) View(st styles) string {
	active := p.doc.ActiveElement()
	var b strings.Builder
	b.WriteString(st.label("[ Delete file ]", active == p.d.TriggerID()))
	if p.outcome != "" {
		b.WriteString("  " + st.Muted.Render(p.outcome))
	}
	b.WriteString("\n")
	if p.d.IsOpen() {
		body := strings.Join([]string{
			st.Title.Render("Delete file?") + "  " + st.label("[x]", active == p.d.CloseID()),
			st.Muted.Render("This cannot be undone."),
			st.label("[ OK ]", active == p.ok) + "  " + st.label("[ Cancel ]", active == p.cancel),
		}, "\n")
		b.WriteString(st.Box.Render(body))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n", st.Muted.Render(fmt.Sprintf("scroll locked %v • top layer %q", p.doc.ScrollLocked(), p.doc.TopLayer())))
	b.WriteString(st.Muted.Render("enter opens • tab cycles inside the dialog • esc closes"))
	return b.String()
}

func (p *dialogPage) Nodes() []aria.Node { return p.d.Nodes() }
