// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/internal/config"
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/roving"
	"github.com/invowk/widgetkit/pkg/slider"
	"github.com/invowk/widgetkit/pkg/toggle"
)

// trackWidth is the rendered slider track in cells.
const trackWidth = 40

type (
	// page is one playground screen.
	page interface {
		// Name is the tab label and value.
		Name() string
		// Enter moves focus into the page.
		Enter()
		// Leave closes anything the page opened so it cannot trap keys
		// meant for another page.
		Leave()
		HandleKey(ev event.KeyEvent) bool
		Paste(text string) bool
		View(st styles) string
		Nodes() []aria.Node
	}

	env struct {
		doc    *host.Document
		cfg    *config.Config
		logger *log.Logger
	}

	togglesPage struct {
		doc      *host.Document
		order    *roving.FocusSet
		controls []*toggle.Binary
		labels   []string
	}

	sliderPage struct {
		doc    *host.Document
		s      *slider.Slider
		thumbs *roving.FocusSet
	}
)

func newTogglesPage(e env) *togglesPage {
	p := &togglesPage{doc: e.doc, order: roving.NewFocusSet()}
	controls := []struct {
		label string
		id    string
		mk    func(toggle.Options) *toggle.Binary
	}{
		{"Airplane mode", "play-airplane", toggle.NewSwitch},
		{"Accept terms", "play-terms", toggle.NewCheckbox},
		{"Bold", "play-bold", toggle.NewToggle},
	}
	for i, c := range controls {
		b := c.mk(toggle.Options{ID: c.id, Strict: e.cfg.StrictOwnership, Logger: e.logger})
		p.order.Register(roving.Item{ID: host.ElementID(c.id), Order: i})
		p.controls = append(p.controls, b)
		p.labels = append(p.labels, c.label)
	}
	return p
}

func (p *togglesPage) Name() string { return "toggles" }

func (p *togglesPage) Enter() {
	if id, ok := p.order.First(); ok {
		p.doc.Focus(id)
	}
}

func (p *togglesPage) Leave() {}

func (p *togglesPage) HandleKey(ev event.KeyEvent) bool {
	if ev.Key == event.KeyTab {
		_, ok := p.order.Move(p.doc, p.doc.ActiveElement(), tabDirection(ev))
		return ok
	}
	for _, b := range p.controls {
		if b.Node().ID == string(p.doc.ActiveElement()) {
			return b.HandleKey(ev)
		}
	}
	return false
}

func (p *togglesPage) Paste(string) bool { return false }

func (p *togglesPage) View(st styles) string {
	var b strings.Builder
	for i, c := range p.controls {
		focused := c.Node().ID == string(p.doc.ActiveElement())
		fmt.Fprintf(&b, "%s %s  %s\n",
			st.label(fmt.Sprintf("%-16s", p.labels[i]), focused),
			st.state(c.State(), c.Checked()),
			st.Muted.Render(string(c.Variant())))
	}
	b.WriteString(st.Muted.Render("tab moves focus • space toggles • enter toggles switches and buttons"))
	return b.String()
}

func (p *togglesPage) Nodes() []aria.Node {
	nodes := make([]aria.Node, 0, len(p.controls))
	for _, c := range p.controls {
		nodes = append(nodes, c.Node())
	}
	return nodes
}

func newSliderPage(e env) (*sliderPage, error) {
	m := e.cfg.Slider.Mapper()
	s, err := slider.New(slider.Options{
		Document: e.doc,
		ID:       "play-price",
		Mapper:   m,
		Default:  []float64{m.Value(0.25), m.Value(0.75)},
		Track:    func() event.Rect { return event.Rect{W: trackWidth, H: 1} },
		Name:     "price",
		Strict:   e.cfg.StrictOwnership,
		Logger:   e.logger,
	})
	if err != nil {
		return nil, err
	}
	p := &sliderPage{doc: e.doc, s: s, thumbs: roving.NewFocusSet()}
	for i := range s.Values() {
		p.thumbs.Register(roving.Item{ID: s.ThumbID(i), Order: i})
	}
	return p, nil
}

func (p *sliderPage) Name() string { return "slider" }

func (p *sliderPage) Enter() { p.doc.Focus(p.s.ThumbID(0)) }

func (p *sliderPage) Leave() { p.s.Unmount() }

func (p *sliderPage) HandleKey(ev event.KeyEvent) bool {
	if ev.Key == event.KeyTab {
		_, ok := p.thumbs.Move(p.doc, p.doc.ActiveElement(), tabDirection(ev))
		return ok
	}
	return p.s.HandleFocusedKey(ev)
}

func (p *sliderPage) Paste(string) bool { return false }

func (p *sliderPage) View(st styles) string {
	m := p.s.Mapper()
	values := p.s.Values()
	cells := make([]string, trackWidth)
	lo, hi := trackWidth, -1
	pos := make([]int, len(values))
	for i, v := range values {
		pos[i] = int(math.Round(m.Percent(v) / 100 * (trackWidth - 1)))
		lo, hi = min(lo, pos[i]), max(hi, pos[i])
	}
	for c := range cells {
		if c >= lo && c <= hi {
			cells[c] = st.Title.Render("━")
		} else {
			cells[c] = st.Muted.Render("─")
		}
	}
	for i, c := range pos {
		cells[c] = st.label("●", p.s.ThumbID(i) == p.doc.ActiveElement())
	}

	var b strings.Builder
	b.WriteString(strings.Join(cells, ""))
	b.WriteString("\n")
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = st.label(aria.Number(v), p.s.ThumbID(i) == p.doc.ActiveElement())
	}
	fmt.Fprintf(&b, "%s  %s\n", strings.Join(parts, " to "),
		st.Muted.Render(fmt.Sprintf("[%s, %s] step %s", aria.Number(m.Min), aria.Number(m.Max), aria.Number(m.Step))))
	b.WriteString(st.Muted.Render("tab switches thumbs • arrows step • shift+arrows and page keys jump • home/end"))
	return b.String()
}

func (p *sliderPage) Nodes() []aria.Node { return p.s.Nodes() }

// tabDirection maps Tab to DirNext and Shift+Tab to DirPrev.
func tabDirection(ev event.KeyEvent) event.Direction {
	if ev.Shift() {
		return event.DirPrev
	}
	return event.DirNext
}
