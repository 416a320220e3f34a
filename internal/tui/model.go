// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/internal/config"
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/tabs"
	"github.com/invowk/widgetkit/pkg/widget"
)

type (
	// Options configures the playground.
	Options struct {
		// Config supplies widget defaults. Nil means config.DefaultConfig.
		Config *config.Config
		Logger *log.Logger
		// Input and Output replace the terminal, mainly for tests.
		Input  io.Reader
		Output io.Writer
	}

	// Model is the playground bubbletea model.
	Model struct {
		doc    *host.Document
		nav    *tabs.Tabs
		pages  []page
		keys   keyMap
		help   help.Model
		styles styles
		width  int
		last   string
		done   bool
	}
)

// New mounts every playground page on a fresh document and focuses the first.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := widget.Logger(opts.Logger)
	doc := host.NewDocument(host.WithLogger(logger), host.WithScrollPolicy(cfg.ScrollLock))
	e := env{doc: doc, cfg: cfg, logger: logger}

	pages := []page{newTogglesPage(e)}
	builders := []func(env) (page, error){
		func(e env) (page, error) { return newSliderPage(e) },
		func(e env) (page, error) { return newOTPPage(e) },
		func(e env) (page, error) { return newMaskPage(e) },
		func(e env) (page, error) { return newAccordionPage(e) },
		func(e env) (page, error) { return newDialogPage(e) },
	}
	for _, build := range builders {
		p, err := build(e)
		if err != nil {
			return nil, fmt.Errorf("failed to mount playground: %w", err)
		}
		pages = append(pages, p)
	}

	nav, err := tabs.New(tabs.Options{
		Document:   doc,
		ID:         "play-pages",
		Default:    pages[0].Name(),
		Activation: tabs.ActivationManual,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mount playground: %w", err)
	}
	for i, p := range pages {
		tabs.NewTab(nav, tabs.TabOptions{Value: p.Name(), Order: i})
	}

	m := &Model{
		doc:    doc,
		nav:    nav,
		pages:  pages,
		keys:   defaultKeys,
		help:   help.New(),
		styles: newStyles(cfg.UI.ColorScheme),
	}
	m.page().Enter()
	return m, nil
}

// Run starts the playground and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	_, err = tea.NewProgram(m, progOpts...).Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.turn(1)
		case key.Matches(msg, m.keys.Prev):
			m.turn(-1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			m.handle(msg)
		}
	}
	return m, nil
}

// handle routes a key to the document first, so open overlays see Escape and
// Tab before the page does.
func (m *Model) handle(msg tea.KeyMsg) {
	if msg.Paste {
		text := string(msg.Runes)
		m.last = fmt.Sprintf("paste %q handled=%v", text, m.page().Paste(text))
		return
	}
	ev, ok := KeyEvent(msg)
	if !ok {
		m.last = fmt.Sprintf("%s ignored", msg.String())
		return
	}
	handled := m.doc.DispatchKey(ev) || m.page().HandleKey(ev)
	m.last = fmt.Sprintf("%s handled=%v", ev, handled)
}

// turn activates the page delta steps away, wrapping around.
func (m *Model) turn(delta int) {
	cur := m.index()
	next := (cur + delta + len(m.pages)) % len(m.pages)
	m.pages[cur].Leave()
	m.nav.Activate(m.pages[next].Name())
	m.page().Enter()
	m.last = ""
}

func (m *Model) index() int {
	value := m.nav.Value()
	for i, p := range m.pages {
		if p.Name() == value {
			return i
		}
	}
	return 0
}

func (m *Model) page() page { return m.pages[m.index()] }

// Page returns the name of the visible page.
func (m *Model) Page() string { return m.nav.Value() }

// Document returns the document every page is mounted on.
func (m *Model) Document() *host.Document { return m.doc }

// Done reports whether the user quit.
func (m *Model) Done() bool { return m.done }

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	st := m.styles

	strip := make([]string, 0, len(m.pages))
	for _, t := range m.nav.Tabs() {
		if t.Selected() {
			strip = append(strip, st.ActiveTab.Render(t.Value()))
		} else {
			strip = append(strip, st.Tab.Render(t.Value()))
		}
	}

	p := m.page()
	lines := []string{
		st.Title.Render("widgetkit playground"),
		strings.Join(strip, " "),
		"",
		p.View(st),
		"",
		st.Status.Render(m.status(p)),
		m.help.View(m.keys),
	}
	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view
}

// status describes the focused element as a screen reader would see it.
func (m *Model) status(p page) string {
	active := m.doc.ActiveElement()
	focus := "focus: none"
	if n, ok := aria.Find(p.Nodes(), string(active)); ok {
		focus = "focus: " + n.String()
	} else if active != "" {
		focus = fmt.Sprintf("focus: #%s", active)
	}
	status := fmt.Sprintf("%s\nsessions %d", focus, m.doc.SessionCount())
	if m.last != "" {
		status += " • last " + m.last
	}
	return status
}
