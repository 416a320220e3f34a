// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/invowk/widgetkit/pkg/event"
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Help key.Binding
	Quit key.Binding
}

var (
	// namedKeys maps terminal key types to widget keys.
	namedKeys = map[tea.KeyType]event.KeyEvent{
		tea.KeyEnter:      event.Press(event.KeyEnter),
		tea.KeyEsc:        event.Press(event.KeyEscape),
		tea.KeyTab:        event.Press(event.KeyTab),
		tea.KeyShiftTab:   event.Press(event.KeyTab, event.ModShift),
		tea.KeyUp:         event.Press(event.KeyArrowUp),
		tea.KeyDown:       event.Press(event.KeyArrowDown),
		tea.KeyLeft:       event.Press(event.KeyArrowLeft),
		tea.KeyRight:      event.Press(event.KeyArrowRight),
		tea.KeyShiftUp:    event.Press(event.KeyArrowUp, event.ModShift),
		tea.KeyShiftDown:  event.Press(event.KeyArrowDown, event.ModShift),
		tea.KeyShiftLeft:  event.Press(event.KeyArrowLeft, event.ModShift),
		tea.KeyShiftRight: event.Press(event.KeyArrowRight, event.ModShift),
		tea.KeyHome:       event.Press(event.KeyHome),
		tea.KeyEnd:        event.Press(event.KeyEnd),
		tea.KeyPgUp:       event.Press(event.KeyPageUp),
		tea.KeyPgDown:     event.Press(event.KeyPageDown),
		tea.KeyBackspace:  event.Press(event.KeyBackspace),
		tea.KeyDelete:     event.Press(event.KeyDelete),
	}

	// Tab, arrows and printable runes belong to the pages, so playground
	// bindings use chords no widget handles.
	defaultKeys = keyMap{
		Next: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next page")),
		Prev: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous page")),
		Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
	}
)

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Help, k.Quit},
	}
}

// KeyEvent translates a terminal key press into the event a widget handles.
// It reports false for keys no widget understands, such as function keys and
// control chords.
func KeyEvent(msg tea.KeyMsg) (event.KeyEvent, bool) {
	var ev event.KeyEvent
	switch msg.Type {
	case tea.KeySpace:
		ev = event.Press(event.KeySpace)
		ev.Text = " "
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return event.KeyEvent{}, false
		}
		ev = event.Char(msg.Runes[0])
	default:
		named, ok := namedKeys[msg.Type]
		if !ok {
			return event.KeyEvent{}, false
		}
		ev = named
	}
	if msg.Alt {
		ev.Mods |= event.ModAlt
	}
	return ev, true
}
