// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/invowk/widgetkit/internal/config"
)

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#7C3AED"}
	textColor   = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#FFFFFF"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	onColor     = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	offColor    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
)

type styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Muted     lipgloss.Style
	On        lipgloss.Style
	Off       lipgloss.Style
	Box       lipgloss.Style
	Status    lipgloss.Style
}

// newStyles builds the playground styles. ColorSchemeAuto adapts to the
// terminal background; dark and light pin one side of every color.
func newStyles(scheme config.ColorScheme) styles {
	pick := func(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
		switch scheme {
		case config.ColorSchemeDark:
			return lipgloss.Color(c.Dark)
		case config.ColorSchemeLight:
			return lipgloss.Color(c.Light)
		default:
			return c
		}
	}
	accent := pick(accentColor)
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tab:       lipgloss.NewStyle().Foreground(pick(mutedColor)).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(pick(textColor)).Background(accent).Padding(0, 1),
		Label:     lipgloss.NewStyle().Foreground(pick(textColor)),
		Focused:   lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		Muted:     lipgloss.NewStyle().Foreground(pick(mutedColor)),
		On:        lipgloss.NewStyle().Foreground(pick(onColor)),
		Off:       lipgloss.NewStyle().Foreground(pick(offColor)),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(pick(mutedColor)).Italic(true),
	}
}

// label renders text with the focus style when the element holds focus.
func (s styles) label(text string, focused bool) string {
	if focused {
		return s.Focused.Render(text)
	}
	return s.Label.Render(text)
}

// state renders an on/off value.
func (s styles) state(text string, on bool) string {
	if on {
		return s.On.Render(text)
	}
	return s.Off.Render(text)
}
