// SPDX-License-Identifier: MPL-2.0

package event

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Named keys.
const (
	KeyEnter      Key = "Enter"
	KeySpace      Key = " "
	KeyEscape     Key = "Escape"
	KeyTab        Key = "Tab"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
	KeyPageUp     Key = "PageUp"
	KeyPageDown   Key = "PageDown"
	KeyBackspace  Key = "Backspace"
	KeyDelete     Key = "Delete"
)

const (
	// ModShift is set while Shift is held.
	ModShift Modifiers = 1 << iota
	// ModCtrl is set while Control is held.
	ModCtrl
	// ModAlt is set while Alt/Option is held.
	ModAlt
	// ModMeta is set while Meta/Command is held.
	ModMeta
)

// ErrUnknownKey is the sentinel error wrapped by UnknownKeyError.
var ErrUnknownKey = errors.New("unknown key")

var (
	namedKeys = map[string]Key{
		"enter":      KeyEnter,
		"space":      KeySpace,
		"escape":     KeyEscape,
		"esc":        KeyEscape,
		"tab":        KeyTab,
		"arrowup":    KeyArrowUp,
		"up":         KeyArrowUp,
		"arrowdown":  KeyArrowDown,
		"down":       KeyArrowDown,
		"arrowleft":  KeyArrowLeft,
		"left":       KeyArrowLeft,
		"arrowright": KeyArrowRight,
		"right":      KeyArrowRight,
		"home":       KeyHome,
		"end":        KeyEnd,
		"pageup":     KeyPageUp,
		"pagedown":   KeyPageDown,
		"backspace":  KeyBackspace,
		"delete":     KeyDelete,
	}

	modifierNames = map[string]Modifiers{
		"shift": ModShift,
		"ctrl":  ModCtrl,
		"alt":   ModAlt,
		"meta":  ModMeta,
	}
)

type (
	// UnknownKeyError is returned by ParseKey for a name it does not recognize.
	// It wraps ErrUnknownKey for errors.Is() compatibility.
	UnknownKeyError struct {
		Name string
	}

	// Key names a keyboard key using the DOM KeyboardEvent.key vocabulary.
	// Printable characters use the character itself (e.g. "a", "7").
	Key string

	// Modifiers is a bit set of held modifier keys.
	Modifiers uint8

	// KeyEvent is a single key press.
	KeyEvent struct {
		Key  Key
		Text string
		Mods Modifiers
	}
)

// Press builds a KeyEvent for a named key with optional modifiers.
func Press(k Key, mods ...Modifiers) KeyEvent {
	var m Modifiers
	for _, mod := range mods {
		m |= mod
	}
	return KeyEvent{Key: k, Mods: m}
}

// Char builds a KeyEvent for a printable character.
func Char(r rune) KeyEvent {
	s := string(r)
	return KeyEvent{Key: Key(s), Text: s}
}

// ParseKey parses names such as "Enter", "Shift+Tab", "ctrl+a" or "7".
// Names are case-insensitive; a single character is a printable key.
func ParseKey(name string) (KeyEvent, error) {
	var parts []string
	switch {
	case name == "+":
		parts = []string{"+"}
	case strings.HasSuffix(name, "++"):
		parts = append(strings.Split(strings.TrimSuffix(name, "++"), "+"), "+")
	default:
		parts = strings.Split(name, "+")
	}
	var mods Modifiers
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[strings.ToLower(p)]
		if !ok {
			return KeyEvent{}, &UnknownKeyError{Name: name}
		}
		mods |= m
	}
	last := parts[len(parts)-1]
	if k, ok := namedKeys[strings.ToLower(last)]; ok {
		ev := Press(k, mods)
		if k == KeySpace {
			ev.Text = " "
		}
		return ev, nil
	}
	if r, size := utf8.DecodeRuneInString(last); size > 0 && size == len(last) && r != utf8.RuneError {
		ev := Char(r)
		ev.Mods = mods
		return ev, nil
	}
	return KeyEvent{}, &UnknownKeyError{Name: name}
}

// Error implements the error interface for UnknownKeyError.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %q", e.Name)
}

// Unwrap returns ErrUnknownKey for errors.Is() compatibility.
func (e *UnknownKeyError) Unwrap() error { return ErrUnknownKey }

// String returns the key name, prefixed with held modifiers ("Shift+Tab").
func (e KeyEvent) String() string {
	var parts []string
	if e.Mods.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if e.Mods.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if e.Mods.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	if e.Mods.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	parts = append(parts, string(e.Key))
	return strings.Join(parts, "+")
}

// Shift reports whether Shift was held.
func (e KeyEvent) Shift() bool { return e.Mods.Has(ModShift) }

// Printable reports whether the event carries text to insert.
func (e KeyEvent) Printable() bool {
	return e.Text != "" && e.Mods&(ModCtrl|ModAlt|ModMeta) == 0
}

// Has reports whether every modifier in o is set in m.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// IsActivation reports whether k activates a button-like element.
func (k Key) IsActivation() bool { return k == KeyEnter || k == KeySpace }
