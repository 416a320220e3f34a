// SPDX-License-Identifier: MPL-2.0

// Package otp implements a segmented one-time-password input: a fixed row of
// single-character slots with auto-advance, backspace merging and paste
// splitting.
package otp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/widget"
)

var (
	// ErrInvalidMaxLength is returned when MaxLength is not positive.
	ErrInvalidMaxLength = errors.New("otp max length must be positive")
	// ErrInvalidGroups is returned when slot groups do not partition MaxLength.
	ErrInvalidGroups = errors.New("otp groups must be positive and sum to max length")
)

type (
	// Options configures an Input.
	Options struct {
		Document  *host.Document
		ID        host.ElementID
		MaxLength int
		// Groups splits the slots into visual groups, e.g. [3 3]. Empty means
		// a single group.
		Groups []int

		Value    *string
		Default  string
		OnChange func(string)

		Disabled bool
		Strict   bool
		Logger   *log.Logger
	}

	// Input is the segmented input state machine.
	Input struct {
		doc      *host.Document
		id       host.ElementID
		max      int
		groups   []int
		value    *cell.Cell[string]
		local    []string
		active   int
		disabled bool
		logger   *log.Logger
	}

	// ConfigError reports an invalid MaxLength or Groups option. It wraps
	// ErrInvalidMaxLength or ErrInvalidGroups.
	ConfigError struct {
		MaxLength int
		Groups    []int
		Err       error
	}
)

// New creates an Input. MaxLength must be positive and Groups, when set, must
// sum to MaxLength.
func New(opts Options) (*Input, error) {
	widget.MustRoot(opts.Document, "otp.Input", "host.Document")
	if err := ValidateLayout(opts.MaxLength, opts.Groups); err != nil {
		return nil, err
	}
	groups := opts.Groups
	if len(groups) == 0 {
		groups = []int{opts.MaxLength}
	}

	in := &Input{
		doc:      opts.Document,
		id:       opts.ID,
		max:      opts.MaxLength,
		groups:   groups,
		disabled: opts.Disabled,
		logger:   opts.Logger,
	}
	if in.id == "" {
		in.id = in.doc.NewID("otp")
	}
	if in.logger == nil {
		in.logger = in.doc.Logger()
	}
	in.value = cell.New(cell.Options[string]{
		Value:    opts.Value,
		Default:  opts.Default,
		OnChange: opts.OnChange,
		Strict:   opts.Strict,
	})
	in.local = in.split(opts.Default)
	return in, nil
}

// ValidateLayout checks a slot count and its optional grouping.
func ValidateLayout(maxLength int, groups []int) error {
	if maxLength <= 0 {
		return &ConfigError{MaxLength: maxLength, Err: ErrInvalidMaxLength}
	}
	if len(groups) == 0 {
		return nil
	}
	sum := 0
	for _, g := range groups {
		if g <= 0 {
			return &ConfigError{MaxLength: maxLength, Groups: groups, Err: ErrInvalidGroups}
		}
		sum += g
	}
	if sum != maxLength {
		return &ConfigError{MaxLength: maxLength, Groups: groups, Err: ErrInvalidGroups}
	}
	return nil
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	if len(e.Groups) == 0 {
		return fmt.Sprintf("%s (max length %d)", e.Err, e.MaxLength)
	}
	return fmt.Sprintf("%s (max length %d, groups %v)", e.Err, e.MaxLength, e.Groups)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *ConfigError) Unwrap() error { return e.Err }

// ID returns the root element id.
func (in *Input) ID() host.ElementID { return in.id }

// MaxLength returns the number of slots.
func (in *Input) MaxLength() int { return in.max }

// Groups returns the slot group sizes.
func (in *Input) Groups() []int { return append([]int(nil), in.groups...) }

// SlotID returns the element id of slot i.
func (in *Input) SlotID(i int) host.ElementID {
	return host.ElementID(string(in.id) + "-slot-" + strconv.Itoa(i))
}

// Slots returns the slot contents; empty slots are "". A controlled input
// derives them from the caller's string.
func (in *Input) Slots() []string {
	if in.value.Controlled() {
		return in.split(in.value.Get())
	}
	return append([]string(nil), in.local...)
}

// Value returns the slot contents joined without gaps.
func (in *Input) Value() string { return strings.Join(in.Slots(), "") }

// Complete reports whether every slot is filled.
func (in *Input) Complete() bool {
	for _, s := range in.Slots() {
		if s == "" {
			return false
		}
	}
	return true
}

// Active returns the focused slot index.
func (in *Input) Active() int { return in.active }

// Sync re-supplies the caller-owned value.
func (in *Input) Sync(value *string) error { return in.value.Sync(value) }

// SetDisabled enables or disables input.
func (in *Input) SetDisabled(disabled bool) { in.disabled = disabled }

// Focus makes slot i active, as a click on the slot does.
func (in *Input) Focus(i int) {
	if in.disabled || i < 0 || i >= in.max {
		return
	}
	in.active = i
	in.doc.Focus(in.SlotID(i))
}

// Type stores the last character of text in slot i and advances focus.
func (in *Input) Type(i int, text string) {
	if in.disabled || i < 0 || i >= in.max || text == "" {
		return
	}
	runes := []rune(text)
	slots := in.Slots()
	slots[i] = string(runes[len(runes)-1])
	in.update(slots)
	if i < in.max-1 {
		in.Focus(i + 1)
	} else {
		in.Focus(i)
	}
}

// Backspace clears slot i when filled; on an empty slot it clears the
// previous slot and moves focus there.
func (in *Input) Backspace(i int) {
	if in.disabled || i < 0 || i >= in.max {
		return
	}
	slots := in.Slots()
	switch {
	case slots[i] != "":
		slots[i] = ""
		in.update(slots)
	case i > 0:
		slots[i-1] = ""
		in.update(slots)
		in.Focus(i - 1)
	}
}

// Delete clears slot i and keeps focus.
func (in *Input) Delete(i int) {
	if in.disabled || i < 0 || i >= in.max {
		return
	}
	slots := in.Slots()
	if slots[i] == "" {
		return
	}
	slots[i] = ""
	in.update(slots)
}

// Paste fills slots from the start with the characters of text, dropping
// whatever does not fit, and focuses the last filled slot.
func (in *Input) Paste(text string) {
	if in.disabled {
		return
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	if len(runes) > in.max {
		runes = runes[:in.max]
	}
	slots := in.Slots()
	for i, r := range runes {
		slots[i] = string(r)
	}
	in.update(slots)
	in.Focus(len(runes) - 1)
	in.logger.Debug("otp paste", "id", in.id, "chars", len(runes))
}

// HandleKey applies a key press on slot i and reports whether it was handled.
func (in *Input) HandleKey(i int, ev event.KeyEvent) bool {
	if in.disabled {
		return false
	}
	switch ev.Key {
	case event.KeyBackspace:
		in.Backspace(i)
	case event.KeyDelete:
		in.Delete(i)
	case event.KeyArrowLeft:
		if i > 0 {
			in.Focus(i - 1)
		}
	case event.KeyArrowRight:
		if i < in.max-1 {
			in.Focus(i + 1)
		}
	case event.KeyHome:
		in.Focus(0)
	case event.KeyEnd:
		in.Focus(in.max - 1)
	default:
		if !ev.Printable() {
			return false
		}
		in.Type(i, ev.Text)
	}
	return true
}

// HandleFocusedKey routes ev to the active slot.
func (in *Input) HandleFocusedKey(ev event.KeyEvent) bool { return in.HandleKey(in.active, ev) }

// Nodes renders the slots in order with a separator node between groups.
func (in *Input) Nodes() []aria.Node {
	slots := in.Slots()
	nodes := make([]aria.Node, 0, in.max+len(in.groups)-1)
	i := 0
	for g, size := range in.groups {
		if g > 0 {
			nodes = append(nodes, aria.NewNode(string(in.id)+"-sep-"+strconv.Itoa(g), aria.RoleSeparator))
		}
		for range size {
			n := aria.NewNode(string(in.SlotID(i)), aria.RoleTextbox).
				Set("value", slots[i]).
				Set("maxlength", "1").
				Set("inputmode", "numeric").
				Set(aria.DataState, aria.State(slots[i] != "", "filled", "empty")).
				SetIf(i == in.active, "data-active", "true").
				SetIf(in.disabled, aria.Disabled, aria.Bool(true))
			nodes = append(nodes, n)
			i++
		}
	}
	return nodes
}

func (in *Input) update(slots []string) {
	if !in.value.Controlled() {
		in.local = slots
	}
	in.value.Request(strings.Join(slots, ""))
}

// split spreads s over the slots, one character each, padding with "".
func (in *Input) split(s string) []string {
	slots := make([]string, in.max)
	for i, r := range []rune(s) {
		if i >= in.max {
			break
		}
		slots[i] = string(r)
	}
	return slots
}
