// SPDX-License-Identifier: MPL-2.0

// Package cell resolves whether a widget value is owned by the caller
// (controlled) or by the widget instance (uncontrolled).
package cell

import (
	"errors"
	"fmt"
)

// ErrOwnershipSwitch is the sentinel error wrapped by OwnershipSwitchError.
var ErrOwnershipSwitch = errors.New("value ownership changed after mount")

type (
	// Options configures a Cell. A non-nil Value makes the cell controlled for
	// its whole lifetime.
	Options[T any] struct {
		// Value is the caller-owned value. Nil means uncontrolled.
		Value *T
		// Default seeds an uncontrolled cell.
		Default T
		// OnChange is invoked with every requested value.
		OnChange func(T)
		// Strict turns ownership switches into panics.
		Strict bool
	}

	// Cell is a value with exactly one owner, fixed at construction.
	Cell[T any] struct {
		controlled bool
		value      T
		onChange   func(T)
		strict     bool
	}

	// OwnershipSwitchError reports a Sync call that would move ownership of a
	// value between the caller and the widget.
	OwnershipSwitchError struct {
		// WasControlled is the ownership fixed at construction.
		WasControlled bool
	}
)

// New creates a Cell from opts.
func New[T any](opts Options[T]) *Cell[T] {
	c := &Cell[T]{
		controlled: opts.Value != nil,
		onChange:   opts.OnChange,
		strict:     opts.Strict,
	}
	if c.controlled {
		c.value = *opts.Value
	} else {
		c.value = opts.Default
	}
	return c
}

// Controlled reports whether the caller owns the value.
func (c *Cell[T]) Controlled() bool { return c.controlled }

// Get returns the current value: the last value supplied by the caller when
// controlled, the local state otherwise.
func (c *Cell[T]) Get() T { return c.value }

// Request asks for v to become the value. A controlled cell only notifies
// OnChange and waits for the caller to Sync; an uncontrolled cell stores v
// first and then notifies.
func (c *Cell[T]) Request(v T) {
	if !c.controlled {
		c.value = v
	}
	if c.onChange != nil {
		c.onChange(v)
	}
}

// Sync re-supplies the caller's value, as a host does on every render. value
// must be non-nil exactly when the cell is controlled; anything else is an
// ownership switch, rejected with *OwnershipSwitchError (or a panic in
// strict mode) and leaving the cell untouched.
func (c *Cell[T]) Sync(value *T) error {
	if (value != nil) != c.controlled {
		err := &OwnershipSwitchError{WasControlled: c.controlled}
		if c.strict {
			panic(err)
		}
		return err
	}
	if value != nil {
		c.value = *value
	}
	return nil
}

// SetOnChange replaces the change callback.
func (c *Cell[T]) SetOnChange(fn func(T)) { c.onChange = fn }

// Error implements the error interface for OwnershipSwitchError.
func (e *OwnershipSwitchError) Error() string {
	if e.WasControlled {
		return fmt.Sprintf("%s: controlled value became uncontrolled", ErrOwnershipSwitch)
	}
	return fmt.Sprintf("%s: uncontrolled value became controlled", ErrOwnershipSwitch)
}

// Unwrap returns ErrOwnershipSwitch for errors.Is() compatibility.
func (e *OwnershipSwitchError) Unwrap() error { return ErrOwnershipSwitch }
