// SPDX-License-Identifier: MPL-2.0

package event

import (
	"errors"
	"fmt"
)

const (
	// Horizontal lays peers out left to right.
	Horizontal Orientation = "horizontal"
	// Vertical lays peers out top to bottom.
	Vertical Orientation = "vertical"
	// Both accepts arrows on either axis (used by radio groups and sliders).
	Both Orientation = "both"
)

const (
	// DirNone means the key does not navigate.
	DirNone Direction = iota
	// DirNext moves to the following peer.
	DirNext
	// DirPrev moves to the preceding peer.
	DirPrev
	// DirFirst jumps to the first peer.
	DirFirst
	// DirLast jumps to the last peer.
	DirLast
)

// ErrInvalidOrientation is the sentinel error wrapped by InvalidOrientationError.
var ErrInvalidOrientation = errors.New("invalid orientation")

type (
	// Orientation is the layout axis of a group of peers.
	Orientation string

	// Direction is a navigation request within an ordered set.
	Direction int

	// InvalidOrientationError is returned when an Orientation value is not recognized.
	// It wraps ErrInvalidOrientation for errors.Is() compatibility.
	InvalidOrientationError struct {
		Value Orientation
	}
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirNext:
		return "next"
	case DirPrev:
		return "prev"
	case DirFirst:
		return "first"
	case DirLast:
		return "last"
	default:
		return "none"
	}
}

// IsValid returns whether the Orientation is one of the defined values.
// The zero value is valid and means Horizontal.
func (o Orientation) IsValid() (bool, []error) {
	switch o {
	case "", Horizontal, Vertical, Both:
		return true, nil
	default:
		return false, []error{&InvalidOrientationError{Value: o}}
	}
}

// OrDefault returns o, or def when o is empty.
func (o Orientation) OrDefault(def Orientation) Orientation {
	if o == "" {
		return def
	}
	return o
}

// Error implements the error interface for InvalidOrientationError.
func (e *InvalidOrientationError) Error() string {
	return fmt.Sprintf("invalid orientation %q (valid: horizontal, vertical, both)", e.Value)
}

// Unwrap returns ErrInvalidOrientation for errors.Is() compatibility.
func (e *InvalidOrientationError) Unwrap() error { return ErrInvalidOrientation }

// DirectionForKey maps an arrow, Home or End key to a Direction for peers laid
// out along o. Arrows on the other axis map to DirNone.
func DirectionForKey(k Key, o Orientation) Direction {
	o = o.OrDefault(Horizontal)
	switch k {
	case KeyHome:
		return DirFirst
	case KeyEnd:
		return DirLast
	case KeyArrowRight:
		if o != Vertical {
			return DirNext
		}
	case KeyArrowLeft:
		if o != Vertical {
			return DirPrev
		}
	case KeyArrowDown:
		if o != Horizontal {
			return DirNext
		}
	case KeyArrowUp:
		if o != Horizontal {
			return DirPrev
		}
	}
	return DirNone
}
