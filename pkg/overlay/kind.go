// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"errors"
	"fmt"
)

const (
	// KindModal overlays (Dialog, Sheet) trap focus, lock body scroll, render on
	// the top layer and are dismissed by their backdrop.
	KindModal Kind = "modal"
	// KindAnchored overlays (Popover, Select) are dismissed by pointer presses
	// outside their bounds.
	KindAnchored Kind = "anchored"
	// KindHover overlays (Tooltip) follow pointer hover and trigger focus.
	KindHover Kind = "hover"
)

const (
	PhaseClosed  Phase = "closed"
	PhaseOpening Phase = "opening"
	PhaseOpen    Phase = "open"
	PhaseClosing Phase = "closing"
)

// Reasons an overlay is asked to open or close.
const (
	ReasonTrigger      Reason = "trigger"
	ReasonEscape       Reason = "escape"
	ReasonBackdrop     Reason = "backdrop"
	ReasonOutside      Reason = "outside"
	ReasonCloseButton  Reason = "close_button"
	ReasonCommit       Reason = "commit"
	ReasonHover        Reason = "hover"
	ReasonProgrammatic Reason = "programmatic"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid overlay kind")

type (
	// Kind selects the dismissal strategy and side effects of an overlay.
	Kind string

	// Phase is the lifecycle state of an overlay.
	Phase string

	// Reason records what asked an overlay to change state.
	Reason string

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}
)

// IsValid returns whether the Kind is one of the defined values.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case KindModal, KindAnchored, KindHover:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid overlay kind %q (valid: modal, anchored, hover)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// Mounted reports whether content is rendered in this phase.
func (p Phase) Mounted() bool { return p != PhaseClosed }

// restoresFocus reports whether closing for r moves focus back to the trigger.
// Outside presses and hover changes leave focus where the user put it.
func (r Reason) restoresFocus(k Kind) bool {
	switch r {
	case ReasonOutside, ReasonHover:
		return false
	case ReasonProgrammatic:
		return k == KindModal
	default:
		return true
	}
}
