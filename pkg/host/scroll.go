// SPDX-License-Identifier: MPL-2.0

package host

import (
	"errors"
	"fmt"
)

const (
	// PolicyRefCount keeps the body locked while any token is held.
	PolicyRefCount ScrollPolicy = "refcount"
	// PolicyLastRelease unlocks the body on any release, even when other
	// tokens are still held. Kept for hosts that depend on that behavior.
	PolicyLastRelease ScrollPolicy = "last_release"
)

// ErrInvalidScrollPolicy is the sentinel error wrapped by InvalidScrollPolicyError.
var ErrInvalidScrollPolicy = errors.New("invalid scroll policy")

type (
	// ScrollPolicy selects how overlapping scroll locks interact.
	ScrollPolicy string

	// InvalidScrollPolicyError is returned when a ScrollPolicy value is not recognized.
	// It wraps ErrInvalidScrollPolicy for errors.Is() compatibility.
	InvalidScrollPolicyError struct {
		Value ScrollPolicy
	}

	// Body observes the body scroll lock.
	Body interface {
		SetScrollLocked(locked bool)
	}

	// ScrollToken is one acquisition of the body scroll lock.
	ScrollToken struct {
		owner    string
		doc      *Document
		released bool
	}

	scrollState struct {
		policy ScrollPolicy
		held   int
		locked bool
		body   Body
	}
)

// IsValid returns whether the ScrollPolicy is one of the defined values.
// The zero value is valid and means PolicyRefCount.
func (p ScrollPolicy) IsValid() (bool, []error) {
	switch p {
	case "", PolicyRefCount, PolicyLastRelease:
		return true, nil
	default:
		return false, []error{&InvalidScrollPolicyError{Value: p}}
	}
}

// Error implements the error interface for InvalidScrollPolicyError.
func (e *InvalidScrollPolicyError) Error() string {
	return fmt.Sprintf("invalid scroll policy %q (valid: refcount, last_release)", e.Value)
}

// Unwrap returns ErrInvalidScrollPolicy for errors.Is() compatibility.
func (e *InvalidScrollPolicyError) Unwrap() error { return ErrInvalidScrollPolicy }

// LockScroll acquires the body scroll lock for owner.
func (d *Document) LockScroll(owner string) *ScrollToken {
	d.scroll.held++
	d.setLocked(true)
	d.logger.Debug("scroll locked", "owner", owner, "held", d.scroll.held)
	return &ScrollToken{owner: owner, doc: d}
}

// Release gives the lock back. Only the first call has an effect.
func (t *ScrollToken) Release() {
	if t == nil || t.released {
		return
	}
	t.released = true
	d := t.doc
	d.scroll.held--
	switch d.scroll.policy {
	case PolicyLastRelease:
		d.setLocked(false)
	default:
		d.setLocked(d.scroll.held > 0)
	}
	d.logger.Debug("scroll released", "owner", t.owner, "held", d.scroll.held, "locked", d.scroll.locked)
}

// Released reports whether Release has run.
func (t *ScrollToken) Released() bool { return t == nil || t.released }

// ScrollLocked reports whether the body is currently scroll locked.
func (d *Document) ScrollLocked() bool { return d.scroll.locked }

// ScrollHolders returns the number of unreleased scroll tokens.
func (d *Document) ScrollHolders() int { return d.scroll.held }

func (d *Document) setLocked(locked bool) {
	if d.scroll.locked == locked {
		return
	}
	d.scroll.locked = locked
	if d.scroll.body != nil {
		d.scroll.body.SetScrollLocked(locked)
	}
}
