// SPDX-License-Identifier: MPL-2.0

// Package overlay implements the open/close lifecycle shared by dialogs,
// sheets, popovers, selects and tooltips.
//
// An Engine owns the open state (through a controlled/uncontrolled cell) and,
// while open, one Session holding every side effect of the open overlay: the
// document listener for Escape and outside pointer presses, the body scroll
// lock and layer for modal kinds, the focus trap snapshot, and the trigger to
// restore focus to. The session is released exactly once per open, however the
// overlay ends up closing.
package overlay
