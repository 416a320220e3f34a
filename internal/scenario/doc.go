// SPDX-License-Identifier: MPL-2.0

// Package scenario replays scripted interactions against headless widgets.
//
// A scenario is a CUE file naming one widget, its options and a list of
// steps: key presses, typed text, pastes, clicks, pointer events and
// expectations about the resulting state. The Runner mounts the widget on a
// fresh host document, replays every step, unmounts the widget and reports
// failed expectations together with any listener, scroll lock or layer the
// widget left behind.
package scenario
