// SPDX-License-Identifier: MPL-2.0

// Package event defines the host-neutral input events consumed by the widget
// state machines: keys with modifiers, pointer positions against rectangles,
// and the navigation directions derived from them.
package event
