// SPDX-License-Identifier: MPL-2.0

// Package host provides Document, the explicit stand-in for a browser document
// that every widget instance is attached to.
//
// A Document owns the only state shared between otherwise independent widget
// instances: keyboard focus, the table of interaction sessions that receive
// document-level key and pointer events, the body scroll lock, and the layer
// stack used to render modal content above everything else.
//
// A Document is not safe for concurrent use. All calls happen on the host's
// event loop, one input event at a time.
package host
