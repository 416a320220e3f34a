// SPDX-License-Identifier: MPL-2.0

// Package tui is the interactive widget playground behind `widgetkit play`.
//
// Every page mounts real widgets on one shared host.Document and feeds them
// terminal key presses translated to event.KeyEvent. Pages render the ARIA
// nodes their widgets produce, so what the terminal shows is exactly the
// state a screen reader would see. Pages are switched through a tabs.Tabs
// widget, which keeps the page strip itself a tablist.
package tui
