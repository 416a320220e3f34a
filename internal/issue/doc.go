// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into user-facing guidance for the widgetkit CLI.
//
// ActionableError carries the failed operation, the resource involved and a
// list of suggestions. Issue is a catalog entry with Markdown remediation text
// rendered through glamour when the CLI reports a known failure class.
package issue
