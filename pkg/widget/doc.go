// SPDX-License-Identifier: MPL-2.0

// Package widget holds the plumbing shared by every widget: structural misuse
// detection for leaf components and the default logger.
package widget
