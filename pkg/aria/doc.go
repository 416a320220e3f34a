// SPDX-License-Identifier: MPL-2.0

// Package aria describes the accessible output a host renders for a widget:
// the role, the ARIA state attributes and any companion hidden form input.
// These attributes are part of each widget's contract, not decoration.
package aria
