// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for widgetkit tests: environment and
// working-directory management with cleanup (MustSetenv, MustChdir), fixture
// files (WriteFile), and host document leak checks (AssertReleased).
package testutil
