// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"

	"github.com/invowk/widgetkit/pkg/host"
)

// AssertReleased fails the test when doc still holds a listener session, a
// scroll lock or a layer.
func AssertReleased(t testing.TB, doc *host.Document) {
	t.Helper()
	if n := doc.SessionCount(); n != 0 {
		t.Errorf("SessionCount() = %d, want 0 (owners %v)", n, doc.SessionOwners())
	}
	if doc.ScrollLocked() || doc.ScrollHolders() != 0 {
		t.Errorf("scroll lock leaked: locked=%v holders=%d", doc.ScrollLocked(), doc.ScrollHolders())
	}
	if top := doc.TopLayer(); top != "" {
		t.Errorf("TopLayer() = %q, want empty", top)
	}
}
