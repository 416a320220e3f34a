// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/invowk/widgetkit/pkg/host"
)

func TestMustSetenv_Restores(t *testing.T) {
	const key = "WIDGETKIT_TESTUTIL_PROBE"
	cleanup := MustSetenv(t, key, "on")
	if got := os.Getenv(key); got != "on" {
		t.Fatalf("Getenv() = %q, want on", got)
	}
	cleanup()
	if _, ok := os.LookupEnv(key); ok {
		t.Error("cleanup must unset a variable that was not set before")
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := WriteFile(t, dir, "nested/config.cue", `log: level: "debug"`)
	if path != filepath.Join(dir, "nested", "config.cue") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != `log: level: "debug"` {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}

func TestAssertReleased_CleanDocument(t *testing.T) {
	t.Parallel()

	doc := host.NewDocument()
	s := doc.Listen("probe", host.Handlers{})
	token := doc.LockScroll("probe")
	s.Close()
	token.Release()
	AssertReleased(t, doc)
}
