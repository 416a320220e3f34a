// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/widgetkit/internal/config"
	"github.com/invowk/widgetkit/internal/testutil"
	"github.com/invowk/widgetkit/pkg/mask"
)

type stubProvider struct {
	cfg  *config.Config
	path string
	err  error
}

func (p stubProvider) Load(context.Context, config.LoadOptions) (*config.Loaded, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := p.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &config.Loaded{Config: cfg, Path: p.path}, nil
}

// execute runs the command tree with args against in-memory streams.
func execute(t *testing.T, provider config.Provider, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: provider,
		Stdout: &stdout,
		Stderr: &stderr,
		Stdin:  strings.NewReader(""),
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestConfigLoading(t *testing.T) {
	t.Parallel()

	broken := stubProvider{err: errors.New("schema mismatch")}

	_, stderr, err := execute(t, broken, "mask", "presets")
	if err != nil {
		t.Fatalf("implicit config failure must not be fatal: %v", err)
	}
	if !strings.Contains(stderr, "Warning: ") || !strings.Contains(stderr, "schema mismatch") {
		t.Errorf("stderr = %q, want a warning with the cause", stderr)
	}

	_, _, err = execute(t, broken, "--config", "/nope/config.cue", "mask", "presets")
	if err == nil || !strings.Contains(err.Error(), "schema mismatch") {
		t.Errorf("explicit config failure = %v, want the load error", err)
	}
}

func TestMaskFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		want     string
		wantCode int
		wantErr  error
	}{
		{"pattern", []string{"--pattern", "(999) 999-9999", "5551234567"}, "(555) 123-4567\n", 0, nil},
		{"preset", []string{"--preset", "date", "01022024", "0102"}, "01/02/2024\n01/02\n", 0, nil},
		{"incomplete with --complete", []string{"--preset", "zip", "--complete", "123"}, "123\n", ExitFailure, nil},
		{"unknown preset", []string{"--preset", "iban", "1"}, "", ExitUsage, mask.ErrUnknownPreset},
		{"alphanumeric literal", []string{"--pattern", "99Z", "12"}, "", ExitUsage, mask.ErrAlnumLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, stubProvider{}, append([]string{"mask", "format"}, tt.args...)...)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("error = %v", err)
				}
			} else if got := exitCode(err); got != tt.wantCode {
				t.Fatalf("exit code = %d (%v), want %d", got, err, tt.wantCode)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestMaskFormat_RequiresPatternOrPreset(t *testing.T) {
	t.Parallel()

	if _, _, err := execute(t, stubProvider{}, "mask", "format", "123"); err == nil {
		t.Error("format without --pattern or --preset must fail")
	}
	if _, _, err := execute(t, stubProvider{}, "mask", "format", "--pattern", "99", "--preset", "zip", "1"); err == nil {
		t.Error("--pattern and --preset together must fail")
	}
}

func TestMaskPresets(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Mask.Presets = map[string]string{"plate": "aaa-9999", "zip": "99999-9999"}
	stdout, _, err := execute(t, stubProvider{cfg: cfg}, "mask", "presets")
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	for _, want := range []string{"phone", "(999) 999-9999", "plate", "(configured)", "(overrides 99999)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, stubProvider{}, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"(using defaults)", "scroll_lock = 'refcount'", "[slider]"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = execute(t, stubProvider{path: "/etc/widgetkit/config.cue"}, "config", "dump")
	if err != nil {
		t.Fatalf("config dump error = %v", err)
	}
	if !strings.Contains(stdout, `scroll_lock: "refcount"`) {
		t.Errorf("config dump = %q", stdout)
	}

	dir := t.TempDir()
	stdout, _, err = execute(t, stubProvider{}, "config", "init", "--dir", dir)
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if want := filepath.Join(dir, "config.cue"); !strings.Contains(stdout, want) {
		t.Errorf("config init = %q, want path %s", stdout, want)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pass := testutil.WriteFile(t, dir, "pass.cue", `name: "otp paste"
widget: {kind: "otp", max_length: 4}
steps: [
	{paste: "12345"},
	{expect: {value: "1234", complete: true}},
]
`)
	fail := testutil.WriteFile(t, dir, "fail.cue", `widget: {kind: "switch"}
steps: [
	{key: "Space"},
	{expect: checked: false},
]
`)
	broken := testutil.WriteFile(t, dir, "broken.cue", `widget: {kind: "spinner"}
steps: [{key: "Enter"}]
`)

	stdout, _, err := execute(t, stubProvider{}, "run", pass)
	if err != nil {
		t.Fatalf("passing scenario error = %v", err)
	}
	if !strings.Contains(stdout, "otp paste") || !strings.Contains(stdout, "1 passed") {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, _, err = execute(t, stubProvider{}, "run", "--fail-fast", fail, pass)
	if exitCode(err) != ExitFailure {
		t.Fatalf("failing scenario error = %v, want exit %d", err, ExitFailure)
	}
	if !strings.Contains(stdout, "checked = ") || !strings.Contains(stdout, "0 passed, 1 failed") {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, _, err = execute(t, stubProvider{}, "run", "--verbose", pass)
	if err != nil {
		t.Fatalf("verbose run error = %v", err)
	}
	if !strings.Contains(stdout, "steps[0]") || !strings.Contains(stdout, `value="1234"`) {
		t.Errorf("verbose stdout = %q", stdout)
	}

	if _, _, err = execute(t, stubProvider{}, "run", broken); exitCode(err) != ExitUsage {
		t.Errorf("schema error = %v, want exit %d", err, ExitUsage)
	}
	_, _, err = execute(t, stubProvider{}, "run", filepath.Join(dir, "missing.cue"))
	if exitCode(err) != ExitUsage || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want exit %d wrapping fs.ErrNotExist", err, ExitUsage)
	}
}

func TestPlay_RequiresTerminal(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, stubProvider{}, "play")
	if exitCode(err) != ExitUsage || !errors.Is(err, ErrTerminalRequired) {
		t.Errorf("error = %v, want ErrTerminalRequired with exit %d", err, ExitUsage)
	}
}
