// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/invowk/widgetkit/internal/issue"
	"github.com/invowk/widgetkit/internal/testutil"
	"github.com/invowk/widgetkit/pkg/host"
)

func load(t *testing.T, dir string) (*Loaded, error) {
	t.Helper()
	return NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	got, err := load(t, t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Path != "" {
		t.Errorf("Path = %q, want empty", got.Path)
	}
	want := DefaultConfig()
	cfg := got.Config
	if cfg.Log.Level != want.Log.Level || cfg.ScrollLock != host.PolicyRefCount {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Slider != want.Slider || cfg.OTP.MaxLength != 6 {
		t.Errorf("slider/otp defaults = %+v / %+v", cfg.Slider, cfg.OTP)
	}
}

func TestLoad_CUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "config.cue", `
log: level: "debug"
strict_ownership: true
scroll_lock: "last_release"
slider: {min: 10, max: 20, step: 0.5}
otp: {max_length: 4, groups: [2, 2]}
mask: presets: iban: "aa99 9999 9999"
`)

	got, err := load(t, dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := got.Config
	if got.Path != filepath.Join(dir, "config.cue") {
		t.Errorf("Path = %q", got.Path)
	}
	if cfg.Log.Level != LogLevelDebug || !cfg.StrictOwnership || cfg.ScrollLock != host.PolicyLastRelease {
		t.Errorf("scalars = %+v", cfg)
	}
	if m := cfg.Slider.Mapper(); m.Min != 10 || m.Max != 20 || m.Step != 0.5 {
		t.Errorf("Slider.Mapper() = %+v", m)
	}
	if cfg.OTP.MaxLength != 4 || len(cfg.OTP.Groups) != 2 {
		t.Errorf("OTP = %+v", cfg.OTP)
	}
	presets := cfg.Mask.MergedPresets()
	if presets["iban"] != "aa99 9999 9999" || presets["phone"] == "" {
		t.Errorf("MergedPresets() = %v", presets)
	}
}

func TestLoad_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"schema enum", `scroll_lock: "sometimes"`, "scroll_lock"},
		{"unknown field", `theme: "neo"`, "theme"},
		{"non-positive step", `slider: step: 0`, "step"},
		{"inverted range", `slider: {min: 5, max: 1}`, "invalid slider range"},
		{"groups do not sum", `otp: {max_length: 6, groups: [2, 2]}`, "sum to max length"},
		{"alphanumeric literal", `mask: presets: code: "X-999"`, "code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.WriteFile(t, dir, "config.cue", tt.content)
			_, err := load(t, dir)
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Errorf("error %T is not an ActionableError", err)
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantIn)
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || !ae.HasSuggestions() {
		t.Errorf("Load() error = %v, want actionable error with suggestions", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "config.cue", `log: level: "warn"`)
	defer testutil.MustSetenv(t, "WIDGETKIT_LOG_LEVEL", "error")()
	defer testutil.MustSetenv(t, "WIDGETKIT_SLIDER_STEP", "5")()

	got, err := load(t, dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Config.Log.Level != LogLevelError {
		t.Errorf("Log.Level = %s, want env override", got.Config.Log.Level)
	}
	if got.Config.Slider.Step != 5 {
		t.Errorf("Slider.Step = %v, want 5", got.Config.Slider.Step)
	}
}

func TestLoad_WorkingDirectoryFallback(t *testing.T) {
	// Not parallel: changes the process working directory.
	wd := t.TempDir()
	testutil.WriteFile(t, wd, "config.cue", `otp: max_length: 4`)
	defer testutil.MustChdir(t, wd)()

	got, err := load(t, t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Path != "config.cue" {
		t.Errorf("Path = %q, want the working directory file", got.Path)
	}
	if got.Config.OTP.MaxLength != 4 {
		t.Errorf("OTP.MaxLength = %d, want 4", got.Config.OTP.MaxLength)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	defer testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/xdg")()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("ConfigDir() = %q", dir)
	}
}

func TestCreateDefaultConfig_RoundTrips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}
	got, err := load(t, dir)
	if err != nil {
		t.Fatalf("Load() of the generated file error = %v", err)
	}
	if got.Path != path || got.Config.OTP.MaxLength != DefaultConfig().OTP.MaxLength {
		t.Errorf("reloaded = %+v from %q", got.Config, got.Path)
	}
}

func TestGenerateCUE_Presets(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.OTP.Groups = []int{3, 3}
	cfg.Mask.Presets["plate"] = "aaa-9999"
	out := GenerateCUE(cfg)
	for _, want := range []string{`groups: [3, 3]`, `"plate": "aaa-9999"`, `scroll_lock: "refcount"`} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, out)
		}
	}
}

func TestMarshalTOML(t *testing.T) {
	t.Parallel()

	out, err := MarshalTOML(DefaultConfig())
	if err != nil {
		t.Fatalf("MarshalTOML() error = %v", err)
	}
	for _, want := range []string{"scroll_lock = 'refcount'", "[slider]", "max_length = 6"} {
		if !strings.Contains(out, want) {
			t.Errorf("MarshalTOML() missing %q:\n%s", want, out)
		}
	}
}
