// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/otp"
	"github.com/invowk/widgetkit/pkg/slider"
)

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		valid bool
		want  log.Level
	}{
		{LogLevelDebug, true, log.DebugLevel},
		{LogLevelInfo, true, log.InfoLevel},
		{LogLevelWarn, true, log.WarnLevel},
		{LogLevelError, true, log.ErrorLevel},
		{"trace", false, log.InfoLevel},
	}
	for _, tt := range tests {
		ok, errs := tt.level.IsValid()
		if ok != tt.valid {
			t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.level, ok, tt.valid)
		}
		if !ok && !errors.Is(errs[0], ErrInvalidLogLevel) {
			t.Errorf("LogLevel(%q) error does not wrap ErrInvalidLogLevel", tt.level)
		}
		if got := tt.level.Level(); got != tt.want {
			t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if ok, _ := c.IsValid(); !ok {
			t.Errorf("ColorScheme(%q) should be valid", c)
		}
	}
	ok, errs := ColorScheme("sepia").IsValid()
	if ok || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("ColorScheme(sepia).IsValid() = %v, %v", ok, errs)
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"scroll policy", func(c *Config) { c.ScrollLock = "sometimes" }, host.ErrInvalidScrollPolicy},
		{"slider step", func(c *Config) { c.Slider.Step = 0 }, slider.ErrInvalidStep},
		{"otp length", func(c *Config) { c.OTP.MaxLength = 0 }, otp.ErrInvalidMaxLength},
		{"otp groups", func(c *Config) { c.OTP.Groups = []int{4, 4} }, otp.ErrInvalidGroups},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			ok, errs := cfg.IsValid()
			if tt.want == nil {
				if !ok {
					t.Errorf("IsValid() errors = %v", errs)
				}
				return
			}
			if ok {
				t.Fatal("IsValid() = true")
			}
			var ice *InvalidConfigError
			if !errors.As(errs[0], &ice) || !errors.Is(errs[0], ErrInvalidConfig) {
				t.Fatalf("error %v is not an InvalidConfigError", errs[0])
			}
			if !errors.Is(ice.FieldErrors[0], tt.want) {
				t.Errorf("field error = %v, want %v", ice.FieldErrors[0], tt.want)
			}
		})
	}
}
