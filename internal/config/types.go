// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/mask"
	"github.com/invowk/widgetkit/pkg/otp"
	"github.com/invowk/widgetkit/pkg/slider"
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Log configures the CLI logger.
		Log LogConfig `json:"log" mapstructure:"log" toml:"log"`
		// StrictOwnership turns controlled/uncontrolled switches into panics.
		StrictOwnership bool `json:"strict_ownership" mapstructure:"strict_ownership" toml:"strict_ownership"`
		// ScrollLock selects how overlapping modal scroll locks interact.
		ScrollLock host.ScrollPolicy `json:"scroll_lock" mapstructure:"scroll_lock" toml:"scroll_lock"`
		// Slider holds the default slider bounds.
		Slider SliderConfig `json:"slider" mapstructure:"slider" toml:"slider"`
		// OTP holds the default one-time-password layout.
		OTP OTPConfig `json:"otp" mapstructure:"otp" toml:"otp"`
		// Mask adds or overrides named mask patterns.
		Mask MaskConfig `json:"mask" mapstructure:"mask" toml:"mask"`
		// UI configures the playground and CLI output.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// LogConfig configures the CLI logger.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level"`
	}

	// SliderConfig holds the default slider bounds.
	SliderConfig struct {
		Min  float64 `json:"min" mapstructure:"min" toml:"min"`
		Max  float64 `json:"max" mapstructure:"max" toml:"max"`
		Step float64 `json:"step" mapstructure:"step" toml:"step"`
	}

	// OTPConfig holds the default one-time-password layout.
	OTPConfig struct {
		MaxLength int   `json:"max_length" mapstructure:"max_length" toml:"max_length"`
		Groups    []int `json:"groups" mapstructure:"groups" toml:"groups"`
	}

	// MaskConfig adds or overrides named mask patterns.
	MaskConfig struct {
		Presets map[string]string `json:"presets" mapstructure:"presets" toml:"presets"`
	}

	// UIConfig configures the playground and CLI output.
	UIConfig struct {
		// ColorScheme sets the color scheme ("auto", "dark", "light")
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	m := slider.DefaultMapper
	return &Config{
		Log:        LogConfig{Level: LogLevelInfo},
		ScrollLock: host.PolicyRefCount,
		Slider:     SliderConfig{Min: m.Min, Max: m.Max, Step: m.Step},
		OTP:        OTPConfig{MaxLength: 6},
		Mask:       MaskConfig{Presets: map[string]string{}},
		UI:         UIConfig{ColorScheme: ColorSchemeAuto},
	}
}

// IsValid returns whether the LogLevel is one of the defined values.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts l to a charmbracelet/log level. Unknown values map to info.
func (l LogLevel) Level() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelWarn:
		return log.WarnLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid returns whether the ColorScheme is one of the defined values.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Mapper returns the slider bounds as a slider.Mapper.
func (s SliderConfig) Mapper() slider.Mapper {
	return slider.Mapper{Min: s.Min, Max: s.Max, Step: s.Step}
}

// MergedPresets returns the built-in mask presets with the configured overrides applied.
func (m MaskConfig) MergedPresets() mask.Presets {
	return mask.DefaultPresets().Merge(m.Presets)
}

// IsValid returns whether every field of the Config holds a value the widgets accept.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.Log.Level.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.ScrollLock.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Slider.Mapper().IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if err := otp.ValidateLayout(c.OTP.MaxLength, c.OTP.Groups); err != nil {
		errs = append(errs, err)
	}
	if ok, fieldErrs := c.Mask.MergedPresets().IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
