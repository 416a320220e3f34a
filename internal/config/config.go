// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/invowk/widgetkit/internal/cueutil"
	"github.com/invowk/widgetkit/internal/issue"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "widgetkit"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (WIDGETKIT_LOG_LEVEL).
	EnvPrefix = "WIDGETKIT"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the widgetkit configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'widgetkit config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Mask.Presets == nil {
		cfg.Mask.Presets = map[string]string{}
	}

	// Constraints CUE cannot express: slider min below max, OTP groups
	// summing to max_length, preset patterns that parse.
	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Ensure slider.min is below slider.max and slider.step is positive").
			WithSuggestion("Ensure otp.groups add up to otp.max_length").
			WithSuggestion("Mask patterns may only use 9, a, * and punctuation literals").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, path, nil
}

// resolvePath picks the config file: an explicit path must exist, otherwise
// the config directory is searched, then the current directory. An empty
// result means built-in defaults.
func resolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}
	name := ConfigFileName + "." + ConfigFileExt
	if p := filepath.Join(cfgDir, name); fileExists(p) {
		return p, nil
	}
	if fileExists(name) {
		return name, nil
	}
	return "", nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("strict_ownership", d.StrictOwnership)
	v.SetDefault("scroll_lock", d.ScrollLock)
	v.SetDefault("slider.min", d.Slider.Min)
	v.SetDefault("slider.max", d.Slider.Max)
	v.SetDefault("slider.step", d.Slider.Step)
	v.SetDefault("otp.max_length", d.OTP.MaxLength)
	v.SetDefault("otp.groups", d.OTP.Groups)
	v.SetDefault("mask.presets", d.Mask.Presets)
	v.SetDefault("ui.color_scheme", d.UI.ColorScheme)
	v.SetDefault("ui.verbose", d.UI.Verbose)
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper. Fields are optional, so values need not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	unified, err := cueutil.Unify(configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file into cfgDir (the
// platform config directory when empty) unless one exists, and returns its path.
func CreateDefaultConfig(cfgDir string) (string, error) {
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}
	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// widgetkit configuration file\n\n")
	fmt.Fprintf(&sb, "log: level: %q\n", cfg.Log.Level)
	fmt.Fprintf(&sb, "strict_ownership: %v\n", cfg.StrictOwnership)
	fmt.Fprintf(&sb, "scroll_lock: %q\n", cfg.ScrollLock)

	sb.WriteString("\nslider: {\n")
	fmt.Fprintf(&sb, "\tmin:  %v\n", cfg.Slider.Min)
	fmt.Fprintf(&sb, "\tmax:  %v\n", cfg.Slider.Max)
	fmt.Fprintf(&sb, "\tstep: %v\n", cfg.Slider.Step)
	sb.WriteString("}\n")

	sb.WriteString("\notp: {\n")
	fmt.Fprintf(&sb, "\tmax_length: %d\n", cfg.OTP.MaxLength)
	if len(cfg.OTP.Groups) > 0 {
		groups := make([]string, len(cfg.OTP.Groups))
		for i, g := range cfg.OTP.Groups {
			groups[i] = fmt.Sprint(g)
		}
		fmt.Fprintf(&sb, "\tgroups: [%s]\n", strings.Join(groups, ", "))
	}
	sb.WriteString("}\n")

	if len(cfg.Mask.Presets) > 0 {
		sb.WriteString("\nmask: presets: {\n")
		for _, name := range cfg.Mask.MergedPresets().Names() {
			if pattern, ok := cfg.Mask.Presets[name]; ok {
				fmt.Fprintf(&sb, "\t%q: %q\n", name, pattern)
			}
		}
		sb.WriteString("}\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

// MarshalTOML renders the configuration as TOML for display.
func MarshalTOML(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
