// SPDX-License-Identifier: MPL-2.0

// Package config handles widgetkit configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/widgetkit/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/widgetkit/config.cue on macOS, %APPDATA%\widgetkit\config.cue
// on Windows), falling back to ./config.cue. WIDGETKIT_* environment variables override
// file values, e.g. WIDGETKIT_LOG_LEVEL=debug or WIDGETKIT_SLIDER_STEP=5.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) and then
// against the widget constructors' own rules, so a config that loads is one every widget
// accepts.
package config
