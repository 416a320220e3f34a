// SPDX-License-Identifier: MPL-2.0

package mask

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is the sentinel error wrapped by UnknownPresetError.
var ErrUnknownPreset = errors.New("unknown mask preset")

type (
	// Presets maps preset names to patterns.
	Presets map[string]string

	// UnknownPresetError is returned when a preset name is not defined.
	// It wraps ErrUnknownPreset for errors.Is() compatibility.
	UnknownPresetError struct {
		Name  string
		Known []string
	}
)

// DefaultPresets returns the built-in presets.
func DefaultPresets() Presets {
	return Presets{
		"phone": "(999) 999-9999",
		"date":  "99/99/9999",
		"card":  "9999 9999 9999 9999",
		"zip":   "99999",
		"time":  "99:99",
	}
}

// Merge returns a copy of p with overrides applied on top.
func (p Presets) Merge(overrides map[string]string) Presets {
	out := make(Presets, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Template parses the named preset.
func (p Presets) Template(name string) (*Template, error) {
	pattern, ok := p[name]
	if !ok {
		return nil, &UnknownPresetError{Name: name, Known: p.Names()}
	}
	return Parse(pattern)
}

// IsValid parses every preset and returns the failures.
func (p Presets) IsValid() (bool, []error) {
	var errs []error
	for _, name := range p.Names() {
		if _, err := Parse(p[name]); err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", name, err))
		}
	}
	return len(errs) == 0, errs
}

// Error implements the error interface for UnknownPresetError.
func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown mask preset %q (known: %v)", e.Name, e.Known)
}

// Unwrap returns ErrUnknownPreset for errors.Is() compatibility.
func (e *UnknownPresetError) Unwrap() error { return ErrUnknownPreset }
