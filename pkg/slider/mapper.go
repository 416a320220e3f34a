// SPDX-License-Identifier: MPL-2.0

// Package slider maps pointer positions and key presses onto step-quantized
// values, and drives single and multi-thumb sliders on a host document.
package slider

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/invowk/widgetkit/pkg/event"
)

var (
	// ErrInvalidRange is returned when min is not below max or a bound is NaN.
	ErrInvalidRange = errors.New("invalid slider range")
	// ErrInvalidStep is returned when step is not a positive number.
	ErrInvalidStep = errors.New("invalid slider step")

	// DefaultMapper is used when Options leaves the mapper unset.
	DefaultMapper = Mapper{Min: 0, Max: 100, Step: 1}
)

type (
	// Mapper converts track fractions and keyboard steps into values in
	// [Min, Max] snapped to multiples of Step.
	Mapper struct {
		Min  float64
		Max  float64
		Step float64
	}

	// InvalidMapperError reports the bounds that failed validation. It wraps
	// ErrInvalidRange or ErrInvalidStep.
	InvalidMapperError struct {
		Mapper Mapper
		Err    error
	}
)

// IsValid returns whether the mapper can produce values.
func (m Mapper) IsValid() (bool, []error) {
	var errs []error
	if math.IsNaN(m.Min) || math.IsNaN(m.Max) || m.Min >= m.Max {
		errs = append(errs, &InvalidMapperError{Mapper: m, Err: ErrInvalidRange})
	}
	if math.IsNaN(m.Step) || m.Step <= 0 {
		errs = append(errs, &InvalidMapperError{Mapper: m, Err: ErrInvalidStep})
	}
	return len(errs) == 0, errs
}

// Error implements the error interface for InvalidMapperError.
func (e *InvalidMapperError) Error() string {
	return fmt.Sprintf("%s (min=%g, max=%g, step=%g)", e.Err, e.Mapper.Min, e.Mapper.Max, e.Mapper.Step)
}

// Unwrap returns the sentinel for errors.Is() compatibility.
func (e *InvalidMapperError) Unwrap() error { return e.Err }

// Value maps a track fraction to a value:
// clamp(round((f*(max-min)+min)/step)*step, min, max).
// f is clamped to [0, 1] first.
func (m Mapper) Value(f float64) float64 {
	f = clamp01(f)
	return m.Snap(f*(m.Max-m.Min) + m.Min)
}

// Snap rounds v to the nearest multiple of Step, trims floating point noise
// to the step's precision, and clamps the result into range.
func (m Mapper) Snap(v float64) float64 {
	stepped := math.Round(v/m.Step) * m.Step
	return m.Clamp(roundTo(stepped, decimals(m.Step)))
}

// Clamp limits v to [Min, Max].
func (m Mapper) Clamp(v float64) float64 {
	return math.Min(math.Max(v, m.Min), m.Max)
}

// Nudge moves v by n steps.
func (m Mapper) Nudge(v float64, n int) float64 {
	return m.Snap(v + float64(n)*m.Step)
}

// Percent returns v's position in the range as 0-100.
func (m Mapper) Percent(v float64) float64 {
	return (m.Clamp(v) - m.Min) / (m.Max - m.Min) * 100
}

// Fraction returns the position of p along track as a value in [0, 1].
// Horizontal tracks grow to the right, vertical tracks grow upward. An empty
// track yields 0.
func Fraction(track event.Rect, p event.Point, o event.Orientation) float64 {
	if track.Empty() {
		return 0
	}
	if o == event.Vertical {
		return clamp01((track.Y + track.H - p.Y) / track.H)
	}
	return clamp01((p.X - track.X) / track.W)
}

// NearestThumb returns the index of the value closest to v. Ties resolve to
// the lowest index. It returns -1 for no values.
func NearestThumb(values []float64, v float64) int {
	best, bestDiff := -1, math.Inf(1)
	for i, val := range values {
		if diff := math.Abs(val - v); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Min(math.Max(f, 0), 1)
}

// decimals counts the fractional digits of step as written in shortest form.
func decimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
