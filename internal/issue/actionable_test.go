// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{"operation only", &ActionableError{Operation: "run scenario"}, "failed to run scenario"},
		{
			"operation with resource",
			&ActionableError{Operation: "run scenario", Resource: "./otp.cue"},
			"failed to run scenario: ./otp.cue",
		},
		{
			"operation with cause",
			&ActionableError{Operation: "parse pattern", Cause: errors.New("empty")},
			"failed to parse pattern: empty",
		},
		{
			"full context",
			&ActionableError{Operation: "load configuration", Resource: "config.cue", Cause: errors.New("not found")},
			"failed to load configuration: config.cue: not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().WithOperation("format value").Wrap(sentinel).BuildError()
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is must see the wrapped cause")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Operation != "format value" {
		t.Errorf("errors.As() = %v", ae)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("offset 3")
	err := &ActionableError{
		Operation:   "parse pattern",
		Resource:    "99-a",
		Suggestions: []string{"Use 9, a or *", "Escape literals"},
		Cause:       errors.Join(inner),
	}

	plain := err.Format(false)
	if !strings.Contains(plain, "\n  • Use 9, a or *") || !strings.Contains(plain, "\n  • Escape literals") {
		t.Errorf("Format(false) = %q", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Error("Format(false) must not print the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. offset 3") {
		t.Errorf("Format(true) = %q", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation must return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want untyped nil", err)
	}

	ctx := NewErrorContext().WithOperation("load configuration").WithSuggestions("a", "b")
	first := ctx.Build()
	second := ctx.WithSuggestion("c").Build()
	if len(first.Suggestions) != 2 || len(second.Suggestions) != 3 {
		t.Errorf("suggestions = %v / %v", first.Suggestions, second.Suggestions)
	}
	if !second.HasSuggestions() || (&ActionableError{}).HasSuggestions() {
		t.Error("HasSuggestions() mismatch")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) must return nil")
	}
	got := WrapWithContext(errors.New("boom"), "run scenario", "s.cue")
	if got.Error() != "failed to run scenario: s.cue: boom" {
		t.Errorf("Error() = %q", got.Error())
	}
}
