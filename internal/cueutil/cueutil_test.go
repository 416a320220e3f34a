// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Widget: {
	kind:   "mask" | "otp"
	size:   int & >0
	label?: string
}
`

type testWidget struct {
	Kind  string `json:"kind"`
	Size  int    `json:"size"`
	Label string `json:"label,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"valid", `kind: "otp", size: 6`, ""},
		{"optional label", `kind: "mask", size: 10, label: "Phone"`, ""},
		{"bad enum", `kind: "dial", size: 1`, "kind"},
		{"bad constraint", `kind: "otp", size: 0`, "size"},
		{"unknown field", `kind: "otp", size: 4, colour: "red"`, "colour"},
		{"syntax", `kind: `, "widget.cue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := ParseAndDecode[testWidget]([]byte(testSchema), []byte(tt.data), "#Widget", WithFilename("widget.cue"))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseAndDecode() error = %v", err)
				}
				if res.Value.Kind == "" || res.Value.Size == 0 {
					t.Errorf("decoded = %+v", res.Value)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseAndDecode() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestUnify_NonConcrete(t *testing.T) {
	t.Parallel()

	if _, err := Unify([]byte(testSchema), []byte(`kind: "otp"`), "#Widget", WithConcrete(false)); err != nil {
		t.Errorf("Unify(concrete=false) error = %v", err)
	}
	if _, err := Unify([]byte(testSchema), []byte(`kind: "otp"`), "#Widget"); err == nil {
		t.Error("Unify() must reject incomplete data by default")
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testWidget]([]byte(testSchema), []byte(`kind: "otp", size: 6`), "#Widget", WithMaxFileSize(4))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error = %v, want size limit", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"steps"}, "steps"},
		{[]string{"steps", "2", "key"}, "steps[2].key"},
		{[]string{"otp", "groups", "0"}, "otp.groups[0]"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
