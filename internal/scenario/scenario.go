// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/invowk/widgetkit/internal/cueutil"
	"github.com/invowk/widgetkit/pkg/event"
)

const (
	KindMask      Kind = "mask"
	KindOTP       Kind = "otp"
	KindSlider    Kind = "slider"
	KindSwitch    Kind = "switch"
	KindCheckbox  Kind = "checkbox"
	KindToggle    Kind = "toggle"
	KindRadio     Kind = "radio"
	KindTabs      Kind = "tabs"
	KindAccordion Kind = "accordion"
	KindSelect    Kind = "select"
	KindDialog    Kind = "dialog"
	KindSheet     Kind = "sheet"
	KindPopover   Kind = "popover"
)

const (
	ActionKey     Action = "key"
	ActionType    Action = "type"
	ActionPaste   Action = "paste"
	ActionClick   Action = "click"
	ActionPointer Action = "pointer"
	ActionExpect  Action = "expect"
)

// Expectation fields, as spelled in scenario files.
const (
	fieldValue        = "value"
	fieldRaw          = "raw"
	fieldOpen         = "open"
	fieldChecked      = "checked"
	fieldComplete     = "complete"
	fieldFocus        = "focus"
	fieldHighlighted  = "highlighted"
	fieldScrollLocked = "scroll_locked"
	fieldSessions     = "sessions"
	fieldAttr         = "attr"
)

var (
	//go:embed scenario_schema.cue
	scenarioSchema []byte

	// ErrInvalidScenario is the sentinel error wrapped by InvalidScenarioError.
	ErrInvalidScenario = errors.New("invalid scenario")

	// Document-level expectations every kind supports.
	commonFields = []string{fieldScrollLocked, fieldSessions, fieldAttr}

	kindFields = map[Kind][]string{
		KindMask:      {fieldValue, fieldRaw, fieldComplete},
		KindOTP:       {fieldValue, fieldComplete, fieldFocus},
		KindSlider:    {fieldValue, fieldFocus},
		KindSwitch:    {fieldValue, fieldChecked},
		KindCheckbox:  {fieldValue, fieldChecked},
		KindToggle:    {fieldValue, fieldChecked},
		KindRadio:     {fieldValue, fieldFocus},
		KindTabs:      {fieldValue, fieldFocus},
		KindAccordion: {fieldValue, fieldOpen, fieldFocus},
		KindSelect:    {fieldValue, fieldOpen, fieldFocus, fieldHighlighted},
		KindDialog:    {fieldValue, fieldOpen, fieldFocus},
		KindSheet:     {fieldValue, fieldOpen, fieldFocus},
		KindPopover:   {fieldValue, fieldOpen, fieldFocus},
	}
)

type (
	// Kind names the widget a scenario mounts.
	Kind string

	// Action names what a step does.
	Action string

	// Scenario is a decoded scenario file.
	Scenario struct {
		Name   string `json:"name"`
		Widget Widget `json:"widget"`
		Steps  []Step `json:"steps"`
	}

	// Widget selects and configures the widget under test. Options that do
	// not apply to Kind are ignored.
	Widget struct {
		Kind     Kind   `json:"kind"`
		ID       string `json:"id"`
		Disabled bool   `json:"disabled"`
		// Default is the uncontrolled initial value.
		Default any `json:"default"`

		Pattern string `json:"pattern"`
		Preset  string `json:"preset"`

		MaxLength int   `json:"max_length"`
		Groups    []int `json:"groups"`

		Min         *float64 `json:"min"`
		Max         *float64 `json:"max"`
		Step        *float64 `json:"step"`
		Orientation string   `json:"orientation"`

		Items         []string `json:"items"`
		DisabledItems []string `json:"disabled_items"`
		Activation    string   `json:"activation"`
		Multiple      bool     `json:"multiple"`
		Collapsible   bool     `json:"collapsible"`
		Placeholder   string   `json:"placeholder"`

		Focusables []string `json:"focusables"`
		HideClose  bool     `json:"hide_close"`
		Side       string   `json:"side"`
	}

	// Step is one scripted interaction. Exactly one action field is set.
	Step struct {
		Key     string   `json:"key,omitempty"`
		Repeat  int      `json:"repeat,omitempty"`
		Type    string   `json:"type,omitempty"`
		Paste   *string  `json:"paste,omitempty"`
		Click   *string  `json:"click,omitempty"`
		Pointer *Pointer `json:"pointer,omitempty"`
		Expect  *Expect  `json:"expect,omitempty"`
	}

	// Pointer is a pointer press, move or release in widget coordinates.
	Pointer struct {
		Action string  `json:"action"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
	}

	// Expect lists assertions about the state after the previous steps.
	// Unset fields are not checked.
	Expect struct {
		Value        any         `json:"value"`
		Raw          *string     `json:"raw"`
		Open         *bool       `json:"open"`
		Checked      *bool       `json:"checked"`
		Complete     *bool       `json:"complete"`
		Focus        *string     `json:"focus"`
		Highlighted  *string     `json:"highlighted"`
		ScrollLocked *bool       `json:"scroll_locked"`
		Sessions     *int        `json:"sessions"`
		Attr         *AttrExpect `json:"attr"`
	}

	// AttrExpect asserts one rendered attribute of one node.
	AttrExpect struct {
		Node   string `json:"node"`
		Name   string `json:"name"`
		Equals string `json:"equals"`
	}

	// InvalidScenarioError is returned when a decoded scenario is inconsistent.
	// Step is -1 for widget-level problems.
	// It wraps ErrInvalidScenario for errors.Is() compatibility.
	InvalidScenarioError struct {
		Step   int
		Reason string
	}
)

// Parse validates data against the scenario schema and decodes it.
func Parse(data []byte, filename string) (*Scenario, error) {
	result, err := cueutil.ParseAndDecode[Scenario](scenarioSchema, data, "#Scenario",
		cueutil.WithFilename(filename),
	)
	if err != nil {
		return nil, err
	}
	s := result.Value
	if ok, errs := s.IsValid(); !ok {
		return nil, fmt.Errorf("%s: %w", filename, errors.Join(errs...))
	}
	return s, nil
}

// LoadFile reads and parses the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data, path)
}

// IsValid checks what the schema cannot: per-kind required options, default
// value shapes, key names and expectations the widget kind can answer.
func (s *Scenario) IsValid() (bool, []error) {
	var errs []error
	if err := s.Widget.validate(); err != nil {
		errs = append(errs, err)
	}
	supported := append(slices.Clone(commonFields), kindFields[s.Widget.Kind]...)
	for i, step := range s.Steps {
		if step.Key != "" {
			if _, err := event.ParseKey(step.Key); err != nil {
				errs = append(errs, &InvalidScenarioError{Step: i, Reason: err.Error()})
			}
		}
		if step.Pointer != nil && !slices.Contains([]Kind{KindSlider, KindSelect, KindPopover, KindDialog, KindSheet}, s.Widget.Kind) {
			errs = append(errs, &InvalidScenarioError{Step: i, Reason: fmt.Sprintf("pointer steps are not supported by %s", s.Widget.Kind)})
		}
		if step.Expect == nil {
			continue
		}
		for _, f := range step.Expect.fields() {
			if !slices.Contains(supported, f) {
				errs = append(errs, &InvalidScenarioError{Step: i, Reason: fmt.Sprintf("expect.%s is not supported by %s", f, s.Widget.Kind)})
			}
		}
	}
	return len(errs) == 0, errs
}

// Action returns the action the step performs.
func (st Step) Action() Action {
	switch {
	case st.Key != "":
		return ActionKey
	case st.Type != "":
		return ActionType
	case st.Paste != nil:
		return ActionPaste
	case st.Click != nil:
		return ActionClick
	case st.Pointer != nil:
		return ActionPointer
	default:
		return ActionExpect
	}
}

// String describes the step for reports, e.g. `key "Shift+Tab" x2`.
func (st Step) String() string {
	switch st.Action() {
	case ActionKey:
		if st.Repeat > 1 {
			return fmt.Sprintf("key %q x%d", st.Key, st.Repeat)
		}
		return fmt.Sprintf("key %q", st.Key)
	case ActionType:
		return fmt.Sprintf("type %q", st.Type)
	case ActionPaste:
		return fmt.Sprintf("paste %q", *st.Paste)
	case ActionClick:
		return fmt.Sprintf("click %q", *st.Click)
	case ActionPointer:
		return fmt.Sprintf("pointer %s (%g, %g)", st.Pointer.Action, st.Pointer.X, st.Pointer.Y)
	default:
		return "expect"
	}
}

func (w Widget) validate() error {
	fail := func(format string, args ...any) error {
		return &InvalidScenarioError{Step: -1, Reason: fmt.Sprintf(format, args...)}
	}
	switch w.Kind {
	case KindMask:
		if (w.Pattern == "") == (w.Preset == "") {
			return fail("mask needs exactly one of pattern or preset")
		}
	case KindRadio, KindTabs, KindAccordion, KindSelect:
		if len(w.Items) == 0 {
			return fail("%s needs at least one item", w.Kind)
		}
		seen := map[string]bool{}
		for _, it := range w.Items {
			if seen[it] {
				return fail("duplicate item %q", it)
			}
			seen[it] = true
		}
	}
	if w.Default == nil {
		return nil
	}
	switch w.Kind {
	case KindSwitch, KindCheckbox, KindToggle, KindDialog, KindSheet, KindPopover:
		if _, ok := w.Default.(bool); !ok {
			return fail("%s default must be a bool", w.Kind)
		}
	case KindSlider:
		if _, err := numbers(w.Default); err != nil {
			return fail("slider default: %v", err)
		}
	case KindAccordion:
		if _, err := strs(w.Default); err != nil {
			return fail("accordion default: %v", err)
		}
	default:
		if _, ok := w.Default.(string); !ok {
			return fail("%s default must be a string", w.Kind)
		}
	}
	return nil
}

func (e *Expect) fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(e.Value != nil, fieldValue)
	add(e.Raw != nil, fieldRaw)
	add(e.Open != nil, fieldOpen)
	add(e.Checked != nil, fieldChecked)
	add(e.Complete != nil, fieldComplete)
	add(e.Focus != nil, fieldFocus)
	add(e.Highlighted != nil, fieldHighlighted)
	add(e.ScrollLocked != nil, fieldScrollLocked)
	add(e.Sessions != nil, fieldSessions)
	add(e.Attr != nil, fieldAttr)
	return out
}

// Error implements the error interface for InvalidScenarioError.
func (e *InvalidScenarioError) Error() string {
	if e.Step < 0 {
		return "widget: " + e.Reason
	}
	return fmt.Sprintf("steps[%d]: %s", e.Step, e.Reason)
}

// Unwrap returns ErrInvalidScenario for errors.Is() compatibility.
func (e *InvalidScenarioError) Unwrap() error { return ErrInvalidScenario }
