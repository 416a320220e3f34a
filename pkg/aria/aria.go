// SPDX-License-Identifier: MPL-2.0

package aria

import (
	"sort"
	"strconv"
	"strings"
)

// Roles rendered by the widgets.
const (
	RoleNone        Role = "none"
	RoleButton      Role = "button"
	RoleCheckbox    Role = "checkbox"
	RoleSwitch      Role = "switch"
	RoleRadio       Role = "radio"
	RoleRadioGroup  Role = "radiogroup"
	RoleDialog      Role = "dialog"
	RoleTabList     Role = "tablist"
	RoleTab         Role = "tab"
	RoleTabPanel    Role = "tabpanel"
	RoleListbox     Role = "listbox"
	RoleOption      Role = "option"
	RoleSlider      Role = "slider"
	RoleSeparator   Role = "separator"
	RoleProgressbar Role = "progressbar"
	RoleRegion      Role = "region"
	RoleTooltip     Role = "tooltip"
	RoleGroup       Role = "group"
	RoleTextbox     Role = "textbox"
)

// Attribute names used across widgets.
const (
	Checked      = "aria-checked"
	Pressed      = "aria-pressed"
	Expanded     = "aria-expanded"
	Selected     = "aria-selected"
	Disabled     = "aria-disabled"
	Controls     = "aria-controls"
	HasPopup     = "aria-haspopup"
	Modal        = "aria-modal"
	LabelledBy   = "aria-labelledby"
	DescribedBy  = "aria-describedby"
	Orientation  = "aria-orientation"
	ValueMin     = "aria-valuemin"
	ValueMax     = "aria-valuemax"
	ValueNow     = "aria-valuenow"
	Invalid      = "aria-invalid"
	Hidden       = "aria-hidden"
	ActiveDesc   = "aria-activedescendant"
	TabIndex     = "tabindex"
	DataState    = "data-state"
	DataDisabled = "data-disabled"
)

type (
	// Role is a WAI-ARIA role.
	Role string

	// Attrs maps attribute names to rendered values.
	Attrs map[string]string

	// Node is one rendered element of a widget.
	Node struct {
		ID    string
		Role  Role
		Attrs Attrs
	}

	// HiddenInput is a native form input rendered next to a widget so plain
	// form submission carries its value.
	HiddenInput struct {
		Name    string
		Value   string
		Type    string
		Checked bool
	}
)

// NewNode creates a Node with an empty attribute map.
func NewNode(id string, role Role) Node {
	return Node{ID: id, Role: role, Attrs: Attrs{}}
}

// Set stores an attribute and returns the node for chaining.
func (n Node) Set(name, value string) Node {
	if n.Attrs == nil {
		n.Attrs = Attrs{}
	}
	n.Attrs[name] = value
	return n
}

// SetIf stores an attribute only when cond is true.
func (n Node) SetIf(cond bool, name, value string) Node {
	if !cond {
		return n
	}
	return n.Set(name, value)
}

// Attr returns the attribute value, or "" when it is absent.
func (n Node) Attr(name string) string { return n.Attrs[name] }

// Has reports whether the attribute is present.
func (n Node) Has(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// String renders the node as `role#id key="value" ...` with sorted keys.
func (n Node) String() string {
	var b strings.Builder
	b.WriteString(string(n.Role))
	if n.ID != "" {
		b.WriteString("#")
		b.WriteString(n.ID)
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strconv.Quote(n.Attrs[k]))
	}
	return b.String()
}

// Bool formats a boolean ARIA value.
func Bool(v bool) string { return strconv.FormatBool(v) }

// Number formats a numeric ARIA value without trailing zeros.
func Number(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// State returns the data-state value for a binary widget.
func State(on bool, onName, offName string) string {
	if on {
		return onName
	}
	return offName
}

// Find returns the first node with the given id.
func Find(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// WithRole returns every node with the given role, in order.
func WithRole(nodes []Node, role Role) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Role == role {
			out = append(out, n)
		}
	}
	return out
}
