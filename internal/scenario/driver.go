// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/internal/config"
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
)

// viewport is the area every scenario widget occupies. Pointer coordinates
// outside it are outside presses.
var viewport = event.Rect{X: 0, Y: 0, W: 100, H: 100}

type (
	// State is the observable widget state after a step.
	State struct {
		// Value is the widget value in Canonical form.
		Value       string
		Raw         string
		Open        bool
		Checked     bool
		Complete    bool
		Focus       host.ElementID
		FocusName   string
		Highlighted string
	}

	// driver adapts one widget kind to scenario steps. Each method reports
	// whether the widget handled the interaction.
	driver interface {
		key(ev event.KeyEvent) bool
		typeText(text string) bool
		paste(text string) bool
		click(target string) (bool, error)
		pointer(p Pointer) bool
		state() State
		nodes() []aria.Node
		unmount()
	}

	// env is what every driver is built from.
	env struct {
		doc    *host.Document
		id     host.ElementID
		cfg    *config.Config
		logger *log.Logger
	}

	// base provides document-level defaults for drivers.
	base struct {
		doc   *host.Document
		names map[host.ElementID]string
	}

	driverFactory func(w Widget, e env) (driver, error)
)

var factories = map[Kind]driverFactory{
	KindMask:      newMaskDriver,
	KindOTP:       newOTPDriver,
	KindSlider:    newSliderDriver,
	KindSwitch:    newBinaryDriver,
	KindCheckbox:  newBinaryDriver,
	KindToggle:    newBinaryDriver,
	KindRadio:     newRadioDriver,
	KindTabs:      newTabsDriver,
	KindAccordion: newAccordionDriver,
	KindSelect:    newSelectDriver,
	KindDialog:    newDialogDriver,
	KindSheet:     newDialogDriver,
	KindPopover:   newPopoverDriver,
}

func newDriver(w Widget, e env) (driver, error) {
	factory, ok := factories[w.Kind]
	if !ok {
		return nil, &InvalidScenarioError{Step: -1, Reason: fmt.Sprintf("unknown widget kind %q", w.Kind)}
	}
	return factory(w, e)
}

func newBase(doc *host.Document) base {
	return base{doc: doc, names: map[host.ElementID]string{}}
}

func (b base) key(ev event.KeyEvent) bool { return b.doc.DispatchKey(ev) }

func (base) typeText(string) bool { return false }

func (base) paste(string) bool { return false }

func (base) click(target string) (bool, error) {
	return false, fmt.Errorf("unknown click target %q", target)
}

func (b base) pointer(p Pointer) bool {
	ev := event.At(p.X, p.Y)
	switch p.Action {
	case "down":
		return b.doc.DispatchPointerDown(ev)
	case "move":
		return b.doc.DispatchPointerMove(ev)
	default:
		return b.doc.DispatchPointerUp(ev)
	}
}

func (base) unmount() {}

// focus fills the focus fields of a State.
func (b base) focus(s State) State {
	s.Focus = b.doc.ActiveElement()
	s.FocusName = b.names[s.Focus]
	return s
}

// enter moves focus to stop unless it already rests on a named element of
// the widget, as if the user tabbed into it.
func (b base) enter(stop host.ElementID) {
	if _, inside := b.names[b.doc.ActiveElement()]; !inside && stop != "" {
		b.doc.Focus(stop)
	}
}

// name registers a short name for an element id used by focus expectations.
func (b base) name(id host.ElementID, short string) {
	b.names[id] = short
}

func (e env) child(suffix string) host.ElementID {
	return e.id + "-" + host.ElementID(suffix)
}
