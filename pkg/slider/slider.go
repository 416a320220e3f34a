// SPDX-License-Identifier: MPL-2.0

package slider

import (
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"

	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/cell"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/widget"
)

// pageSteps is the number of steps moved by PageUp, PageDown and Shift+arrow.
const pageSteps = 10

type (
	// Options configures a Slider.
	Options struct {
		Document *host.Document
		ID       host.ElementID
		// Mapper holds min, max and step. The zero value selects DefaultMapper.
		Mapper      Mapper
		Orientation event.Orientation

		Value         *[]float64
		Default       []float64
		OnValueChange func([]float64)

		// Track returns the on-screen bounds of the track.
		Track    func() event.Rect
		Disabled bool
		// Name emits hidden inputs for form submission when set.
		Name   string
		Strict bool
		Logger *log.Logger
	}

	// Slider is a single or multi-thumb value slider.
	Slider struct {
		doc         *host.Document
		id          host.ElementID
		mapper      Mapper
		orientation event.Orientation
		values      *cell.Cell[[]float64]
		track       func() event.Rect
		disabled    bool
		name        string
		active      int
		drag        *host.Session
		logger      *log.Logger
	}
)

// New creates a Slider. Invalid bounds and orientations are rejected; default
// values are clamped into range and an empty default becomes [min].
func New(opts Options) (*Slider, error) {
	widget.MustRoot(opts.Document, "slider.Slider", "host.Document")

	m := opts.Mapper
	if m == (Mapper{}) {
		m = DefaultMapper
	}
	if ok, errs := m.IsValid(); !ok {
		return nil, errs[0]
	}
	o := opts.Orientation.OrDefault(event.Horizontal)
	if o != event.Horizontal && o != event.Vertical {
		return nil, &event.InvalidOrientationError{Value: o}
	}

	defaults := make([]float64, 0, len(opts.Default))
	for _, v := range opts.Default {
		defaults = append(defaults, m.Clamp(v))
	}
	if len(defaults) == 0 {
		defaults = []float64{m.Min}
	}

	s := &Slider{
		doc:         opts.Document,
		id:          opts.ID,
		mapper:      m,
		orientation: o,
		track:       opts.Track,
		disabled:    opts.Disabled,
		name:        opts.Name,
		active:      -1,
		logger:      opts.Logger,
	}
	if s.id == "" {
		s.id = s.doc.NewID("slider")
	}
	if s.logger == nil {
		s.logger = s.doc.Logger()
	}
	s.values = cell.New(cell.Options[[]float64]{
		Value:    opts.Value,
		Default:  defaults,
		OnChange: opts.OnValueChange,
		Strict:   opts.Strict,
	})
	return s, nil
}

// ID returns the root element id.
func (s *Slider) ID() host.ElementID { return s.id }

// Mapper returns the value mapper.
func (s *Slider) Mapper() Mapper { return s.mapper }

// Values returns a copy of the thumb values.
func (s *Slider) Values() []float64 { return slices.Clone(s.values.Get()) }

// Sync re-supplies caller-owned values.
func (s *Slider) Sync(values *[]float64) error { return s.values.Sync(values) }

// ThumbID returns the element id of thumb i.
func (s *Slider) ThumbID(i int) host.ElementID {
	return host.ElementID(string(s.id) + "-thumb-" + strconv.Itoa(i))
}

// Active returns the thumb being dragged, or -1.
func (s *Slider) Active() int {
	if s.drag == nil {
		return -1
	}
	return s.active
}

// Dragging reports whether a pointer drag is in progress.
func (s *Slider) Dragging() bool { return s.drag != nil }

// SetDisabled enables or disables the slider. Disabling ends a running drag.
func (s *Slider) SetDisabled(disabled bool) {
	s.disabled = disabled
	if disabled {
		s.endDrag()
	}
}

// PointerDownTrack handles a press on the track outside any thumb: the
// nearest thumb moves to the pointer and a drag starts.
func (s *Slider) PointerDownTrack(p event.Point) bool {
	if s.disabled {
		return false
	}
	v := s.valueAt(p)
	i := NearestThumb(s.values.Get(), v)
	if i < 0 {
		return false
	}
	s.startDrag(i)
	s.set(i, v)
	return true
}

// PointerDownThumb handles a press on thumb i, which becomes the dragged
// thumb without changing its value.
func (s *Slider) PointerDownThumb(i int) bool {
	if s.disabled || i < 0 || i >= len(s.values.Get()) {
		return false
	}
	s.startDrag(i)
	return true
}

// HandleKey adjusts thumb i: arrows move one step (ten with Shift), PageUp
// and PageDown move ten steps, Home and End jump to the bounds.
func (s *Slider) HandleKey(i int, ev event.KeyEvent) bool {
	values := s.values.Get()
	if s.disabled || i < 0 || i >= len(values) {
		return false
	}
	cur := values[i]
	steps := 1
	if ev.Shift() {
		steps = pageSteps
	}

	var next float64
	switch ev.Key {
	case event.KeyArrowRight, event.KeyArrowUp:
		next = s.mapper.Nudge(cur, steps)
	case event.KeyArrowLeft, event.KeyArrowDown:
		next = s.mapper.Nudge(cur, -steps)
	case event.KeyPageUp:
		next = s.mapper.Nudge(cur, pageSteps)
	case event.KeyPageDown:
		next = s.mapper.Nudge(cur, -pageSteps)
	case event.KeyHome:
		next = s.mapper.Min
	case event.KeyEnd:
		next = s.mapper.Max
	default:
		return false
	}
	s.set(i, next)
	return true
}

// HandleFocusedKey routes ev to the thumb that has focus.
func (s *Slider) HandleFocusedKey(ev event.KeyEvent) bool {
	active := s.doc.ActiveElement()
	for i := range s.values.Get() {
		if s.ThumbID(i) == active {
			return s.HandleKey(i, ev)
		}
	}
	return false
}

// Unmount ends a running drag.
func (s *Slider) Unmount() { s.endDrag() }

// Nodes renders one slider node per thumb.
func (s *Slider) Nodes() []aria.Node {
	values := s.values.Get()
	nodes := make([]aria.Node, 0, len(values))
	for i, v := range values {
		tab := "0"
		if s.disabled {
			tab = "-1"
		}
		n := aria.NewNode(string(s.ThumbID(i)), aria.RoleSlider).
			Set(aria.ValueMin, aria.Number(s.mapper.Min)).
			Set(aria.ValueMax, aria.Number(s.mapper.Max)).
			Set(aria.ValueNow, aria.Number(v)).
			Set(aria.Orientation, string(s.orientation)).
			Set(aria.TabIndex, tab).
			SetIf(s.disabled, aria.Disabled, aria.Bool(true)).
			SetIf(s.disabled, aria.DataDisabled, "")
		nodes = append(nodes, n)
	}
	return nodes
}

// HiddenInputs renders the form fields: one named Name for a single thumb,
// one per thumb named Name[] otherwise. Nothing is rendered without a name.
func (s *Slider) HiddenInputs() []aria.HiddenInput {
	if s.name == "" {
		return nil
	}
	values := s.values.Get()
	name := s.name
	if len(values) > 1 {
		name += "[]"
	}
	out := make([]aria.HiddenInput, len(values))
	for i, v := range values {
		out[i] = aria.HiddenInput{Name: name, Value: aria.Number(v), Type: "hidden"}
	}
	return out
}

func (s *Slider) valueAt(p event.Point) float64 {
	var track event.Rect
	if s.track != nil {
		track = s.track()
	}
	return s.mapper.Value(Fraction(track, p, s.orientation))
}

func (s *Slider) set(i int, v float64) {
	values := slices.Clone(s.values.Get())
	values[i] = v
	s.values.Request(values)
}

func (s *Slider) startDrag(i int) {
	s.endDrag()
	s.active = i
	s.doc.Focus(s.ThumbID(i))
	s.drag = s.doc.Listen(string(s.id), host.Handlers{
		PointerMove: s.onMove,
		PointerUp:   s.onUp,
	})
	s.logger.Debug("slider drag started", "id", s.id, "thumb", i)
}

func (s *Slider) endDrag() {
	if s.drag == nil {
		return
	}
	s.drag.Close()
	s.drag = nil
	s.logger.Debug("slider drag ended", "id", s.id, "thumb", s.active)
}

func (s *Slider) onMove(ev event.PointerEvent) bool {
	if s.active < 0 || s.active >= len(s.values.Get()) {
		return false
	}
	s.set(s.active, s.valueAt(ev.Pos))
	return true
}

func (s *Slider) onUp(event.PointerEvent) bool {
	s.endDrag()
	return true
}
