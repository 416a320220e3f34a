// SPDX-License-Identifier: MPL-2.0

package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/widgetkit/internal/config"
	"github.com/invowk/widgetkit/pkg/aria"
	"github.com/invowk/widgetkit/pkg/event"
	"github.com/invowk/widgetkit/pkg/host"
	"github.com/invowk/widgetkit/pkg/widget"
)

type (
	// Runner replays scenarios with one configuration.
	Runner struct {
		cfg    *config.Config
		logger *log.Logger
	}

	// Report is the outcome of one scenario run.
	Report struct {
		Name  string
		Kind  Kind
		Steps []StepResult
		// Leaks lists side effects still held after the widget unmounted.
		Leaks []string
	}

	// StepResult records one replayed step.
	StepResult struct {
		Index       int
		Description string
		// Handled reports whether the widget consumed the interaction.
		Handled  bool
		State    State
		Failures []string
	}
)

// NewRunner creates a Runner. A nil cfg means config.DefaultConfig() and a
// nil logger discards output.
func NewRunner(cfg *config.Config, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Runner{cfg: cfg, logger: widget.Logger(logger)}
}

// Run mounts the scenario widget on a fresh document, replays every step,
// unmounts it and checks for leaked listeners, scroll locks and layers.
// Failed expectations are part of the report; the error is reserved for
// widgets that cannot be built and for cancellation.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Report, error) {
	doc := host.NewDocument(
		host.WithLogger(r.logger),
		host.WithScrollPolicy(r.cfg.ScrollLock),
	)
	id := host.ElementID(s.Widget.ID)
	if id == "" {
		id = host.ElementID(s.Widget.Kind)
	}
	drv, err := newDriver(s.Widget, env{doc: doc, id: id, cfg: r.cfg, logger: r.logger})
	if err != nil {
		return nil, fmt.Errorf("failed to mount %s: %w", s.Widget.Kind, err)
	}

	report := &Report{Name: s.Name, Kind: s.Widget.Kind}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			drv.unmount()
			return report, fmt.Errorf("scenario canceled at step %d: %w", i, err)
		}
		res := StepResult{Index: i, Description: step.String()}
		res.Handled, res.Failures = perform(drv, step)
		res.State = drv.state()
		if step.Expect != nil {
			res.Failures = append(res.Failures, check(step.Expect, res.State, drv.nodes(), doc)...)
		}
		r.logger.Debug("scenario step", "index", i, "step", res.Description, "handled", res.Handled, "value", res.State.Value)
		report.Steps = append(report.Steps, res)
	}

	drv.unmount()
	report.Leaks = leaks(doc)
	return report, nil
}

func perform(drv driver, step Step) (bool, []string) {
	switch step.Action() {
	case ActionKey:
		ev, err := event.ParseKey(step.Key)
		if err != nil {
			return false, []string{err.Error()}
		}
		handled := false
		for range max(step.Repeat, 1) {
			if drv.key(ev) {
				handled = true
			}
		}
		return handled, nil
	case ActionType:
		return drv.typeText(step.Type), nil
	case ActionPaste:
		return drv.paste(*step.Paste), nil
	case ActionClick:
		handled, err := drv.click(*step.Click)
		if err != nil {
			return false, []string{err.Error()}
		}
		return handled, nil
	case ActionPointer:
		return drv.pointer(*step.Pointer), nil
	default:
		return false, nil
	}
}

// check compares every set expectation with the observed state.
func check(e *Expect, st State, nodes []aria.Node, doc *host.Document) []string {
	var failures []string
	expect := func(field, want, got string) {
		if want != got {
			failures = append(failures, fmt.Sprintf("%s = %q, want %q", field, got, want))
		}
	}
	if e.Value != nil {
		expect(fieldValue, Canonical(e.Value), st.Value)
	}
	if e.Raw != nil {
		expect(fieldRaw, *e.Raw, st.Raw)
	}
	if e.Open != nil {
		expect(fieldOpen, Canonical(*e.Open), Canonical(st.Open))
	}
	if e.Checked != nil {
		expect(fieldChecked, Canonical(*e.Checked), Canonical(st.Checked))
	}
	if e.Complete != nil {
		expect(fieldComplete, Canonical(*e.Complete), Canonical(st.Complete))
	}
	if e.Focus != nil && *e.Focus != string(st.Focus) {
		expect(fieldFocus, *e.Focus, st.FocusName)
	}
	if e.Highlighted != nil {
		expect(fieldHighlighted, *e.Highlighted, st.Highlighted)
	}
	if e.ScrollLocked != nil {
		expect(fieldScrollLocked, Canonical(*e.ScrollLocked), Canonical(doc.ScrollLocked()))
	}
	if e.Sessions != nil {
		expect(fieldSessions, Canonical(*e.Sessions), Canonical(doc.SessionCount()))
	}
	if a := e.Attr; a != nil {
		n, ok := aria.Find(nodes, a.Node)
		if !ok {
			failures = append(failures, fmt.Sprintf("node %q is not rendered", a.Node))
		} else {
			expect(a.Node+"["+a.Name+"]", a.Equals, n.Attr(a.Name))
		}
	}
	return failures
}

func leaks(doc *host.Document) []string {
	var out []string
	if n := doc.SessionCount(); n > 0 {
		out = append(out, fmt.Sprintf("%d listener session(s) still open: %s", n, strings.Join(doc.SessionOwners(), ", ")))
	}
	if doc.ScrollLocked() || doc.ScrollHolders() > 0 {
		out = append(out, fmt.Sprintf("scroll lock still held (%d holder(s))", doc.ScrollHolders()))
	}
	if top := doc.TopLayer(); top != "" {
		out = append(out, fmt.Sprintf("layer %q still on the stack", top))
	}
	return out
}

// Passed reports whether every expectation held and nothing leaked.
func (r *Report) Passed() bool {
	return r.FailureCount() == 0 && len(r.Leaks) == 0
}

// FailureCount returns the number of failed expectations.
func (r *Report) FailureCount() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Failures)
	}
	return n
}

// Failed returns the steps with at least one failure.
func (r *Report) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if len(s.Failures) > 0 {
			out = append(out, s)
		}
	}
	return out
}
