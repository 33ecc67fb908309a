package focus

import (
	"errors"
	"log/slog"

	"github.com/mchmarny/slidemenu/pkg/view"
)

var (
	// ErrTrapActive is returned when a trap is installed while another one
	// is still active.
	ErrTrapActive = errors.New("focus trap already active")

	// ErrEmptyScope is returned when a trap scope holds nothing focusable.
	ErrEmptyScope = errors.New("focus trap scope has no focusable controls")
)

// Scope lists the controls focus may move between.
type Scope func() []*view.Control

// Tracker owns keyboard focus for one program. Next and Prev cycle through
// the active scope: the installed trap's scope if any, otherwise the base
// scope.
type Tracker struct {
	current *view.Control
	base    Scope
	trap    *trap
}

type trap struct {
	scope     Scope
	onDismiss func()
}

// NewTracker creates a Tracker whose base scope is base.
func NewTracker(base Scope) *Tracker {
	return &Tracker{base: base}
}

// SetScope replaces the base scope.
func (t *Tracker) SetScope(base Scope) {
	t.base = base
}

// Current returns the focused control, or nil.
func (t *Tracker) Current() *view.Control {
	return t.current
}

// Focus moves focus to c. A nil or unfocusable control clears focus.
func (t *Tracker) Focus(c *view.Control) {
	if t.current != nil {
		t.current.Focused = false
	}
	if !c.Focusable() {
		t.current = nil
		return
	}
	c.Focused = true
	t.current = c
	slog.Debug("focus moved", "control", c.ID)
}

// Next moves focus to the next control in scope, wrapping around.
func (t *Tracker) Next() { t.step(1) }

// Prev moves focus to the previous control in scope, wrapping around.
func (t *Tracker) Prev() { t.step(-1) }

func (t *Tracker) step(dir int) {
	items := t.scope()
	if len(items) == 0 {
		return
	}
	idx := indexOf(items, t.current)
	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = len(items) - 1
	default:
		idx = (idx + dir + len(items)) % len(items)
	}
	t.Focus(items[idx])
}

// Activate activates the focused control. It returns false if nothing is
// focused or the control is inert.
func (t *Tracker) Activate() bool {
	return t.ActivateControl(t.current)
}

// ActivateControl activates c. While a trap is installed, activating a
// control outside its scope dismisses the trap instead.
func (t *Tracker) ActivateControl(c *view.Control) bool {
	if c == nil {
		return false
	}
	if t.trap != nil && indexOf(t.trap.scope(), c) < 0 {
		t.dismiss()
		return false
	}
	return c.Activate()
}

// Escape dismisses the installed trap. It returns false if none is installed.
func (t *Tracker) Escape() bool {
	if t.trap == nil {
		return false
	}
	t.dismiss()
	return true
}

// Install confines focus to scope until Remove is called. onDismiss runs
// on Escape or on activation outside the scope.
func (t *Tracker) Install(scope Scope, onDismiss func()) error {
	if t.trap != nil {
		return ErrTrapActive
	}
	if scope == nil || len(scope()) == 0 {
		return ErrEmptyScope
	}
	t.trap = &trap{scope: scope, onDismiss: onDismiss}
	return nil
}

// Remove lifts the installed trap. It is a no-op without one.
func (t *Tracker) Remove() {
	t.trap = nil
}

// Trapped reports whether a trap is installed.
func (t *Tracker) Trapped() bool {
	return t.trap != nil
}

func (t *Tracker) dismiss() {
	if t.trap.onDismiss != nil {
		t.trap.onDismiss()
	}
}

func (t *Tracker) scope() []*view.Control {
	if t.trap != nil {
		return t.trap.scope()
	}
	if t.base == nil {
		return nil
	}
	return t.base()
}

func indexOf(items []*view.Control, c *view.Control) int {
	for i, it := range items {
		if it == c {
			return i
		}
	}
	return -1
}
