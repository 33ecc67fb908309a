package toggle

import (
	"log/slog"

	"github.com/mchmarny/slidemenu/pkg/view"
)

// DefaultLabel is the accessible label of the toggle.
const DefaultLabel = "Open menu"

// Toggle is the button that asks the drawer to open. It holds no state of
// its own; the expanded state is read from whoever owns it.
type Toggle struct {
	control *view.Control
	onOpen  func() error
	report  func(error)
}

// Option is a functional option for configuring the Toggle.
type Option func(*Toggle)

// WithLabel sets the accessible label.
func WithLabel(label string) Option {
	return func(t *Toggle) { t.control.Label = label }
}

// WithExpanded sets where the aria-expanded state is read from.
func WithExpanded(fn func() bool) Option {
	return func(t *Toggle) { t.control.Expanded = fn }
}

// WithReporter sets where errors returned by onOpen go.
func WithReporter(fn func(error)) Option {
	return func(t *Toggle) { t.report = fn }
}

// New creates a toggle calling onOpen when activated.
func New(onOpen func() error, opts ...Option) *Toggle {
	t := &Toggle{
		onOpen: onOpen,
		report: func(err error) {
			slog.Error("menu toggle", "error", err)
		},
	}
	t.control = &view.Control{
		ID:         "toggle",
		Role:       view.RoleButton,
		Label:      DefaultLabel,
		Content:    "☰ Menu",
		OnActivate: t.activate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Control returns the toggle's visual node.
func (t *Toggle) Control() *view.Control { return t.control }

func (t *Toggle) activate() {
	if t.onOpen == nil {
		return
	}
	if err := t.onOpen(); err != nil {
		t.report(err)
	}
}
