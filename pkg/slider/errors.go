package slider

import (
	"errors"
	"log/slog"
)

var (
	// ErrNoPrimaryLinks is returned by New when the root panel would be empty.
	ErrNoPrimaryLinks = errors.New("at least one primary link is required")

	// ErrUnresolvedParent reports a descendant panel no action item leads to.
	ErrUnresolvedParent = errors.New("no action item references panel")

	// ErrDuplicatePanel reports a second descendant panel with the same parent ref.
	ErrDuplicatePanel = errors.New("duplicate panel parent ref")

	// ErrOrphanedPanel reports a panel whose owning item is not reachable
	// from the root panel.
	ErrOrphanedPanel = errors.New("panel not reachable from root")

	// ErrTargetNotFound reports a transition to a panel that does not exist.
	ErrTargetNotFound = errors.New("transition target not found")

	// ErrBusy reports a transition requested while another one is running.
	ErrBusy = errors.New("transition already in progress")

	// ErrDestroyed reports a request made after the slider was torn down.
	ErrDestroyed = errors.New("slider destroyed")
)

// Reporter receives the non-fatal errors of a slider.
type Reporter func(err error)

// LogReporter logs errors with the default structured logger.
func LogReporter(err error) {
	slog.Error("slider error", "error", err)
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, ErrDuplicatePanel):
		return "duplicate_parent"
	case errors.Is(err, ErrOrphanedPanel):
		return "orphaned"
	default:
		return "unresolved_parent"
	}
}
