package metric

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every metric exported by the menu.
const Namespace = "slidemenu"

// Set bundles the measurements recorded by the slider and the drawer.
type Set struct {
	// Transitions counts slide transitions by direction and outcome
	// (completed, busy, unresolved).
	Transitions IncrementalCounter

	// DroppedPanels counts descendant panels left out of the tree by reason.
	DroppedPanels IncrementalCounter

	// DrawerEvents counts drawer lifecycle events (open, close, trap_error).
	DrawerEvents IncrementalCounter

	// ContainerHeight is the last computed container height, by display mode.
	ContainerHeight Setter
}

// NewSet registers the menu metrics with reg.
func NewSet(reg prometheus.Registerer) *Set {
	return &Set{
		Transitions:     NewCounterWithRegistry(reg, "transitions_total", "Slide transitions by direction and outcome.", "direction", "outcome"),
		DroppedPanels:   NewCounterWithRegistry(reg, "dropped_panels_total", "Descendant panels dropped at build time.", "reason"),
		DrawerEvents:    NewCounterWithRegistry(reg, "drawer_events_total", "Drawer lifecycle events.", "event"),
		ContainerHeight: NewGaugeWithRegistry(reg, "container_height_lines", "Computed slider container height.", "mode"),
	}
}

// Nop returns a Set that records nothing.
func Nop() *Set {
	return &Set{
		Transitions:     nop{},
		DroppedPanels:   nop{},
		DrawerEvents:    nop{},
		ContainerHeight: nop{},
	}
}
