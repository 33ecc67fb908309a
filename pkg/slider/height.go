package slider

import (
	"time"

	"github.com/mchmarny/slidemenu/pkg/view"
)

// DefaultPadding is added to the summed height of the active panel's
// children.
const DefaultPadding = 2

// Measurer returns the rendered height of a node at a width.
type Measurer func(n view.Node, width int) int

// ContainerHeight sums the measured heights of children and adds padding.
func ContainerHeight(children []view.Node, width int, measure Measurer, padding int) int {
	if measure == nil {
		measure = view.Height
	}
	h := padding
	for _, ch := range children {
		h += measure(ch, width)
	}
	return h
}

type heightTween struct {
	from, to int
	start    time.Time
	dur      time.Duration
}

func (h heightTween) at(now time.Time) int {
	if h.dur <= 0 || !now.Before(h.start.Add(h.dur)) {
		return h.to
	}
	if now.Before(h.start) {
		return h.from
	}
	p := float64(now.Sub(h.start)) / float64(h.dur)
	return h.from + int(float64(h.to-h.from)*p)
}

// recompute measures the active panel. Heights that follow a transition
// animate; all others apply at once.
func (s *Slider) recompute(animated bool) {
	now := s.sched.Now()
	h := ContainerHeight(s.current.Children(), innerWidth(s.width), s.measure, s.padding)

	if animated {
		s.height = heightTween{from: s.height.at(now), to: h, start: now, dur: s.slide}
	} else {
		s.height = heightTween{from: h, to: h, start: now}
	}
	s.metrics.ContainerHeight.Set(float64(h), string(s.cfg.Mode))
}

// Height returns the target container height.
func (s *Slider) Height() int { return s.height.to }

// HeightAt returns the container height at time t, mid-animation included.
func (s *Slider) HeightAt(t time.Time) int { return s.height.at(t) }
