package slider

import (
	"fmt"
	"log/slog"
)

// TransitionRequest is one in-flight move between two panels.
type TransitionRequest struct {
	Direction Direction
	TargetRef Ref
	From      *Panel
	To        *Panel

	gen uint64
}

// Descend moves to the panel beneath the item whose child ref is ref.
func (s *Slider) Descend(ref Ref) { s.transition(Descend, ref) }

// Ascend moves back to the panel whose parent ref is ref.
func (s *Slider) Ascend(ref Ref) { s.transition(Ascend, ref) }

// Pending returns the in-flight transition, or nil when idle.
func (s *Slider) Pending() *TransitionRequest { return s.pending }

// transition runs the move in three steps:
//
//	position  incoming panel off-screen on its entry side
//	lead      both panels translate across the full width
//	slide     both snap back to zero, the active flag flips, focus moves
//
// Requests while a transition runs are ignored. Errors are reported and
// leave the slider where it was.
func (s *Slider) transition(dir Direction, ref Ref) {
	if s.destroyed {
		s.report(fmt.Errorf("%s %q: %w", dir, ref, ErrDestroyed))
		return
	}
	if s.state != Idle {
		s.metrics.Transitions.Increment(dir.String(), "busy")
		s.report(fmt.Errorf("%s %q: %w", dir, ref, ErrBusy))
		return
	}

	to, ok := s.byParent[ref]
	if !ok || (dir == Descend && ref == RootRef) {
		s.metrics.Transitions.Increment(dir.String(), "unresolved")
		s.report(fmt.Errorf("%s %q: %w", dir, ref, ErrTargetNotFound))
		return
	}
	if to == s.current {
		slog.Debug("transition target already active", "direction", dir, "ref", ref)
		return
	}

	s.gen++
	req := &TransitionRequest{
		Direction: dir,
		TargetRef: ref,
		From:      s.current,
		To:        to,
		gen:       s.gen,
	}
	s.pending = req
	s.state = Transitioning

	slog.Debug("transition started",
		"direction", dir,
		"from", req.From.ID,
		"to", req.To.ID)

	to.place(dir.entryOffset(), s.sched.Now())
	to.paintable = true

	s.sched.After(s.lead, s.step(req, s.translate))
}

func (s *Slider) translate(req *TransitionRequest) {
	now := s.sched.Now()
	travel := -req.Direction.entryOffset()
	req.From.move(travel, now, s.slide)
	req.To.move(0, now, s.slide)

	s.sched.After(s.slide, s.step(req, s.complete))
}

func (s *Slider) complete(req *TransitionRequest) {
	now := s.sched.Now()
	req.From.place(0, now)
	req.From.paintable = false
	req.From.IsActive = false

	req.To.place(0, now)
	req.To.IsActive = true

	s.current = req.To
	s.pending = nil
	s.state = Idle

	s.recompute(true)
	if s.focuser != nil && (s.canFocus == nil || s.canFocus()) {
		if c := req.To.FirstControl(); c != nil {
			s.focuser.Focus(c)
		}
	}

	s.metrics.Transitions.Increment(req.Direction.String(), "completed")
	slog.Debug("transition completed", "direction", req.Direction, "active", s.current.ID)
}

// step wraps a continuation so it only runs while req is still the live
// transition of a live slider.
func (s *Slider) step(req *TransitionRequest, fn func(*TransitionRequest)) func() {
	return func() {
		if s.destroyed || req.gen != s.gen || s.pending != req {
			slog.Debug("dropping stale transition step", "gen", req.gen, "current_gen", s.gen)
			return
		}
		fn(req)
	}
}
