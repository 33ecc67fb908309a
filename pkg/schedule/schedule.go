package schedule

import (
	"sort"
	"time"
)

// Scheduler runs continuations after a delay. Implementations run every
// continuation on the same goroutine that owns the UI state, so steps
// never interleave with each other or with input handling.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// After schedules fn to run once d has elapsed.
	After(d time.Duration, fn func()) Timer
}

// Timer is a handle to a scheduled continuation.
type Timer interface {
	// Stop prevents the continuation from running. It returns false if the
	// continuation already ran or was already stopped.
	Stop() bool
}

// Manual is a deterministic Scheduler driven by a virtual clock.
type Manual struct {
	now     time.Time
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	m    *Manual
	at   time.Time
	seq  uint64
	fn   func()
	done bool
}

// NewManual creates a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time { return m.now }

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(d), seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Pending returns the number of continuations waiting to run.
func (m *Manual) Pending() int { return len(m.pending) }

// Advance moves the clock forward by d, running every continuation that
// falls due in time order. Continuations scheduled while advancing run
// too if they fall within the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.remove(next)
		m.now = next.at
		next.done = true
		next.fn()
	}
	m.now = target
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.at.Equal(b.at) {
			return a.seq < b.seq
		}
		return a.at.Before(b.at)
	})
	if m.pending[0].at.After(target) {
		return nil
	}
	return m.pending[0]
}

func (m *Manual) remove(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Stop implements Timer.
func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.m.remove(t)
	return true
}
