package schedule

import "time"

// DefaultDebounce is the quiet period used for viewport resize events.
const DefaultDebounce = 20 * time.Millisecond

// Debouncer collapses bursts of triggers into one trailing call.
type Debouncer struct {
	s       Scheduler
	d       time.Duration
	fn      func()
	timer   Timer
	stopped bool
}

// NewDebouncer creates a Debouncer that calls fn once triggers have been
// quiet for d.
func NewDebouncer(s Scheduler, d time.Duration, fn func()) *Debouncer {
	return &Debouncer{s: s, d: d, fn: fn}
}

// Trigger restarts the quiet period.
func (b *Debouncer) Trigger() {
	if b.stopped {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = b.s.After(b.d, func() {
		b.timer = nil
		b.fn()
	})
}

// Stop detaches the debouncer; pending and future triggers are dropped.
func (b *Debouncer) Stop() {
	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
