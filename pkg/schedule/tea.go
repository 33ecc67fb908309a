package schedule

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FireMsg tells the program loop that a scheduled step is due.
type FireMsg struct {
	ID uint64
}

// Tea is a Scheduler for bubbletea programs. Steps are turned into tea.Tick
// commands; when the resulting FireMsg reaches Update the step runs there,
// on the program goroutine.
//
// Tea is not safe for concurrent use; call it only from Init/Update.
type Tea struct {
	now    func() time.Time
	next   uint64
	steps  map[uint64]*teaTimer
	queued []*teaTimer
}

type teaTimer struct {
	t    *Tea
	id   uint64
	d    time.Duration
	fn   func()
	done bool
}

// NewTea creates a bubbletea scheduler backed by the wall clock.
func NewTea() *Tea {
	return &Tea{now: time.Now, steps: make(map[uint64]*teaTimer)}
}

// Now implements Scheduler.
func (s *Tea) Now() time.Time { return s.now() }

// After implements Scheduler. The step does not start counting down until
// Cmds hands it to the program.
func (s *Tea) After(d time.Duration, fn func()) Timer {
	s.next++
	t := &teaTimer{t: s, id: s.next, d: d, fn: fn}
	s.steps[t.id] = t
	s.queued = append(s.queued, t)
	return t
}

// Cmds drains the queued steps into tick commands.
func (s *Tea) Cmds() []tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.queued))
	for _, t := range s.queued {
		if t.done {
			continue
		}
		id := t.id
		cmds = append(cmds, tea.Tick(t.d, func(time.Time) tea.Msg {
			return FireMsg{ID: id}
		}))
	}
	s.queued = s.queued[:0]
	return cmds
}

// Fire runs the step identified by msg. It returns false if the step was
// stopped or is unknown.
func (s *Tea) Fire(msg FireMsg) bool {
	t, ok := s.steps[msg.ID]
	if !ok {
		return false
	}
	delete(s.steps, msg.ID)
	if t.done {
		return false
	}
	t.done = true
	t.fn()
	return true
}

// Pending returns the number of steps that have not run or been stopped.
func (s *Tea) Pending() int { return len(s.steps) }

// Stop implements Timer.
func (t *teaTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	delete(t.t.steps, t.id)
	return true
}
