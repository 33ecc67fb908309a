package drawer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mchmarny/slidemenu/pkg/focus"
	"github.com/mchmarny/slidemenu/pkg/metric"
	"github.com/mchmarny/slidemenu/pkg/schedule"
	"github.com/mchmarny/slidemenu/pkg/slider"
	"github.com/mchmarny/slidemenu/pkg/view"
)

const (
	// DefaultShowDelay separates making the overlay paintable from starting
	// the fade.
	DefaultShowDelay = 20 * time.Millisecond

	// DefaultDuration is the fade and slide time for both open and close.
	DefaultDuration = 350 * time.Millisecond

	// DefaultWidth is the width of the drawer's content panel.
	DefaultWidth = 36

	// DefaultCloseLabel is the accessible label of the close control.
	DefaultCloseLabel = "Close menu"
)

// State is the lifecycle state of a drawer.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// ScrollLocker freezes the content behind the drawer.
type ScrollLocker interface {
	Lock()
	Unlock()
}

type nopLock struct{}

func (nopLock) Lock()   {}
func (nopLock) Unlock() {}

// Config is the construction input of a Drawer.
type Config struct {
	Slider     slider.Config
	Title      string
	CloseLabel string
}

// Drawer is a full-viewport overlay hosting a slider. The slider is built
// once and keeps its active panel across open/close cycles.
type Drawer struct {
	cfg    Config
	state  State
	slider *slider.Slider
	body   view.Node
	close  *view.Control
	opener *view.Control

	tracker    *focus.Tracker
	lock       ScrollLocker
	sched      schedule.Scheduler
	report     slider.Reporter
	metrics    *metric.Set
	sliderOpts []slider.Option

	delay time.Duration
	dur   time.Duration
	width int

	gen       uint64
	paintable bool
	closeNext bool
	opacity   tween
	offset    tween
	destroyed bool
}

// Option is a functional option for configuring the Drawer.
type Option func(*Drawer)

// WithScheduler sets the scheduler running the drawer and slider steps.
func WithScheduler(s schedule.Scheduler) Option {
	return func(d *Drawer) { d.sched = s }
}

// WithTracker sets the focus tracker the drawer traps focus with.
func WithTracker(t *focus.Tracker) Option {
	return func(d *Drawer) { d.tracker = t }
}

// WithScrollLock sets what gets locked while the drawer is open.
func WithScrollLock(l ScrollLocker) Option {
	return func(d *Drawer) { d.lock = l }
}

// WithTiming sets the show delay and the fade/slide duration.
func WithTiming(delay, duration time.Duration) Option {
	return func(d *Drawer) {
		d.delay = delay
		d.dur = duration
	}
}

// WithWidth sets the width of the content panel.
func WithWidth(w int) Option {
	return func(d *Drawer) { d.width = w }
}

// WithMetrics sets the metrics recorded by the drawer and its slider.
func WithMetrics(m *metric.Set) Option {
	return func(d *Drawer) { d.metrics = m }
}

// WithReporter sets where non-fatal errors go.
func WithReporter(r slider.Reporter) Option {
	return func(d *Drawer) { d.report = r }
}

// WithSliderOptions passes extra options to the hosted slider.
func WithSliderOptions(opts ...slider.Option) Option {
	return func(d *Drawer) { d.sliderOpts = append(d.sliderOpts, opts...) }
}

// New creates a closed drawer and builds its slider.
func New(cfg Config, opts ...Option) (*Drawer, error) {
	if cfg.CloseLabel == "" {
		cfg.CloseLabel = DefaultCloseLabel
	}
	cfg.Slider.Mode = slider.ModeDrawer

	d := &Drawer{
		cfg:     cfg,
		lock:    nopLock{},
		report:  slider.LogReporter,
		metrics: metric.Nop(),
		delay:   DefaultShowDelay,
		dur:     DefaultDuration,
		width:   DefaultWidth,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.sched == nil {
		d.sched = schedule.NewTea()
	}
	if d.tracker == nil {
		d.tracker = focus.NewTracker(nil)
	}

	sopts := append([]slider.Option{
		slider.WithScheduler(d.sched),
		slider.WithFocuser(d.tracker),
		slider.WithFocusGate(d.Expanded),
		slider.WithReporter(d.report),
		slider.WithMetrics(d.metrics),
		slider.WithWidth(d.innerWidth()),
	}, d.sliderOpts...)

	s, err := slider.New(cfg.Slider, sopts...)
	if err != nil {
		return nil, fmt.Errorf("building drawer slider: %w", err)
	}
	d.slider = s
	d.body = s.Mount()

	d.close = &view.Control{
		ID:         "drawer/close",
		Role:       view.RoleButton,
		Label:      cfg.CloseLabel,
		Content:    "✕",
		Expanded:   d.Expanded,
		OnActivate: d.dismiss,
	}
	d.opacity = tween{}
	d.offset = tween{from: -100, to: -100}

	return d, nil
}

// Slider returns the hosted slider.
func (d *Drawer) Slider() *slider.Slider { return d.slider }

// State returns the lifecycle state.
func (d *Drawer) State() State { return d.state }

// CloseControl returns the close control.
func (d *Drawer) CloseControl() *view.Control { return d.close }

// Expanded reports whether the drawer is open or opening.
func (d *Drawer) Expanded() bool {
	return d.state == Opening || d.state == Open
}

// Paintable reports whether the overlay is drawn.
func (d *Drawer) Paintable() bool { return d.paintable }

// Focusables is the focus trap scope: the close control and the controls
// of the slider's active panel.
func (d *Drawer) Focusables() []*view.Control {
	return append([]*view.Control{d.close}, d.slider.Focusables()...)
}

// Open starts the open sequence. It is a no-op unless the drawer is
// Closed. Failing to trap focus is returned and leaves the drawer Closed.
func (d *Drawer) Open() error {
	if d.destroyed || d.state != Closed {
		slog.Debug("drawer open ignored", "state", d.state)
		return nil
	}

	opener := d.tracker.Current()
	if err := d.tracker.Install(d.Focusables, d.dismiss); err != nil {
		d.metrics.DrawerEvents.Increment("trap_error")
		return fmt.Errorf("installing focus trap: %w", err)
	}

	d.opener = opener
	d.closeNext = false
	d.state = Opening
	d.gen++
	gen := d.gen
	now := d.sched.Now()

	d.paintable = true
	d.opacity = tween{from: 0, to: 0, start: now}
	d.offset = tween{from: -100, to: -100, start: now}
	d.lock.Lock()
	d.tracker.Focus(d.close)

	d.sched.After(d.delay, d.step(gen, func() {
		now := d.sched.Now()
		d.opacity = d.opacity.toward(100, now, d.dur)
		d.offset = d.offset.toward(0, now, d.dur)

		d.sched.After(d.dur, d.step(gen, func() {
			d.state = Open
			d.metrics.DrawerEvents.Increment("open")
			slog.Debug("drawer open", "active", d.slider.Active().ID)
			if d.closeNext {
				d.closeNext = false
				if err := d.Close(); err != nil {
					d.report(err)
				}
			}
		}))
	}))
	return nil
}

// Close starts the close sequence. A close requested while Opening runs
// once the drawer is Open; in any other state it is a no-op.
func (d *Drawer) Close() error {
	if !d.destroyed && d.state == Opening {
		slog.Debug("drawer close deferred until open")
		d.closeNext = true
		return nil
	}
	if d.destroyed || d.state != Open {
		slog.Debug("drawer close ignored", "state", d.state)
		return nil
	}

	d.state = Closing
	d.gen++
	gen := d.gen
	now := d.sched.Now()
	d.opacity = d.opacity.toward(0, now, d.dur)
	d.offset = d.offset.toward(-100, now, d.dur)

	d.sched.After(d.dur, d.step(gen, func() {
		d.paintable = false
		d.lock.Unlock()
		d.tracker.Remove()
		d.tracker.Focus(d.opener)
		d.opener = nil
		d.state = Closed
		d.metrics.DrawerEvents.Increment("close")
		slog.Debug("drawer closed", "active", d.slider.Active().ID)
	}))
	return nil
}

// Destroy tears the drawer and its slider down. Pending steps become
// no-ops; an open drawer releases its scroll lock and focus trap.
func (d *Drawer) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.gen++
	if d.state != Closed {
		d.lock.Unlock()
		d.tracker.Remove()
	}
	d.slider.Destroy()
}

// Animating reports whether any motion is in flight at t.
func (d *Drawer) Animating(t time.Time) bool {
	return d.state == Opening || d.state == Closing || d.slider.Animating(t)
}

// Opacity returns the overlay opacity (0-100) at t.
func (d *Drawer) Opacity(t time.Time) int { return d.opacity.at(t) }

// Offset returns the content panel offset in percent at t.
func (d *Drawer) Offset(t time.Time) int { return d.offset.at(t) }

func (d *Drawer) dismiss() {
	if err := d.Close(); err != nil {
		d.report(err)
	}
}

func (d *Drawer) step(gen uint64, fn func()) func() {
	return func() {
		if d.destroyed || gen != d.gen {
			slog.Debug("dropping stale drawer step", "gen", gen, "current_gen", d.gen)
			return
		}
		fn()
	}
}

type tween struct {
	from, to int
	start    time.Time
	dur      time.Duration
}

func (t tween) at(now time.Time) int {
	if t.dur <= 0 || !now.Before(t.start.Add(t.dur)) {
		return t.to
	}
	if now.Before(t.start) {
		return t.from
	}
	p := float64(now.Sub(t.start)) / float64(t.dur)
	return t.from + int(float64(t.to-t.from)*p)
}

func (t tween) toward(to int, now time.Time, d time.Duration) tween {
	return tween{from: t.at(now), to: to, start: now, dur: d}
}
