package slider

import (
	"log/slog"
	"time"

	"github.com/mchmarny/slidemenu/pkg/metric"
	"github.com/mchmarny/slidemenu/pkg/schedule"
	"github.com/mchmarny/slidemenu/pkg/view"
)

const (
	// DefaultLeadDelay bridges positioning the incoming panel and starting
	// the translation.
	DefaultLeadDelay = 100 * time.Millisecond

	// DefaultSlideDuration is the translation time of both panels.
	DefaultSlideDuration = 300 * time.Millisecond

	// DefaultWidth is used until the host reports a viewport width.
	DefaultWidth = 40
)

// Focuser moves keyboard focus.
type Focuser interface {
	Focus(c *view.Control)
}

// Slider owns the panel tree, the active panel, and the container height.
// It is not safe for concurrent use: all calls and all scheduled steps must
// run on the goroutine that owns the UI.
type Slider struct {
	cfg      Config
	tree     *Tree
	byParent map[Ref]*Panel
	current  *Panel

	state   State
	gen     uint64
	pending *TransitionRequest

	sched    schedule.Scheduler
	focuser  Focuser
	canFocus func() bool
	measure  Measurer
	report   Reporter
	metrics  *metric.Set
	padding  int
	width    int
	lead     time.Duration
	slide    time.Duration
	debounce time.Duration

	height    heightTween
	resize    *schedule.Debouncer
	mounted   bool
	destroyed bool
}

// Option is a functional option for configuring the Slider.
type Option func(*Slider)

// WithScheduler sets the scheduler running the animation steps.
func WithScheduler(sched schedule.Scheduler) Option {
	return func(s *Slider) { s.sched = sched }
}

// WithFocuser sets what receives focus when a transition completes.
func WithFocuser(f Focuser) Option {
	return func(s *Slider) { s.focuser = f }
}

// WithFocusGate makes the slider move focus after a transition only while
// allow returns true. Hosts that can hide the slider use it to keep focus
// out of content that is no longer shown.
func WithFocusGate(allow func() bool) Option {
	return func(s *Slider) { s.canFocus = allow }
}

// WithMeasurer replaces the rendered-height measurement.
func WithMeasurer(m Measurer) Option {
	return func(s *Slider) { s.measure = m }
}

// WithPadding sets the constant added to the container height.
func WithPadding(p int) Option {
	return func(s *Slider) { s.padding = p }
}

// WithTiming sets the lead delay and the slide duration.
func WithTiming(lead, slide time.Duration) Option {
	return func(s *Slider) {
		s.lead = lead
		s.slide = slide
	}
}

// WithResizeDebounce sets the quiet period for resize recomputation.
func WithResizeDebounce(d time.Duration) Option {
	return func(s *Slider) { s.debounce = d }
}

// WithReporter sets where non-fatal errors go. Defaults to LogReporter.
func WithReporter(r Reporter) Option {
	return func(s *Slider) { s.report = r }
}

// WithMetrics sets the metrics the slider records.
func WithMetrics(m *metric.Set) Option {
	return func(s *Slider) { s.metrics = m }
}

// WithWidth sets the initial viewport width.
func WithWidth(w int) Option {
	return func(s *Slider) { s.width = w }
}

// New builds the panel tree and the controller around it. Unresolvable
// descendant panels are reported and dropped; a config without primary
// links fails.
func New(cfg Config, opts ...Option) (*Slider, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeDrawer
	}

	s := &Slider{
		cfg:      cfg,
		measure:  view.Height,
		report:   LogReporter,
		metrics:  metric.Nop(),
		padding:  DefaultPadding,
		width:    DefaultWidth,
		lead:     DefaultLeadDelay,
		slide:    DefaultSlideDuration,
		debounce: schedule.DefaultDebounce,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.sched == nil {
		s.sched = schedule.NewTea()
	}

	tree, err := assemble(cfg, s, s.report)
	if err != nil {
		return nil, err
	}
	for _, e := range tree.Dropped {
		s.metrics.DroppedPanels.Increment(dropReason(e))
	}

	s.tree = tree
	s.current = tree.Active
	s.byParent = make(map[Ref]*Panel, len(tree.Panels))
	for _, p := range tree.Panels {
		s.byParent[p.ParentRef] = p
	}
	s.resize = schedule.NewDebouncer(s.sched, s.debounce, func() {
		if !s.destroyed {
			s.recompute(false)
		}
	})

	slog.Debug("slider built",
		"mode", cfg.Mode,
		"panels", len(tree.Panels),
		"dropped", len(tree.Dropped),
		"active", s.current.ID)

	return s, nil
}

// Mount returns the slider's visual node. The first call measures the
// active panel.
func (s *Slider) Mount() view.Node {
	if !s.mounted {
		s.mounted = true
		s.recompute(false)
	}
	return &node{s: s}
}

// Tree returns the assembled panel tree.
func (s *Slider) Tree() *Tree { return s.tree }

// Active returns the visible panel.
func (s *Slider) Active() *Panel { return s.current }

// State returns the transition state.
func (s *Slider) State() State { return s.state }

// Mode returns the display mode.
func (s *Slider) Mode() DisplayMode { return s.cfg.Mode }

// Panel returns the panel whose parent ref is ref.
func (s *Slider) Panel(ref Ref) (*Panel, bool) {
	p, ok := s.byParent[ref]
	return p, ok
}

// Focusables returns the controls of the active panel. Inactive panels are
// never focusable.
func (s *Slider) Focusables() []*view.Control {
	return s.current.Controls()
}

// SetWidth records the viewport width and schedules a resize.
func (s *Slider) SetWidth(w int) {
	if w == s.width {
		return
	}
	s.width = w
	s.Resize()
}

// Resize schedules a debounced, instant height recomputation.
func (s *Slider) Resize() {
	if s.destroyed {
		return
	}
	s.resize.Trigger()
}

// Animating reports whether any motion is still in flight at t.
func (s *Slider) Animating(t time.Time) bool {
	if s.state == Transitioning {
		return true
	}
	return s.height.at(t) != s.height.to
}

// Destroy tears the slider down. In-flight steps become no-ops and the
// resize listener is detached.
func (s *Slider) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.gen++
	s.resize.Stop()
	slog.Debug("slider destroyed", "active", s.current.ID)
}

func (s *Slider) navigate(l Link) {
	slog.Info("navigate", "label", l.Label, "href", l.Href)
	if s.cfg.OnNavigate != nil {
		s.cfg.OnNavigate(l)
	}
}
