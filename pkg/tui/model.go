package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mchmarny/slidemenu/pkg/drawer"
	"github.com/mchmarny/slidemenu/pkg/focus"
	"github.com/mchmarny/slidemenu/pkg/metric"
	"github.com/mchmarny/slidemenu/pkg/schedule"
	"github.com/mchmarny/slidemenu/pkg/slider"
	"github.com/mchmarny/slidemenu/pkg/toggle"
	"github.com/mchmarny/slidemenu/pkg/view"
)

const (
	// FrameInterval paces redraws while something is moving.
	FrameInterval = 16 * time.Millisecond

	// DefaultInlineWidth is the width of the inline menu box, border included.
	DefaultInlineWidth = 40

	// chrome is the header and status lines around the page.
	chrome = 2
)

type frameMsg time.Time

// Config is the construction input of the program model.
type Config struct {
	Slider     slider.Config
	Title      string
	CloseLabel string

	// Page is the content shown behind or beside the menu.
	Page string
}

// Model is the bubbletea model hosting the menu. In drawer mode the slider
// lives in an overlay opened by the toggle; in inline mode it sits in a box
// beside the page.
type Model struct {
	cfg     Config
	keys    KeyMap
	sched   *schedule.Tea
	tracker *focus.Tracker
	metrics *metric.Set
	page    *Page

	toggle *toggle.Toggle
	drawer *drawer.Drawer
	slider *slider.Slider
	inline view.Node

	drawerOpts []drawer.Option
	sliderOpts []slider.Option

	width       int
	height      int
	inlineWidth int
	status      string
	ticking     bool
	quitting    bool
}

// Option is a functional option for configuring the Model.
type Option func(*Model)

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithMetrics sets the metrics recorded by the drawer and slider.
func WithMetrics(s *metric.Set) Option {
	return func(m *Model) { m.metrics = s }
}

// WithDrawerOptions passes options to the drawer. Ignored in inline mode.
func WithDrawerOptions(opts ...drawer.Option) Option {
	return func(m *Model) { m.drawerOpts = append(m.drawerOpts, opts...) }
}

// WithSliderOptions passes options to the slider.
func WithSliderOptions(opts ...slider.Option) Option {
	return func(m *Model) { m.sliderOpts = append(m.sliderOpts, opts...) }
}

// WithInlineWidth sets the width of the inline menu box.
func WithInlineWidth(w int) Option {
	return func(m *Model) { m.inlineWidth = w }
}

// New builds the model and everything it hosts.
func New(cfg Config, opts ...Option) (*Model, error) {
	m := &Model{
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		sched:       schedule.NewTea(),
		metrics:     metric.Nop(),
		page:        NewPage(cfg.Page),
		inlineWidth: DefaultInlineWidth,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.tracker = focus.NewTracker(nil)

	onNavigate := cfg.Slider.OnNavigate
	cfg.Slider.OnNavigate = func(l slider.Link) {
		m.navigated(l)
		if onNavigate != nil {
			onNavigate(l)
		}
	}

	if cfg.Slider.Mode == slider.ModeInline {
		sopts := append([]slider.Option{
			slider.WithScheduler(m.sched),
			slider.WithFocuser(m.tracker),
			slider.WithReporter(m.report),
			slider.WithMetrics(m.metrics),
			slider.WithWidth(m.inlineWidth - 2),
		}, m.sliderOpts...)
		s, err := slider.New(cfg.Slider, sopts...)
		if err != nil {
			return nil, fmt.Errorf("building inline menu: %w", err)
		}
		m.slider = s
		m.inline = s.Mount()
		m.tracker.SetScope(s.Focusables)
		m.tracker.Focus(s.Active().FirstControl())
		return m, nil
	}

	dopts := append([]drawer.Option{
		drawer.WithScheduler(m.sched),
		drawer.WithTracker(m.tracker),
		drawer.WithScrollLock(m.page),
		drawer.WithReporter(m.report),
		drawer.WithMetrics(m.metrics),
		drawer.WithSliderOptions(m.sliderOpts...),
	}, m.drawerOpts...)
	d, err := drawer.New(drawer.Config{
		Slider:     cfg.Slider,
		Title:      cfg.Title,
		CloseLabel: cfg.CloseLabel,
	}, dopts...)
	if err != nil {
		return nil, fmt.Errorf("building drawer: %w", err)
	}
	m.drawer = d
	m.slider = d.Slider()
	d.Mount()

	m.toggle = toggle.New(d.Open,
		toggle.WithExpanded(d.Expanded),
		toggle.WithReporter(m.report))
	t := m.toggle.Control()
	m.tracker.SetScope(func() []*view.Control { return []*view.Control{t} })
	m.tracker.Focus(t)

	return m, nil
}

// Slider returns the hosted slider.
func (m *Model) Slider() *slider.Slider { return m.slider }

// Drawer returns the drawer, or nil in inline mode.
func (m *Model) Drawer() *drawer.Drawer { return m.drawer }

// Status returns the text of the status line.
func (m *Model) Status() string { return m.status }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.sched.Cmds()...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case schedule.FireMsg:
		m.sched.Fire(msg)
	case frameMsg:
		m.ticking = false
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			cmds = append(cmds, cmd)
		} else {
			cmds = append(cmds, m.page.Update(msg))
		}
	default:
		cmds = append(cmds, m.page.Update(msg))
	}

	if m.quitting {
		return m, tea.Quit
	}

	cmds = append(cmds, m.sched.Cmds()...)
	if !m.ticking && m.animating() {
		m.ticking = true
		cmds = append(cmds, tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
			return frameMsg(t)
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.destroy()
		m.quitting = true
	case key.Matches(msg, m.keys.Next):
		m.tracker.Next()
	case key.Matches(msg, m.keys.Prev):
		m.tracker.Prev()
	case key.Matches(msg, m.keys.Activate):
		m.tracker.Activate()
	case key.Matches(msg, m.keys.Escape):
		m.escape()
	case key.Matches(msg, m.keys.Open):
		if m.toggle == nil {
			return nil, false
		}
		m.tracker.ActivateControl(m.toggle.Control())
	default:
		return nil, false
	}
	return nil, true
}

// escape dismisses the drawer, or in inline mode climbs one level.
func (m *Model) escape() {
	if m.tracker.Escape() {
		return
	}
	if m.drawer != nil {
		return
	}
	if p := m.slider.Active(); !p.IsRoot() {
		m.slider.Ascend(p.BackTarget())
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	pageWidth := width
	if m.drawer != nil {
		m.drawer.SetWidth(width)
	} else {
		pageWidth = max(width-m.inlineWidth, 0)
		m.slider.SetWidth(m.boxWidth() - 2)
	}
	m.page.SetSize(pageWidth, height-chrome)
}

func (m *Model) boxWidth() int {
	if m.width > 0 && m.width < m.inlineWidth {
		return m.width
	}
	return m.inlineWidth
}

func (m *Model) animating() bool {
	now := m.sched.Now()
	if m.drawer != nil {
		return m.drawer.Animating(now)
	}
	return m.slider.Animating(now)
}

func (m *Model) navigated(l slider.Link) {
	m.status = fmt.Sprintf("%s → %s", l.Label, l.Href)
	if m.drawer != nil {
		if err := m.drawer.Close(); err != nil {
			m.report(err)
		}
	}
}

func (m *Model) report(err error) {
	slog.Error("menu", "error", err)
	m.status = "error: " + err.Error()
}

func (m *Model) destroy() {
	if m.drawer != nil {
		m.drawer.Destroy()
		return
	}
	m.slider.Destroy()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.cfg.Title
	if m.toggle != nil {
		header = m.toggle.Control().Render(m.width) + "  " + view.Styles.Headline.Render(m.cfg.Title)
	}
	status := view.Styles.Status.Render(m.statusLine())

	if m.drawer != nil {
		full := strings.Join([]string{header, m.page.View(), status}, "\n")
		return m.drawer.Compose(full, m.width, m.height)
	}

	bw := m.boxWidth()
	box := view.Styles.Inline.Width(bw - 2).Render(m.inline.Render(bw - 2))
	body := lipgloss.JoinHorizontal(lipgloss.Top, box, m.page.View())
	return strings.Join([]string{header, body, status}, "\n")
}

func (m *Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	parts := make([]string, 0, 5)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
