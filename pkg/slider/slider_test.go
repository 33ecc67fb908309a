package slider

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/slidemenu/pkg/focus"
	"github.com/mchmarny/slidemenu/pkg/schedule"
	"github.com/mchmarny/slidemenu/pkg/view"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const fullTransition = DefaultLeadDelay + DefaultSlideDuration

type harness struct {
	sched   *schedule.Manual
	tracker *focus.Tracker
	errs    []error
	s       *Slider
}

func newHarness(t *testing.T, cfg Config, opts ...Option) *harness {
	t.Helper()

	h := &harness{sched: schedule.NewManual(epoch)}
	h.tracker = focus.NewTracker(nil)
	base := []Option{
		WithScheduler(h.sched),
		WithFocuser(h.tracker),
		WithReporter(func(err error) { h.errs = append(h.errs, err) }),
	}
	s, err := New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	h.s = s
	h.tracker.SetScope(s.Focusables)
	s.Mount()
	return h
}

func aboutConfig() Config {
	return Config{
		Primary: []Link{
			{Label: "Home", Href: "/", Selected: true},
			{Label: "About", Href: "/about", ChildRef: "about-1"},
			{Label: "Contact", Href: "/contact"},
		},
		Panels: []PanelDescriptor{
			{
				ParentRef: "about-1",
				Links: []Link{
					{Label: "Team", Href: "/about/team", ChildRef: "team-1"},
					{Label: "History", Href: "/about/history"},
				},
			},
			{
				ParentRef: "team-1",
				Links: []Link{
					{Label: "Leadership", Href: "/about/team/leadership"},
				},
			},
		},
	}
}

func activeCount(tr *Tree) int {
	n := 0
	for _, p := range tr.Panels {
		if p.IsActive {
			n++
		}
	}
	return n
}

func TestNewRequiresPrimaryLinks(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Secondary: []Link{{Label: "Help", Href: "/help"}}})
	assert.ErrorIs(t, err, ErrNoPrimaryLinks)
}

func TestAssembleExactlyOneActive(t *testing.T) {
	t.Parallel()

	deep := aboutConfig()
	deep.Panels[1].Active = true

	twoFlags := aboutConfig()
	twoFlags.Panels[0].Active = true
	twoFlags.Panels[1].Active = true

	tests := []struct {
		name   string
		cfg    Config
		active string
	}{
		{name: "root by default", cfg: aboutConfig(), active: "root"},
		{name: "deep link", cfg: deep, active: "panel:team-1"},
		{name: "first flag wins", cfg: twoFlags, active: "panel:about-1"},
		{name: "root only", cfg: Config{Primary: []Link{{Label: "Home", Href: "/"}}}, active: "root"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, tt.cfg)
			tr := h.s.Tree()
			assert.Equal(t, 1, activeCount(tr))
			assert.Equal(t, tt.active, h.s.Active().ID)
			assert.Same(t, tr.Root, tr.Panels[len(tr.Panels)-1], "root panel is built last")
		})
	}
}

func TestDescendScenario(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	root := h.s.Active()
	about := root.Items[1]
	require.NotNil(t, about.Forward())

	require.True(t, about.Forward().Activate())
	assert.Equal(t, Transitioning, h.s.State())
	require.NotNil(t, h.s.Pending())
	assert.Equal(t, Ref("about-1"), h.s.Pending().TargetRef)

	h.sched.Advance(fullTransition - time.Millisecond)
	assert.Same(t, root, h.s.Active())
	assert.True(t, root.IsActive)

	h.sched.Advance(time.Millisecond)
	panel := h.s.Active()
	assert.Equal(t, Ref("about-1"), panel.ParentRef)
	assert.Equal(t, "About", panel.Headline)
	assert.Equal(t, Idle, h.s.State())
	assert.Nil(t, h.s.Pending())
	assert.False(t, root.IsActive)
	assert.Equal(t, 1, activeCount(h.s.Tree()))
	assert.Same(t, panel.Items[0].LinkControl(), h.tracker.Current())
	assert.Empty(t, h.errs)
}

func TestTransitionOffsets(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	root := h.s.Active()
	about, ok := h.s.Panel("about-1")
	require.True(t, ok)
	assert.False(t, about.Paintable())

	h.s.Descend("about-1")
	assert.True(t, about.Paintable())
	assert.Equal(t, 100, about.Offset(h.sched.Now()))
	assert.Equal(t, 0, root.Offset(h.sched.Now()))

	h.sched.Advance(DefaultLeadDelay + DefaultSlideDuration/2)
	assert.Equal(t, 50, about.Offset(h.sched.Now()))
	assert.Equal(t, -50, root.Offset(h.sched.Now()))

	h.sched.Advance(DefaultSlideDuration / 2)
	assert.Equal(t, 0, about.Offset(h.sched.Now()))
	assert.Equal(t, 0, root.Offset(h.sched.Now()))
	assert.False(t, root.Paintable())

	h.s.Ascend(RootRef)
	assert.Equal(t, -100, root.Offset(h.sched.Now()), "ascend enters from the leading edge")
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	root := h.s.Active()
	before := h.s.Height()

	h.s.Descend("about-1")
	h.sched.Advance(fullTransition)
	about := h.s.Active()
	require.NotSame(t, root, about)
	assert.NotEqual(t, before, h.s.Height())

	require.True(t, about.Back().Activate())
	h.sched.Advance(fullTransition)

	assert.Same(t, root, h.s.Active())
	assert.True(t, root.IsActive)
	assert.Equal(t, before, h.s.Height())
	assert.Equal(t, 1, activeCount(h.s.Tree()))
	assert.Same(t, root.Items[0].LinkControl(), h.tracker.Current())
}

func TestNestedBackTarget(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	team, ok := h.s.Panel("team-1")
	require.True(t, ok)
	assert.Equal(t, Ref("about-1"), team.BackTarget())
	assert.Equal(t, "Back to About", team.Back().Label)
	assert.Equal(t, "Team", team.Headline)

	about, _ := h.s.Panel("about-1")
	assert.Equal(t, RootRef, about.BackTarget())
	assert.Equal(t, "Back to main menu", about.Back().Label)

	h.s.Descend("about-1")
	h.sched.Advance(fullTransition)
	h.s.Descend("team-1")
	h.sched.Advance(fullTransition)
	require.Same(t, team, h.s.Active())

	team.Back().Activate()
	h.sched.Advance(fullTransition)
	assert.Same(t, about, h.s.Active())
}

func TestDanglingReference(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Primary: []Link{
			{Label: "Products", Href: "/products", ChildRef: "products"},
			{Label: "About", Href: "/about", ChildRef: "about"},
		},
		Panels: []PanelDescriptor{
			{ParentRef: "products", Links: []Link{{Label: "Shoes", Href: "/shoes"}}},
			{ParentRef: "missing", Links: []Link{{Label: "Ghost", Href: "/ghost"}}},
			{ParentRef: "about", Links: []Link{{Label: "Team", Href: "/team"}}},
		},
	}

	h := newHarness(t, cfg)
	tr := h.s.Tree()
	require.Len(t, h.errs, 1)
	assert.ErrorIs(t, h.errs[0], ErrUnresolvedParent)
	assert.Contains(t, h.errs[0].Error(), "missing")
	assert.Len(t, tr.Dropped, 1)
	assert.Len(t, tr.Panels, 3)

	_, ok := h.s.Panel("missing")
	assert.False(t, ok)

	h.s.Descend("missing")
	require.Len(t, h.errs, 2)
	assert.ErrorIs(t, h.errs[1], ErrTargetNotFound)
	assert.Equal(t, Idle, h.s.State())
	assert.Same(t, tr.Root, h.s.Active())
}

func TestDuplicateAndOrphanedPanels(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Primary: []Link{{Label: "A", Href: "/a", ChildRef: "a"}},
		Panels: []PanelDescriptor{
			{ParentRef: "a", Links: []Link{{Label: "A1", Href: "/a1"}}},
			{ParentRef: "a", Links: []Link{{Label: "Again", Href: "/again"}}},
			{ParentRef: "x", Links: []Link{{Label: "Y", Href: "/y", ChildRef: "y"}}},
			{ParentRef: "y", Links: []Link{{Label: "X", Href: "/x", ChildRef: "x"}}},
		},
	}

	h := newHarness(t, cfg)
	require.Len(t, h.errs, 3)
	assert.ErrorIs(t, h.errs[0], ErrDuplicatePanel)
	assert.ErrorIs(t, h.errs[1], ErrOrphanedPanel)
	assert.ErrorIs(t, h.errs[2], ErrOrphanedPanel)
	assert.Len(t, h.s.Tree().Panels, 2)
}

func TestBusyGuard(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	root := h.s.Active()

	h.s.Descend("about-1")
	h.sched.Advance(50 * time.Millisecond)
	h.s.Descend("team-1")
	h.s.Ascend(RootRef)

	require.Len(t, h.errs, 2)
	assert.ErrorIs(t, h.errs[0], ErrBusy)
	assert.ErrorIs(t, h.errs[1], ErrBusy)
	assert.Equal(t, Ref("about-1"), h.s.Pending().TargetRef)
	assert.Same(t, root, h.s.Active())

	h.sched.Advance(fullTransition)
	assert.Equal(t, Ref("about-1"), h.s.Active().ParentRef)
	assert.Equal(t, 1, activeCount(h.s.Tree()))
	assert.Zero(t, h.sched.Pending())
}

func TestDescendToRootRefIsRejected(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	h.s.Descend("about-1")
	h.sched.Advance(fullTransition)
	about := h.s.Active()

	h.s.Descend(RootRef)
	require.Len(t, h.errs, 1)
	assert.ErrorIs(t, h.errs[0], ErrTargetNotFound)
	assert.Equal(t, Idle, h.s.State())
	assert.Nil(t, h.s.Pending())
	assert.Same(t, about, h.s.Active())

	h.s.Ascend(RootRef)
	h.sched.Advance(fullTransition)
	assert.True(t, h.s.Active().IsRoot())
	assert.Len(t, h.errs, 1)
}

func TestFocusGate(t *testing.T) {
	t.Parallel()

	allow := true
	h := newHarness(t, aboutConfig(), WithFocusGate(func() bool { return allow }))
	outside := &view.Control{ID: "outside", OnActivate: func() {}}

	h.tracker.Focus(outside)
	h.s.Descend("about-1")
	allow = false
	h.sched.Advance(fullTransition)
	assert.Equal(t, Ref("about-1"), h.s.Active().ParentRef)
	assert.Same(t, outside, h.tracker.Current())

	allow = true
	h.s.Descend("team-1")
	h.sched.Advance(fullTransition)
	assert.Equal(t, "Leadership", h.tracker.Current().Label)
}

func TestDestroyDropsStaleSteps(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	root := h.s.Active()

	h.s.Descend("about-1")
	h.sched.Advance(150 * time.Millisecond)
	h.s.Destroy()
	h.sched.Advance(time.Second)

	assert.Same(t, root, h.s.Active())
	assert.True(t, root.IsActive)

	h.s.Descend("about-1")
	require.Len(t, h.errs, 1)
	assert.ErrorIs(t, h.errs[0], ErrDestroyed)

	h.s.Resize()
	assert.Zero(t, h.sched.Pending())
}

func TestContainerHeight(t *testing.T) {
	t.Parallel()

	children := []view.Node{view.Blank(40), view.Blank(120), view.Blank(30)}
	assert.Equal(t, 190+DefaultPadding, ContainerHeight(children, 80, nil, DefaultPadding))
	assert.Equal(t, 197, ContainerHeight(children, 80, nil, 7))
}

func TestHeightFromRenderedChildren(t *testing.T) {
	t.Parallel()

	var heights map[view.Node]int
	measure := func(n view.Node, _ int) int { return heights[n] }

	cfg := Config{
		Primary: []Link{{Label: "One", Href: "/1"}, {Label: "Two", Href: "/2"}},
		Extra:   view.Blank(30),
	}
	h := &harness{sched: schedule.NewManual(epoch)}
	s, err := New(cfg, WithScheduler(h.sched), WithMeasurer(measure), WithPadding(4))
	require.NoError(t, err)

	root := s.Active()
	heights = map[view.Node]int{
		root.Items[0].Row(): 40,
		root.Items[1].Row(): 120,
		root.Extra:          30,
	}
	s.Mount()
	assert.Equal(t, 194, s.Height())
	assert.Equal(t, 194, s.HeightAt(h.sched.Now()))
}

func TestHeightAnimatesAfterTransition(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	before := h.s.Height()

	h.s.Descend("about-1")
	h.sched.Advance(fullTransition)
	after := h.s.Height()
	require.NotEqual(t, before, after)

	assert.Equal(t, before, h.s.HeightAt(h.sched.Now()))
	assert.True(t, h.s.Animating(h.sched.Now()))
	assert.Equal(t, after, h.s.HeightAt(h.sched.Now().Add(DefaultSlideDuration)))
	assert.False(t, h.s.Animating(h.sched.Now().Add(DefaultSlideDuration)))
}

func TestResizeIsDebouncedAndInstant(t *testing.T) {
	t.Parallel()

	measure := func(_ view.Node, w int) int { return w / 10 }
	h := newHarness(t, aboutConfig(), WithMeasurer(measure), WithWidth(42))
	assert.Equal(t, 3*4+DefaultPadding, h.s.Height())

	for _, w := range []int{60, 70, 82} {
		h.s.SetWidth(w)
		h.sched.Advance(5 * time.Millisecond)
	}
	assert.Equal(t, 3*4+DefaultPadding, h.s.Height(), "no recompute inside the quiet period")

	h.sched.Advance(schedule.DefaultDebounce)
	assert.Equal(t, 3*8+DefaultPadding, h.s.Height())
	assert.Equal(t, h.s.Height(), h.s.HeightAt(h.sched.Now()), "resize applies instantly")
}

func TestInertRowKeepsForwardControl(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Primary: []Link{{Label: "Shop", ChildRef: "shop"}},
		Panels:  []PanelDescriptor{{ParentRef: "shop", Links: []Link{{Label: "Sale"}}}},
	}
	h := newHarness(t, cfg)
	item := h.s.Active().Items[0]

	assert.True(t, item.LinkControl().Inert)
	assert.Equal(t, "true", item.LinkControl().Attrs()["aria-disabled"])
	require.Len(t, item.Controls(), 1)
	assert.Same(t, item.Forward(), item.Controls()[0])
	assert.Equal(t, "Open submenu Shop", item.Forward().Label)

	item.Forward().Activate()
	h.sched.Advance(fullTransition)
	shop := h.s.Active()
	assert.Equal(t, "Shop", shop.Headline)
	assert.Same(t, shop.Back(), h.tracker.Current(), "falls back to the back control")
}

func TestNavigate(t *testing.T) {
	t.Parallel()

	var got []Link
	cfg := aboutConfig()
	cfg.OnNavigate = func(l Link) { got = append(got, l) }
	h := newHarness(t, cfg)

	h.s.Active().Items[2].LinkControl().Activate()
	require.Len(t, got, 1)
	assert.Equal(t, "/contact", got[0].Href)
}

func TestAccessibility(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	for _, a := range h.s.Attrs() {
		hidden := a["id"] != "root"
		assert.Equal(t, hidden, a["aria-hidden"] == "true", a["id"])
	}

	for _, c := range h.s.Focusables() {
		assert.NotEmpty(t, c.Label)
	}
	assert.Len(t, h.s.Focusables(), 4, "three links and one forward control")
}

func TestRenderShowsActivePanel(t *testing.T) {
	t.Parallel()

	h := newHarness(t, aboutConfig())
	n := h.s.Mount()

	out := n.Render(DefaultWidth)
	assert.Contains(t, out, "Home")
	assert.NotContains(t, out, "History")
	assert.Len(t, strings.Split(out, "\n"), h.s.Height())

	h.s.Descend("about-1")
	h.sched.Advance(fullTransition + DefaultSlideDuration)
	out = n.Render(DefaultWidth)
	assert.Contains(t, out, "History")
	assert.NotContains(t, out, "Contact")
	assert.Len(t, strings.Split(out, "\n"), h.s.Height())
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("Inline")
	require.NoError(t, err)
	assert.Equal(t, ModeInline, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDrawer, m)

	_, err = ParseMode("sidebar")
	assert.Error(t, err)
}
