package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/slidemenu/pkg/drawer"
	"github.com/mchmarny/slidemenu/pkg/schedule"
	"github.com/mchmarny/slidemenu/pkg/slider"
	"github.com/mchmarny/slidemenu/pkg/view"
)

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyPgDn  = tea.KeyMsg{Type: tea.KeyPgDown}
	keyMenu  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func testConfig(mode slider.DisplayMode) Config {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}
	return Config{
		Title: "Acme",
		Page:  strings.Join(lines, "\n"),
		Slider: slider.Config{
			Mode: mode,
			Primary: []slider.Link{
				{Label: "Products", ChildRef: "products"},
				{Label: "Home", Href: "/"},
			},
			Panels: []slider.PanelDescriptor{
				{ParentRef: "products", Links: []slider.Link{{Label: "Hats", Href: "/hats"}}},
			},
		},
	}
}

func newModel(t *testing.T, mode slider.DisplayMode, opts ...Option) *Model {
	t.Helper()
	m, err := New(testConfig(mode), opts...)
	require.NoError(t, err)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	settle(t, m)
	return m
}

// settle runs every scheduled step through Update, in the order the steps
// were scheduled.
func settle(t *testing.T, m *Model) {
	t.Helper()
	for id := uint64(1); m.sched.Pending() > 0; id++ {
		require.Less(t, id, uint64(10000), "steps never settle")
		m.Update(schedule.FireMsg{ID: id})
	}
}

func TestDrawerOpenAndClose(t *testing.T) {
	m := newModel(t, slider.ModeDrawer)
	toggle := m.toggle.Control()
	require.Same(t, toggle, m.tracker.Current())

	_, cmd := m.Update(keyMenu)
	assert.NotNil(t, cmd)
	assert.True(t, m.ticking)
	assert.Equal(t, drawer.Opening, m.Drawer().State())
	assert.True(t, m.page.Locked())
	assert.Same(t, m.Drawer().CloseControl(), m.tracker.Current())

	settle(t, m)
	assert.Equal(t, drawer.Open, m.Drawer().State())

	m.Update(keyEsc)
	assert.Equal(t, drawer.Closing, m.Drawer().State())
	settle(t, m)

	assert.Equal(t, drawer.Closed, m.Drawer().State())
	assert.False(t, m.page.Locked())
	assert.Same(t, toggle, m.tracker.Current())
}

func TestMenuKeyTogglesDrawer(t *testing.T) {
	m := newModel(t, slider.ModeDrawer)

	m.Update(keyMenu)
	settle(t, m)
	require.Equal(t, drawer.Open, m.Drawer().State())

	m.Update(keyMenu)
	assert.Equal(t, drawer.Closing, m.Drawer().State())
}

func TestScrollLockedWhileOpen(t *testing.T) {
	m := newModel(t, slider.ModeDrawer)

	m.Update(keyMenu)
	m.Update(keyPgDn)
	assert.Zero(t, m.page.YOffset())

	settle(t, m)
	m.Update(keyEsc)
	settle(t, m)

	m.Update(keyPgDn)
	assert.Positive(t, m.page.YOffset())
}

func TestDrawerNavigateCloses(t *testing.T) {
	m := newModel(t, slider.ModeDrawer)
	m.Update(keyMenu)
	settle(t, m)

	// close, products forward, home
	m.Update(keyTab)
	m.Update(keyTab)
	require.Equal(t, "Home", m.tracker.Current().Label)

	m.Update(keyEnter)
	assert.Equal(t, "Home → /", m.Status())
	assert.Equal(t, drawer.Closing, m.Drawer().State())
}

func TestInlineDescendAndEscape(t *testing.T) {
	m := newModel(t, slider.ModeInline)
	assert.Nil(t, m.Drawer())
	assert.True(t, m.Slider().Active().IsRoot())

	forward := m.tracker.Current()
	require.NotNil(t, forward)
	assert.Equal(t, "Open submenu Products", forward.Label)

	m.Update(keyEnter)
	settle(t, m)
	require.Equal(t, slider.Ref("products"), m.Slider().Active().ParentRef)
	assert.Equal(t, "Hats", m.tracker.Current().Label)

	m.Update(keyEnter)
	assert.Equal(t, "Hats → /hats", m.Status())

	m.Update(keyEsc)
	settle(t, m)
	assert.True(t, m.Slider().Active().IsRoot())
}

func TestInlineEscapeAtRootIsNoop(t *testing.T) {
	m := newModel(t, slider.ModeInline)

	m.Update(keyEsc)
	assert.Nil(t, m.Slider().Pending())
	assert.True(t, m.Slider().Active().IsRoot())
}

func TestView(t *testing.T) {
	m := newModel(t, slider.ModeInline)
	out := m.View()
	assert.Contains(t, out, "Products")
	assert.Contains(t, out, "Acme")

	// no motion, so the drawer is fully in view once open
	m = newModel(t, slider.ModeDrawer, WithDrawerOptions(drawer.WithTiming(0, 0)))
	assert.NotContains(t, m.View(), "Products")

	m.Update(keyMenu)
	settle(t, m)
	assert.Contains(t, m.View(), "Products")
}

func TestResizeReflowsMenu(t *testing.T) {
	tests := []struct {
		name string
		mode slider.DisplayMode
	}{
		{name: "drawer", mode: slider.ModeDrawer},
		{name: "inline", mode: slider.ModeInline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.mode)
			cfg.Slider.Extra = view.NewText("Opening hours are posted at the front desk LastLeaf", view.Styles.Muted)
			m, err := New(cfg, WithDrawerOptions(drawer.WithTiming(0, 0)))
			require.NoError(t, err)
			m.Init()
			m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
			settle(t, m)
			wide := m.Slider().Height()

			m.Update(tea.WindowSizeMsg{Width: 16, Height: 20})
			assert.Positive(t, m.sched.Pending(), "recompute is debounced")
			assert.Equal(t, wide, m.Slider().Height())

			settle(t, m)
			assert.Greater(t, m.Slider().Height(), wide)

			if tt.mode == slider.ModeDrawer {
				m.Update(keyMenu)
				settle(t, m)
			}
			assert.Contains(t, ansi.Strip(m.View()), "LastLeaf")
		})
	}
}

func TestCloseDuringSlideReturnsFocusToToggle(t *testing.T) {
	m := newModel(t, slider.ModeDrawer)
	toggle := m.toggle.Control()
	m.Update(keyMenu)
	settle(t, m)

	m.Update(keyTab)
	require.Equal(t, "Open submenu Products", m.tracker.Current().Label)
	m.Update(keyEnter)
	require.Equal(t, slider.Transitioning, m.Slider().State())

	m.Update(keyEsc)
	settle(t, m)
	assert.Equal(t, drawer.Closed, m.Drawer().State())
	assert.Equal(t, slider.Ref("products"), m.Slider().Active().ParentRef)
	assert.Same(t, toggle, m.tracker.Current())

	m.Update(keyEnter)
	assert.Empty(t, m.Status(), "no hidden link was activated")
	assert.Equal(t, drawer.Opening, m.Drawer().State())
}

func TestEscapeWhileOpeningCloses(t *testing.T) {
	m := newModel(t, slider.ModeDrawer)

	m.Update(keyMenu)
	m.Update(keyEsc)
	assert.Equal(t, drawer.Opening, m.Drawer().State())

	settle(t, m)
	assert.Equal(t, drawer.Closed, m.Drawer().State())
	assert.False(t, m.page.Locked())
	assert.Same(t, m.toggle.Control(), m.tracker.Current())
}

func TestQuit(t *testing.T) {
	m := newModel(t, slider.ModeDrawer)
	m.Update(keyMenu)

	_, cmd := m.Update(keyQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.page.Locked())
	assert.Empty(t, m.View())
}

func TestNewFailsWithoutPrimary(t *testing.T) {
	for _, mode := range []slider.DisplayMode{slider.ModeDrawer, slider.ModeInline} {
		_, err := New(Config{Slider: slider.Config{Mode: mode}})
		assert.ErrorIs(t, err, slider.ErrNoPrimaryLinks)
	}
}
