package slider

import (
	"strconv"
	"strings"
	"time"

	"github.com/mchmarny/slidemenu/pkg/view"
)

// Panel is one level of the menu. Panels are created once by the
// assembler; afterwards only the active flag and the motion change, and
// only the Slider changes them.
type Panel struct {
	ID        string
	ParentRef Ref
	Headline  string
	Items     []*ActionItem
	Extra     view.Node

	// IsActive is true for exactly one panel of a tree.
	IsActive bool

	root       bool
	back       *view.Control
	backTarget Ref
	content    *view.Stack
	paintable  bool
	motion     motion
}

// motion is a horizontal translation in percent of the panel width.
type motion struct {
	from, to int
	start    time.Time
	dur      time.Duration
}

func (m motion) at(now time.Time) int {
	if m.dur <= 0 || !now.Before(m.start.Add(m.dur)) {
		return m.to
	}
	if now.Before(m.start) {
		return m.from
	}
	p := float64(now.Sub(m.start)) / float64(m.dur)
	return m.from + int(float64(m.to-m.from)*p)
}

// buildRootPanel assembles the root level: primary items, then secondary
// items below a divider, then extra content. It has no back control.
func buildRootPanel(primary, secondary []*ActionItem, extra view.Node) *Panel {
	p := &Panel{
		ID:        "root",
		ParentRef: RootRef,
		Extra:     extra,
		root:      true,
	}
	p.Items = append(p.Items, primary...)
	p.Items = append(p.Items, secondary...)

	nodes := make([]view.Node, 0, len(p.Items)+2)
	for _, it := range primary {
		nodes = append(nodes, it.Row())
	}
	if len(secondary) > 0 {
		nodes = append(nodes, view.NewText(strings.Repeat("─", 8), view.Styles.Muted))
		for _, it := range secondary {
			nodes = append(nodes, it.Row())
		}
	}
	if extra != nil {
		nodes = append(nodes, extra)
	}
	p.content = view.NewStack(nodes...)
	return p
}

// buildDescendantPanel assembles a child level: a back control ascending to
// backTarget, a headline taken from the item that leads here, the items,
// then extra content.
func buildDescendantPanel(d PanelDescriptor, items []*ActionItem, headline, backLabel string, backTarget Ref, h handler) *Panel {
	p := &Panel{
		ID:         "panel:" + string(d.ParentRef),
		ParentRef:  d.ParentRef,
		Headline:   headline,
		Items:      items,
		Extra:      d.Extra,
		backTarget: backTarget,
	}

	p.back = &view.Control{
		ID:         p.ID + "/back",
		Role:       view.RoleButton,
		Label:      "Back to " + backLabel,
		Content:    view.Styles.BackMark,
		OnActivate: func() { h.Ascend(backTarget) },
	}

	nodes := make([]view.Node, 0, len(items)+3)
	nodes = append(nodes, p.back, view.NewText(headline, view.Styles.Headline))
	for _, it := range items {
		nodes = append(nodes, it.Row())
	}
	if d.Extra != nil {
		nodes = append(nodes, d.Extra)
	}
	p.content = view.NewStack(nodes...)
	return p
}

// IsRoot reports whether p is the root panel.
func (p *Panel) IsRoot() bool { return p.root }

// Back returns the back control; nil for the root panel.
func (p *Panel) Back() *view.Control { return p.back }

// BackTarget is the parent ref the back control ascends to.
func (p *Panel) BackTarget() Ref { return p.backTarget }

// Children are the panel's direct visual children, top to bottom.
func (p *Panel) Children() []view.Node { return p.content.Children() }

// Render implements view.Node.
func (p *Panel) Render(width int) string {
	return view.Styles.Panel.Width(width).Render(p.content.Render(innerWidth(width)))
}

// Controls returns the panel's focusable controls.
func (p *Panel) Controls() []*view.Control {
	return view.Controls(p.content)
}

// FirstControl returns the first focusable action item control, falling
// back to the back control for panels without usable items.
func (p *Panel) FirstControl() *view.Control {
	for _, it := range p.Items {
		if cs := it.Controls(); len(cs) > 0 {
			return cs[0]
		}
	}
	if p.back.Focusable() {
		return p.back
	}
	return nil
}

// Attrs returns the accessibility attributes of the panel. Only the active
// panel is exposed.
func (p *Panel) Attrs() map[string]string {
	hidden := !p.IsActive
	a := map[string]string{
		"id":          p.ID,
		"aria-hidden": strconv.FormatBool(hidden),
	}
	if hidden {
		a["inert"] = "true"
	}
	if p.Headline != "" {
		a["aria-label"] = p.Headline
	}
	return a
}

// Offset returns the panel's horizontal offset in percent at time now.
func (p *Panel) Offset(now time.Time) int { return p.motion.at(now) }

// Paintable reports whether the panel is drawn at all.
func (p *Panel) Paintable() bool { return p.paintable }

// place snaps the panel to offset with no transition.
func (p *Panel) place(offset int, now time.Time) {
	p.motion = motion{from: offset, to: offset, start: now}
}

// move translates the panel from where it currently is to offset over d.
func (p *Panel) move(offset int, now time.Time, d time.Duration) {
	p.motion = motion{from: p.motion.at(now), to: offset, start: now, dur: d}
}

// panelPadding is the horizontal padding of view.Styles.Panel.
const panelPadding = 2

func innerWidth(width int) int {
	if width <= panelPadding {
		return 0
	}
	return width - panelPadding
}
