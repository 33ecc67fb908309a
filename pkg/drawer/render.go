package drawer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/mchmarny/slidemenu/pkg/view"
)

// borderWidth is the right border of view.Styles.Drawer.
const borderWidth = 1

func (d *Drawer) innerWidth() int {
	if d.width <= borderWidth {
		return 0
	}
	return d.width - borderWidth
}

// SetWidth tells the drawer the viewport is width columns wide. The hosted
// slider measures at the width the panel is drawn with, so a viewport
// narrower than the drawer reflows the menu.
func (d *Drawer) SetWidth(width int) {
	w := d.panelWidth(width) - borderWidth
	if w < 0 {
		w = 0
	}
	d.slider.SetWidth(w)
}

// Mount returns the drawer's content panel as a node. It renders nothing
// while the drawer is not paintable.
func (d *Drawer) Mount() view.Node {
	return &node{d: d}
}

type node struct {
	d *Drawer
}

func (n *node) Render(width int) string {
	d := n.d
	if !d.paintable {
		return ""
	}
	pw := d.panelWidth(width)
	off := d.offset.at(d.sched.Now()) * pw / 100
	return view.Place("", d.renderPanel(pw, 0), off, pw)
}

// Compose draws the drawer over page, which is width columns by height
// lines. The page dims while the overlay has any opacity.
func (d *Drawer) Compose(page string, width, height int) string {
	if !d.paintable {
		return page
	}
	now := d.sched.Now()

	page = view.Fit(page, height)
	if d.opacity.at(now) > 0 {
		lines := strings.Split(page, "\n")
		for i, l := range lines {
			lines[i] = view.Styles.Backdrop.Render(ansi.Strip(l))
		}
		page = strings.Join(lines, "\n")
	}

	pw := d.panelWidth(width)
	off := d.offset.at(now) * pw / 100
	return view.Place(page, d.renderPanel(pw, height), off, pw)
}

func (d *Drawer) panelWidth(width int) int {
	if width > 0 && width < d.width {
		return width
	}
	return d.width
}

func (d *Drawer) renderPanel(width, height int) string {
	inner := width - borderWidth
	if inner < 0 {
		inner = 0
	}

	title := d.cfg.Title
	header := &view.Row{
		Lead:  view.NewText(title, view.Styles.Headline),
		Trail: d.close,
	}
	body := view.NewStack(header, view.Blank(1), d.body)

	st := view.Styles.Drawer.Width(inner)
	if height > 0 {
		st = st.Height(height)
	}
	return st.Render(body.Render(inner))
}

// Attrs returns the accessibility attributes of the mounted content.
func (d *Drawer) Attrs() map[string]string {
	return map[string]string{
		"role":          "dialog",
		"aria-modal":    "true",
		"aria-label":    d.cfg.Title,
		"aria-expanded": strconv.FormatBool(d.Expanded()),
		"aria-hidden":   strconv.FormatBool(d.state == Closed),
	}
}
