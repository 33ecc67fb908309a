package view

import (
	"strconv"
)

// Role is the accessible role of an interactive control.
type Role string

const (
	RoleButton Role = "button"
	RoleLink   Role = "link"
)

// Control is an interactive node: a button or a link.
type Control struct {
	// ID identifies the control within its tree; used in logs and tests.
	ID string

	Role Role

	// Label is the accessible label announced for the control.
	Label string

	// Content is the visible text. Falls back to Label when empty.
	Content string

	// Href is the navigation target of a link.
	Href string

	// Inert controls render but cannot be focused or activated.
	Inert bool

	// Selected marks the link pointing at the current location.
	Selected bool

	// Focused is maintained by the focus tracker.
	Focused bool

	// Expanded, when set, reports the expanded state of whatever the
	// control discloses.
	Expanded func() bool

	// OnActivate runs when the control is activated.
	OnActivate func()
}

// Focusable reports whether the control can receive keyboard focus.
func (c *Control) Focusable() bool {
	return c != nil && !c.Inert && c.OnActivate != nil
}

// Activate runs the control's action. It returns false for inert controls.
func (c *Control) Activate() bool {
	if !c.Focusable() {
		return false
	}
	c.OnActivate()
	return true
}

// Render implements Node.
func (c *Control) Render(width int) string {
	text := c.Content
	if text == "" {
		text = c.Label
	}

	st := Styles.Control
	switch {
	case c.Inert:
		st = Styles.Inert
	case c.Focused:
		st = Styles.Focused
	case c.Selected:
		st = Styles.Selected
	}
	if c.Selected {
		text = Styles.SelectedMark + text
	}
	if width > 0 && c.Role == RoleLink {
		st = st.MaxWidth(width)
	}
	return st.Render(text)
}

// Attrs returns the accessibility attributes of a control.
func (c *Control) Attrs() map[string]string {
	a := map[string]string{
		"role":       string(c.Role),
		"aria-label": c.Label,
	}
	if c.Expanded != nil {
		a["aria-expanded"] = strconv.FormatBool(c.Expanded())
	}
	if c.Selected {
		a["aria-current"] = "page"
	}
	if c.Inert {
		a["aria-disabled"] = "true"
	}
	return a
}

// Controls returns every focusable control under n, depth first.
func Controls(n Node) []*Control {
	var out []*Control
	walk(n, func(c *Control) {
		if c.Focusable() {
			out = append(out, c)
		}
	})
	return out
}

func walk(n Node, fn func(*Control)) {
	switch v := n.(type) {
	case nil:
		return
	case *Control:
		if v != nil {
			fn(v)
		}
	case Parent:
		for _, ch := range v.Children() {
			walk(ch, fn)
		}
	}
}
