package slider

import (
	"github.com/mchmarny/slidemenu/pkg/view"
)

// ActionItem is one selectable row of a panel. It is built once with its
// panel and never changes afterwards.
type ActionItem struct {
	Link Link

	row     *view.Row
	link    *view.Control
	forward *view.Control
}

// newActionItem renders a link as a row. Links with children get a
// forward control that descends into ChildRef. A link without a target is
// still rendered, but inert.
func newActionItem(id string, l Link, h handler) *ActionItem {
	a := &ActionItem{Link: l}

	a.link = &view.Control{
		ID:       id,
		Role:     view.RoleLink,
		Label:    l.Label,
		Content:  l.Label,
		Href:     l.Href,
		Selected: l.Selected,
		Inert:    l.Href == "",
	}
	if !a.link.Inert {
		a.link.OnActivate = func() { h.navigate(l) }
	}

	if l.HasChildren() {
		ref := l.ChildRef
		a.forward = &view.Control{
			ID:         id + "/forward",
			Role:       view.RoleButton,
			Label:      "Open submenu " + l.Label,
			Content:    view.Styles.ForwardMark,
			OnActivate: func() { h.Descend(ref) },
		}
	}

	a.row = &view.Row{Lead: a.link}
	if a.forward != nil {
		a.row.Trail = a.forward
	}
	return a
}

// ChildRef returns the ref of the panel the item leads to, if any.
func (a *ActionItem) ChildRef() Ref { return a.Link.ChildRef }

// Row returns the item's visual node.
func (a *ActionItem) Row() view.Node { return a.row }

// LinkControl returns the item's link control.
func (a *ActionItem) LinkControl() *view.Control { return a.link }

// Forward returns the forward control, or nil when the item has no children.
func (a *ActionItem) Forward() *view.Control { return a.forward }

// Controls returns the item's focusable controls in reading order.
func (a *ActionItem) Controls() []*view.Control {
	return view.Controls(a.row)
}
