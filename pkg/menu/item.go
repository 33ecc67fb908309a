package menu

import (
	"strings"

	"github.com/mchmarny/slidemenu/pkg/slider"
)

// Item represents an individual item in the menu, which may contain sub-items.
type Item struct {
	// Ref links the item to the panel beneath it. Items with sub-items get
	// one derived from Href when it is not set, or from the label path when
	// another item already uses that Href. Explicit refs must be unique.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// Label is the visible and accessible text of the item.
	Label string `json:"label" yaml:"label"`

	// Href is where the item navigates to. Items without one are inert.
	Href string `json:"href,omitempty" yaml:"href,omitempty"`

	// Description is an optional description of the menu item.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Selected marks the item of the current location.
	Selected bool `json:"selected,omitempty" yaml:"selected,omitempty"`

	// Active opens the panel beneath this item on start.
	Active bool `json:"active,omitempty" yaml:"active,omitempty"`

	// Items are the sub-items of this menu item.
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// ref returns the child ref of the item at path. Refs in taken are not
// derived again.
func (it *Item) ref(path []string, taken map[slider.Ref]bool) slider.Ref {
	if it.Ref != "" {
		return slider.Ref(it.Ref)
	}
	if r := slider.Ref(it.Href); it.Href != "" && !taken[r] {
		return r
	}
	parts := make([]string, 0, len(path))
	for _, p := range path {
		parts = append(parts, strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p)), " ", "-"))
	}
	return slider.Ref(strings.Join(parts, "/"))
}

// leadsSomewhere reports whether the item carries a child ref.
func (it *Item) leadsSomewhere() bool {
	return it.Ref != "" || len(it.Items) > 0
}
