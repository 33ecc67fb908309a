package slider

import (
	"fmt"
	"strings"

	"github.com/mchmarny/slidemenu/pkg/view"
)

// Ref is an opaque reference linking an action item to the panel beneath
// it. Refs are compared by equality only.
type Ref string

// RootRef is the parent reference of the root panel.
const RootRef Ref = ""

// Direction is the travel direction of a transition.
type Direction int

const (
	// Descend moves to a child level; the new panel enters from the
	// trailing edge.
	Descend Direction = iota
	// Ascend returns to a parent level; the new panel enters from the
	// leading edge.
	Ascend
)

func (d Direction) String() string {
	if d == Ascend {
		return "ascend"
	}
	return "descend"
}

// entryOffset is where the incoming panel starts, in percent of the width.
func (d Direction) entryOffset() int {
	if d == Ascend {
		return -100
	}
	return 100
}

// DisplayMode selects where the slider is hosted.
type DisplayMode string

const (
	ModeDrawer DisplayMode = "drawer"
	ModeInline DisplayMode = "inline"
)

// ParseMode converts a string into a DisplayMode.
func ParseMode(s string) (DisplayMode, error) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDrawer, "":
		return ModeDrawer, nil
	case ModeInline:
		return ModeInline, nil
	default:
		return "", fmt.Errorf("invalid display mode %q: must be one of drawer, inline", s)
	}
}

// State is the slider's transition state.
type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Link is the input for one action item.
type Link struct {
	Label       string
	Href        string
	Description string

	// ChildRef is set when the link leads to a deeper panel.
	ChildRef Ref

	// Selected marks the link of the current location.
	Selected bool
}

// HasChildren reports whether the link leads to a descendant panel.
func (l Link) HasChildren() bool { return l.ChildRef != RootRef }

// PanelDescriptor describes one descendant panel.
type PanelDescriptor struct {
	// ParentRef must equal the ChildRef of exactly one link in the tree.
	ParentRef Ref

	Links []Link

	// Active pre-selects this panel as the initially visible one.
	Active bool

	// Extra is optional content rendered below the links.
	Extra view.Node
}

// Config is the construction input of a Slider.
type Config struct {
	// Primary links of the root panel. At least one is required.
	Primary []Link

	// Secondary links of the root panel, rendered below a divider.
	Secondary []Link

	// Extra is optional content rendered at the bottom of the root panel.
	Extra view.Node

	// Panels are the descendant panels, in any order.
	Panels []PanelDescriptor

	Mode DisplayMode

	// OnNavigate is called when a navigable link is activated.
	OnNavigate func(Link)
}

// handler receives the actions bound to controls while the tree is built.
type handler interface {
	Descend(ref Ref)
	Ascend(ref Ref)
	navigate(l Link)
}
