package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Node is anything that renders itself into a block of terminal lines.
type Node interface {
	// Render returns the node's content laid out for the given width.
	Render(width int) string
}

// Parent is a Node made of other nodes. Measurement and focus traversal
// only descend through Parents.
type Parent interface {
	Node
	Children() []Node
}

// Text is a static, styled block of text.
type Text struct {
	Content string
	Style   lipgloss.Style
}

// NewText creates a Text node with the given style.
func NewText(content string, style lipgloss.Style) *Text {
	return &Text{Content: content, Style: style}
}

// Render implements Node.
func (t *Text) Render(width int) string {
	if width > 0 {
		return t.Style.Width(width).Render(t.Content)
	}
	return t.Style.Render(t.Content)
}

// Blank is an empty block n lines tall.
type Blank int

// Render implements Node.
func (b Blank) Render(_ int) string {
	if b <= 0 {
		return ""
	}
	return strings.Repeat("\n", int(b)-1)
}

// Stack lays its items out vertically.
type Stack struct {
	Items []Node
}

// NewStack creates a vertical stack, skipping nil items.
func NewStack(items ...Node) *Stack {
	s := &Stack{}
	for _, it := range items {
		if it != nil {
			s.Items = append(s.Items, it)
		}
	}
	return s
}

// Children implements Parent.
func (s *Stack) Children() []Node { return s.Items }

// Render implements Node.
func (s *Stack) Render(width int) string {
	parts := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		parts = append(parts, it.Render(width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Row lays a leading node and an optional trailing node out on one line,
// pushing the trailing node to the right edge.
type Row struct {
	Lead  Node
	Trail Node
}

// Children implements Parent.
func (r *Row) Children() []Node {
	if r.Trail == nil {
		return []Node{r.Lead}
	}
	return []Node{r.Lead, r.Trail}
}

// Render implements Node.
func (r *Row) Render(width int) string {
	if r.Trail == nil {
		return r.Lead.Render(width)
	}

	trail := r.Trail.Render(0)
	tw := lipgloss.Width(trail)
	lead := r.Lead.Render(0)
	gap := width - lipgloss.Width(lead) - tw
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lead, strings.Repeat(" ", gap), trail)
}

// Height returns the number of lines the node occupies at the given width.
func Height(n Node, width int) int {
	if n == nil {
		return 0
	}
	if b, ok := n.(Blank); ok {
		if b < 0 {
			return 0
		}
		return int(b)
	}
	return lipgloss.Height(n.Render(width))
}
