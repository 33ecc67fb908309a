package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Page is the scrollable content behind the menu. It implements
// drawer.ScrollLocker: while locked it ignores scroll input.
type Page struct {
	viewport viewport.Model
	content  string
	locks    int
}

// NewPage creates a page showing content.
func NewPage(content string) *Page {
	p := &Page{viewport: viewport.New(0, 0), content: content}
	p.viewport.SetContent(content)
	return p
}

// Lock implements drawer.ScrollLocker.
func (p *Page) Lock() { p.locks++ }

// Unlock implements drawer.ScrollLocker.
func (p *Page) Unlock() {
	if p.locks > 0 {
		p.locks--
	}
}

// Locked reports whether scrolling is frozen.
func (p *Page) Locked() bool { return p.locks > 0 }

// SetSize resizes the page and rewraps its content.
func (p *Page) SetSize(width, height int) {
	if height < 0 {
		height = 0
	}
	p.viewport.Width = width
	p.viewport.Height = height
	p.viewport.SetContent(lipgloss.NewStyle().Width(width).Render(p.content))
}

// Update scrolls the page unless it is locked.
func (p *Page) Update(msg tea.Msg) tea.Cmd {
	if p.Locked() {
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// YOffset returns the scroll position.
func (p *Page) YOffset() int { return p.viewport.YOffset }

// View renders the visible part of the page.
func (p *Page) View() string { return p.viewport.View() }
