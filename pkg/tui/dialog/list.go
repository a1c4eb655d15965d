package dialog

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/docker/gemini-console/pkg/tui/styles"
)

// listKeyMap is shared by the dialogs that show a selectable list. Letter
// keys are only used by dialogs without a text input.
type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Enter    key.Binding
	Toggle   key.Binding
	Escape   key.Binding
}

func defaultListKeyMap() listKeyMap {
	return listKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "toggle"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// cursor tracks the selected row of a scrolling list.
type cursor struct {
	selected int
	offset   int
	count    int
}

func (c *cursor) reset(count int) {
	c.selected, c.offset, c.count = 0, 0, count
}

func (c *cursor) setCount(count int) {
	c.count = count
	c.selected = min(c.selected, max(0, count-1))
}

func (c *cursor) up(n int) {
	c.selected = max(0, c.selected-n)
}

func (c *cursor) down(n int) {
	c.selected = max(0, min(c.count-1, c.selected+n))
}

// handle moves the cursor for navigation keys and reports whether it did.
func (c *cursor) handle(km listKeyMap, msg tea.KeyPressMsg, page int) bool {
	switch {
	case key.Matches(msg, km.Up):
		c.up(1)
	case key.Matches(msg, km.Down):
		c.down(1)
	case key.Matches(msg, km.PageUp):
		c.up(page)
	case key.Matches(msg, km.PageDown):
		c.down(page)
	default:
		return false
	}
	return true
}

// window returns the visible [start, end) range for size rows.
func (c *cursor) window(size int) (start, end int) {
	size = max(1, size)
	if c.selected < c.offset {
		c.offset = c.selected
	} else if c.selected >= c.offset+size {
		c.offset = c.selected - size + 1
	}
	return c.offset, min(c.offset+size, c.count)
}

// renderRow renders one list row, truncated to width.
func renderRow(label, desc string, selected, disabled bool, width int) string {
	style, descStyle := styles.PaletteUnselectedStyle, styles.PaletteDescStyle
	switch {
	case disabled:
		style = styles.PaletteDisabledStyle
	case selected:
		style = styles.PaletteSelectedStyle
	}

	text := label
	if desc != "" {
		text += " " + descStyle.Render(desc)
	}
	return style.Width(width).Render(ansi.Truncate(text, max(1, width-2), "…"))
}

// moreIndicator renders the "… and N more" footer when rows are hidden.
func moreIndicator(end, total int) string {
	if end >= total {
		return ""
	}
	return styles.MutedStyle.Render(fmt.Sprintf("  … and %d more", total-end))
}

// emptyState renders centered italic text for empty lists.
func emptyState(text string, width int) string {
	return styles.DialogContentStyle.
		Italic(true).
		Foreground(styles.TextMuted).
		Width(width).
		Render(text)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
