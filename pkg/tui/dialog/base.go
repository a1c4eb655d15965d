package dialog

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/docker/gemini-console/pkg/tui/styles"
)

// panelPadding is the horizontal padding of every dialog style.
const panelPadding = 2

// frame tracks the screen size a dialog is laid out against.
type frame struct {
	width, height int
}

func (f *frame) SetSize(width, height int) tea.Cmd {
	f.width = width
	f.height = height
	return nil
}

func (f *frame) Width() int  { return f.width }
func (f *frame) Height() int { return f.height }

// Screen size assumed before the first resize.
const (
	unsizedWidth  = 120
	unsizedHeight = 40
)

// screenHeight is the height dialogs lay out against.
func (f *frame) screenHeight() int {
	if f.height <= 0 {
		return unsizedHeight
	}
	return f.height
}

// widths sizes a dialog to percent of the screen, clamped to
// [minWidth, maxWidth] and never wider than the screen. inner is what is
// left once the border and padding are taken off.
func (f *frame) widths(percent, minWidth, maxWidth int) (outer, inner int) {
	screen := f.width
	if screen <= 0 {
		screen = unsizedWidth
	}
	outer = screen * percent / 100
	switch {
	case outer < minWidth:
		outer = max(20, min(screen-4, minWidth))
	case outer > maxWidth:
		outer = min(maxWidth, screen-4)
	}
	inner = max(10, outer-2*panelPadding-2)
	return outer, inner
}

// center returns the top-left cell that centers view on screen.
func (f *frame) center(view string) (row, col int) {
	return CenterPosition(f.width, f.height, lipgloss.Width(view), lipgloss.Height(view))
}

// quitKey lets ctrl+c quit from any dialog.
func quitKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	return nil
}

func separator(width int) string {
	return styles.DialogSeparatorStyle.
		Align(lipgloss.Center).
		Width(width).
		Render(strings.Repeat("─", max(1, width)))
}

// body stacks the lines of a dialog, all rendered to the same width.
type body struct {
	width int
	lines []string
}

func newBody(width int) *body {
	return &body{width: width}
}

func (b *body) title(text string) *body {
	b.lines = append(b.lines, styles.DialogTitleStyle.Width(b.width).Render(text))
	return b
}

func (b *body) rule() *body {
	b.lines = append(b.lines, separator(b.width))
	return b
}

func (b *body) gap() *body {
	b.lines = append(b.lines, "")
	return b
}

func (b *body) question(text string) *body {
	b.lines = append(b.lines, styles.DialogQuestionStyle.Width(b.width).Render(text))
	return b
}

func (b *body) line(content string) *body {
	b.lines = append(b.lines, content)
	return b
}

// keys renders key/description pairs the way the status bar does.
// An odd number of arguments renders nothing.
func (b *body) keys(pairs ...string) *body {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return b
	}
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, styles.HighlightWhiteStyle.Render(pairs[i])+" "+styles.SecondaryStyle.Render(pairs[i+1]))
	}
	b.lines = append(b.lines, styles.BaseStyle.Width(b.width).Align(lipgloss.Center).Render(strings.Join(parts, "  ")))
	return b
}

func (b *body) String() string {
	return lipgloss.JoinVertical(lipgloss.Left, b.lines...)
}
