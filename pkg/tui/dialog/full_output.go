package dialog

import (
	"cmp"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/docker/gemini-console/pkg/render"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

const (
	dialogSizePercent  = 80
	dialogFramePadding = 6 // border (2) + internal padding (4)
	dialogMinWidth     = 20
	dialogChromeRows   = 4 // title + separator + blank line + help
	dialogFrameHeight  = 4 // top/bottom border + padding
	minViewportHeight  = 5
	tabWidth           = 4
)

// FullOutputDialog shows the complete sanitized HTML of the last assistant
// message, syntax highlighted.
type FullOutputDialog struct {
	frame
	source   string
	dark     bool
	viewport viewport.Model
	copyKey  key.Binding
	closeKey key.Binding

	dialogWidth  int
	dialogHeight int
	innerWidth   int
}

func NewFullOutputDialog() *FullOutputDialog {
	vp := viewport.New(
		viewport.WithWidth(80),
		viewport.WithHeight(20),
	)
	vp.SoftWrap = true
	vp.FillHeight = true
	vp.LeftGutterFunc = func(ctx viewport.GutterContext) string {
		str := fmt.Sprintf("%4d ", ctx.Index+1)
		if ctx.Soft {
			return styles.MutedStyle.Render(strings.Repeat(" ", len(str)))
		}
		return styles.MutedStyle.Render(str)
	}

	return &FullOutputDialog{
		viewport: vp,
		copyKey: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		closeKey: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "close"),
		),
	}
}

// SetSource replaces the displayed HTML.
func (d *FullOutputDialog) SetSource(source string, dark bool) {
	d.source = source
	d.dark = dark
	d.viewport.SetContent(d.content())
}

// Source returns the HTML shown, unhighlighted.
func (d *FullOutputDialog) Source() string {
	return d.source
}

// Reset scrolls back to the top.
func (d *FullOutputDialog) Reset() tea.Cmd {
	d.viewport.GotoTop()
	return nil
}

func (d *FullOutputDialog) content() string {
	if d.source == "" {
		return styles.MutedStyle.Render("No assistant response yet.")
	}
	return sanitizeContent(render.HighlightSource(d.source, d.dark))
}

func (d *FullOutputDialog) Init() tea.Cmd {
	return nil
}

func (d *FullOutputDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case messages.ThemeChangedMsg:
		d.dark = msg.Dark
		d.viewport.SetContent(d.content())
		return d, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, d.closeKey):
			return d, core.CmdHandler(CloseDialogMsg{})
		case key.Matches(msg, d.copyKey):
			if d.source == "" {
				return d, nil
			}
			return d, core.CmdHandler(messages.CopyToClipboardMsg{Text: d.source})
		}
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *FullOutputDialog) View() string {
	viewportView := lipgloss.NewStyle().
		Height(d.viewport.Height()).
		MaxHeight(d.viewport.Height()).
		Render(d.viewport.View())

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		renderSingleLine(styles.DialogTitleStyle, "Full Output", d.innerWidth),
		separator(d.innerWidth),
		viewportView,
		"",
		renderSingleLine(styles.DialogHelpStyle, "[esc/q] close | [c] copy | scroll: ↑↓ / wheel", d.innerWidth),
	)

	return styles.DialogStyle.
		Width(d.dialogWidth).
		Height(d.dialogHeight).
		Render(content)
}

func (d *FullOutputDialog) Position() (row, col int) {
	dialogHeight := cmp.Or(d.dialogHeight, 20)
	dialogWidth := cmp.Or(d.dialogWidth, dialogMinWidth)
	return CenterPosition(d.Width(), d.Height(), dialogWidth, dialogHeight)
}

func (d *FullOutputDialog) SetSize(width, height int) tea.Cmd {
	d.frame.SetSize(width, height)

	d.dialogWidth = d.computeDialogWidth()
	d.innerWidth = max(dialogMinWidth, d.dialogWidth-dialogFramePadding-2)

	maxDialogHeight := max(10, (height*dialogSizePercent)/100)
	chromeHeight := dialogChromeRows + dialogFrameHeight
	viewportHeight := max(minViewportHeight, maxDialogHeight-chromeHeight)
	d.dialogHeight = chromeHeight + viewportHeight

	d.viewport.SetWidth(d.innerWidth)
	d.viewport.SetHeight(viewportHeight)
	d.viewport.SetContent(d.content())

	return nil
}

func (d *FullOutputDialog) computeDialogWidth() int {
	width := d.Width() * dialogSizePercent / 100
	if width < 40 {
		width = d.Width() - 4
	}
	return max(dialogMinWidth, width)
}

// sanitizeContent normalizes line endings and expands tabs so soft wrapping
// matches the visual width.
func sanitizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.ReplaceAll(content, "\t", strings.Repeat(" ", tabWidth))
}

func renderSingleLine(style lipgloss.Style, text string, width int) string {
	if width <= 0 {
		return ""
	}
	trimmed := ansi.Truncate(text, width, "…")
	padded := trimmed + strings.Repeat(" ", max(0, width-lipgloss.Width(trimmed)))
	return style.Width(width).Render(padded)
}
