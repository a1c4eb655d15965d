package dialog

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type sessionsKeyMap struct {
	listKeyMap
	Delete  key.Binding
	Save    key.Binding
	Refresh key.Binding
}

// SessionsDialog lists the sessions saved on the backend.
type SessionsDialog struct {
	frame
	textInput textinput.Model
	sessions  []string
	filtered  []string
	cursor    cursor
	loading   bool
	keyMap    sessionsKeyMap
}

func NewSessionsDialog() *SessionsDialog {
	ti := textinput.New()
	ti.Placeholder = "Type to search sessions…"
	ti.SetStyles(styles.InputStyle)
	ti.CharLimit = 100

	return &SessionsDialog{
		textInput: ti,
		keyMap: sessionsKeyMap{
			listKeyMap: defaultListKeyMap(),
			Delete: key.NewBinding(
				key.WithKeys("ctrl+d"),
				key.WithHelp("ctrl+d", "delete"),
			),
			Save: key.NewBinding(
				key.WithKeys("ctrl+n"),
				key.WithHelp("ctrl+n", "save current"),
			),
			Refresh: key.NewBinding(
				key.WithKeys("f5"),
				key.WithHelp("f5", "refresh"),
			),
		},
	}
}

// Reset clears the filter and asks for a fresh session list.
func (d *SessionsDialog) Reset() tea.Cmd {
	d.textInput.SetValue("")
	d.loading = true
	d.filterSessions()
	return tea.Batch(d.textInput.Focus(), core.CmdHandler(messages.RefreshSessionsMsg{}))
}

// SetSessions replaces the listed sessions.
func (d *SessionsDialog) SetSessions(sessions []string) {
	d.sessions = sessions
	d.loading = false
	d.filterSessions()
}

func (d *SessionsDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d *SessionsDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		var cmd tea.Cmd
		d.textInput, cmd = d.textInput.Update(msg)
		d.filterSessions()
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}

		switch {
		case key.Matches(msg, d.keyMap.Escape):
			return d, core.CmdHandler(CloseDialogMsg{})

		case d.cursor.handle(d.keyMap.listKeyMap, msg, d.pageSize()):
			return d, nil

		case key.Matches(msg, d.keyMap.Enter):
			name, ok := d.current()
			if !ok {
				return d, nil
			}
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(messages.LoadSessionMsg{Name: name}),
			)

		case key.Matches(msg, d.keyMap.Delete):
			name, ok := d.current()
			if !ok {
				return d, nil
			}
			return d, core.CmdHandler(OpenDialogMsg{
				Model: NewConfirmDialog(
					"Delete Session",
					fmt.Sprintf("Delete session %q? This cannot be undone.", name),
					messages.DeleteSessionMsg{Name: name},
				),
			})

		case key.Matches(msg, d.keyMap.Save):
			return d, core.CmdHandler(messages.OpenPanelMsg{Panel: messages.PanelSaveSession})

		case key.Matches(msg, d.keyMap.Refresh):
			d.loading = true
			return d, core.CmdHandler(messages.RefreshSessionsMsg{})

		default:
			var cmd tea.Cmd
			d.textInput, cmd = d.textInput.Update(msg)
			d.filterSessions()
			return d, cmd
		}
	}

	return d, nil
}

func (d *SessionsDialog) current() (string, bool) {
	if d.cursor.selected >= len(d.filtered) {
		return "", false
	}
	return d.filtered[d.cursor.selected], true
}

func (d *SessionsDialog) filterSessions() {
	d.filtered = filterNames(d.sessions, d.textInput.Value())
	d.cursor.reset(len(d.filtered))
}

func (d *SessionsDialog) dialogSize() (dialogWidth, maxHeight, contentWidth int) {
	dialogWidth, contentWidth = d.widths(60, 50, 80)
	maxHeight = min(d.screenHeight()*70/100, 30)
	return dialogWidth, maxHeight, contentWidth
}

func (d *SessionsDialog) pageSize() int {
	_, maxHeight, _ := d.dialogSize()
	return max(1, maxHeight-12)
}

func (d *SessionsDialog) View() string {
	dialogWidth, _, contentWidth := d.dialogSize()
	d.textInput.SetWidth(contentWidth)

	var lines []string
	start, end := d.cursor.window(d.pageSize())
	for i := start; i < end; i++ {
		lines = append(lines, renderRow("💾 "+d.filtered[i], "", i == d.cursor.selected, false, contentWidth))
	}
	if more := moreIndicator(end, len(d.filtered)); more != "" {
		lines = append(lines, more)
	}
	switch {
	case d.loading && len(d.sessions) == 0:
		lines = append(lines, emptyState("Loading sessions…", contentWidth))
	case len(d.sessions) == 0:
		lines = append(lines, emptyState("No saved sessions", contentWidth))
	case len(d.filtered) == 0:
		lines = append(lines, emptyState("No matching sessions", contentWidth))
	}

	content := newBody(contentWidth).
		title("Sessions").
		gap().
		line(d.textInput.View()).
		rule().
		line(joinLines(lines)).
		gap().
		keys("enter", "load", "ctrl+d", "delete", "ctrl+n", "save", "f5", "refresh", "esc", "close").
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}

func (d *SessionsDialog) Position() (row, col int) {
	return d.center(d.View())
}
