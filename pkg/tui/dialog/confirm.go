package dialog

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type confirmDialog struct {
	frame
	title    string
	question string
	onYes    tea.Msg
	yesKey   key.Binding
	noKey    key.Binding
}

// NewConfirmDialog asks a yes/no question. Only a yes answer sends onYes;
// anything else just closes the dialog.
func NewConfirmDialog(title, question string, onYes tea.Msg) Dialog {
	return &confirmDialog{
		title:    title,
		question: question,
		onYes:    onYes,
		yesKey:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "yes")),
		noKey:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "no")),
	}
}

func (d *confirmDialog) Init() tea.Cmd {
	return nil
}

func (d *confirmDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}
		switch {
		case key.Matches(msg, d.yesKey):
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(d.onYes),
			)
		case key.Matches(msg, d.noKey):
			return d, core.CmdHandler(CloseDialogMsg{})
		}
	}
	return d, nil
}

func (d *confirmDialog) Position() (row, col int) {
	return d.center(d.View())
}

func (d *confirmDialog) View() string {
	dialogWidth, contentWidth := d.widths(50, 36, 60)

	content := newBody(contentWidth).
		title(d.title).
		rule().
		gap().
		question(d.question).
		gap().
		keys(d.yesKey.Help().Key, d.yesKey.Help().Desc, d.noKey.Help().Key, d.noKey.Help().Desc).
		String()

	return styles.DialogWarningStyle.
		Width(dialogWidth).
		Render(content)
}
