package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/dialog"
	"github.com/docker/gemini-console/pkg/tui/messages"
)

type keyMap struct {
	// Active even while a dialog is open
	FullOutput  key.Binding
	AutoApprove key.Binding
	ClearChat   key.Binding
	Context     key.Binding

	Stop        key.Binding
	Quit        key.Binding
	Palette     key.Binding
	UploadPaths key.Binding
	QuickUpload key.Binding
	Sessions    key.Binding
	Export      key.Binding
	Tools       key.Binding
	Workflows   key.Binding
	Memory      key.Binding
	Files       key.Binding
	Scroll      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		FullOutput: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+r", "full output"),
		),
		AutoApprove: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "auto-approve"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("Ctrl+k", "clear"),
		),
		Context: key.NewBinding(
			key.WithKeys("ctrl+;", "f2"),
			key.WithHelp("Ctrl+;", "context"),
		),
		Stop: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+c", "quit"),
		),
		Palette: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("Ctrl+p", "commands"),
		),
		UploadPaths: key.NewBinding(key.WithKeys("ctrl+u")),
		QuickUpload: key.NewBinding(key.WithKeys("ctrl+o")),
		Sessions:    key.NewBinding(key.WithKeys("ctrl+s")),
		Export:      key.NewBinding(key.WithKeys("ctrl+e")),
		Tools:       key.NewBinding(key.WithKeys("ctrl+t")),
		Workflows:   key.NewBinding(key.WithKeys("ctrl+w")),
		Memory:      key.NewBinding(key.WithKeys("ctrl+g")),
		Files:       key.NewBinding(key.WithKeys("ctrl+l")),
		Scroll:      key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+home", "ctrl+end")),
	}
}

// handleKeyPress handles all keyboard input with proper priority routing.
func (m *appModel) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	// Global shortcuts work on top of dialogs too
	switch {
	case m.state.Loading && key.Matches(msg, m.keyMap.Stop):
		return core.CmdHandler(messages.StopMsg{})
	case key.Matches(msg, m.keyMap.FullOutput):
		return m.openPanel(messages.PanelFullOutput)
	case key.Matches(msg, m.keyMap.AutoApprove):
		return core.CmdHandler(messages.ToggleAutoApproveMsg{})
	case key.Matches(msg, m.keyMap.ClearChat):
		return m.openPanel(messages.PanelClearChat)
	case key.Matches(msg, m.keyMap.Context):
		return m.toggleContextPanel()
	}

	// Dialog gets priority when open
	if m.dialogMgr.Open() {
		_, cmd := m.dialogMgr.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		if m.state.Loading {
			return m.open(dialog.NewConfirmDialog("Quit",
				"A reply is still pending. Quit anyway?", quitMsg{}))
		}
		return tea.Quit
	case key.Matches(msg, m.keyMap.Stop):
		return core.CmdHandler(messages.StopMsg{})
	case key.Matches(msg, m.keyMap.Palette):
		return m.openPanel(messages.PanelPalette)
	case key.Matches(msg, m.keyMap.UploadPaths):
		return m.openPanel(messages.PanelUploadPaths)
	case key.Matches(msg, m.keyMap.QuickUpload):
		return m.openPanel(messages.PanelQuickUpload)
	case key.Matches(msg, m.keyMap.Sessions):
		return m.openPanel(messages.PanelSessions)
	case key.Matches(msg, m.keyMap.Export):
		return core.CmdHandler(messages.ExportChatMsg{})
	case key.Matches(msg, m.keyMap.Tools):
		return m.openPanel(messages.PanelTools)
	case key.Matches(msg, m.keyMap.Workflows):
		return m.openPanel(messages.PanelWorkflows)
	case key.Matches(msg, m.keyMap.Memory):
		return m.openPanel(messages.PanelMemory)
	case key.Matches(msg, m.keyMap.Files):
		return m.openPanel(messages.PanelFiles)
	case key.Matches(msg, m.keyMap.Scroll):
		_, cmd := m.chatLog.Update(msg)
		return cmd
	}

	_, cmd := m.editor.Update(msg)
	return cmd
}
