package tui

import (
	"errors"
	"net/url"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/tui/commands"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/dialog"
	"github.com/docker/gemini-console/pkg/tui/messages"
)

func (m *appModel) open(d dialog.Dialog) tea.Cmd {
	return core.CmdHandler(dialog.OpenDialogMsg{Model: d})
}

// openPanel opens the dialog behind p. Persistent dialogs are refreshed from
// the current state first; their Reset runs when the manager opens them.
func (m *appModel) openPanel(p messages.Panel) tea.Cmd {
	switch p {
	case messages.PanelPalette:
		return dialog.OpenCommandPalette(commands.BuildCommandCategories())
	case messages.PanelUploadPaths:
		return m.open(m.filePaths)
	case messages.PanelQuickUpload:
		return m.open(m.quickUpload)
	case messages.PanelSessions:
		return m.open(m.sessions)
	case messages.PanelSettings:
		m.settings.SetCurrent(m.state.Settings, m.state.Dark)
		return m.open(m.settings)
	case messages.PanelReupload:
		return m.open(m.reupload)
	case messages.PanelFullOutput:
		source := ""
		if last, ok := m.state.Log.LastAssistant(); ok {
			source = last.HTML
		}
		m.fullOutput.SetSource(source, m.state.Dark)
		return m.open(m.fullOutput)
	case messages.PanelContext:
		return m.open(m.contextPanel)
	case messages.PanelTools:
		m.tools.SetTools(m.state.Tools)
		return m.open(m.tools)
	case messages.PanelWorkflows:
		m.workflows.SetWorkflows(m.state.Workflows)
		return m.open(m.workflows)
	case messages.PanelFiles:
		m.files.SetFiles(m.state.UploadedFiles, m.state.ExpiredFiles)
		return m.open(m.files)
	case messages.PanelMemory:
		return m.open(dialog.NewPromptDialog("Search Memory", "What to look for…",
			func(q string) tea.Msg { return messages.SearchMemoryMsg{Query: q} },
			dialog.WithLabel("Query"),
		))
	case messages.PanelProjectPath:
		return m.open(dialog.NewPromptDialog("Project Path", "/path/to/project",
			func(p string) tea.Msg { return messages.SetProjectPathMsg{Path: p} },
			dialog.WithLabel("Project directory"),
			dialog.WithInitialValue(m.state.ProjectPath),
		))
	case messages.PanelSaveSession:
		return m.open(dialog.NewPromptDialog("Save Session", "Session name",
			func(name string) tea.Msg { return messages.SaveSessionMsg{Name: name} },
		))
	case messages.PanelUploadPDF:
		return m.open(dialog.NewPromptDialog("Upload PDF", "https://example.com/paper.pdf [display name]",
			func(v string) tea.Msg {
				u, name := splitPDFInput(v)
				return messages.UploadPDFMsg{URL: u, DisplayName: name}
			},
			dialog.WithLabel("URL and optional display name"),
			dialog.WithValidator(validatePDFInput),
		))
	case messages.PanelClearChat:
		return m.open(dialog.NewConfirmDialog("Clear Chat",
			"Clear the whole conversation?", messages.ClearChatMsg{}))
	case messages.PanelClearFiles:
		return m.open(dialog.NewConfirmDialog("Clear Files",
			"Delete every uploaded file?", messages.ClearFilesMsg{}))
	}
	return nil
}

// toggleContextPanel closes the context panel when it is on top and opens
// it otherwise.
func (m *appModel) toggleContextPanel() tea.Cmd {
	if m.dialogMgr.Top() == dialog.Dialog(m.contextPanel) {
		return core.CmdHandler(dialog.CloseDialogMsg{})
	}
	return m.openPanel(messages.PanelContext)
}

func splitPDFInput(v string) (pdfURL, displayName string) {
	pdfURL, displayName, _ = strings.Cut(strings.TrimSpace(v), " ")
	return pdfURL, strings.TrimSpace(displayName)
}

func validatePDFInput(v string) error {
	raw, _ := splitPDFInput(v)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("Enter an http(s) URL")
	}
	return nil
}

func (m *appModel) exportChat() tea.Cmd {
	history := m.state.Log.History()
	if len(history) == 0 {
		m.system("Nothing to export yet.")
		return nil
	}
	dir := m.exportDir
	if dir == "" {
		dir = "."
	}
	now := m.now()
	entries := append([]chat.Entry(nil), history...)
	return func() tea.Msg {
		path, err := chat.Export(dir, entries, now)
		return exportDoneMsg{path: path, err: err}
	}
}
