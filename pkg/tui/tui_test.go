package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/tui/components/sidebar"
	"github.com/docker/gemini-console/pkg/tui/components/statusbar"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
	"github.com/docker/gemini-console/pkg/userconfig"
)

var (
	keyEsc      = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyEnter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyShiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
)

func keyCtrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func lastMessage(t *testing.T, m *appModel) chat.Message {
	t.Helper()
	msgs := m.state.Log.Messages()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

func TestStartupLoadsToolsSessionAndFiles(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.info = &api.SessionInfo{ModelName: "gemini-test", TotalInputTokens: 10, TotalOutputTokens: 3, FilesCount: 1}
	d.backend.setFiles("notes.txt")
	d.init()

	assert.Equal(t, 1, d.backend.called("InitializeSession"))
	assert.Equal(t, 1, d.backend.called("GetSessionInfo"))
	assert.Equal(t, 1, d.backend.called("ListFiles"))

	st := d.m.state
	assert.Equal(t, []string{"read_file", "run_shell"}, st.Tools)
	assert.Equal(t, []string{"code_review"}, st.Workflows)
	assert.Equal(t, "gemini-test", st.ModelName)
	assert.Equal(t, 13, st.Tokens.Total())
	assert.Equal(t, "1 file(s) loaded", st.Files.Text())

	assert.Equal(t, "gemini-test - gemini-console", d.m.windowTitle())
	assert.Contains(t, d.m.statusBar.View(), statusbar.TokensText(st.Tokens))
	assert.Contains(t, d.m.sidebar.View(), "notes.txt")
}

func TestStartupFailureIsShownInChat(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.err["InitializeSession"] = errBackend
	d.init()

	msgs := d.m.state.Log.Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, chat.RoleError, msgs[0].Role)
	assert.Contains(t, msgs[0].Text, "backend unavailable")
}

func TestSendAppliesReplyAndTokens(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.send = &api.SendResponse{
		Response: strPtr("Hi!"),
		Tokens:   &api.SendTokens{Input: 5, Output: 7},
	}

	d.send(messages.SendMsg{Text: "hello"})

	assert.Equal(t, 1, d.backend.called("SendMessage"))
	assert.Zero(t, d.backend.called("GetSessionInfo"))
	assert.Equal(t, 12, d.m.state.Tokens.Total())
	assert.False(t, d.m.state.Loading)
	assert.False(t, d.m.chatLog.Typing())
	assert.Equal(t, []chat.Entry{
		{Role: chat.RoleUser, Text: "hello"},
		{Role: chat.RoleAssistant, Text: "Hi!"},
	}, d.m.state.Log.History())
}

func TestSendWithoutResponseShowsPlaceholder(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.send = &api.SendResponse{}
	d.send(messages.SendMsg{Text: "hello"})

	last := lastMessage(t, d.m)
	assert.Equal(t, chat.RoleAssistant, last.Role)
	assert.True(t, last.Placeholder)
}

func TestSendWhileLoadingIsIgnored(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.m.state.StartSend()

	d.send(messages.SendMsg{Text: "second"})

	assert.Zero(t, d.backend.called("SendMessage"))
	assert.Empty(t, d.m.state.Log.History())
}

func TestFailedSendShowsError(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.err["SendMessage"] = errBackend
	d.send(messages.SendMsg{Text: "hello"})

	assert.False(t, d.m.state.Loading)
	assert.Equal(t, chat.RoleError, lastMessage(t, d.m).Role)
}

func TestStopClearsLoadingAndLateReplyStillRenders(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	require.True(t, d.m.state.StartSend())

	d.send(keyEsc)

	assert.False(t, d.m.state.Loading)
	assert.False(t, d.m.state.Typing)
	last := lastMessage(t, d.m)
	assert.Equal(t, chat.RoleSystem, last.Role)
	assert.Equal(t, "Stopped waiting for the response.", last.Text)

	d.send(sendDoneMsg{resp: &api.SendResponse{Response: strPtr("late")}})
	assert.Equal(t, "late", lastMessage(t, d.m).Text)
}

func TestStopWhileLoadingWorksOverDialog(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	require.True(t, d.m.state.StartSend())
	d.send(keyCtrl('p'))
	require.True(t, d.m.dialogMgr.Open())

	d.send(keyEsc)

	assert.False(t, d.m.state.Loading)
	assert.Equal(t, "Stopped waiting for the response.", lastMessage(t, d.m).Text)
}

func TestDialogIsDrawnOverChat(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(keyCtrl('p'))
	require.True(t, d.m.dialogMgr.Open())

	view := d.m.View().Content
	assert.Contains(t, view, "Commands")
}

func TestSystemMessagesAreNotExported(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(messages.SendMsg{Text: "hello"})
	require.Len(t, d.m.state.Log.History(), 2)

	d.send(messages.ToggleToolsMsg{})
	d.send(messages.ShowToolHelpMsg{Name: "read_file"})

	assert.Len(t, d.m.state.Log.History(), 2)
	assert.Equal(t, 4, d.m.state.Log.Len())
}

func TestDeclinedClearFilesMakesNoCall(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(messages.OpenPanelMsg{Panel: messages.PanelClearFiles})
	require.True(t, d.m.dialogMgr.Open())

	d.send(keyRune('n'))

	assert.False(t, d.m.dialogMgr.Open())
	assert.Zero(t, d.backend.called("ClearFiles"))
	assert.Zero(t, d.backend.called("ListFiles"))
	assert.Zero(t, d.backend.called("GetSessionInfo"))
}

func TestConfirmedClearFilesRefreshes(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.m.state.SetFileCount(3)
	d.send(messages.OpenPanelMsg{Panel: messages.PanelClearFiles})
	d.send(keyRune('y'))

	assert.Equal(t, 1, d.backend.called("ClearFiles"))
	assert.Equal(t, 1, d.backend.called("ListFiles"))
	assert.Equal(t, 1, d.backend.called("GetSessionInfo"))
	assert.Equal(t, "No files loaded", d.m.state.Files.Text())
	assert.Equal(t, "All files cleared", lastMessage(t, d.m).Text)
}

func TestStaleFilesResponseIsDroppedAfterDelete(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.setFiles("a.txt", "b.txt")
	stale := d.m.refreshFiles()()

	d.backend.setFiles("b.txt")
	d.send(messages.DeleteFileMsg{Name: "a.txt"})
	require.Len(t, d.m.state.UploadedFiles, 1)

	d.send(stale)

	assert.Equal(t, []api.FileDescriptor{{Name: "b.txt"}}, d.m.state.UploadedFiles)
	assert.Equal(t, 1, d.backend.called("DeleteFile"))
	assert.Equal(t, "File deleted", findSystem(d.m, "File deleted"))
}

func findSystem(m *appModel, text string) string {
	for _, msg := range m.state.Log.Messages() {
		if msg.Role == chat.RoleSystem && msg.Text == text {
			return msg.Text
		}
	}
	return ""
}

func TestWorkflowAutoApproveTurnsFlagOn(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.workflow = &api.Workflow{
		Prompt:      strPtr("Review the diff"),
		AutoApprove: []string{"read_file"},
	}

	d.send(messages.ApplyWorkflowMsg{Name: "code_review"})

	assert.True(t, d.m.state.AutoApprove)
	assert.Equal(t, "Review the diff", d.m.editor.Value())
	assert.Contains(t, d.m.sidebar.View(), sidebar.AutoApproveLabel(true))
	assert.Zero(t, d.backend.called("SetAutoApprove"))
	assert.Zero(t, d.backend.called("SendMessage"))
	assert.Equal(t, "Auto-approved tools: read_file", lastMessage(t, d.m).Text)
}

func TestToggleAutoApproveRevertsOnError(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.backend.err["SetAutoApprove"] = errBackend

	d.send(keyShiftTab)

	assert.Equal(t, 1, d.backend.called("SetAutoApprove"))
	assert.False(t, d.m.state.AutoApprove)
	assert.Equal(t, chat.RoleError, lastMessage(t, d.m).Role)
}

func TestGlobalShortcutWorksOverDialog(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(keyCtrl('p'))
	require.True(t, d.m.dialogMgr.Open())

	d.send(keyShiftTab)

	assert.True(t, d.m.state.AutoApprove)
	assert.True(t, d.m.dialogMgr.Open())
	assert.Equal(t, "Auto-approve enabled", lastMessage(t, d.m).Text)
}

func TestUploadPathsModalResetsWhenReopened(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(keyCtrl('u'))
	require.True(t, d.m.dialogMgr.Open())

	d.send(tea.PasteMsg{Content: "a.txt, b.txt"})
	require.Len(t, d.m.filePaths.Paths(), 2)

	d.send(keyEsc)
	require.False(t, d.m.dialogMgr.Open())
	assert.Zero(t, d.backend.called("UploadFiles"))

	d.send(keyCtrl('u'))
	assert.Empty(t, d.m.filePaths.Paths())
	assert.False(t, d.m.filePaths.SubmitEnabled())
}

func TestUploadPathsSubmits(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(keyCtrl('u'))
	d.send(tea.PasteMsg{Content: "a.txt, b.txt"})
	d.send(keyEnter)

	assert.False(t, d.m.dialogMgr.Open())
	assert.Equal(t, 1, d.backend.called("UploadFiles"))
	assert.Equal(t, 1, d.backend.called("ListFiles"))
	assert.Equal(t, 1, d.backend.called("GetSessionInfo"))
	assert.NotEmpty(t, findSystem(d.m, "Uploaded 2 file(s)"))
}

func TestUploadLocalFilesSplitsTextFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	text := filepath.Join(dir, "main.go")
	binary := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(text, []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(binary, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	d := newDriver(t)
	d.send(messages.UploadLocalFilesMsg{Paths: []string{text, binary}})

	assert.Equal(t, 1, d.backend.called("UploadFilesEnhanced"))
	assert.Equal(t, 1, d.backend.called("UploadFiles"))
	assert.NotEmpty(t, findSystem(d.m, "Uploaded 2 file(s)"))
}

func TestExportWritesHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	d := newDriver(t, WithExportDir(dir), withClock(func() time.Time { return now }))
	d.send(messages.SendMsg{Text: "hello"})

	d.send(keyCtrl('e'))

	path := filepath.Join(dir, chat.ExportFilename(now))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Equal(t, "Chat exported to "+path, lastMessage(t, d.m).Text)
}

func TestExportWithEmptyHistory(t *testing.T) {
	t.Parallel()

	d := newDriver(t, WithExportDir(t.TempDir()))
	d.send(messages.ExportChatMsg{})

	assert.Equal(t, "Nothing to export yet.", lastMessage(t, d.m).Text)
}

func TestToolHelpAndMemory(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(messages.ShowToolHelpMsg{Name: "read_file"})
	last := lastMessage(t, d.m)
	assert.Equal(t, chat.RoleTool, last.Role)
	assert.Contains(t, last.Text, "usage: read_file")

	d.send(messages.SearchMemoryMsg{Query: "deploy"})
	assert.Equal(t, `No memory entries found for "deploy"`, lastMessage(t, d.m).Text)

	d.send(messages.SearchMemoryMsg{Query: "  "})
	assert.Equal(t, 1, d.backend.called("SearchMemory"))
}

func TestProjectPathRefreshesSession(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(messages.SetProjectPathMsg{Path: "/src/app"})

	assert.Equal(t, "/src/app", d.m.state.ProjectPath)
	assert.Equal(t, 1, d.backend.called("SetProjectPath"))
	assert.Equal(t, 1, d.backend.called("InitializeSession"))
	assert.Equal(t, 1, d.backend.called("GetSessionInfo"))
	assert.Zero(t, d.backend.called("GetProjectAnalysis"))

	d.backend.reset()
	d.send(messages.SetProjectPathMsg{Path: "/src/app"})
	assert.Zero(t, d.backend.called("SetProjectPath"))
}

func TestContextPanelToggles(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(tea.KeyPressMsg{Code: tea.KeyF2})
	require.True(t, d.m.dialogMgr.Open())
	assert.Equal(t, 1, d.backend.called("GetProjectAnalysis"))

	d.send(tea.KeyPressMsg{Code: tea.KeyF2})
	assert.False(t, d.m.dialogMgr.Open())
}

func TestClearChatEmptiesLog(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.send(messages.SendMsg{Text: "hello"})
	d.send(keyCtrl('k'))
	d.send(keyRune('y'))

	assert.Equal(t, 1, d.backend.called("ClearConversation"))
	assert.Empty(t, d.m.state.Log.History())
	assert.Equal(t, "Conversation cleared", lastMessage(t, d.m).Text)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	_, cmd := d.m.Update(keyCtrl('c'))
	require.NotNil(t, cmd)
	assert.Contains(t, run(cmd), tea.Msg(tea.QuitMsg{}))
}

func TestQuitWhileLoadingAsksFirst(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	d.m.state.StartSend()
	d.send(keyCtrl('c'))

	assert.True(t, d.m.dialogMgr.Open())
}

func TestSidebarHiddenOnNarrowWindow(t *testing.T) {
	t.Parallel()

	d := newDriver(t)
	assert.True(t, d.m.showSidebar)

	d.send(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.False(t, d.m.showSidebar)
	assert.Equal(t, "gemini-console", d.m.View().WindowTitle)
}

// Theme changes mutate package styles so these tests do not run in parallel.

func TestToggleThemePersists(t *testing.T) {
	t.Cleanup(func() { styles.ApplyTheme(true) })

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &userconfig.Config{}
	d := newDriver(t, WithConfig(cfg, path))

	d.send(messages.ToggleThemeMsg{})
	assert.False(t, d.m.state.Dark)
	assert.False(t, styles.Dark())

	d.send(messages.ToggleThemeMsg{})
	assert.True(t, d.m.state.Dark)

	loaded, err := userconfig.LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, loaded.GetSettings().DarkMode)
}

func TestSettingsFromDiskApply(t *testing.T) {
	t.Cleanup(func() { styles.ApplyTheme(true) })

	ch := make(chan userconfig.Settings, 1)
	d := newDriver(t, WithSettingsWatch(ch))

	ch <- userconfig.Settings{DarkMode: false, ExportDir: "/tmp/exports"}
	close(ch)
	d.process(run(d.m.waitForSettings()))

	assert.False(t, d.m.state.Dark)
	assert.Equal(t, "/tmp/exports", d.m.exportDir)
}
