package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/fsx"
	"github.com/docker/gemini-console/pkg/render"
	"github.com/docker/gemini-console/pkg/state"
	"github.com/docker/gemini-console/pkg/tui/messages"
)

// Results of backend calls. List reads carry the ticket they were issued
// with so late arrivals can be dropped.
type (
	agentUILoadedMsg struct {
		features *api.Features
		err      error
	}
	sessionInfoLoadedMsg struct {
		ticket state.Ticket
		info   *api.SessionInfo
		err    error
	}
	filesLoadedMsg struct {
		ticket state.Ticket
		resp   *api.FilesResponse
		err    error
	}
	sessionsLoadedMsg struct {
		ticket   state.Ticket
		sessions []string
		err      error
	}
	sessionFilesLoadedMsg struct {
		ticket state.Ticket
		files  []api.SessionFile
		err    error
	}
	analysisLoadedMsg struct {
		ticket   state.Ticket
		analysis *api.ProjectAnalysis
		err      error
	}
	sendDoneMsg struct {
		resp *api.SendResponse
		err  error
	}
	workflowAppliedMsg struct {
		name     string
		workflow *api.Workflow
		err      error
	}
	toolHelpLoadedMsg struct {
		name string
		help string
		err  error
	}
	toolExecutedMsg struct {
		name    string
		params  map[string]any
		outcome *api.ToolOutcome
		err     error
	}
	memorySearchedMsg struct {
		query   string
		results []api.MemoryEntry
		err     error
	}
	autoApproveSetMsg struct {
		enabled bool
		message string
		err     error
	}
	projectPathSetMsg struct {
		path    string
		message string
		err     error
	}
	// actionDoneMsg reports a session or file mutation.
	actionDoneMsg struct {
		mutation state.Mutation
		message  string
		err      error
	}
	// noticeMsg reports a call whose only effect is a chat notice.
	noticeMsg struct {
		message string
		err     error
	}
	exportDoneMsg struct {
		path string
		err  error
	}
)

// call runs fn off the UI goroutine.
func (m *appModel) call(fn func(ctx context.Context, b Backend) tea.Msg) tea.Cmd {
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		return fn(ctx, b)
	}
}

// system posts a display-only notice.
func (m *appModel) system(text string) {
	m.state.Log.Append(chat.RoleSystem, text)
	m.chatLog.Refresh()
}

// fail posts err as an error message.
func (m *appModel) fail(op string, err error) {
	attrs := []any{"op", op, "error", err}
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		attrs = append(attrs, "status", reqErr.StatusCode)
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, "endpoint", statusErr.Endpoint)
	}
	slog.Debug("Backend call failed", attrs...)

	m.state.Log.Append(chat.RoleError, err.Error())
	m.chatLog.Refresh()
}

func (m *appModel) appendMessage(role chat.Role, text string) {
	m.state.Log.Append(role, text)
	m.chatLog.Refresh()
}

// --- Reads ---

func (m *appModel) refreshAgentUI() tea.Cmd {
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		f, err := b.InitializeSession(ctx)
		return agentUILoadedMsg{features: f, err: err}
	})
}

func (m *appModel) refreshSessionInfo() tea.Cmd {
	ticket := m.state.Seq.Issue(state.KindSessionInfo)
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		info, err := b.GetSessionInfo(ctx)
		return sessionInfoLoadedMsg{ticket: ticket, info: info, err: err}
	})
}

func (m *appModel) refreshFiles() tea.Cmd {
	ticket := m.state.Seq.Issue(state.KindFiles)
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		resp, err := b.ListFiles(ctx)
		return filesLoadedMsg{ticket: ticket, resp: resp, err: err}
	})
}

func (m *appModel) refreshSessions() tea.Cmd {
	ticket := m.state.Seq.Issue(state.KindSessions)
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		sessions, err := b.ListSessions(ctx)
		return sessionsLoadedMsg{ticket: ticket, sessions: sessions, err: err}
	})
}

func (m *appModel) refreshSessionFiles() tea.Cmd {
	ticket := m.state.Seq.Issue(state.KindSessionFiles)
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		files, err := b.GetSessionFiles(ctx)
		return sessionFilesLoadedMsg{ticket: ticket, files: files, err: err}
	})
}

func (m *appModel) refreshAnalysis() tea.Cmd {
	ticket := m.state.Seq.Issue(state.KindAnalysis)
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		a, err := b.GetProjectAnalysis(ctx)
		return analysisLoadedMsg{ticket: ticket, analysis: a, err: err}
	})
}

// updateFileStatus shows count, or asks for session info when it is unknown.
func (m *appModel) updateFileStatus(count *int) tea.Cmd {
	if count == nil {
		m.state.Files = state.FileStatus{}
		return m.refreshSessionInfo()
	}
	m.state.SetFileCount(*count)
	return nil
}

// refreshAfter reloads every view that depends on what mut changed.
func (m *appModel) refreshAfter(mut state.Mutation) tea.Cmd {
	var cmds []tea.Cmd
	for _, kind := range mut.Affects() {
		switch kind {
		case state.KindFiles:
			cmds = append(cmds, m.refreshFiles())
		case state.KindSessionInfo:
			cmds = append(cmds, m.updateFileStatus(nil))
		case state.KindSessions:
			cmds = append(cmds, m.refreshSessions())
		case state.KindSessionFiles:
			cmds = append(cmds, m.refreshSessionFiles())
		case state.KindAnalysis:
			if m.dialogMgr.Contains(m.contextPanel) {
				cmds = append(cmds, m.refreshAnalysis())
			}
		}
	}
	return tea.Batch(cmds...)
}

// --- Sends ---

func (m *appModel) send(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || !m.state.StartSend() {
		return nil
	}
	m.appendMessage(chat.RoleUser, text)

	useTools := m.useTools
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		resp, err := b.SendMessage(ctx, text, useTools)
		return sendDoneMsg{resp: resp, err: err}
	})
}

func (m *appModel) stop() {
	if !m.state.Loading && !m.state.Typing {
		return
	}
	m.state.StopSend()
	m.system("Stopped waiting for the response.")
}

// --- Panels ---

func (m *appModel) applyWorkflow(name, instructions string) tea.Cmd {
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		w, err := b.ApplyWorkflow(ctx, name, instructions)
		return workflowAppliedMsg{name: name, workflow: w, err: err}
	})
}

func (m *appModel) showToolHelp(name string) tea.Cmd {
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		help, err := b.GetToolHelp(ctx, name)
		return toolHelpLoadedMsg{name: name, help: help, err: err}
	})
}

func (m *appModel) executeTool(name string, params map[string]any) tea.Cmd {
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		outcome, err := b.ExecuteTool(ctx, name, params)
		return toolExecutedMsg{name: name, params: params, outcome: outcome, err: err}
	})
}

func (m *appModel) searchMemory(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		results, err := b.SearchMemory(ctx, query)
		return memorySearchedMsg{query: query, results: results, err: err}
	})
}

func (m *appModel) toggleAutoApprove() tea.Cmd {
	m.state.AutoApprove = !m.state.AutoApprove
	enabled := m.state.AutoApprove
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		msg, err := b.SetAutoApprove(ctx, enabled)
		return autoApproveSetMsg{enabled: enabled, message: msg, err: err}
	})
}

func (m *appModel) setProjectPath(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	if path == "" || path == m.state.ProjectPath {
		return nil
	}
	m.state.Seq.Mutate(state.MutationProjectPath)
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		msg, err := b.SetProjectPath(ctx, path)
		return projectPathSetMsg{path: path, message: msg, err: err}
	})
}

func (m *appModel) updateSettings(settings api.Settings, dark bool) tea.Cmd {
	m.state.Settings = settings
	themeCmd := m.setTheme(dark, true)
	return tea.Batch(themeCmd, m.call(func(ctx context.Context, b Backend) tea.Msg {
		msg, err := b.UpdateSettings(ctx, settings)
		if msg == "" {
			msg = "Settings updated"
		}
		return noticeMsg{message: msg, err: err}
	}))
}

func (m *appModel) shutdownBackend() tea.Cmd {
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		msg, err := b.Shutdown(ctx)
		if msg == "" {
			msg = "Backend shutting down"
		}
		return noticeMsg{message: msg, err: err}
	})
}

// --- Session and file mutations ---

// mutate invalidates outstanding reads of everything mut changes, then runs
// one endpoint call.
func (m *appModel) mutate(mut state.Mutation, fn func(ctx context.Context, b Backend) (string, error)) tea.Cmd {
	m.state.Seq.Mutate(mut)
	return m.call(func(ctx context.Context, b Backend) tea.Msg {
		msg, err := fn(ctx, b)
		return actionDoneMsg{mutation: mut, message: msg, err: err}
	})
}

func countMessage(resp *api.CountResponse, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return fmt.Sprintf("Uploaded %d file(s)", resp.Count), nil
}

func (m *appModel) saveSession(name string) tea.Cmd {
	return m.mutate(state.MutationSaveSession, func(ctx context.Context, b Backend) (string, error) {
		return b.SaveSession(ctx, name)
	})
}

func (m *appModel) loadSession(name string) tea.Cmd {
	return m.mutate(state.MutationLoadSession, func(ctx context.Context, b Backend) (string, error) {
		return b.LoadSession(ctx, name)
	})
}

func (m *appModel) deleteSession(name string) tea.Cmd {
	return m.mutate(state.MutationDeleteSession, func(ctx context.Context, b Backend) (string, error) {
		return b.DeleteSession(ctx, name)
	})
}

func (m *appModel) deleteFile(name string) tea.Cmd {
	return m.mutate(state.MutationDeleteFile, func(ctx context.Context, b Backend) (string, error) {
		return b.DeleteFile(ctx, name)
	})
}

func (m *appModel) clearFiles() tea.Cmd {
	return m.mutate(state.MutationClearFiles, func(ctx context.Context, b Backend) (string, error) {
		return b.ClearFiles(ctx)
	})
}

func (m *appModel) clearChat() tea.Cmd {
	return m.mutate(state.MutationClearChat, func(ctx context.Context, b Backend) (string, error) {
		return b.ClearConversation(ctx)
	})
}

func (m *appModel) uploadPaths(paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	return m.mutate(state.MutationUpload, func(ctx context.Context, b Backend) (string, error) {
		return countMessage(b.UploadFiles(ctx, paths))
	})
}

func (m *appModel) reuploadFiles(paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	return m.mutate(state.MutationUpload, func(ctx context.Context, b Backend) (string, error) {
		return countMessage(b.ReuploadSessionFiles(ctx, paths))
	})
}

func (m *appModel) uploadPDF(pdfURL, displayName string) tea.Cmd {
	return m.mutate(state.MutationUpload, func(ctx context.Context, b Backend) (string, error) {
		return b.UploadPDFFromURL(ctx, pdfURL, displayName)
	})
}

// uploadLocalFiles sends text files by content and everything else by path.
func (m *appModel) uploadLocalFiles(paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	return m.mutate(state.MutationUpload, func(ctx context.Context, b Backend) (string, error) {
		textPaths, otherPaths := fsx.SplitByContent(paths)

		contents, err := fsx.ReadFiles(ctx, textPaths)
		if err != nil {
			return "", err
		}

		uploaded := 0
		if len(contents) > 0 {
			resp, err := b.UploadFilesEnhanced(ctx, contents)
			if err != nil {
				return "", err
			}
			uploaded += resp.Count
		}
		if len(otherPaths) > 0 {
			resp, err := b.UploadFiles(ctx, otherPaths)
			if err != nil {
				return "", err
			}
			uploaded += resp.Count
		}
		return fmt.Sprintf("Uploaded %d file(s)", uploaded), nil
	})
}

// --- Result handling ---

func (m *appModel) handleResult(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case agentUILoadedMsg:
		if msg.err != nil {
			m.fail("initialize session", msg.err)
			return nil, true
		}
		m.state.ApplyFeatures(msg.features)
		m.tools.SetTools(m.state.Tools)
		m.workflows.SetWorkflows(m.state.Workflows)
		return nil, true

	case sessionInfoLoadedMsg:
		if !m.state.Seq.Current(msg.ticket) {
			return nil, true
		}
		if msg.err != nil {
			m.fail("session info", msg.err)
			return nil, true
		}
		m.state.ApplySessionInfo(msg.info)
		return nil, true

	case filesLoadedMsg:
		if !m.state.Seq.Current(msg.ticket) {
			return nil, true
		}
		if msg.err != nil {
			m.fail("list files", msg.err)
			return nil, true
		}
		m.state.ApplyFiles(msg.resp)
		m.files.SetFiles(m.state.UploadedFiles, m.state.ExpiredFiles)
		return nil, true

	case sessionsLoadedMsg:
		if !m.state.Seq.Current(msg.ticket) {
			return nil, true
		}
		if msg.err != nil {
			m.fail("list sessions", msg.err)
			return nil, true
		}
		m.state.Sessions = msg.sessions
		m.sessions.SetSessions(msg.sessions)
		return nil, true

	case sessionFilesLoadedMsg:
		if !m.state.Seq.Current(msg.ticket) {
			return nil, true
		}
		if msg.err != nil {
			m.fail("session files", msg.err)
			return nil, true
		}
		m.state.SessionFiles = msg.files
		m.reupload.SetFiles(msg.files)
		return nil, true

	case analysisLoadedMsg:
		if !m.state.Seq.Current(msg.ticket) {
			return nil, true
		}
		if msg.err != nil {
			m.contextPanel.SetError(msg.err)
			m.fail("project analysis", msg.err)
			return nil, true
		}
		m.contextPanel.SetAnalysis(msg.analysis)
		return nil, true

	case sendDoneMsg:
		m.state.StopSend()
		if msg.err != nil {
			m.fail("send", msg.err)
			return nil, true
		}
		m.applySendResponse(msg.resp)
		return nil, true

	case workflowAppliedMsg:
		if msg.err != nil {
			m.fail("apply workflow", msg.err)
			return nil, true
		}
		return m.applyWorkflowResult(msg.name, msg.workflow), true

	case toolHelpLoadedMsg:
		if msg.err != nil {
			m.fail("tool help", msg.err)
			return nil, true
		}
		m.appendMessage(chat.RoleTool, fmt.Sprintf("**%s**\n\n%s", msg.name, render.Preformatted(msg.help)))
		return nil, true

	case toolExecutedMsg:
		if msg.err != nil {
			m.fail("execute tool", msg.err)
			return nil, true
		}
		m.appendMessage(chat.RoleTool, render.ToolResult(msg.name, msg.params, *msg.outcome))
		return nil, true

	case memorySearchedMsg:
		if msg.err != nil {
			m.fail("search memory", msg.err)
			return nil, true
		}
		if len(msg.results) == 0 {
			m.system(fmt.Sprintf("No memory entries found for %q", msg.query))
			return nil, true
		}
		m.appendMessage(chat.RoleTool, memoryBlocks(msg.results))
		return nil, true

	case autoApproveSetMsg:
		if msg.err != nil {
			m.state.AutoApprove = !msg.enabled
			m.fail("set auto-approve", msg.err)
			return nil, true
		}
		m.system(autoApproveNotice(msg.enabled))
		return nil, true

	case projectPathSetMsg:
		if msg.err != nil {
			m.fail("set project path", msg.err)
			return nil, true
		}
		m.state.ProjectPath = msg.path
		m.system(noticeOr(msg.message, "Project path set to "+msg.path))
		return tea.Batch(m.refreshAgentUI(), m.refreshAfter(state.MutationProjectPath)), true

	case noticeMsg:
		if msg.err != nil {
			m.fail("request", msg.err)
			return nil, true
		}
		m.system(msg.message)
		return nil, true

	case actionDoneMsg:
		if msg.err != nil {
			m.fail(string(msg.mutation), msg.err)
			return nil, true
		}
		switch msg.mutation {
		case state.MutationClearChat:
			m.state.Log.Clear()
			m.chatLog.Refresh()
		case state.MutationClearFiles:
			m.state.ClearFiles()
			m.files.SetFiles(nil, nil)
		}
		m.system(noticeOr(msg.message, mutationNotice(msg.mutation)))
		return m.refreshAfter(msg.mutation), true

	case exportDoneMsg:
		if msg.err != nil {
			m.fail("export", msg.err)
			return nil, true
		}
		m.system("Chat exported to " + msg.path)
		return nil, true
	}
	return nil, false
}

func (m *appModel) applySendResponse(resp *api.SendResponse) {
	if resp.Response == nil {
		m.state.Log.AppendPlaceholder(chat.RoleAssistant)
	} else {
		m.state.Log.Append(chat.RoleAssistant, *resp.Response)
	}
	if len(resp.ToolResults) > 0 {
		m.state.Log.Append(chat.RoleTool, render.ToolResults(resp.ToolResults))
	}
	m.chatLog.Refresh()
	m.state.Tokens.ApplySendTokens(resp.Tokens)
}

func (m *appModel) applyWorkflowResult(name string, w *api.Workflow) tea.Cmd {
	_, cmd := m.editor.Update(messages.SetEditorTextMsg{Text: w.PromptText()})
	m.system(fmt.Sprintf("Workflow %q loaded into the input. Review it and press Enter to send.", name))
	if len(w.AutoApprove) > 0 {
		m.state.AutoApprove = true
		m.system("Auto-approved tools: " + strings.Join(w.AutoApprove, ", "))
	}
	return cmd
}

func memoryBlocks(results []api.MemoryEntry) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s** (%s)", render.EscapeOutput(r.Key), render.EscapeOutput(r.Scope))
		if len(r.Tags) > 0 {
			fmt.Fprintf(&b, " · %s", render.EscapeOutput(strings.Join(r.Tags, ", ")))
		}
		b.WriteString("\n\n")
		b.WriteString(render.Preformatted(r.Content))
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func autoApproveNotice(enabled bool) string {
	if enabled {
		return "Auto-approve enabled"
	}
	return "Auto-approve disabled"
}

func noticeOr(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}

func mutationNotice(mut state.Mutation) string {
	switch mut {
	case state.MutationClearFiles:
		return "All files cleared"
	case state.MutationDeleteFile:
		return "File deleted"
	case state.MutationUpload:
		return "Upload complete"
	case state.MutationLoadSession:
		return "Session loaded"
	case state.MutationDeleteSession:
		return "Session deleted"
	case state.MutationSaveSession:
		return "Session saved"
	case state.MutationClearChat:
		return "Conversation cleared"
	default:
		return "Done"
	}
}
