package tui

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/docker/gemini-console/pkg/state"
	"github.com/docker/gemini-console/pkg/tui/components/chatlog"
	"github.com/docker/gemini-console/pkg/tui/components/editor"
	"github.com/docker/gemini-console/pkg/tui/components/notification"
	"github.com/docker/gemini-console/pkg/tui/components/sidebar"
	"github.com/docker/gemini-console/pkg/tui/components/statusbar"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/dialog"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
	"github.com/docker/gemini-console/pkg/userconfig"
)

const (
	sidebarWidth    = 34
	minSidebarTotal = 90
)

// appModel is the top-level TUI model.
type appModel struct {
	ctx     context.Context
	backend Backend
	state   *state.State

	useTools   bool
	exportDir  string
	workDir    string
	config     *userconfig.Config
	configPath string
	settingsCh <-chan userconfig.Settings
	history    editor.HistoryStore
	now        func() time.Time

	// UI components
	notification notification.Manager
	dialogMgr    *dialog.Stack
	statusBar    statusbar.StatusBar
	chatLog      *chatlog.Model
	sidebar      *sidebar.Model
	editor       *editor.Editor
	keyMap       keyMap

	// Dialogs kept between openings
	filePaths    *dialog.FilePathsDialog
	quickUpload  *dialog.QuickUploadDialog
	sessions     *dialog.SessionsDialog
	settings     *dialog.SettingsDialog
	reupload     *dialog.ReuploadDialog
	fullOutput   *dialog.FullOutputDialog
	contextPanel *dialog.ContextDialog
	tools        *dialog.ToolsDialog
	workflows    *dialog.WorkflowsDialog
	files        *dialog.FilesDialog

	// Window state
	wWidth, wHeight int
	showSidebar     bool

	ready bool
}

type Option func(*appModel)

// WithExportDir sets where chat exports are written.
func WithExportDir(dir string) Option {
	return func(m *appModel) {
		m.exportDir = dir
	}
}

// WithWorkingDir sets the directory the quick upload picker starts in.
func WithWorkingDir(dir string) Option {
	return func(m *appModel) {
		m.workDir = dir
	}
}

// WithConfig persists the dark mode preference to cfg at path.
func WithConfig(cfg *userconfig.Config, path string) Option {
	return func(m *appModel) {
		m.config = cfg
		m.configPath = path
	}
}

// WithSettingsWatch applies settings changed on disk.
func WithSettingsWatch(ch <-chan userconfig.Settings) Option {
	return func(m *appModel) {
		m.settingsCh = ch
	}
}

// WithHistory recalls and records editor inputs in store.
func WithHistory(store editor.HistoryStore) Option {
	return func(m *appModel) {
		m.history = store
	}
}

func withClock(now func() time.Time) Option {
	return func(m *appModel) {
		m.now = now
	}
}

// New creates the application model. st lives as long as the program.
func New(ctx context.Context, backend Backend, st *state.State, opts ...Option) tea.Model {
	return newModel(ctx, backend, st, opts...)
}

func newModel(ctx context.Context, backend Backend, st *state.State, opts ...Option) *appModel {
	m := &appModel{
		ctx:          ctx,
		backend:      backend,
		state:        st,
		useTools:     true,
		now:          time.Now,
		notification: notification.New(),
		dialogMgr:    dialog.New(),
		chatLog:      chatlog.New(st.Log, st.Dark),
		sidebar:      sidebar.New(st),
		editor:       editor.New(),
		keyMap:       defaultKeyMap(),
		filePaths:    dialog.NewFilePathsDialog(),
		sessions:     dialog.NewSessionsDialog(),
		settings:     dialog.NewSettingsDialog(st.Settings, st.Dark),
		reupload:     dialog.NewReuploadDialog(),
		fullOutput:   dialog.NewFullOutputDialog(),
		contextPanel: dialog.NewContextDialog(),
		tools:        dialog.NewToolsDialog(),
		workflows:    dialog.NewWorkflowsDialog(),
		files:        dialog.NewFilesDialog(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.quickUpload = dialog.NewQuickUploadDialog(m.workDir)
	if m.history != nil {
		m.editor.SetHistory(m.history)
	}

	// Initialize status bar (pass m as help provider)
	m.statusBar = statusbar.New(m)

	return m
}

// Init loads tools, workflows, session totals and files.
func (m *appModel) Init() tea.Cmd {
	return tea.Batch(
		m.dialogMgr.Init(),
		m.editor.Init(),
		m.editor.Focus(),
		m.refreshAgentUI(),
		m.refreshSessionInfo(),
		m.refreshFiles(),
		m.waitForSettings(),
	)
}

// Update handles messages.
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.syncState())
}

func (m *appModel) update(msg tea.Msg) tea.Cmd {
	if cmd, ok := m.handleResult(msg); ok {
		return cmd
	}

	switch msg := msg.(type) {
	// --- Window / Terminal ---

	case tea.WindowSizeMsg:
		m.wWidth, m.wHeight = msg.Width, msg.Height
		m.ready = true
		return m.handleWindowResize(msg.Width, msg.Height)

	// --- Keyboard and mouse ---

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.PasteMsg:
		if m.dialogMgr.Open() {
			_, cmd := m.dialogMgr.Update(msg)
			return cmd
		}
		_, cmd := m.editor.Update(msg)
		return cmd

	case tea.MouseWheelMsg:
		if m.dialogMgr.Open() {
			_, cmd := m.dialogMgr.Update(msg)
			return cmd
		}
		_, cmd := m.chatLog.Update(msg)
		return cmd

	// --- Dialog lifecycle ---

	case dialog.OpenDialogMsg, dialog.CloseDialogMsg, dialog.CloseAllDialogsMsg:
		_, cmd := m.dialogMgr.Update(msg)
		return cmd

	case notification.ShowMsg, notification.HideMsg:
		_, cmd := m.notification.Update(msg)
		return cmd

	case quitMsg:
		return tea.Quit

	case settingsChangedMsg:
		return m.handleSettingsChanged(msg.settings)

	case configSavedMsg:
		if msg.err != nil {
			slog.Warn("Failed to save user config", "error", msg.err)
		}
		return nil

	// --- Chat ---

	case messages.SendMsg:
		return m.send(msg.Text)
	case messages.StopMsg:
		m.stop()
		return nil
	case messages.SetEditorTextMsg:
		_, cmd := m.editor.Update(msg)
		return cmd
	case messages.ClearChatMsg:
		return m.clearChat()
	case messages.ExportChatMsg:
		return m.exportChat()
	case messages.CopyToClipboardMsg:
		return copyToClipboard(msg.Text)
	case messages.ToggleToolsMsg:
		m.useTools = !m.useTools
		if m.useTools {
			m.system("Tool use enabled")
		} else {
			m.system("Tool use disabled")
		}
		return nil
	case messages.ToggleThemeMsg:
		return m.setTheme(!m.state.Dark, true)
	case messages.ShutdownBackendMsg:
		return m.shutdownBackend()
	case messages.OpenPanelMsg:
		return m.openPanel(msg.Panel)

	// --- Agent panels ---

	case messages.RefreshAgentUIMsg:
		return m.refreshAgentUI()
	case messages.ApplyWorkflowMsg:
		return m.applyWorkflow(msg.Name, msg.Instructions)
	case messages.ShowToolHelpMsg:
		return m.showToolHelp(msg.Name)
	case messages.ExecuteToolMsg:
		return m.executeTool(msg.Name, msg.Params)
	case messages.SearchMemoryMsg:
		return m.searchMemory(msg.Query)
	case messages.SetProjectPathMsg:
		return m.setProjectPath(msg.Path)
	case messages.ToggleAutoApproveMsg:
		return m.toggleAutoApprove()
	case messages.RefreshAnalysisMsg:
		return m.refreshAnalysis()
	case messages.UpdateSettingsMsg:
		return m.updateSettings(msg.Settings, msg.Dark)

	// --- Sessions ---

	case messages.SaveSessionMsg:
		return m.saveSession(msg.Name)
	case messages.LoadSessionMsg:
		return m.loadSession(msg.Name)
	case messages.DeleteSessionMsg:
		return m.deleteSession(msg.Name)
	case messages.RefreshSessionsMsg:
		return m.refreshSessions()

	// --- Files ---

	case messages.UploadPathsMsg:
		return m.uploadPaths(msg.Paths)
	case messages.UploadLocalFilesMsg:
		return m.uploadLocalFiles(msg.Paths)
	case messages.ReuploadFilesMsg:
		return m.reuploadFiles(msg.Paths)
	case messages.UploadPDFMsg:
		return m.uploadPDF(msg.URL, msg.DisplayName)
	case messages.DeleteFileMsg:
		return m.deleteFile(msg.Name)
	case messages.ClearFilesMsg:
		return m.clearFiles()
	case messages.RefreshFilesMsg:
		return m.refreshFiles()
	case messages.RefreshSessionFilesMsg:
		return m.refreshSessionFiles()
	}

	// Cursor blinks and spinner ticks go to whoever owns them.
	var cmds []tea.Cmd
	if m.dialogMgr.Open() {
		_, cmd := m.dialogMgr.Update(msg)
		cmds = append(cmds, cmd)
	}
	_, cmd := m.editor.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = m.chatLog.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// syncState pushes the shared state into the components that mirror it.
func (m *appModel) syncState() tea.Cmd {
	m.statusBar.SetTokens(m.state.Tokens)
	m.statusBar.SetFileStatus(m.state.Files.Text())
	m.statusBar.SetModel(m.state.ModelName)
	m.statusBar.SetFlags(m.state.AutoApprove, m.useTools)
	m.editor.SetWorking(m.state.Loading)
	return m.chatLog.SetTyping(m.state.Typing)
}

func copyToClipboard(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return tea.Sequence(
		tea.SetClipboard(text),
		func() tea.Msg {
			_ = clipboard.WriteAll(text)
			return nil
		},
		notification.Show("Copied to clipboard."),
	)
}

// --- Theme and user config ---

type (
	settingsChangedMsg struct {
		settings userconfig.Settings
	}
	configSavedMsg struct {
		err error
	}
	quitMsg struct{}
)

// setTheme switches the palette and tells every component. With persist the
// preference is written to the user config.
func (m *appModel) setTheme(dark, persist bool) tea.Cmd {
	if dark == m.state.Dark {
		return nil
	}
	m.state.Dark = dark
	styles.ApplyTheme(dark)

	changed := messages.ThemeChangedMsg{Dark: dark}
	_, dialogCmd := m.dialogMgr.Update(changed)
	m.chatLog.Update(changed)
	m.statusBar.InvalidateCache()

	var saveCmd tea.Cmd
	if persist && m.config != nil {
		cfg, path := m.config, m.configPath
		cfg.SetDarkMode(dark)
		saveCmd = func() tea.Msg {
			return configSavedMsg{err: cfg.SaveTo(path)}
		}
	}
	return tea.Batch(dialogCmd, saveCmd)
}

func (m *appModel) waitForSettings() tea.Cmd {
	ch := m.settingsCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return settingsChangedMsg{settings: s}
	}
}

func (m *appModel) handleSettingsChanged(s userconfig.Settings) tea.Cmd {
	slog.Debug("User settings changed on disk", "dark_mode", s.DarkMode, "export_dir", s.ExportDir)
	m.exportDir = s.ExportDir
	return tea.Batch(m.setTheme(s.DarkMode, false), m.waitForSettings())
}

// --- Layout ---

func (m *appModel) handleWindowResize(width, height int) tea.Cmd {
	var cmds []tea.Cmd

	m.showSidebar = width >= minSidebarTotal
	sideW := 0
	if m.showSidebar {
		sideW = sidebarWidth
	}

	cmds = append(cmds, m.editor.SetSize(width, 1))
	m.statusBar.SetWidth(width)

	contentHeight := max(1, height-m.editor.Height()-m.statusBar.Height())
	cmds = append(cmds, m.chatLog.SetSize(width-sideW, contentHeight))
	cmds = append(cmds, m.sidebar.SetSize(sideW, contentHeight))

	// Update dialog (uses full window dimensions for overlay positioning)
	_, cmd := m.dialogMgr.Update(tea.WindowSizeMsg{Width: width, Height: height})
	cmds = append(cmds, cmd)

	m.notification.SetSize(width, height)

	return tea.Batch(cmds...)
}

// Help returns help information for the status bar.
func (m *appModel) Help() help.KeyMap {
	return core.NewSimpleHelp(m.Bindings())
}

// Bindings returns the key bindings shown in the status bar.
func (m *appModel) Bindings() []key.Binding {
	bindings := []key.Binding{
		m.keyMap.Palette,
		m.keyMap.Stop,
		m.keyMap.FullOutput,
		m.keyMap.AutoApprove,
		m.keyMap.ClearChat,
		m.keyMap.Context,
	}
	bindings = append(bindings, m.chatLog.Bindings()...)
	return append(bindings, m.keyMap.Quit)
}

// View renders the complete application interface
func (m *appModel) View() tea.View {
	windowTitle := m.windowTitle()

	if !m.ready {
		return toFullscreenView(styles.CenterStyle.Render("Loading…"), windowTitle)
	}

	content := m.chatLog.View()
	if m.showSidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.sidebar.View())
	}
	baseView := lipgloss.JoinVertical(lipgloss.Top, content, m.editor.View(), m.statusBar.View())

	// Handle overlays
	if m.dialogMgr.Open() || m.notification.Open() {
		allLayers := []*lipgloss.Layer{lipgloss.NewLayer(baseView)}
		if m.dialogMgr.Open() {
			allLayers = append(allLayers, m.dialogMgr.Layers()...)
		}
		if m.notification.Open() {
			allLayers = append(allLayers, m.notification.GetLayer())
		}
		return toFullscreenView(lipgloss.NewCompositor(allLayers...).Render(), windowTitle)
	}

	return toFullscreenView(baseView, windowTitle)
}

// windowTitle returns the terminal window title.
func (m *appModel) windowTitle() string {
	if m.state.ModelName != "" {
		return m.state.ModelName + " - gemini-console"
	}
	return "gemini-console"
}

func toFullscreenView(content, windowTitle string) tea.View {
	view := tea.NewView(content)
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = styles.Background
	view.WindowTitle = windowTitle
	return view
}
