// Package messages defines the requests dialogs and components send to the
// application model.
package messages

// ThemeChangedMsg is sent after styles.ApplyTheme so components drop caches.
type ThemeChangedMsg struct {
	Dark bool
}

type (
	// StopMsg clears the loading state. The outstanding request keeps running.
	StopMsg struct{}
	// ExportChatMsg writes the chat history to a file.
	ExportChatMsg struct{}
	// ToggleAutoApproveMsg flips auto-approve and pushes it to the backend.
	ToggleAutoApproveMsg struct{}
	// ToggleThemeMsg switches between dark and light mode.
	ToggleThemeMsg struct{}
	// ToggleToolsMsg switches tool use on or off for subsequent sends.
	ToggleToolsMsg struct{}
	// RefreshAgentUIMsg reloads tools and workflows.
	RefreshAgentUIMsg struct{}
	// CopyToClipboardMsg copies text to the system clipboard.
	CopyToClipboardMsg struct {
		Text string
	}
	// ShutdownBackendMsg asks the backend to exit.
	ShutdownBackendMsg struct{}
)
