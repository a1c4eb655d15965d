package messages

type (
	ApplyWorkflowMsg struct {
		Name         string
		Instructions string
	}
	ShowToolHelpMsg struct {
		Name string
	}
	ExecuteToolMsg struct {
		Name   string
		Params map[string]any
	}
	SearchMemoryMsg struct {
		Query string
	}
	SetProjectPathMsg struct {
		Path string
	}
	RefreshAnalysisMsg struct{}
)

// OpenPanelMsg opens one of the application's dialogs by name.
type OpenPanelMsg struct {
	Panel Panel
}

type Panel string

const (
	PanelPalette     Panel = "palette"
	PanelUploadPaths Panel = "upload paths"
	PanelQuickUpload Panel = "quick upload"
	PanelSessions    Panel = "sessions"
	PanelSettings    Panel = "settings"
	PanelReupload    Panel = "reupload"
	PanelFullOutput  Panel = "full output"
	PanelContext     Panel = "context"
	PanelTools       Panel = "tools"
	PanelWorkflows   Panel = "workflows"
	PanelMemory      Panel = "memory"
	PanelFiles       Panel = "files"
	PanelProjectPath Panel = "project path"
	PanelSaveSession Panel = "save session"
	PanelUploadPDF   Panel = "upload pdf"
	PanelClearChat   Panel = "clear chat"
	PanelClearFiles  Panel = "clear files"
)
