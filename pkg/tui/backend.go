package tui

import (
	"context"

	"github.com/docker/gemini-console/pkg/api"
)

// Backend is the assistant server as seen by the UI. *api.Client implements it.
type Backend interface {
	InitializeSession(ctx context.Context) (*api.Features, error)
	ApplyWorkflow(ctx context.Context, templateName, customPrompt string) (*api.Workflow, error)
	GetToolHelp(ctx context.Context, toolName string) (string, error)
	SetAutoApprove(ctx context.Context, enabled bool) (string, error)
	SearchMemory(ctx context.Context, query string) ([]api.MemoryEntry, error)
	GetProjectAnalysis(ctx context.Context) (*api.ProjectAnalysis, error)
	SetProjectPath(ctx context.Context, projectPath string) (string, error)
	SendMessage(ctx context.Context, message string, useTools bool) (*api.SendResponse, error)
	GetSessionInfo(ctx context.Context) (*api.SessionInfo, error)
	ListFiles(ctx context.Context) (*api.FilesResponse, error)
	DeleteFile(ctx context.Context, fileName string) (string, error)
	ClearFiles(ctx context.Context) (string, error)
	ClearConversation(ctx context.Context) (string, error)
	UploadFiles(ctx context.Context, paths []string) (*api.CountResponse, error)
	UploadFilesEnhanced(ctx context.Context, files []api.FileContent) (*api.CountResponse, error)
	ListSessions(ctx context.Context) ([]string, error)
	SaveSession(ctx context.Context, name string) (string, error)
	LoadSession(ctx context.Context, sessionFile string) (string, error)
	DeleteSession(ctx context.Context, name string) (string, error)
	GetSessionFiles(ctx context.Context) ([]api.SessionFile, error)
	ReuploadSessionFiles(ctx context.Context, paths []string) (*api.CountResponse, error)
	UpdateSettings(ctx context.Context, settings api.Settings) (string, error)
	ExecuteTool(ctx context.Context, toolName string, params map[string]any) (*api.ToolOutcome, error)
	UploadPDFFromURL(ctx context.Context, pdfURL, displayName string) (string, error)
	Shutdown(ctx context.Context) (string, error)
}

var _ Backend = (*api.Client)(nil)
