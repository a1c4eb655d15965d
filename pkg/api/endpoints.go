package api

import (
	"context"
	"errors"
)

// Endpoint names, relative to /api/.
const (
	EndpointInitialize        = "initialize_enhanced_session"
	EndpointApplyWorkflow     = "apply_workflow"
	EndpointToolHelp          = "get_tool_help"
	EndpointSetAutoApprove    = "set_auto_approve"
	EndpointSearchMemory      = "search_memory"
	EndpointProjectAnalysis   = "get_project_analysis"
	EndpointSetProjectPath    = "set_project_path"
	EndpointSendMessage       = "send_message_enhanced"
	EndpointSessionInfo       = "get_enhanced_session_info"
	EndpointListFiles         = "list_uploaded_files"
	EndpointDeleteFile        = "delete_file"
	EndpointClearFiles        = "clear_files"
	EndpointClearConversation = "clear_conversation"
	EndpointUploadFiles       = "upload_files"
	EndpointUploadEnhanced    = "upload_files_enhanced"
	EndpointListSessions      = "list_sessions"
	EndpointSaveSession       = "save_enhanced_session"
	EndpointLoadSession       = "load_enhanced_session"
	EndpointDeleteSession     = "delete_session"
	EndpointSessionFiles      = "get_session_files"
	EndpointReuploadFiles     = "reupload_session_files"
	EndpointUpdateSettings    = "update_settings"
	EndpointExecuteTool       = "execute_tool"
	EndpointUploadPDFFromURL  = "upload_pdf_from_url"
	EndpointShutdown          = "shutdown"
)

// empty is the body of POSTs that carry no parameters.
type empty struct{}

// InitializeSession calls initialize_enhanced_session and returns the enabled features.
func (c *Client) InitializeSession(ctx context.Context) (*Features, error) {
	var resp InitializeResponse
	if err := c.call(ctx, EndpointInitialize, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Features, nil
}

// ApplyWorkflow calls apply_workflow and returns the prompt and tools to auto-approve.
func (c *Client) ApplyWorkflow(ctx context.Context, templateName, customPrompt string) (*Workflow, error) {
	req := struct {
		TemplateName string `json:"template_name"`
		CustomPrompt string `json:"custom_prompt"`
	}{templateName, customPrompt}

	var resp WorkflowResponse
	if err := c.call(ctx, EndpointApplyWorkflow, req, &resp); err != nil {
		return nil, err
	}
	return resp.Workflow, nil
}

// GetToolHelp calls get_tool_help and returns the help text for toolName.
func (c *Client) GetToolHelp(ctx context.Context, toolName string) (string, error) {
	req := struct {
		ToolName string `json:"tool_name"`
	}{toolName}

	var resp ToolHelpResponse
	if err := c.call(ctx, EndpointToolHelp, req, &resp); err != nil {
		return "", err
	}
	return *resp.Help, nil
}

// SetAutoApprove calls set_auto_approve.
func (c *Client) SetAutoApprove(ctx context.Context, enabled bool) (string, error) {
	req := struct {
		Enabled bool `json:"enabled"`
	}{enabled}
	return c.message(ctx, EndpointSetAutoApprove, req)
}

// SearchMemory calls search_memory and returns the matching entries.
func (c *Client) SearchMemory(ctx context.Context, query string) ([]MemoryEntry, error) {
	req := struct {
		Query string `json:"query"`
	}{query}

	var resp MemoryResponse
	if err := c.call(ctx, EndpointSearchMemory, req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetProjectAnalysis calls get_project_analysis.
func (c *Client) GetProjectAnalysis(ctx context.Context) (*ProjectAnalysis, error) {
	var resp AnalysisResponse
	if err := c.call(ctx, EndpointProjectAnalysis, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Analysis, nil
}

// SetProjectPath calls set_project_path.
func (c *Client) SetProjectPath(ctx context.Context, projectPath string) (string, error) {
	req := struct {
		ProjectPath string `json:"project_path"`
	}{projectPath}
	return c.message(ctx, EndpointSetProjectPath, req)
}

// SendMessage calls send_message_enhanced.
func (c *Client) SendMessage(ctx context.Context, message string, useTools bool) (*SendResponse, error) {
	req := struct {
		Message  string `json:"message"`
		UseTools bool   `json:"use_tools"`
	}{message, useTools}

	var resp SendResponse
	if err := c.call(ctx, EndpointSendMessage, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSessionInfo calls get_enhanced_session_info.
func (c *Client) GetSessionInfo(ctx context.Context) (*SessionInfo, error) {
	var resp SessionInfoResponse
	if err := c.call(ctx, EndpointSessionInfo, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Info, nil
}

// ListFiles calls list_uploaded_files.
func (c *Client) ListFiles(ctx context.Context) (*FilesResponse, error) {
	var resp FilesResponse
	if err := c.call(ctx, EndpointListFiles, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteFile calls delete_file.
func (c *Client) DeleteFile(ctx context.Context, fileName string) (string, error) {
	req := struct {
		FileName string `json:"file_name"`
	}{fileName}
	return c.message(ctx, EndpointDeleteFile, req)
}

// ClearFiles calls clear_files.
func (c *Client) ClearFiles(ctx context.Context) (string, error) {
	return c.message(ctx, EndpointClearFiles, empty{})
}

// ClearConversation calls clear_conversation.
func (c *Client) ClearConversation(ctx context.Context) (string, error) {
	return c.message(ctx, EndpointClearConversation, empty{})
}

// UploadFiles calls upload_files with paths the backend reads itself.
func (c *Client) UploadFiles(ctx context.Context, paths []string) (*CountResponse, error) {
	req := struct {
		FilePaths []string `json:"file_paths"`
	}{paths}
	return c.count(ctx, EndpointUploadFiles, req)
}

// UploadFilesEnhanced calls upload_files_enhanced with file contents.
func (c *Client) UploadFilesEnhanced(ctx context.Context, files []FileContent) (*CountResponse, error) {
	req := struct {
		Files []FileContent `json:"files"`
	}{files}
	return c.count(ctx, EndpointUploadEnhanced, req)
}

// ListSessions calls list_sessions.
func (c *Client) ListSessions(ctx context.Context) ([]string, error) {
	var resp SessionsResponse
	if err := c.call(ctx, EndpointListSessions, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// SaveSession calls save_enhanced_session.
func (c *Client) SaveSession(ctx context.Context, name string) (string, error) {
	req := struct {
		SessionName string `json:"session_name"`
	}{name}
	return c.message(ctx, EndpointSaveSession, req)
}

// LoadSession calls load_enhanced_session.
func (c *Client) LoadSession(ctx context.Context, sessionFile string) (string, error) {
	req := struct {
		SessionFile string `json:"session_file"`
	}{sessionFile}
	return c.message(ctx, EndpointLoadSession, req)
}

// DeleteSession calls delete_session.
func (c *Client) DeleteSession(ctx context.Context, name string) (string, error) {
	req := struct {
		SessionName string `json:"session_name"`
	}{name}
	return c.message(ctx, EndpointDeleteSession, req)
}

// GetSessionFiles calls get_session_files.
func (c *Client) GetSessionFiles(ctx context.Context) ([]SessionFile, error) {
	var resp SessionFilesResponse
	if err := c.call(ctx, EndpointSessionFiles, nil, &resp); err != nil {
		return nil, err
	}
	return resp.FilePaths, nil
}

// ReuploadSessionFiles calls reupload_session_files.
func (c *Client) ReuploadSessionFiles(ctx context.Context, paths []string) (*CountResponse, error) {
	req := struct {
		SelectedPaths []string `json:"selected_paths"`
	}{paths}
	return c.count(ctx, EndpointReuploadFiles, req)
}

// UpdateSettings calls update_settings.
func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (string, error) {
	return c.message(ctx, EndpointUpdateSettings, settings)
}

// ExecuteTool calls execute_tool. A run that failed on the backend is
// returned as an outcome with Success false, not as an error.
func (c *Client) ExecuteTool(ctx context.Context, toolName string, params map[string]any) (*ToolOutcome, error) {
	if params == nil {
		params = map[string]any{}
	}
	req := struct {
		ToolName   string         `json:"tool_name"`
		Parameters map[string]any `json:"parameters"`
	}{toolName, params}

	var resp ToolExecutionResponse
	err := c.call(ctx, EndpointExecuteTool, req, &resp)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && resp.Result != nil {
		// A failed run still reports its outcome.
		resp.Result.Success = false
		if resp.Result.Error == "" {
			resp.Result.Error = statusErr.Error()
		}
		return resp.Result, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// UploadPDFFromURL calls upload_pdf_from_url.
func (c *Client) UploadPDFFromURL(ctx context.Context, pdfURL, displayName string) (string, error) {
	req := struct {
		URL         string `json:"url"`
		DisplayName string `json:"display_name,omitempty"`
	}{pdfURL, displayName}
	return c.message(ctx, EndpointUploadPDFFromURL, req)
}

// Shutdown calls shutdown.
func (c *Client) Shutdown(ctx context.Context) (string, error) {
	return c.message(ctx, EndpointShutdown, empty{})
}

func (c *Client) message(ctx context.Context, endpoint string, req any) (string, error) {
	var resp MessageResponse
	if err := c.call(ctx, endpoint, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) count(ctx context.Context, endpoint string, req any) (*CountResponse, error) {
	var resp CountResponse
	if err := c.call(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
