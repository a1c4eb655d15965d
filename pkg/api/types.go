package api

import (
	"encoding/json"
)

// StatusSuccess is the only envelope status treated as success.
const StatusSuccess = "success"

// Envelope is the part every response shares.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (e *Envelope) envelope() Envelope { return *e }

// missing reports the first absent required field; the default has none.
func (e *Envelope) missing() string { return "" }

type response interface {
	envelope() Envelope
	missing() string
}

// MessageResponse is returned by every endpoint that only reports a message.
type MessageResponse struct {
	Envelope
}

// CountResponse is returned by the upload endpoints.
type CountResponse struct {
	Envelope
	Count int `json:"count"`
}

// Features describes what the backend exposes for the current session.
type Features struct {
	ToolsAvailable    []string `json:"tools_available"`
	WorkflowTemplates []string `json:"workflow_templates"`
	ProjectPath       string   `json:"project_path"`
	ContextLoaded     bool     `json:"context_loaded"`
}

type InitializeResponse struct {
	Envelope
	Features *Features `json:"features"`
}

func (r *InitializeResponse) missing() string {
	if r.Features == nil {
		return "features"
	}
	return ""
}

// Workflow is a prepared prompt from a workflow template.
type Workflow struct {
	Prompt       *string  `json:"prompt"`
	Context      string   `json:"context,omitempty"`
	Tools        []string `json:"tools"`
	AutoApprove  []string `json:"auto_approve"`
	TemplateName string   `json:"template_name,omitempty"`
}

type WorkflowResponse struct {
	Envelope
	Workflow *Workflow `json:"workflow"`
}

func (r *WorkflowResponse) missing() string {
	switch {
	case r.Workflow == nil:
		return "workflow"
	case r.Workflow.Prompt == nil:
		return "workflow.prompt"
	}
	return ""
}

// PromptText returns the workflow prompt, empty when absent.
func (w *Workflow) PromptText() string {
	if w == nil || w.Prompt == nil {
		return ""
	}
	return *w.Prompt
}

type ToolHelpResponse struct {
	Envelope
	Help *string `json:"help"`
}

func (r *ToolHelpResponse) missing() string {
	if r.Help == nil {
		return "help"
	}
	return ""
}

// MemoryEntry is one search_memory hit.
type MemoryEntry struct {
	Key     string   `json:"key"`
	Scope   string   `json:"scope"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

type MemoryResponse struct {
	Envelope
	Results []MemoryEntry `json:"results"`
}

type ProjectSummary struct {
	ProjectPath string `json:"project_path"`
	ContextSize int64  `json:"context_size"`
}

type Suggestions struct {
	ImmediateActions     []string `json:"immediate_actions"`
	RecommendedWorkflows []string `json:"recommended_workflows"`
	ToolsToConfigure     []string `json:"tools_to_configure"`
}

// ProjectAnalysis feeds the context panel.
type ProjectAnalysis struct {
	ProjectSummary ProjectSummary `json:"project_summary"`
	MemoryEntries  int            `json:"memory_entries"`
	AvailableTools []string       `json:"available_tools"`
	Suggestions    Suggestions    `json:"suggestions"`
}

type AnalysisResponse struct {
	Envelope
	Analysis *ProjectAnalysis `json:"analysis"`
}

func (r *AnalysisResponse) missing() string {
	if r.Analysis == nil {
		return "analysis"
	}
	return ""
}

// ToolOutcome is what a tool invocation returned.
type ToolOutcome struct {
	Success  bool           `json:"success"`
	Output   any            `json:"output,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// OutputText returns the output as text. Strings are returned as-is and
// anything else is serialized as JSON.
func (o ToolOutcome) OutputText() string {
	switch v := o.Output.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ToolResult is one tool invocation made while answering a message.
type ToolResult struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Result     ToolOutcome    `json:"result"`
}

// SendTokens is the per-exchange token usage.
type SendTokens struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

type SendResponse struct {
	Envelope
	Response    *string      `json:"response"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
	Tokens      *SendTokens  `json:"tokens,omitempty"`
}

// SessionInfo is the cumulative state of the backend session.
type SessionInfo struct {
	ModelName         string `json:"model_name"`
	ConversationTurns int    `json:"conversation_turns"`
	TotalInputTokens  int    `json:"total_input_tokens"`
	TotalOutputTokens int    `json:"total_output_tokens"`
	FilesCount        int    `json:"files_count"`
	ProjectPath       string `json:"project_path"`
	AutoApproveMode   bool   `json:"auto_approve_mode"`
}

type SessionInfoResponse struct {
	Envelope
	Info *SessionInfo `json:"info"`
}

func (r *SessionInfoResponse) missing() string {
	if r.Info == nil {
		return "info"
	}
	return ""
}

// FileDescriptor is one file uploaded to the model provider.
type FileDescriptor struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Label is the name shown to users.
func (f FileDescriptor) Label() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return f.Name
}

type FilesResponse struct {
	Envelope
	Files        []FileDescriptor `json:"files"`
	ExpiredFiles []string         `json:"expired_files,omitempty"`
}

// FileContent is a file uploaded by content rather than by path.
type FileContent struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type SessionsResponse struct {
	Envelope
	Sessions []string `json:"sessions"`
}

// SessionFile is a file referenced by the current session.
type SessionFile struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
	Exists      bool   `json:"exists"`
	MimeType    string `json:"mime_type,omitempty"`
}

type SessionFilesResponse struct {
	Envelope
	FilePaths []SessionFile `json:"file_paths"`
}

// Settings are the model settings pushed by update_settings.
type Settings struct {
	ModelName        string `json:"model_name"`
	UseDynamicTokens bool   `json:"use_dynamic_tokens"`
	MaxTotalTokens   int    `json:"max_total_tokens"`
	HardCap          int    `json:"hard_cap"`
	TruncateOutput   bool   `json:"truncate_output"`
	TruncateChars    int    `json:"truncate_chars"`
	AddShortHint     bool   `json:"add_short_hint"`
	EnableStreaming  bool   `json:"enable_streaming"`
}

// DefaultSettings mirrors the backend's own defaults.
func DefaultSettings() Settings {
	return Settings{
		ModelName:        "gemini-1.5-pro-latest",
		UseDynamicTokens: true,
		MaxTotalTokens:   1024,
		HardCap:          512,
		TruncateOutput:   false,
		TruncateChars:    1000,
		AddShortHint:     true,
		EnableStreaming:  true,
	}
}

type ToolExecutionResponse struct {
	Envelope
	Result *ToolOutcome `json:"result"`
}

func (r *ToolExecutionResponse) missing() string {
	if r.Result == nil {
		return "result"
	}
	return ""
}
