// Package state is the application state owned by the terminal UI.
package state

import (
	"slices"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/chat"
)

// FileStatus is either a known count or unknown, which asks for a session
// info refresh.
type FileStatus struct {
	Count int
	Known bool
}

func (f FileStatus) Text() string {
	if !f.Known {
		return "Files: ..."
	}
	return chat.FileStatusText(f.Count)
}

// State is constructed once when the UI starts and lives until it exits.
type State struct {
	Log    *chat.Log
	Tokens chat.Tokens
	Files  FileStatus

	UploadedFiles []api.FileDescriptor
	ExpiredFiles  []string
	Sessions      []string
	Tools         []string
	Workflows     []string
	SessionFiles  []api.SessionFile

	ProjectPath       string
	ContextLoaded     bool
	AutoApprove       bool
	ModelName         string
	ConversationTurns int

	Loading bool
	Typing  bool
	Dark    bool

	Settings api.Settings

	Seq *Sequencer
}

func New(dark bool) *State {
	return &State{
		Log:      chat.NewLog(),
		Dark:     dark,
		Settings: api.DefaultSettings(),
		Seq:      NewSequencer(),
	}
}

// SetFileCount records a known file count.
func (s *State) SetFileCount(n int) {
	s.Files = FileStatus{Count: n, Known: true}
}

// ApplyFeatures stores what initialize_enhanced_session reported.
func (s *State) ApplyFeatures(f *api.Features) {
	if f == nil {
		return
	}
	s.Tools = slices.Clone(f.ToolsAvailable)
	s.Workflows = slices.Clone(f.WorkflowTemplates)
	if f.ProjectPath != "" {
		s.ProjectPath = f.ProjectPath
	}
	s.ContextLoaded = f.ContextLoaded
}

// ApplySessionInfo stores cumulative session totals.
func (s *State) ApplySessionInfo(info *api.SessionInfo) {
	if info == nil {
		return
	}
	s.Tokens.ApplySessionTokens(info)
	s.SetFileCount(info.FilesCount)
	s.ModelName = info.ModelName
	s.ConversationTurns = info.ConversationTurns
	s.AutoApprove = info.AutoApproveMode
	if info.ProjectPath != "" {
		s.ProjectPath = info.ProjectPath
	}
}

// ApplyFiles stores the uploaded file list and its count.
func (s *State) ApplyFiles(resp *api.FilesResponse) {
	if resp == nil {
		return
	}
	s.UploadedFiles = resp.Files
	s.ExpiredFiles = resp.ExpiredFiles
	s.SetFileCount(len(resp.Files))
}

// ClearFiles empties the file list after a successful clear.
func (s *State) ClearFiles() {
	s.UploadedFiles = nil
	s.ExpiredFiles = nil
	s.SetFileCount(0)
}

// StartSend marks a send as outstanding. It returns false when one already is.
func (s *State) StartSend() bool {
	if s.Loading {
		return false
	}
	s.Loading = true
	s.Typing = true
	return true
}

// StopSend clears the loading and typing flags.
func (s *State) StopSend() {
	s.Loading = false
	s.Typing = false
}
