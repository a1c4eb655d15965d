package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docker/gemini-console/pkg/api"
)

func TestNew(t *testing.T) {
	t.Parallel()

	s := New(true)
	assert.True(t, s.Dark)
	assert.NotNil(t, s.Log)
	assert.NotNil(t, s.Seq)
	assert.Equal(t, api.DefaultSettings(), s.Settings)
	assert.Equal(t, "Files: ...", s.Files.Text())
}

func TestApplySessionInfo(t *testing.T) {
	t.Parallel()

	s := New(false)
	s.ApplySessionInfo(&api.SessionInfo{
		ModelName:         "gemini-1.5-pro-latest",
		ConversationTurns: 4,
		TotalInputTokens:  10,
		TotalOutputTokens: 3,
		FilesCount:        2,
		ProjectPath:       "/src",
		AutoApproveMode:   true,
	})

	assert.Equal(t, 13, s.Tokens.Total())
	assert.Equal(t, "2 file(s) loaded", s.Files.Text())
	assert.Equal(t, "/src", s.ProjectPath)
	assert.True(t, s.AutoApprove)
	assert.Equal(t, 4, s.ConversationTurns)

	s.ApplySessionInfo(nil)
	assert.Equal(t, 13, s.Tokens.Total())
}

func TestApplyFeaturesAndFiles(t *testing.T) {
	t.Parallel()

	s := New(false)
	s.ProjectPath = "/old"
	s.ApplyFeatures(&api.Features{ToolsAvailable: []string{"a"}, WorkflowTemplates: []string{"w"}})
	assert.Equal(t, []string{"a"}, s.Tools)
	assert.Equal(t, []string{"w"}, s.Workflows)
	assert.Equal(t, "/old", s.ProjectPath)

	s.ApplyFiles(&api.FilesResponse{Files: []api.FileDescriptor{{Name: "x"}}, ExpiredFiles: []string{"y"}})
	assert.Len(t, s.UploadedFiles, 1)
	assert.Equal(t, "1 file(s) loaded", s.Files.Text())

	s.ClearFiles()
	assert.Empty(t, s.UploadedFiles)
	assert.Equal(t, "No files loaded", s.Files.Text())
}

func TestSendGuard(t *testing.T) {
	t.Parallel()

	s := New(false)
	assert.True(t, s.StartSend())
	assert.False(t, s.StartSend())
	assert.True(t, s.Loading)
	assert.True(t, s.Typing)

	s.StopSend()
	assert.False(t, s.Loading)
	assert.False(t, s.Typing)
	assert.True(t, s.StartSend())
}
