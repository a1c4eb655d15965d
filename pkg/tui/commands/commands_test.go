package commands

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/gemini-console/pkg/tui/messages"
)

func TestParseSlashCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  tea.Msg
	}{
		{input: "/clear", want: messages.OpenPanelMsg{Panel: messages.PanelClearChat}},
		{input: "/export", want: messages.ExportChatMsg{}},
		{input: "/save", want: messages.OpenPanelMsg{Panel: messages.PanelSaveSession}},
		{input: "/save  weekly review ", want: messages.SaveSessionMsg{Name: "weekly review"}},
		{input: "/load", want: messages.OpenPanelMsg{Panel: messages.PanelSessions}},
		{input: "/load weekly", want: messages.LoadSessionMsg{Name: "weekly"}},
		{input: "/upload a.py, b.py\nc.py", want: messages.UploadPathsMsg{Paths: []string{"a.py", "b.py", "c.py"}}},
		{input: "/pdf https://x.test/a.pdf Annual report", want: messages.UploadPDFMsg{URL: "https://x.test/a.pdf", DisplayName: "Annual report"}},
		{input: "/pdf https://x.test/a.pdf", want: messages.UploadPDFMsg{URL: "https://x.test/a.pdf"}},
		{input: "/help read_file", want: messages.ShowToolHelpMsg{Name: "read_file"}},
		{input: "/help", want: messages.OpenPanelMsg{Panel: messages.PanelTools}},
		{input: "/workflow code_review focus on errors", want: messages.ApplyWorkflowMsg{Name: "code_review", Instructions: "focus on errors"}},
		{input: "/memory deploy steps", want: messages.SearchMemoryMsg{Query: "deploy steps"}},
		{input: "/project /src/app", want: messages.SetProjectPathMsg{Path: "/src/app"}},
		{input: "/autoapprove", want: messages.ToggleAutoApproveMsg{}},
		{input: "  /theme  ", want: messages.ToggleThemeMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			cmd := ParseSlashCommand(tt.input)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestParseSlashCommandExit(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"/exit", "/quit"} {
		cmd := ParseSlashCommand(input)
		require.NotNil(t, cmd, input)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestParseSlashCommandIgnoresOtherInput(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "hello", "what does /clear do?", "/unknown", "/"} {
		assert.Nil(t, ParseSlashCommand(input), input)
	}
}

func TestBuildCommandCategories(t *testing.T) {
	t.Parallel()

	categories := BuildCommandCategories()

	var names []string
	seenSlash := map[string]bool{}
	for _, c := range categories {
		names = append(names, c.Name)
		for _, cmd := range c.Commands {
			assert.Equal(t, c.Name, cmd.Category, cmd.ID)
			assert.NotNil(t, cmd.Execute, cmd.ID)
			assert.False(t, seenSlash[cmd.SlashCommand], "duplicate %s", cmd.SlashCommand)
			seenSlash[cmd.SlashCommand] = true
		}
	}
	assert.Equal(t, []string{"Chat", "Files", "Sessions", "Agent", "View"}, names)
}

func TestPaletteCommandsOpenPanels(t *testing.T) {
	t.Parallel()

	for _, c := range BuildCommandCategories() {
		for _, cmd := range c.Commands {
			if cmd.ID != "files.quick" {
				continue
			}
			assert.Equal(t, messages.OpenPanelMsg{Panel: messages.PanelQuickUpload}, cmd.Execute()())
		}
	}
}
