package dialog

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/gemini-console/pkg/tui/messages"
)

func TestToolsDialogHelp(t *testing.T) {
	t.Parallel()

	d := NewToolsDialog()
	d.SetTools([]string{"read_file", "search_code", "write_file"})
	_ = d.Reset()
	typeText(d, "search")

	msgs := press(d, keyEnter)
	require.Len(t, msgs, 2)
	assert.Equal(t, messages.ShowToolHelpMsg{Name: "search_code"}, msgs[1])
}

func TestToolsDialogRun(t *testing.T) {
	t.Parallel()

	d := NewToolsDialog()
	d.SetTools([]string{"read_file"})
	_ = d.Reset()

	msgs := press(d, tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	open, ok := findMsg[OpenDialogMsg](msgs)
	require.True(t, ok)

	params := open.Model
	_, _ = params.Update(tea.PasteMsg{Content: `{"path": "a.go"`})
	assert.Empty(t, press(params, keyEnter))
	assert.Contains(t, params.View(), "invalid JSON")

	_, _ = params.Update(tea.PasteMsg{Content: "}"})
	msgs = press(params, keyEnter)
	exec, ok := findMsg[messages.ExecuteToolMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, messages.ExecuteToolMsg{Name: "read_file", Params: map[string]any{"path": "a.go"}}, exec)
}

func TestToolParamsDialogEmptyRunsWithoutParams(t *testing.T) {
	t.Parallel()

	msgs := press(NewToolParamsDialog("list_files"), keyEnter)
	exec, ok := findMsg[messages.ExecuteToolMsg](msgs)
	require.True(t, ok)
	assert.Empty(t, exec.Params)
	assert.NotNil(t, exec.Params)
}

func TestParseToolParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    map[string]any
		wantErr bool
	}{
		{input: "", want: map[string]any{}},
		{input: `{"n": 1}`, want: map[string]any{"n": float64(1)}},
		{input: "null", wantErr: true},
		{input: "[1]", wantErr: true},
		{input: "{", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseToolParams(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestWorkflowsDialogApply(t *testing.T) {
	t.Parallel()

	d := NewWorkflowsDialog()
	d.SetWorkflows([]string{"code_review", "debug"})
	_ = d.Reset()
	press(d, keyDown)
	typeText(d, "focus on tests")

	msgs := press(d, keyEnter)
	require.Len(t, msgs, 2)
	assert.Equal(t, messages.ApplyWorkflowMsg{Name: "debug", Instructions: "focus on tests"}, msgs[1])
}

func TestWorkflowsDialogEmpty(t *testing.T) {
	t.Parallel()

	d := NewWorkflowsDialog()
	_ = d.Reset()
	assert.Empty(t, press(d, keyEnter))
	assert.Contains(t, d.View(), "No workflows available")
}
