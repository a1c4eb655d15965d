package dialog

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/tui/messages"
)

func TestSettingsDialogSubmitsCurrentValues(t *testing.T) {
	t.Parallel()

	d := NewSettingsDialog(api.DefaultSettings(), true)
	_ = d.Reset()

	msgs := press(d, keyEnter)
	require.Len(t, msgs, 2)
	assert.Equal(t, messages.UpdateSettingsMsg{Settings: api.DefaultSettings(), Dark: true}, msgs[1])
}

func TestSettingsDialogEditFields(t *testing.T) {
	t.Parallel()

	d := NewSettingsDialog(api.DefaultSettings(), true)
	_ = d.Reset()

	// model name
	d.inputs[fieldModelName].SetValue("")
	typeText(d, "gemini-2.0-flash")
	// toggle dynamic tokens off
	press(d, keyDown)
	press(d, keySpace)
	// max total tokens
	press(d, keyDown)
	d.inputs[fieldMaxTotalTokens].SetValue("")
	typeText(d, "4096")
	// dark mode is the last field
	_ = d.focus(fieldDarkMode)
	press(d, keySpace)

	settings, dark, err := d.Values()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", settings.ModelName)
	assert.False(t, settings.UseDynamicTokens)
	assert.Equal(t, 4096, settings.MaxTotalTokens)
	assert.Equal(t, 512, settings.HardCap)
	assert.False(t, dark)
}

func TestSettingsDialogValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field int
		value string
		want  string
	}{
		{name: "empty model", field: fieldModelName, value: "", want: "Model name is required"},
		{name: "not a number", field: fieldHardCap, value: "abc", want: "Hard cap must be a positive number"},
		{name: "zero", field: fieldTruncateChars, value: "0", want: "Truncate chars must be a positive number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := NewSettingsDialog(api.DefaultSettings(), false)
			_, _ = d.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
			_ = d.Reset()
			d.inputs[tt.field].SetValue(tt.value)

			assert.Empty(t, press(d, keyEnter))
			assert.Contains(t, d.View(), tt.want)
		})
	}
}

func TestSettingsDialogResetDiscardsEdits(t *testing.T) {
	t.Parallel()

	d := NewSettingsDialog(api.DefaultSettings(), true)
	_ = d.Reset()
	d.inputs[fieldModelName].SetValue("edited")
	press(d, keyDown)
	press(d, keySpace)

	_ = d.Reset()
	settings, _, err := d.Values()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultSettings(), settings)

	updated := api.DefaultSettings()
	updated.ModelName = "saved"
	d.SetCurrent(updated, false)
	_ = d.Reset()
	settings, dark, err := d.Values()
	require.NoError(t, err)
	assert.Equal(t, "saved", settings.ModelName)
	assert.False(t, dark)
}
