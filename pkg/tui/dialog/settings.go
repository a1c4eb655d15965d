package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldInt
	fieldBool
)

type settingsField struct {
	label string
	kind  fieldKind
}

const (
	fieldModelName = iota
	fieldDynamicTokens
	fieldMaxTotalTokens
	fieldHardCap
	fieldTruncateOutput
	fieldTruncateChars
	fieldShortHint
	fieldStreaming
	fieldDarkMode
)

var settingsFields = []settingsField{
	fieldModelName:      {label: "Model name", kind: fieldText},
	fieldDynamicTokens:  {label: "Use dynamic tokens", kind: fieldBool},
	fieldMaxTotalTokens: {label: "Max total tokens", kind: fieldInt},
	fieldHardCap:        {label: "Hard cap", kind: fieldInt},
	fieldTruncateOutput: {label: "Truncate output", kind: fieldBool},
	fieldTruncateChars:  {label: "Truncate chars", kind: fieldInt},
	fieldShortHint:      {label: "Add short hint", kind: fieldBool},
	fieldStreaming:      {label: "Enable streaming", kind: fieldBool},
	fieldDarkMode:       {label: "Dark mode", kind: fieldBool},
}

type settingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Space  key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// SettingsDialog edits the model settings and the client's dark mode.
type SettingsDialog struct {
	frame
	current api.Settings
	dark    bool
	inputs  []textinput.Model
	bools   []bool
	focused int
	errText string
	keyMap  settingsKeyMap
}

func NewSettingsDialog(current api.Settings, dark bool) *SettingsDialog {
	d := &SettingsDialog{
		current: current,
		dark:    dark,
		inputs:  make([]textinput.Model, len(settingsFields)),
		bools:   make([]bool, len(settingsFields)),
		keyMap: settingsKeyMap{
			Up:     key.NewBinding(key.WithKeys("up")),
			Down:   key.NewBinding(key.WithKeys("down", "tab")),
			Space:  key.NewBinding(key.WithKeys("space")),
			Enter:  key.NewBinding(key.WithKeys("enter")),
			Escape: key.NewBinding(key.WithKeys("esc")),
		},
	}
	for i, f := range settingsFields {
		ti := textinput.New()
		ti.SetStyles(styles.InputStyle)
		ti.Prompt = ""
		if f.kind == fieldInt {
			ti.CharLimit = 9
		} else {
			ti.CharLimit = 128
		}
		d.inputs[i] = ti
	}
	return d
}

// SetCurrent records the settings in effect. They are shown the next time
// the dialog opens.
func (d *SettingsDialog) SetCurrent(settings api.Settings, dark bool) {
	d.current = settings
	d.dark = dark
}

// Reset discards unsaved edits.
func (d *SettingsDialog) Reset() tea.Cmd {
	s := d.current
	d.inputs[fieldModelName].SetValue(s.ModelName)
	d.inputs[fieldMaxTotalTokens].SetValue(strconv.Itoa(s.MaxTotalTokens))
	d.inputs[fieldHardCap].SetValue(strconv.Itoa(s.HardCap))
	d.inputs[fieldTruncateChars].SetValue(strconv.Itoa(s.TruncateChars))
	d.bools[fieldDynamicTokens] = s.UseDynamicTokens
	d.bools[fieldTruncateOutput] = s.TruncateOutput
	d.bools[fieldShortHint] = s.AddShortHint
	d.bools[fieldStreaming] = s.EnableStreaming
	d.bools[fieldDarkMode] = d.dark
	d.errText = ""
	d.focused = 0
	return d.focus(0)
}

func (d *SettingsDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d *SettingsDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		return d.updateCurrentInput(msg)

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}
		switch {
		case key.Matches(msg, d.keyMap.Escape):
			return d, core.CmdHandler(CloseDialogMsg{})
		case key.Matches(msg, d.keyMap.Up):
			return d, d.focus(d.focused - 1)
		case key.Matches(msg, d.keyMap.Down):
			return d, d.focus(d.focused + 1)
		case key.Matches(msg, d.keyMap.Space) && settingsFields[d.focused].kind == fieldBool:
			d.bools[d.focused] = !d.bools[d.focused]
			return d, nil
		case key.Matches(msg, d.keyMap.Enter):
			return d.submit()
		}
		return d.updateCurrentInput(msg)
	}
	return d, nil
}

func (d *SettingsDialog) updateCurrentInput(msg tea.Msg) (layout.Model, tea.Cmd) {
	if settingsFields[d.focused].kind == fieldBool {
		return d, nil
	}
	d.errText = ""
	var cmd tea.Cmd
	d.inputs[d.focused], cmd = d.inputs[d.focused].Update(msg)
	return d, cmd
}

func (d *SettingsDialog) focus(i int) tea.Cmd {
	d.inputs[d.focused].Blur()
	d.focused = (i + len(settingsFields)) % len(settingsFields)
	if settingsFields[d.focused].kind == fieldBool {
		return nil
	}
	return d.inputs[d.focused].Focus()
}

// Values parses the form.
func (d *SettingsDialog) Values() (api.Settings, bool, error) {
	s := api.Settings{
		ModelName:        strings.TrimSpace(d.inputs[fieldModelName].Value()),
		UseDynamicTokens: d.bools[fieldDynamicTokens],
		TruncateOutput:   d.bools[fieldTruncateOutput],
		AddShortHint:     d.bools[fieldShortHint],
		EnableStreaming:  d.bools[fieldStreaming],
	}
	if s.ModelName == "" {
		return s, false, fmt.Errorf("%s is required", settingsFields[fieldModelName].label)
	}

	for _, f := range []struct {
		idx int
		dst *int
	}{
		{fieldMaxTotalTokens, &s.MaxTotalTokens},
		{fieldHardCap, &s.HardCap},
		{fieldTruncateChars, &s.TruncateChars},
	} {
		n, err := strconv.Atoi(strings.TrimSpace(d.inputs[f.idx].Value()))
		if err != nil || n <= 0 {
			return s, false, fmt.Errorf("%s must be a positive number", settingsFields[f.idx].label)
		}
		*f.dst = n
	}
	return s, d.bools[fieldDarkMode], nil
}

func (d *SettingsDialog) submit() (layout.Model, tea.Cmd) {
	settings, dark, err := d.Values()
	if err != nil {
		d.errText = err.Error()
		return d, nil
	}
	return d, tea.Sequence(
		core.CmdHandler(CloseDialogMsg{}),
		core.CmdHandler(messages.UpdateSettingsMsg{Settings: settings, Dark: dark}),
	)
}

func (d *SettingsDialog) View() string {
	dialogWidth, contentWidth := d.widths(60, 50, 80)
	labelWidth := 20

	content := newBody(contentWidth).
		title("Settings").
		rule()

	for i, f := range settingsFields {
		marker := "  "
		if i == d.focused {
			marker = "› "
		}
		label := styles.DialogLabelStyle.Width(labelWidth).Render(marker + f.label)

		var value string
		if f.kind == fieldBool {
			value = "[ ]"
			if d.bools[i] {
				value = "[x]"
			}
			if i == d.focused {
				value = styles.HighlightStyle.Render(value)
			} else {
				value = styles.DialogValueStyle.Render(value)
			}
		} else {
			d.inputs[i].SetWidth(max(10, contentWidth-labelWidth-1))
			value = d.inputs[i].View()
		}
		content.line(label + " " + value)
	}

	if d.errText != "" {
		content.gap().line(styles.ErrorStyle.Render(d.errText))
	}

	return styles.DialogStyle.Width(dialogWidth).Render(content.
		gap().
		keys("↑/↓", "navigate", "space", "toggle", "enter", "save", "esc", "cancel").
		String())
}

func (d *SettingsDialog) Position() (row, col int) {
	return d.center(d.View())
}
