package dialog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type toolsKeyMap struct {
	listKeyMap
	Execute key.Binding
}

// ToolsDialog lists the backend's tools. Enter shows a tool's help and
// ctrl+x runs it with JSON parameters.
type ToolsDialog struct {
	frame
	textInput textinput.Model
	tools     []string
	filtered  []string
	cursor    cursor
	keyMap    toolsKeyMap
}

func NewToolsDialog() *ToolsDialog {
	ti := textinput.New()
	ti.Placeholder = "Type to filter tools…"
	ti.SetStyles(styles.InputStyle)
	ti.CharLimit = 100

	return &ToolsDialog{
		textInput: ti,
		keyMap: toolsKeyMap{
			listKeyMap: defaultListKeyMap(),
			Execute: key.NewBinding(
				key.WithKeys("ctrl+x"),
				key.WithHelp("ctrl+x", "run"),
			),
		},
	}
}

func (d *ToolsDialog) SetTools(tools []string) {
	d.tools = tools
	d.filter()
}

// Reset clears the filter.
func (d *ToolsDialog) Reset() tea.Cmd {
	d.textInput.SetValue("")
	d.filter()
	return d.textInput.Focus()
}

func (d *ToolsDialog) filter() {
	d.filtered = filterNames(d.tools, d.textInput.Value())
	d.cursor.reset(len(d.filtered))
}

func (d *ToolsDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d *ToolsDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		var cmd tea.Cmd
		d.textInput, cmd = d.textInput.Update(msg)
		d.filter()
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}

		switch {
		case key.Matches(msg, d.keyMap.Escape):
			return d, core.CmdHandler(CloseDialogMsg{})

		case d.cursor.handle(d.keyMap.listKeyMap, msg, 10):
			return d, nil

		case key.Matches(msg, d.keyMap.Enter):
			if d.cursor.selected >= len(d.filtered) {
				return d, nil
			}
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(messages.ShowToolHelpMsg{Name: d.filtered[d.cursor.selected]}),
			)

		case key.Matches(msg, d.keyMap.Execute):
			if d.cursor.selected >= len(d.filtered) {
				return d, nil
			}
			return d, core.CmdHandler(OpenDialogMsg{Model: NewToolParamsDialog(d.filtered[d.cursor.selected])})

		default:
			var cmd tea.Cmd
			d.textInput, cmd = d.textInput.Update(msg)
			d.filter()
			return d, cmd
		}
	}
	return d, nil
}

func (d *ToolsDialog) View() string {
	dialogWidth, contentWidth := d.widths(50, 40, 70)
	d.textInput.SetWidth(contentWidth)

	var lines []string
	start, end := d.cursor.window(10)
	for i := start; i < end; i++ {
		lines = append(lines, renderRow("🔧 "+d.filtered[i], "", i == d.cursor.selected, false, contentWidth))
	}
	if more := moreIndicator(end, len(d.filtered)); more != "" {
		lines = append(lines, more)
	}
	if len(d.filtered) == 0 {
		lines = append(lines, emptyState("No tools available", contentWidth))
	}

	content := newBody(contentWidth).
		title("Tools").
		gap().
		line(d.textInput.View()).
		rule().
		line(joinLines(lines)).
		gap().
		keys("enter", "help", "ctrl+x", "run", "esc", "close").
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}

func (d *ToolsDialog) Position() (row, col int) {
	return d.center(d.View())
}

// NewToolParamsDialog asks for a tool's parameters as a JSON object. An
// empty answer runs the tool without parameters.
func NewToolParamsDialog(tool string) Dialog {
	return NewPromptDialog(
		"Run "+tool,
		`{"path": "README.md"}`,
		func(v string) tea.Msg {
			params, _ := ParseToolParams(v)
			return messages.ExecuteToolMsg{Name: tool, Params: params}
		},
		WithLabel("Parameters (JSON object)"),
		WithOptional(),
		WithValidator(func(v string) error {
			_, err := ParseToolParams(v)
			return err
		}),
	)
}

// ParseToolParams decodes a JSON object. Blank input yields an empty map.
func ParseToolParams(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return map[string]any{}, nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(s), &params); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if params == nil {
		return nil, errors.New("parameters must be a JSON object")
	}
	return params, nil
}
