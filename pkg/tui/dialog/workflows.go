package dialog

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

// WorkflowsDialog applies a workflow template with optional custom
// instructions. The instructions input keeps its text between openings.
type WorkflowsDialog struct {
	frame
	instructions textinput.Model
	workflows    []string
	cursor       cursor
	keyMap       listKeyMap
}

func NewWorkflowsDialog() *WorkflowsDialog {
	ti := textinput.New()
	ti.Placeholder = "Custom instructions (optional)"
	ti.SetStyles(styles.InputStyle)
	ti.CharLimit = 2000

	return &WorkflowsDialog{
		instructions: ti,
		keyMap:       defaultListKeyMap(),
	}
}

func (d *WorkflowsDialog) SetWorkflows(workflows []string) {
	d.workflows = workflows
	d.cursor.setCount(len(workflows))
}

// Reset moves the cursor back to the first workflow.
func (d *WorkflowsDialog) Reset() tea.Cmd {
	d.cursor.reset(len(d.workflows))
	return d.instructions.Focus()
}

func (d *WorkflowsDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d *WorkflowsDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		var cmd tea.Cmd
		d.instructions, cmd = d.instructions.Update(msg)
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}

		switch {
		case key.Matches(msg, d.keyMap.Escape):
			return d, core.CmdHandler(CloseDialogMsg{})

		case d.cursor.handle(d.keyMap, msg, 10):
			return d, nil

		case key.Matches(msg, d.keyMap.Enter):
			if d.cursor.selected >= len(d.workflows) {
				return d, nil
			}
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(messages.ApplyWorkflowMsg{
					Name:         d.workflows[d.cursor.selected],
					Instructions: strings.TrimSpace(d.instructions.Value()),
				}),
			)

		default:
			var cmd tea.Cmd
			d.instructions, cmd = d.instructions.Update(msg)
			return d, cmd
		}
	}
	return d, nil
}

func (d *WorkflowsDialog) View() string {
	dialogWidth, contentWidth := d.widths(60, 40, 80)
	d.instructions.SetWidth(contentWidth)

	var lines []string
	start, end := d.cursor.window(10)
	for i := start; i < end; i++ {
		lines = append(lines, renderRow("⚡ "+d.workflows[i], "", i == d.cursor.selected, false, contentWidth))
	}
	if more := moreIndicator(end, len(d.workflows)); more != "" {
		lines = append(lines, more)
	}
	if len(d.workflows) == 0 {
		lines = append(lines, emptyState("No workflows available", contentWidth))
	}

	content := newBody(contentWidth).
		title("Workflows").
		rule().
		line(joinLines(lines)).
		gap().
		line(styles.DialogLabelStyle.Render("Custom instructions")).
		line(d.instructions.View()).
		gap().
		keys("↑/↓", "navigate", "enter", "apply", "esc", "close").
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}

func (d *WorkflowsDialog) Position() (row, col int) {
	return d.center(d.View())
}
