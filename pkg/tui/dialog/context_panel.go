package dialog

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

// ContextDialog shows the backend's analysis of the project.
type ContextDialog struct {
	frame
	analysis   *api.ProjectAnalysis
	err        error
	closeKey   key.Binding
	refreshKey key.Binding
	projectKey key.Binding
}

func NewContextDialog() *ContextDialog {
	return &ContextDialog{
		closeKey: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "close"),
		),
		refreshKey: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh"),
		),
		projectKey: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "project path"),
		),
	}
}

// Reset fetches a fresh analysis every time the panel opens.
func (d *ContextDialog) Reset() tea.Cmd {
	d.analysis = nil
	d.err = nil
	return core.CmdHandler(messages.RefreshAnalysisMsg{})
}

func (d *ContextDialog) SetAnalysis(a *api.ProjectAnalysis) {
	d.analysis = a
	d.err = nil
}

func (d *ContextDialog) SetError(err error) {
	d.err = err
}

func (d *ContextDialog) Init() tea.Cmd {
	return nil
}

func (d *ContextDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}
		switch {
		case key.Matches(msg, d.closeKey):
			return d, core.CmdHandler(CloseDialogMsg{})
		case key.Matches(msg, d.refreshKey):
			return d, d.Reset()
		case key.Matches(msg, d.projectKey):
			return d, core.CmdHandler(messages.OpenPanelMsg{Panel: messages.PanelProjectPath})
		}
	}
	return d, nil
}

// FormatKB renders a byte count in kilobytes.
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}

func (d *ContextDialog) View() string {
	dialogWidth, contentWidth := d.widths(60, 50, 80)

	content := newBody(contentWidth).
		title("Project Context").
		rule()

	switch {
	case d.err != nil:
		content.line(styles.ErrorStyle.Width(contentWidth).Render(d.err.Error()))
	case d.analysis == nil:
		content.line(emptyState("Analyzing project…", contentWidth))
	default:
		a := d.analysis
		path := a.ProjectSummary.ProjectPath
		if path == "" {
			path = "(not set)"
		}
		row := func(label, value string) {
			content.line(styles.DialogLabelStyle.Width(18).Render(label) + styles.DialogValueStyle.Render(value))
		}
		row("Project path", path)
		row("Context size", FormatKB(a.ProjectSummary.ContextSize))
		row("Memory entries", fmt.Sprint(a.MemoryEntries))
		row("Available tools", fmt.Sprint(len(a.AvailableTools)))

		addList := func(title string, items []string) {
			if len(items) == 0 {
				return
			}
			content.gap().line(styles.BoldStyle.Render(title))
			for _, item := range items {
				content.line(styles.DialogContentStyle.Width(contentWidth).Render("  • " + item))
			}
		}
		addList("Suggested actions", a.Suggestions.ImmediateActions)
		addList("Recommended workflows", a.Suggestions.RecommendedWorkflows)
		addList("Tools to configure", a.Suggestions.ToolsToConfigure)
	}

	return styles.DialogStyle.Width(dialogWidth).Render(content.
		gap().
		keys("r", "refresh", "p", "project path", "esc", "close").
		String())
}

func (d *ContextDialog) Position() (row, col int) {
	return d.center(d.View())
}
