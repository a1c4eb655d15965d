package sidebar

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/docker/gemini-console/pkg/state"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

// maxListed is how many names a section shows before collapsing the rest.
const maxListed = 8

// Model shows the project, auto-approve flag, tools, workflows and files.
// It reads the application state on every render.
type Model struct {
	width  int
	height int
	state  *state.State
}

func New(st *state.State) *Model {
	return &Model{state: st}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(tea.Msg) (layout.Model, tea.Cmd) {
	return m, nil
}

func (m *Model) View() string {
	sections := []string{
		m.projectInfo(),
		m.autoApprove(),
		m.list("Tools", m.state.Tools, "No tools available"),
		m.list("Workflows", m.state.Workflows, "No workflows available"),
		m.files(),
	}

	content := strings.Join(sections, "\n\n")
	return styles.SidebarStyle.
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(content)
}

func (m *Model) innerWidth() int {
	return max(1, m.width-styles.SidebarStyle.GetHorizontalFrameSize())
}

func (m *Model) line(s string) string {
	return ansi.Truncate(s, m.innerWidth(), "…")
}

func (m *Model) renderTab(title, content string) string {
	return styles.SidebarTitleStyle.Render(title) + "\n" + content
}

func (m *Model) projectInfo() string {
	path := m.state.ProjectPath
	if path == "" {
		path = "(not set)"
	}
	lines := []string{m.line(styles.SecondaryStyle.Render(path))}
	if m.state.ContextLoaded {
		lines = append(lines, styles.SuccessStyle.Render("✓")+styles.MutedStyle.Render(" context loaded"))
	}
	return m.renderTab("Project", strings.Join(lines, "\n"))
}

// AutoApproveLabel is the checkbox line for the auto-approve flag.
func AutoApproveLabel(enabled bool) string {
	if enabled {
		return "[x] Auto-approve"
	}
	return "[ ] Auto-approve"
}

func (m *Model) autoApprove() string {
	box := AutoApproveLabel(m.state.AutoApprove)
	style := styles.SecondaryStyle
	if m.state.AutoApprove {
		style = styles.WarningStyle
	}
	indicator := style.Render(box)
	shortcut := lipgloss.PlaceHorizontal(max(0, m.innerWidth()-lipgloss.Width(indicator)), lipgloss.Right, styles.MutedStyle.Render("⇧tab"))
	return m.line(indicator + shortcut)
}

func (m *Model) list(title string, names []string, empty string) string {
	if len(names) == 0 {
		return m.renderTab(title, styles.MutedStyle.Render(empty))
	}
	var lines []string
	for i, name := range names {
		if i == maxListed {
			lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("… %d more", len(names)-maxListed)))
			break
		}
		lines = append(lines, m.line(styles.BaseStyle.Render("• "+name)))
	}
	return m.renderTab(fmt.Sprintf("%s (%d)", title, len(names)), strings.Join(lines, "\n"))
}

func (m *Model) files() string {
	names := make([]string, 0, len(m.state.UploadedFiles))
	for _, f := range m.state.UploadedFiles {
		names = append(names, f.Label())
	}
	out := m.list("Files", names, m.state.Files.Text())
	if n := len(m.state.ExpiredFiles); n > 0 {
		out += "\n" + styles.WarningStyle.Render(fmt.Sprintf("%d expired", n))
	}
	return out
}

func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return nil
}
