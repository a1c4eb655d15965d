package dialog

import (
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

const noFilesSelected = "No files selected"

// FilePathsDialog uploads files the backend reads from its own filesystem.
// Paths are separated by commas or newlines.
type FilePathsDialog struct {
	frame
	input  textarea.Model
	paths  []string
	enter  key.Binding
	escape key.Binding
}

func NewFilePathsDialog() *FilePathsDialog {
	ta := textarea.New()
	ta.Placeholder = "src/main.py, docs/README.md"
	ta.SetStyles(styles.TextAreaStyle)
	ta.ShowLineNumbers = false
	ta.CharLimit = 4096
	ta.KeyMap.InsertNewline.SetKeys("shift+enter", "ctrl+j")
	ta.SetHeight(3)

	return &FilePathsDialog{
		input: ta,
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "upload"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Reset clears the input so the dialog always opens empty.
func (d *FilePathsDialog) Reset() tea.Cmd {
	d.input.SetValue("")
	d.paths = nil
	return d.input.Focus()
}

// SubmitEnabled reports whether at least one path was entered.
func (d *FilePathsDialog) SubmitEnabled() bool {
	return len(d.paths) > 0
}

// Paths returns the paths that would be uploaded.
func (d *FilePathsDialog) Paths() []string {
	return d.paths
}

func (d *FilePathsDialog) Init() tea.Cmd {
	return textarea.Blink
}

func (d *FilePathsDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		d.selectionChanged()
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}
		switch {
		case key.Matches(msg, d.escape):
			return d, core.CmdHandler(CloseDialogMsg{})
		case key.Matches(msg, d.enter):
			if !d.SubmitEnabled() {
				return d, nil
			}
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(messages.UploadPathsMsg{Paths: d.paths}),
			)
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		d.selectionChanged()
		return d, cmd
	}
	return d, nil
}

func (d *FilePathsDialog) selectionChanged() {
	d.paths = chat.SplitPaths(d.input.Value())
}

func (d *FilePathsDialog) Position() (row, col int) {
	return d.center(d.View())
}

func (d *FilePathsDialog) View() string {
	dialogWidth, contentWidth := d.widths(70, 50, 90)
	d.input.SetWidth(contentWidth)

	content := newBody(contentWidth).
		title("Upload Files").
		rule().
		gap().
		line(styles.DialogLabelStyle.Render("File paths (comma or newline separated)")).
		line(d.input.View()).
		gap().
		line(selectionPreview(d.paths, nil, contentWidth)).
		gap().
		keys(append(submitHelp(d.SubmitEnabled(), "enter", "upload"), "shift+enter", "newline", "esc", "cancel")...).
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}

// selectionPreview lists the chosen files, or the empty-state text. detail,
// when set, adds a suffix per file.
func selectionPreview(names []string, detail func(i int) string, width int) string {
	if len(names) == 0 {
		return emptyState(noFilesSelected, width)
	}
	lines := []string{styles.DialogLabelStyle.Render("Selected files:")}
	for i, name := range names {
		line := "  • " + name
		if detail != nil {
			if s := detail(i); s != "" {
				line += " " + styles.MutedStyle.Render(s)
			}
		}
		lines = append(lines, line)
	}
	return joinLines(lines)
}

// submitHelp dims the submit key while submitting is disabled.
func submitHelp(enabled bool, k, action string) []string {
	if !enabled {
		return []string{k, action + " (disabled)"}
	}
	return []string{k, action}
}
