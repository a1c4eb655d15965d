package dialog

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

// Command represents a single command in the palette
type Command struct {
	ID           string
	Label        string
	SlashCommand string
	Shortcut     string
	Description  string
	Category     string
	Execute      func() tea.Cmd
}

// CommandCategory represents a category of commands
type CommandCategory struct {
	Name     string
	Commands []Command
}

// commandPaletteDialog implements Dialog for the command palette
type commandPaletteDialog struct {
	frame
	textInput  textinput.Model
	categories []CommandCategory
	filtered   []Command
	cursor     cursor
	keyMap     listKeyMap
}

// NewCommandPaletteDialog creates a new command palette dialog
func NewCommandPaletteDialog(categories []CommandCategory) Dialog {
	ti := textinput.New()
	ti.Placeholder = "Type to search commands…"
	ti.SetStyles(styles.InputStyle)
	ti.CharLimit = 100
	ti.Focus()

	d := &commandPaletteDialog{
		textInput:  ti,
		categories: categories,
		keyMap:     defaultListKeyMap(),
	}
	d.filterCommands()
	return d
}

func (d *commandPaletteDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d *commandPaletteDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		var cmd tea.Cmd
		d.textInput, cmd = d.textInput.Update(msg)
		d.filterCommands()
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}

		switch {
		case key.Matches(msg, d.keyMap.Escape):
			return d, core.CmdHandler(CloseDialogMsg{})

		case d.cursor.handle(d.keyMap, msg, d.pageSize()):
			return d, nil

		case key.Matches(msg, d.keyMap.Enter):
			if d.cursor.selected < len(d.filtered) {
				selected := d.filtered[d.cursor.selected]
				cmds := []tea.Cmd{core.CmdHandler(CloseDialogMsg{})}
				if selected.Execute != nil {
					cmds = append(cmds, selected.Execute())
				}
				return d, tea.Sequence(cmds...)
			}
			return d, nil

		default:
			var cmd tea.Cmd
			d.textInput, cmd = d.textInput.Update(msg)
			d.filterCommands()
			return d, cmd
		}
	}

	return d, nil
}

// filterCommands filters the command list based on search input. Label and
// slash command matches come before description and category matches.
func (d *commandPaletteDialog) filterCommands() {
	query := strings.ToLower(strings.TrimSpace(d.textInput.Value()))

	d.filtered = d.filtered[:0]
	var weak []Command
	for _, cat := range d.categories {
		for _, cmd := range cat.Commands {
			switch {
			case query == "",
				strings.Contains(strings.ToLower(cmd.Label), query),
				cmd.SlashCommand != "" && strings.HasPrefix(cmd.SlashCommand, query):
				d.filtered = append(d.filtered, cmd)
			case strings.Contains(strings.ToLower(cmd.Description), query),
				strings.Contains(strings.ToLower(cmd.Category), query):
				weak = append(weak, cmd)
			}
		}
	}
	d.filtered = append(d.filtered, weak...)
	d.cursor.reset(len(d.filtered))
}

func (d *commandPaletteDialog) dialogSize() (dialogWidth, maxHeight, contentWidth int) {
	dialogWidth, contentWidth = d.widths(80, 50, 80)
	maxHeight = min(d.screenHeight()*70/100, 30)
	return dialogWidth, maxHeight, contentWidth
}

func (d *commandPaletteDialog) pageSize() int {
	_, maxHeight, _ := d.dialogSize()
	return max(1, maxHeight-12)
}

func (d *commandPaletteDialog) View() string {
	dialogWidth, _, contentWidth := d.dialogSize()
	d.textInput.SetWidth(contentWidth)

	var lines []string
	start, end := d.cursor.window(d.pageSize())
	lastCategory := ""
	for i := start; i < end; i++ {
		cmd := d.filtered[i]
		if cmd.Category != lastCategory {
			lines = append(lines, styles.PaletteCategoryStyle.Render(cmd.Category))
			lastCategory = cmd.Category
		}
		lines = append(lines, d.renderCommand(cmd, i == d.cursor.selected, contentWidth))
	}
	if more := moreIndicator(end, len(d.filtered)); more != "" {
		lines = append(lines, more)
	}
	if len(d.filtered) == 0 {
		lines = append(lines, "", emptyState("No commands found", contentWidth))
	}

	content := newBody(contentWidth).
		title("Commands").
		gap().
		line(d.textInput.View()).
		rule().
		line(joinLines(lines)).
		gap().
		keys("↑/↓", "navigate", "enter", "execute", "esc", "close").
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}

// renderCommand renders a single command in the list
func (d *commandPaletteDialog) renderCommand(cmd Command, selected bool, width int) string {
	label := cmd.Label
	if cmd.Shortcut != "" {
		label += " " + styles.MutedStyle.Render("("+cmd.Shortcut+")")
	}
	desc := cmd.Description
	if cmd.SlashCommand != "" {
		desc = cmd.SlashCommand + " " + desc
	}
	return renderRow(label, desc, selected, false, width)
}

func (d *commandPaletteDialog) Position() (row, col int) {
	return d.center(d.View())
}

// OpenCommandPalette returns a command to open the command palette
func OpenCommandPalette(categories []CommandCategory) tea.Cmd {
	return core.CmdHandler(OpenDialogMsg{
		Model: NewCommandPaletteDialog(categories),
	})
}
