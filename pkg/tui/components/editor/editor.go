package editor

import (
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/commands"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

const (
	idlePlaceholder    = "Type your message here... (/ for commands)"
	workingPlaceholder = "Waiting for the assistant..."
	maxHistory         = 100
	// editorLines is the visible height of the input area.
	editorLines = 3
)

// Editor is the message input. Enter runs known slash commands and sends
// everything else; shift+enter starts a new line.
type Editor struct {
	input   textarea.Model
	width   int
	working bool

	// hist holds sent inputs, oldest first.
	hist []string
	// histIdx is len(hist) when not browsing.
	histIdx int
	draft   string
	store   HistoryStore
}

// HistoryStore persists sent inputs between runs.
type HistoryStore interface {
	Entries() []string
	Add(message string) error
}

func New() *Editor {
	ta := textarea.New()
	ta.SetStyles(styles.TextAreaStyle)
	ta.Placeholder = idlePlaceholder
	ta.Prompt = "│ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline.SetKeys("shift+enter", "ctrl+j")
	ta.SetWidth(50)
	ta.SetHeight(editorLines)

	return &Editor{input: ta}
}

// SetHistory loads earlier inputs from store and records new ones there.
func (e *Editor) SetHistory(store HistoryStore) {
	e.store = store
	e.hist = store.Entries()
	if len(e.hist) > maxHistory {
		e.hist = e.hist[len(e.hist)-maxHistory:]
	}
	e.histIdx = len(e.hist)
}

func (e *Editor) Init() tea.Cmd {
	return textarea.Blink
}

func (e *Editor) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SetEditorTextMsg:
		e.input.SetValue(msg.Text)
		e.input.MoveToEnd()
		e.histIdx = len(e.hist)
		return e, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return e, e.submit()
		case "up", "down":
			// Multi-line values keep the arrows for moving between lines.
			if !strings.Contains(e.input.Value(), "\n") {
				if msg.String() == "up" {
					e.navigateHistory(-1)
				} else {
					e.navigateHistory(1)
				}
				return e, nil
			}
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e *Editor) submit() tea.Cmd {
	value := strings.TrimSpace(e.input.Value())
	if value == "" {
		return nil
	}

	if cmd := commands.ParseSlashCommand(value); cmd != nil {
		e.remember(value)
		e.input.Reset()
		return cmd
	}

	// Sends are blocked while one is outstanding; the text stays put.
	if e.working {
		return nil
	}
	e.remember(value)
	e.input.Reset()
	return core.CmdHandler(messages.SendMsg{Text: value})
}

func (e *Editor) remember(value string) {
	if n := len(e.hist); n == 0 || e.hist[n-1] != value {
		e.hist = append(e.hist, value)
		if len(e.hist) > maxHistory {
			e.hist = e.hist[len(e.hist)-maxHistory:]
		}
	}
	e.histIdx = len(e.hist)
	e.draft = ""

	if e.store != nil {
		if err := e.store.Add(value); err != nil {
			slog.Debug("Failed to save input history", "error", err)
		}
	}
}

// navigateHistory moves through sent inputs; dir is -1 for older.
func (e *Editor) navigateHistory(dir int) {
	if len(e.hist) == 0 {
		return
	}
	if e.histIdx == len(e.hist) {
		e.draft = e.input.Value()
	}
	next := min(max(e.histIdx+dir, 0), len(e.hist))
	if next == e.histIdx {
		return
	}
	e.histIdx = next
	if next == len(e.hist) {
		e.input.SetValue(e.draft)
	} else {
		e.input.SetValue(e.hist[next])
	}
	e.input.MoveToEnd()
}

func (e *Editor) Value() string {
	return e.input.Value()
}

func (e *Editor) View() string {
	return styles.EditorStyle.Width(e.width).Render(e.input.View())
}

func (e *Editor) SetSize(width, _ int) tea.Cmd {
	e.width = width
	e.input.SetWidth(max(10, width-styles.EditorStyle.GetHorizontalFrameSize()))
	return nil
}

// Height is the rendered height including the border.
func (e *Editor) Height() int {
	return editorLines + styles.EditorStyle.GetVerticalFrameSize()
}

func (e *Editor) Focus() tea.Cmd {
	return e.input.Focus()
}

func (e *Editor) Blur() tea.Cmd {
	e.input.Blur()
	return nil
}

// SetWorking disables sending while a reply is pending.
func (e *Editor) SetWorking(working bool) tea.Cmd {
	e.working = working
	if working {
		e.input.Placeholder = workingPlaceholder
	} else {
		e.input.Placeholder = idlePlaceholder
	}
	return nil
}

func (e *Editor) Working() bool {
	return e.working
}

func (e *Editor) Bindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		key.NewBinding(
			key.WithKeys("shift+enter", "ctrl+j"),
			key.WithHelp("Shift+Enter", "newline"),
		),
		key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑↓", "history"),
		),
	}
}

func (e *Editor) Help() help.KeyMap {
	return core.NewSimpleHelp(e.Bindings())
}
