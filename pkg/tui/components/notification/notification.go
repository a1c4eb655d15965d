package notification

import (
	"slices"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/docker/gemini-console/pkg/tui/styles"
)

const (
	defaultDuration     = 3 * time.Second
	errorDuration       = 6 * time.Second
	notificationPadding = 2
	maxItems            = 4
)

var nextID atomic.Uint64

type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// ShowMsg shows a toast in the bottom right corner.
type ShowMsg struct {
	Text  string
	Level Level
}

type HideMsg struct {
	ID uint64 // If 0, hides all notifications
}

// Show returns a command that shows an info toast.
func Show(text string) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Text: text} }
}

// ShowError returns a command that shows an error toast.
func ShowError(text string) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Text: text, Level: LevelError} }
}

type notificationItem struct {
	ID    uint64
	Text  string
	Level Level
}

// Manager displays stacked toasts, newest at the bottom.
type Manager struct {
	width, height int
	items         []notificationItem
}

func New() Manager {
	return Manager{}
}

func (n *Manager) SetSize(width, height int) {
	n.width = width
	n.height = height
}

func (n *Manager) Update(msg tea.Msg) (Manager, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		n.SetSize(msg.Width, msg.Height)
		return *n, nil

	case ShowMsg:
		id := nextID.Add(1)
		n.items = append([]notificationItem{{ID: id, Text: msg.Text, Level: msg.Level}}, n.items...)
		if len(n.items) > maxItems {
			n.items = n.items[:maxItems]
		}

		d := defaultDuration
		if msg.Level == LevelError {
			d = errorDuration
		}
		return *n, tea.Tick(d, func(time.Time) tea.Msg {
			return HideMsg{ID: id}
		})

	case HideMsg:
		if msg.ID == 0 {
			n.items = nil
			return *n, nil
		}
		n.items = slices.DeleteFunc(n.items, func(item notificationItem) bool {
			return item.ID == msg.ID
		})
		return *n, nil
	}

	return *n, nil
}

func (n *Manager) View() string {
	if len(n.items) == 0 {
		return ""
	}

	maxWidth := max(20, n.width/3)
	var views []string
	for i := len(n.items) - 1; i >= 0; i-- {
		item := n.items[i]
		style := styles.NotificationStyle
		if item.Level == LevelError {
			style = styles.NotificationErrorStyle
		}
		views = append(views, style.MaxWidth(maxWidth).Render(item.Text))
	}

	return lipgloss.JoinVertical(lipgloss.Right, views...)
}

func (n *Manager) GetLayer() *lipgloss.Layer {
	if len(n.items) == 0 {
		return nil
	}

	view := n.View()
	row, col := n.position(view)
	return lipgloss.NewLayer(view).X(col).Y(row)
}

// position places the stack in the bottom right corner, above the status bar.
func (n *Manager) position(view string) (row, col int) {
	row = max(0, n.height-lipgloss.Height(view)-notificationPadding)
	col = max(0, n.width-lipgloss.Width(view)-notificationPadding)
	return row, col
}

func (n *Manager) Open() bool {
	return len(n.items) > 0
}
