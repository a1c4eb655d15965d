package dialog

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
)

// OpenDialogMsg pushes Model on top of the open dialogs.
type OpenDialogMsg struct {
	Model Dialog
}

// CloseDialogMsg closes the topmost dialog.
type CloseDialogMsg struct{}

// CloseAllDialogsMsg closes every open dialog.
type CloseAllDialogsMsg struct{}

// Dialog is a modal drawn over the chat at Position (row, col).
type Dialog interface {
	layout.Model
	Position() (int, int)
}

// Resetter is implemented by dialogs that are kept between openings. Reset
// is called every time the dialog is opened.
type Resetter interface {
	Reset() tea.Cmd
}

// Stack holds the open dialogs. Only the top one receives input.
type Stack struct {
	width, height int
	open          []Dialog
}

func New() *Stack {
	return &Stack{}
}

func (s *Stack) Init() tea.Cmd {
	return nil
}

func (s *Stack) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return s, s.broadcast(msg)

	case messages.ThemeChangedMsg:
		return s, s.broadcast(msg)

	case OpenDialogMsg:
		return s, s.push(msg.Model)

	case CloseDialogMsg:
		if len(s.open) > 0 {
			s.open = s.open[:len(s.open)-1]
		}
		return s, nil

	case CloseAllDialogsMsg:
		s.open = nil
		return s, nil
	}

	top := len(s.open) - 1
	if top < 0 {
		return s, nil
	}
	u, cmd := s.open[top].Update(msg)
	s.open[top] = u.(Dialog)
	return s, cmd
}

// broadcast sends msg to every open dialog, not only the top one.
func (s *Stack) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.open))
	for i, d := range s.open {
		u, cmd := d.Update(msg)
		s.open[i] = u.(Dialog)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// push resets d and puts it on top. A dialog that is already open moves to
// the top instead of being stacked twice.
func (s *Stack) push(d Dialog) tea.Cmd {
	s.open = slices.DeleteFunc(s.open, func(o Dialog) bool { return o == d })

	var cmds []tea.Cmd
	if r, ok := d.(Resetter); ok {
		cmds = append(cmds, r.Reset())
	}
	s.open = append(s.open, d)
	cmds = append(cmds, d.Init())

	_, cmd := d.Update(tea.WindowSizeMsg{Width: s.width, Height: s.height})
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (s *Stack) View() string {
	if d := s.Top(); d != nil {
		return d.View()
	}
	return ""
}

func (s *Stack) SetSize(width, height int) tea.Cmd {
	s.width = width
	s.height = height
	return nil
}

// Open reports whether any dialog is showing.
func (s *Stack) Open() bool {
	return len(s.open) > 0
}

// Top is the dialog receiving input, nil when none is open.
func (s *Stack) Top() Dialog {
	if len(s.open) == 0 {
		return nil
	}
	return s.open[len(s.open)-1]
}

func (s *Stack) Contains(d Dialog) bool {
	return slices.Contains(s.open, d)
}

// Layers renders the open dialogs bottom to top.
func (s *Stack) Layers() []*lipgloss.Layer {
	layers := make([]*lipgloss.Layer, 0, len(s.open))
	for _, d := range s.open {
		row, col := d.Position()
		layers = append(layers, lipgloss.NewLayer(d.View()).X(col).Y(row))
	}
	return layers
}

// CenterPosition is the (row, col) that centers a box of the given size,
// kept on screen when the box is larger than the screen.
func CenterPosition(screenWidth, screenHeight, boxWidth, boxHeight int) (row, col int) {
	col = min(max(0, (screenWidth-boxWidth)/2), max(0, screenWidth-boxWidth))
	row = min(max(0, (screenHeight-boxHeight)/2), max(0, screenHeight-boxHeight))
	return row, col
}
