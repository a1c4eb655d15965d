package spinner

import (
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/docker/gemini-console/pkg/tui/styles"
)

var lastID atomic.Int64

type tickMsg struct {
	tag int
	id  int
}

// Spinner is the typing indicator shown while a reply is pending. A light
// sweeps back and forth over the message.
type Spinner struct {
	message       string
	lightPosition int
	frame         int
	id            int
	tag           int
	direction     int // 1 for forward, -1 for backward
	pauseFrames   int
}

var defaultMessages = []string{
	"Thinking",
	"Working on it",
	"Reading the context",
	"Consulting the tools",
	"Drafting a reply",
}

func New() Spinner {
	return Spinner{
		message:       defaultMessages[rand.IntN(len(defaultMessages))],
		lightPosition: -3,
		id:            int(lastID.Add(1)),
		direction:     1,
	}
}

// WithMessage returns a spinner showing msg instead of a random message.
func (s Spinner) WithMessage(msg string) Spinner {
	s.message = msg
	return s
}

func (s Spinner) Update(message tea.Msg) (Spinner, tea.Cmd) {
	msg, ok := message.(tickMsg)
	if !ok || msg.id != s.id || msg.tag != s.tag {
		return s, nil
	}

	s.tag++
	s.frame++

	if s.pauseFrames > 0 {
		s.pauseFrames--
		if s.pauseFrames == 0 {
			s.direction = -1
		}
	} else {
		s.lightPosition += s.direction
		if s.direction == 1 && s.lightPosition > len([]rune(s.message))+2 {
			s.pauseFrames = 6
		} else if s.direction == -1 && s.lightPosition < -3 {
			s.direction = 1
		}
	}

	return s, s.Tick()
}

func (s Spinner) View() string {
	dots := styles.SpinnerDotsStyle.Render(spinnerChars[s.frame%len(spinnerChars)])
	return dots + " " + s.renderMessage() + styles.SpinnerTextDimStyle.Render("…")
}

func (s Spinner) Tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{id: s.id, tag: s.tag}
	})
}

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func lightStyles() []lipgloss.Style {
	return []lipgloss.Style{
		styles.SpinnerTextBrightestStyle,
		styles.SpinnerTextBrightStyle,
		styles.SpinnerTextDimStyle,
		styles.SpinnerTextDimmestStyle,
	}
}

// renderMessage styles each rune by its distance from the light.
func (s Spinner) renderMessage() string {
	ls := lightStyles()
	var out strings.Builder
	for i, char := range []rune(s.message) {
		dist := min(max(i-s.lightPosition, s.lightPosition-i), len(ls)-1)
		out.WriteString(ls[dist].Render(string(char)))
	}
	return out.String()
}
