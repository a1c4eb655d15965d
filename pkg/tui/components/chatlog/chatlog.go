// Package chatlog draws the conversation with the typing indicator below the
// last message.
package chatlog

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/render"
	"github.com/docker/gemini-console/pkg/tui/components/spinner"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type keyMap struct {
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("Ctrl+Home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("Ctrl+End", "bottom"),
		),
	}
}

// Model renders a chat.Log. Rendered messages are cached by index; the log
// only grows or gets cleared so an index always names the same message.
type Model struct {
	log      *chat.Log
	renderer *render.Renderer
	viewport viewport.Model
	keyMap   keyMap

	width, height int
	dark          bool

	cache  []string
	typing bool
	spin   spinner.Spinner
}

func New(log *chat.Log, dark bool) *Model {
	vp := viewport.New(
		viewport.WithWidth(80),
		viewport.WithHeight(20),
	)
	vp.MouseWheelDelta = 3

	return &Model{
		log:      log,
		renderer: render.NewRenderer(80, dark),
		viewport: vp,
		keyMap:   defaultKeyMap(),
		width:    80,
		height:   20,
		dark:     dark,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ThemeChangedMsg:
		m.dark = msg.Dark
		m.invalidate()
		m.Refresh()
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.PageUp):
			m.viewport.PageUp()
		case key.Matches(msg, m.keyMap.PageDown):
			m.viewport.PageDown()
		case key.Matches(msg, m.keyMap.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keyMap.Bottom):
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.typing {
		var cmd tea.Cmd
		before := m.spin.View()
		m.spin, cmd = m.spin.Update(msg)
		if m.spin.View() != before {
			m.sync(m.viewport.AtBottom())
		}
		return m, cmd
	}
	return m, nil
}

// SetTyping shows or hides the typing indicator.
func (m *Model) SetTyping(typing bool) tea.Cmd {
	if m.typing == typing {
		return nil
	}
	m.typing = typing
	var cmd tea.Cmd
	if typing {
		m.spin = spinner.New()
		cmd = m.spin.Tick()
	}
	m.Refresh()
	return cmd
}

func (m *Model) Typing() bool {
	return m.typing
}

// Refresh picks up appended or cleared messages and scrolls to the bottom.
func (m *Model) Refresh() {
	if len(m.cache) > m.log.Len() {
		m.invalidate()
	}
	m.sync(true)
}

func (m *Model) sync(toBottom bool) {
	msgs := m.log.Messages()
	for i := len(m.cache); i < len(msgs); i++ {
		m.cache = append(m.cache, m.renderMessage(msgs[i]))
	}

	blocks := m.cache
	if m.typing {
		blocks = append(blocks[:len(blocks):len(blocks)], styles.TypingStyle.Render(m.spin.View()))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	if toBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) invalidate() {
	m.cache = nil
	m.renderer = render.NewRenderer(m.contentWidth(), m.dark)
}

func (m *Model) contentWidth() int {
	return max(10, m.width-4)
}

func (m *Model) renderMessage(msg chat.Message) string {
	width := m.width
	switch msg.Role {
	case chat.RoleUser:
		return styles.UserMessageStyle.Width(width).Render(
			styles.BoldStyle.Render("You") + "\n" + m.renderer.Render(msg.HTML))
	case chat.RoleAssistant:
		return styles.AssistantMessageStyle.Width(width).Render(
			styles.HighlightStyle.Bold(true).Render("Assistant") + "\n" + m.renderer.Render(msg.HTML))
	case chat.RoleSystem:
		return styles.SystemMessageStyle.Width(width).Render(render.PlainText(msg.HTML))
	case chat.RoleError:
		return styles.ErrorMessageStyle.Width(width).Render(render.PlainText(msg.HTML))
	case chat.RoleTool:
		return styles.ToolMessageStyle.Width(width).Render(m.renderer.Render(msg.HTML))
	default:
		return m.renderer.Render(msg.HTML)
	}
}

func (m *Model) View() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(m.viewport.View())
}

func (m *Model) SetSize(width, height int) tea.Cmd {
	if width == m.width && height == m.height {
		return nil
	}
	widthChanged := width != m.width
	m.width = width
	m.height = height
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(height)
	if widthChanged {
		m.invalidate()
	}
	m.sync(true)
	return nil
}

func (m *Model) Bindings() []key.Binding {
	return []key.Binding{m.keyMap.PageUp, m.keyMap.PageDown}
}

func (m *Model) Help() help.KeyMap {
	return core.NewSimpleHelp(m.Bindings())
}
