package chatlog

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/tui/messages"
)

func newModel(t *testing.T) (*Model, *chat.Log) {
	t.Helper()
	log := chat.NewLog()
	m := New(log, true)
	m.SetSize(80, 200)
	return m, log
}

func plain(m *Model) string {
	return ansi.Strip(m.View())
}

func TestRefreshShowsAppendedMessages(t *testing.T) {
	t.Parallel()

	m, log := newModel(t)
	log.Append(chat.RoleUser, "hello there")
	log.Append(chat.RoleSystem, "Session saved")
	m.Refresh()

	view := plain(m)
	assert.Contains(t, view, "hello there")
	assert.Contains(t, view, "Session saved")
	assert.Len(t, m.cache, 2)
}

func TestTypingIndicatorIsLast(t *testing.T) {
	t.Parallel()

	m, log := newModel(t)
	log.Append(chat.RoleUser, "question")
	m.Refresh()

	cmd := m.SetTyping(true)
	require.NotNil(t, cmd)
	assert.True(t, m.Typing())

	m.spin = m.spin.WithMessage("Thinking")
	m.Refresh()

	view := strings.TrimRight(plain(m), " \n")
	assert.True(t, strings.HasSuffix(view, "Thinking…"), view)

	log.Append(chat.RoleAssistant, "the answer")
	m.Refresh()
	view = strings.TrimRight(plain(m), " \n")
	assert.Less(t, strings.Index(view, "the answer"), strings.Index(view, "Thinking…"))

	assert.Nil(t, m.SetTyping(false))
	assert.NotContains(t, plain(m), "Thinking…")
}

func TestClearDropsCache(t *testing.T) {
	t.Parallel()

	m, log := newModel(t)
	log.Append(chat.RoleUser, "first")
	log.Append(chat.RoleAssistant, "second")
	m.Refresh()
	require.Len(t, m.cache, 2)

	log.Clear()
	log.Append(chat.RoleSystem, "Chat cleared")
	m.Refresh()

	assert.Len(t, m.cache, 1)
	assert.NotContains(t, plain(m), "first")
	assert.Contains(t, plain(m), "Chat cleared")
}

func TestThemeChangeRerenders(t *testing.T) {
	t.Parallel()

	m, log := newModel(t)
	log.Append(chat.RoleAssistant, "**bold**")
	m.Refresh()

	m.Update(messages.ThemeChangedMsg{Dark: false})

	assert.False(t, m.renderer.Dark())
	assert.Len(t, m.cache, 1)
	assert.Contains(t, plain(m), "bold")
}

func TestResizeRewrapsMessages(t *testing.T) {
	t.Parallel()

	m, log := newModel(t)
	log.Append(chat.RoleUser, "resize me")
	m.Refresh()

	m.SetSize(40, 20)

	assert.Equal(t, 36, m.renderer.Width())
	assert.Contains(t, plain(m), "resize me")
}
