package editor

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/docker/gemini-console/pkg/tui/messages"
)

var (
	keyEnter      = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyUp         = tea.KeyPressMsg{Code: tea.KeyUp}
	keyDown       = tea.KeyPressMsg{Code: tea.KeyDown}
	keyShiftEnter = tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	e := New()
	e.SetSize(80, 1)
	e.Focus()
	return e
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		e.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(t *testing.T, e *Editor) tea.Msg {
	t.Helper()
	_, cmd := e.Update(keyEnter)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestEnterSendsAndClears(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	typeText(e, "hello")

	assert.Equal(t, messages.SendMsg{Text: "hello"}, enter(t, e))
	assert.Empty(t, e.Value())
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	typeText(e, "   ")

	assert.Nil(t, enter(t, e))
}

func TestWorkingBlocksSend(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	e.SetWorking(true)
	typeText(e, "second question")

	assert.Nil(t, enter(t, e))
	assert.Equal(t, "second question", e.Value())

	e.SetWorking(false)
	assert.Equal(t, messages.SendMsg{Text: "second question"}, enter(t, e))
}

func TestSlashCommandRunsWhileWorking(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	e.SetWorking(true)
	typeText(e, "/export")

	assert.Equal(t, messages.ExportChatMsg{}, enter(t, e))
	assert.Empty(t, e.Value())
}

func TestUnknownSlashCommandIsSent(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	typeText(e, "/nope now")

	assert.Equal(t, messages.SendMsg{Text: "/nope now"}, enter(t, e))
}

func TestSetEditorText(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	_, cmd := e.Update(messages.SetEditorTextMsg{Text: "Review the diff"})

	assert.Nil(t, cmd)
	assert.Equal(t, "Review the diff", e.Value())
}

func TestMultilineInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input func(e *Editor)
		want  string
	}{
		{
			name: "prompt template",
			input: func(e *Editor) {
				e.Update(messages.SetEditorTextMsg{Text: "Please review this code for:\n1. Bugs\n2. Style"})
			},
			want: "Please review this code for:\n1. Bugs\n2. Style",
		},
		{
			name: "shift+enter",
			input: func(e *Editor) {
				typeText(e, "a")
				e.Update(keyShiftEnter)
				typeText(e, "b")
			},
			want: "a\nb",
		},
		{
			name: "paste",
			input: func(e *Editor) {
				e.Update(tea.PasteMsg{Content: "line one\nline two"})
			},
			want: "line one\nline two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEditor(t)
			tt.input(e)
			assert.Equal(t, tt.want, e.Value())

			assert.Equal(t, messages.SendMsg{Text: tt.want}, enter(t, e))
			assert.Empty(t, e.Value())
		})
	}
}

func TestArrowsMoveWithinMultilineValue(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	typeText(e, "earlier")
	enter(t, e)

	e.Update(messages.SetEditorTextMsg{Text: "one\ntwo"})
	e.Update(keyUp)

	assert.Equal(t, "one\ntwo", e.Value())
}

func TestHistoryNavigation(t *testing.T) {
	t.Parallel()

	e := newEditor(t)
	typeText(e, "first")
	enter(t, e)
	typeText(e, "second")
	enter(t, e)
	typeText(e, "draft")

	e.Update(keyUp)
	assert.Equal(t, "second", e.Value())
	e.Update(keyUp)
	assert.Equal(t, "first", e.Value())
	e.Update(keyUp)
	assert.Equal(t, "first", e.Value())

	e.Update(keyDown)
	assert.Equal(t, "second", e.Value())
	e.Update(keyDown)
	assert.Equal(t, "draft", e.Value())
}

type memoryStore struct {
	entries []string
}

func (s *memoryStore) Entries() []string { return append([]string(nil), s.entries...) }

func (s *memoryStore) Add(message string) error {
	s.entries = append(s.entries, message)
	return nil
}

func TestHistoryStore(t *testing.T) {
	t.Parallel()

	store := &memoryStore{entries: []string{"from last run"}}
	e := newEditor(t)
	e.SetHistory(store)

	e.Update(keyUp)
	assert.Equal(t, "from last run", e.Value())

	e.Update(keyDown)
	typeText(e, "new input")
	enter(t, e)

	assert.Equal(t, []string{"from last run", "new input"}, store.entries)
}
