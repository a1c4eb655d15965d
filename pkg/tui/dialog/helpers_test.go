package dialog

import (
	"reflect"

	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core/layout"
)

// collectMsgs executes a command (or batch/sequence of commands) and collects all returned messages.
// It handles tea.BatchMsg and tea.Sequence (which uses an unexported slice type).
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if msg == nil {
		return nil
	}

	if batchMsg, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, innerCmd := range batchMsg {
			msgs = append(msgs, collectMsgs(innerCmd)...)
		}
		return msgs
	}

	msgValue := reflect.ValueOf(msg)
	if msgValue.Kind() == reflect.Slice {
		var msgs []tea.Msg
		for i := range msgValue.Len() {
			elem := msgValue.Index(i)
			if elem.CanInterface() {
				if innerCmd, ok := elem.Interface().(tea.Cmd); ok && innerCmd != nil {
					msgs = append(msgs, collectMsgs(innerCmd)...)
				}
			}
		}
		if len(msgs) > 0 {
			return msgs
		}
	}

	return []tea.Msg{msg}
}

// findMsg searches for a message of the specified type in the collected messages.
func findMsg[T any](msgs []tea.Msg) (T, bool) {
	var zero T
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

func hasMsg[T any](msgs []tea.Msg) bool {
	_, found := findMsg[T](msgs)
	return found
}

// press sends a key press to a model and returns the collected messages.
func press(m layout.Model, k tea.KeyPressMsg) []tea.Msg {
	_, cmd := m.Update(k)
	return collectMsgs(cmd)
}

// typeText types s one rune at a time.
func typeText(m layout.Model, s string) {
	for _, r := range s {
		_, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyUp    = tea.KeyPressMsg{Code: tea.KeyUp}
	keySpace = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
)

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
