// Package chat holds the chat log, token counters and the plain-text export.
package chat

import (
	"github.com/docker/gemini-console/pkg/render"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleError     Role = "error"
	// RoleTool marks tool result blocks. Like system notices they are
	// display-only.
	RoleTool Role = "tool"
)

// Exported reports whether messages of this role are part of the export.
func (r Role) Exported() bool {
	return r != RoleSystem && r != RoleTool
}

// Message is one rendered entry of the chat log.
type Message struct {
	Role Role
	// Text is the source text. Empty for placeholders.
	Text string
	// HTML is the sanitized rendering of Text.
	HTML        string
	Placeholder bool
}

// Entry is one line of the exportable history.
type Entry struct {
	Role Role
	Text string
}

// Log is the ordered list of displayed messages plus the history that
// gets exported.
type Log struct {
	messages []Message
	history  []Entry
}

func NewLog() *Log {
	return &Log{}
}

// Append renders text and adds it to the log.
func (l *Log) Append(role Role, text string) Message {
	return l.add(Message{Role: role, Text: text, HTML: render.ToSafeHTML(text)})
}

// AppendPlaceholder adds an entry for a response that carried no text.
func (l *Log) AppendPlaceholder(role Role) Message {
	return l.add(Message{Role: role, HTML: render.Placeholder, Placeholder: true})
}

func (l *Log) add(msg Message) Message {
	l.messages = append(l.messages, msg)
	if msg.Role.Exported() {
		l.history = append(l.history, Entry{Role: msg.Role, Text: msg.Text})
	}
	return msg
}

// Messages returns the displayed entries in order.
func (l *Log) Messages() []Message {
	return l.messages
}

// History returns the exportable entries in order.
func (l *Log) History() []Entry {
	return l.history
}

func (l *Log) Len() int {
	return len(l.messages)
}

// LastAssistant returns the most recent assistant message.
func (l *Log) LastAssistant() (Message, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Role == RoleAssistant {
			return l.messages[i], true
		}
	}
	return Message{}, false
}

// Clear empties both the display and the history.
func (l *Log) Clear() {
	l.messages = nil
	l.history = nil
}
