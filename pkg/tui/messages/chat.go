package messages

type (
	// SendMsg posts the editor content to the assistant.
	SendMsg struct {
		Text string
	}
	// ClearChatMsg clears the conversation on the backend and locally.
	ClearChatMsg struct{}
	// SetEditorTextMsg replaces the editor content without sending.
	SetEditorTextMsg struct {
		Text string
	}
)
