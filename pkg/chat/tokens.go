package chat

import (
	"fmt"

	"github.com/docker/gemini-console/pkg/api"
)

// Tokens are the counters shown in the status bar.
type Tokens struct {
	Input  int
	Output int
}

func (t Tokens) Total() int {
	return t.Input + t.Output
}

// ApplySendTokens overwrites the counters with a send response's usage.
func (t *Tokens) ApplySendTokens(tokens *api.SendTokens) {
	if tokens == nil {
		return
	}
	t.Input = tokens.Input
	t.Output = tokens.Output
}

// ApplySessionTokens overwrites the counters with the session totals.
func (t *Tokens) ApplySessionTokens(info *api.SessionInfo) {
	if info == nil {
		return
	}
	t.Input = info.TotalInputTokens
	t.Output = info.TotalOutputTokens
}

func FileStatusText(count int) string {
	if count <= 0 {
		return "No files loaded"
	}
	return fmt.Sprintf("%d file(s) loaded", count)
}
