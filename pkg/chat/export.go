package chat

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// PlainText formats history as "ROLE: text" blocks separated by blank lines.
func PlainText(history []Entry) string {
	parts := make([]string, 0, len(history))
	for _, e := range history {
		parts = append(parts, strings.ToUpper(string(e.Role))+": "+e.Text)
	}
	return strings.Join(parts, "\n\n")
}

// ExportFilename is gemini_chat_ followed by the UTC timestamp with
// millisecond precision, colons replaced by dashes.
func ExportFilename(t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return "gemini_chat_" + strings.ReplaceAll(ts, ":", "-") + ".txt"
}

// Export writes history into dir and returns the file path.
func Export(dir string, history []Entry, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ExportFilename(now))
	if err := atomic.WriteFile(path, strings.NewReader(PlainText(history))); err != nil {
		return "", fmt.Errorf("exporting chat: %w", err)
	}
	return path, nil
}
