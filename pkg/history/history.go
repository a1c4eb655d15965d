// Package history persists the inputs sent from the chat editor so they can
// be recalled in later runs.
package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/docker/gemini-console/pkg/paths"
)

// MaxEntries is how many inputs are kept.
const MaxEntries = 100

type History struct {
	mu       sync.Mutex
	Messages []string `json:"messages"`

	path string
}

// DefaultPath is the history file under the data directory.
func DefaultPath() string {
	return filepath.Join(paths.GetDataDir(), "history.json")
}

// New loads the history stored at path. A missing file is an empty history.
func New(path string) (*History, error) {
	h := &History{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return h, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if err := json.Unmarshal(data, h); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", path, err)
	}
	return h, nil
}

// Entries returns the stored inputs, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.Messages)
}

// Add records message as the newest entry and saves. An earlier identical
// entry is moved rather than duplicated.
func (h *History) Add(message string) error {
	h.mu.Lock()
	messages := slices.DeleteFunc(slices.Clone(h.Messages), func(m string) bool {
		return m == message
	})
	messages = append(messages, message)
	if len(messages) > MaxEntries {
		messages = messages[len(messages)-MaxEntries:]
	}
	h.Messages = messages

	data, err := json.Marshal(h)
	h.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(h.path, bytes.NewReader(data))
}
