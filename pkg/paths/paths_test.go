package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirsUseHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "gemini-console"), GetConfigDir())
	assert.Equal(t, filepath.Join(home, ".gemini-console"), GetDataDir())
	assert.Equal(t, filepath.Join(home, ".gemini-console", "gemini-console.debug.log"), DefaultLogFile())
}
