package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMimeType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"photo.png", "image/png"},
		{"photo.webp", "image/webp"},
		{"document.pdf", "application/pdf"},
		{"readme.md", "text/plain"},
		{"main.go", "text/plain"},
		{"script.py", "text/plain"},
		{"config.yaml", "text/plain"},
		{".gitignore", "text/plain"},
		{"archive.tar.gz", "application/octet-stream"},
		{"program.exe", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, DetectMimeType(tt.path))
		})
	}
}

func TestIsTextFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name string, data []byte) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, data, 0o644))
		return p
	}

	assert.True(t, IsTextFile("missing.go"))
	assert.False(t, IsTextFile("missing.bin"))
	assert.False(t, IsTextFile("photo.png"))
	assert.True(t, IsTextFile(write("data.custom", []byte("plain text\nlines\n"))))
	assert.False(t, IsTextFile(write("data.custom2", []byte{0x00, 0x01, 0xFF})))
	assert.True(t, IsTextFile(write("empty.custom", nil)))
}
