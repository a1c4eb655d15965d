package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingFileWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	rf, err := NewRotatingFile(path, WithMaxSize(100))
	require.NoError(t, err)
	defer rf.Close()

	data := []byte("hello world\n")
	n, err := rf.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, content)
}

func TestRotatingFileRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	rf, err := NewRotatingFile(path, WithMaxSize(50), WithMaxBackups(2))
	require.NoError(t, err)
	defer rf.Close()

	first := bytes.Repeat([]byte("a"), 30)
	second := bytes.Repeat([]byte("b"), 30)
	third := bytes.Repeat([]byte("c"), 30)

	for _, chunk := range [][]byte{first, second, third} {
		_, err := rf.Write(chunk)
		require.NoError(t, err)
	}

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, third, current)

	one, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, second, one)

	two, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, first, two)
}

func TestRotatingFileDropsOldestBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	rf, err := NewRotatingFile(path, WithMaxSize(10), WithMaxBackups(1))
	require.NoError(t, err)
	defer rf.Close()

	for _, s := range []string{"0123456789", "abcdefghij", "ABCDEFGHIJ"} {
		_, err := rf.Write([]byte(s))
		require.NoError(t, err)
	}

	_, err = os.Stat(path + ".2")
	assert.True(t, os.IsNotExist(err))

	one, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", string(one))
}

func TestCloseTwice(t *testing.T) {
	rf, err := NewRotatingFile(filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)

	require.NoError(t, rf.Close())
	require.NoError(t, rf.Close())
}

func TestSetupDebugWritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	closer, err := Setup(true, path)
	require.NoError(t, err)

	slog.Debug("request sent", "endpoint", "list_sessions")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "endpoint=list_sessions")
}

func TestSetupWithoutDebugDiscards(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer, err := Setup(false, "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelError))
}
