package dialog

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/gemini-console/pkg/tui/messages"
)

func newQuickUploadDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bravo"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.txt"), []byte("charlie"), 0o644))
	return dir
}

func entryNames(d *QuickUploadDialog) []string {
	var names []string
	for _, e := range d.filtered {
		names = append(names, e.name)
	}
	return names
}

func TestQuickUploadListsDirectoriesFirst(t *testing.T) {
	t.Parallel()

	dir := newQuickUploadDir(t)
	d := NewQuickUploadDialog(dir)
	_ = d.Reset()

	assert.Equal(t, []string{"..", "sub/", "a.txt", "b.txt"}, entryNames(d))
}

func TestQuickUploadSelectAndSubmit(t *testing.T) {
	t.Parallel()

	dir := newQuickUploadDir(t)
	d := NewQuickUploadDialog(dir)
	_, _ = d.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	_ = d.Reset()

	ctrlS := tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	assert.False(t, d.SubmitEnabled())
	assert.Empty(t, press(d, ctrlS))

	// .., sub/, a.txt
	press(d, keyDown)
	press(d, keyDown)
	press(d, keySpace)
	require.True(t, d.SubmitEnabled())

	// into sub/ and pick c.txt
	press(d, keyUp)
	press(d, keyEnter)
	assert.Equal(t, filepath.Join(dir, "sub"), d.currentDir)
	press(d, keyDown)
	press(d, keyEnter)

	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "sub", "c.txt")}
	assert.Equal(t, want, d.Selected())

	msgs := press(d, ctrlS)
	require.Len(t, msgs, 2)
	assert.IsType(t, CloseDialogMsg{}, msgs[0])
	assert.Equal(t, messages.UploadLocalFilesMsg{Paths: want}, msgs[1])
}

func TestQuickUploadToggleTwiceDeselects(t *testing.T) {
	t.Parallel()

	d := NewQuickUploadDialog(newQuickUploadDir(t))
	_ = d.Reset()
	press(d, keyDown)
	press(d, keyDown)
	press(d, keySpace)
	press(d, keySpace)

	assert.False(t, d.SubmitEnabled())
}

func TestQuickUploadResetClearsSelection(t *testing.T) {
	t.Parallel()

	dir := newQuickUploadDir(t)
	d := NewQuickUploadDialog(dir)
	_, _ = d.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	_ = d.Reset()
	press(d, keyDown)
	press(d, keyDown)
	press(d, keySpace)
	press(d, keyUp)
	press(d, keyEnter)
	require.True(t, d.SubmitEnabled())

	_ = d.Reset()

	assert.False(t, d.SubmitEnabled())
	assert.Equal(t, dir, d.currentDir)
	assert.Contains(t, d.View(), "No files selected")
}

func TestQuickUploadFilter(t *testing.T) {
	t.Parallel()

	d := NewQuickUploadDialog(newQuickUploadDir(t))
	_ = d.Reset()
	typeText(d, "b.")

	assert.Equal(t, []string{"..", "b.txt"}, entryNames(d))
}
