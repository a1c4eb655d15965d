package dialog

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/docker/go-units"

	"github.com/docker/gemini-console/pkg/fsx"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type fileEntry struct {
	name  string
	path  string
	isDir bool
	size  int64
}

type quickUploadKeyMap struct {
	listKeyMap
	Submit key.Binding
}

// QuickUploadDialog picks local files to upload. Several files, possibly
// from different directories, can be selected before submitting.
type QuickUploadDialog struct {
	frame
	textInput  textinput.Model
	startDir   string
	currentDir string
	entries    []fileEntry
	filtered   []fileEntry
	cursor     cursor
	selected   []fileEntry
	keyMap     quickUploadKeyMap
	err        error
}

// NewQuickUploadDialog starts browsing in dir, or the working directory when
// dir is empty.
func NewQuickUploadDialog(dir string) *QuickUploadDialog {
	ti := textinput.New()
	ti.Placeholder = "Type to filter files…"
	ti.SetStyles(styles.InputStyle)
	ti.CharLimit = 256

	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		} else {
			dir = "."
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	return &QuickUploadDialog{
		textInput: ti,
		startDir:  dir,
		keyMap: quickUploadKeyMap{
			listKeyMap: defaultListKeyMap(),
			Submit: key.NewBinding(
				key.WithKeys("ctrl+s"),
				key.WithHelp("ctrl+s", "upload"),
			),
		},
	}
}

// Reset drops the previous selection and goes back to the start directory.
func (d *QuickUploadDialog) Reset() tea.Cmd {
	d.selected = nil
	d.textInput.SetValue("")
	d.currentDir = d.startDir
	d.loadDirectory()
	return d.textInput.Focus()
}

// SubmitEnabled reports whether at least one file is selected.
func (d *QuickUploadDialog) SubmitEnabled() bool {
	return len(d.selected) > 0
}

// Selected returns the selected file paths in selection order.
func (d *QuickUploadDialog) Selected() []string {
	paths := make([]string, 0, len(d.selected))
	for _, e := range d.selected {
		paths = append(paths, e.path)
	}
	return paths
}

func (d *QuickUploadDialog) loadDirectory() {
	d.entries = nil
	d.err = nil

	if parent := filepath.Dir(d.currentDir); parent != d.currentDir {
		d.entries = append(d.entries, fileEntry{
			name:  "..",
			path:  parent,
			isDir: true,
		})
	}

	matcher, _ := fsx.NewIgnoreMatcher(d.currentDir)

	dirEntries, err := os.ReadDir(d.currentDir)
	if err != nil {
		d.err = err
		d.filterEntries()
		return
	}

	var files []fileEntry
	for _, entry := range dirEntries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fullPath := filepath.Join(d.currentDir, entry.Name())
		if matcher.ShouldIgnore(fullPath) {
			continue
		}

		if entry.IsDir() {
			d.entries = append(d.entries, fileEntry{
				name:  entry.Name() + "/",
				path:  fullPath,
				isDir: true,
			})
			continue
		}

		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		files = append(files, fileEntry{
			name: entry.Name(),
			path: fullPath,
			size: size,
		})
	}
	d.entries = append(d.entries, files...)
	d.filterEntries()
}

func (d *QuickUploadDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d *QuickUploadDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		var cmd tea.Cmd
		d.textInput, cmd = d.textInput.Update(msg)
		d.filterEntries()
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}

		switch {
		case key.Matches(msg, d.keyMap.Escape):
			return d, core.CmdHandler(CloseDialogMsg{})

		case d.cursor.handle(d.keyMap.listKeyMap, msg, d.pageSize()):
			return d, nil

		case key.Matches(msg, d.keyMap.Submit):
			if !d.SubmitEnabled() {
				return d, nil
			}
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(messages.UploadLocalFilesMsg{Paths: d.Selected()}),
			)

		case key.Matches(msg, d.keyMap.Enter), key.Matches(msg, d.keyMap.Toggle):
			if d.cursor.selected >= len(d.filtered) {
				return d, nil
			}
			entry := d.filtered[d.cursor.selected]
			if entry.isDir {
				if key.Matches(msg, d.keyMap.Enter) {
					d.currentDir = entry.path
					d.textInput.SetValue("")
					d.loadDirectory()
				}
				return d, nil
			}
			d.toggle(entry)
			return d, nil

		default:
			var cmd tea.Cmd
			d.textInput, cmd = d.textInput.Update(msg)
			d.filterEntries()
			return d, cmd
		}
	}

	return d, nil
}

func (d *QuickUploadDialog) toggle(entry fileEntry) {
	if i := d.indexOf(entry.path); i >= 0 {
		d.selected = slices.Delete(d.selected, i, i+1)
		return
	}
	d.selected = append(d.selected, entry)
}

func (d *QuickUploadDialog) indexOf(path string) int {
	return slices.IndexFunc(d.selected, func(e fileEntry) bool {
		return e.path == path
	})
}

func (d *QuickUploadDialog) filterEntries() {
	query := strings.ToLower(strings.TrimSpace(d.textInput.Value()))

	d.filtered = nil
	for _, entry := range d.entries {
		if query == "" || entry.name == ".." || strings.Contains(strings.ToLower(entry.name), query) {
			d.filtered = append(d.filtered, entry)
		}
	}
	d.cursor.reset(len(d.filtered))
}

func (d *QuickUploadDialog) dialogSize() (dialogWidth, maxHeight, contentWidth int) {
	dialogWidth, contentWidth = d.widths(80, 60, 90)
	maxHeight = min(d.screenHeight()*80/100, 36)
	return dialogWidth, maxHeight, contentWidth
}

func (d *QuickUploadDialog) pageSize() int {
	_, maxHeight, _ := d.dialogSize()
	return max(1, maxHeight-14-min(len(d.selected), 5))
}

func (d *QuickUploadDialog) View() string {
	dialogWidth, _, contentWidth := d.dialogSize()
	d.textInput.SetWidth(contentWidth)

	displayDir := d.currentDir
	if len(displayDir) > contentWidth-4 {
		displayDir = "…" + displayDir[len(displayDir)-(contentWidth-5):]
	}
	dirLine := styles.MutedStyle.Render("📁 " + displayDir)

	var entryLines []string
	start, end := d.cursor.window(d.pageSize())
	for i := start; i < end; i++ {
		entryLines = append(entryLines, d.renderEntry(d.filtered[i], i == d.cursor.selected, contentWidth))
	}
	if more := moreIndicator(end, len(d.filtered)); more != "" {
		entryLines = append(entryLines, more)
	}

	if d.err != nil {
		entryLines = append(entryLines, "", styles.ErrorStyle.
			Align(lipgloss.Center).
			Width(contentWidth).
			Render(d.err.Error()))
	} else if len(d.filtered) == 0 {
		entryLines = append(entryLines, "", emptyState("No files found", contentWidth))
	}

	names := make([]string, 0, len(d.selected))
	for _, e := range d.selected {
		names = append(names, e.path)
	}
	preview := selectionPreview(names, func(i int) string {
		return units.HumanSize(float64(d.selected[i].size))
	}, contentWidth)

	content := newBody(contentWidth).
		title("Quick Upload").
		gap().
		line(dirLine).
		line(d.textInput.View()).
		rule().
		line(joinLines(entryLines)).
		rule().
		line(preview).
		gap().
		keys(append([]string{"space", "select", "enter", "open"},
			append(submitHelp(d.SubmitEnabled(), "ctrl+s", "upload"), "esc", "close")...)...).
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}

func (d *QuickUploadDialog) renderEntry(entry fileEntry, selected bool, width int) string {
	icon := "📄 "
	switch {
	case entry.isDir:
		icon = "📁 "
	case d.indexOf(entry.path) >= 0:
		icon = "☑ "
	}

	var desc string
	if !entry.isDir && entry.size > 0 {
		desc = units.HumanSize(float64(entry.size))
	}
	return renderRow(icon+entry.name, desc, selected, false, width)
}

func (d *QuickUploadDialog) Position() (row, col int) {
	return d.center(d.View())
}
