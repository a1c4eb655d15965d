package dialog

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

// ReuploadDialog re-sends files referenced by the loaded session. Files that
// no longer exist are listed but cannot be selected.
type ReuploadDialog struct {
	frame
	files     []api.SessionFile
	chosen    map[int]bool
	cursor    cursor
	loading   bool
	keyMap    listKeyMap
	selectAll key.Binding
}

func NewReuploadDialog() *ReuploadDialog {
	return &ReuploadDialog{
		chosen: map[int]bool{},
		keyMap: defaultListKeyMap(),
		selectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all"),
		),
	}
}

// Reset clears the selection and asks for the session's file list.
func (d *ReuploadDialog) Reset() tea.Cmd {
	d.files = nil
	d.chosen = map[int]bool{}
	d.loading = true
	d.cursor.reset(0)
	return core.CmdHandler(messages.RefreshSessionFilesMsg{})
}

// SetFiles replaces the listed files and drops the selection.
func (d *ReuploadDialog) SetFiles(files []api.SessionFile) {
	d.files = files
	d.loading = false
	d.chosen = map[int]bool{}
	d.cursor.reset(len(files))
}

// SubmitEnabled reports whether at least one file is selected.
func (d *ReuploadDialog) SubmitEnabled() bool {
	return len(d.chosen) > 0
}

// Selected returns the selected paths in list order.
func (d *ReuploadDialog) Selected() []string {
	var paths []string
	for i, f := range d.files {
		if d.chosen[i] {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

func (d *ReuploadDialog) toggle(i int) {
	if i >= len(d.files) || !d.files[i].Exists {
		return
	}
	if d.chosen[i] {
		delete(d.chosen, i)
	} else {
		d.chosen[i] = true
	}
}

func (d *ReuploadDialog) Init() tea.Cmd {
	return nil
}

func (d *ReuploadDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}

		switch {
		case key.Matches(msg, d.keyMap.Escape):
			return d, core.CmdHandler(CloseDialogMsg{})
		case d.cursor.handle(d.keyMap, msg, d.pageSize()):
			return d, nil
		case key.Matches(msg, d.keyMap.Toggle):
			d.toggle(d.cursor.selected)
			return d, nil
		case key.Matches(msg, d.selectAll):
			for i, f := range d.files {
				if f.Exists {
					d.chosen[i] = true
				}
			}
			return d, nil
		case key.Matches(msg, d.keyMap.Enter):
			if !d.SubmitEnabled() {
				return d, nil
			}
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(messages.ReuploadFilesMsg{Paths: d.Selected()}),
			)
		}
	}
	return d, nil
}

func (d *ReuploadDialog) pageSize() int {
	return max(1, min(d.screenHeight()*70/100, 30)-14)
}

func (d *ReuploadDialog) View() string {
	dialogWidth, contentWidth := d.widths(70, 50, 90)

	var lines []string
	start, end := d.cursor.window(d.pageSize())
	for i := start; i < end; i++ {
		f := d.files[i]
		box := "[ ] "
		if d.chosen[i] {
			box = "[x] "
		}
		desc := f.MimeType
		if !f.Exists {
			desc = "missing"
		}
		name := f.DisplayName
		if name == "" {
			name = f.Path
		}
		lines = append(lines, renderRow(box+name, desc, i == d.cursor.selected, !f.Exists, contentWidth))
	}
	if more := moreIndicator(end, len(d.files)); more != "" {
		lines = append(lines, more)
	}
	switch {
	case d.loading && len(d.files) == 0:
		lines = append(lines, emptyState("Loading session files…", contentWidth))
	case len(d.files) == 0:
		lines = append(lines, emptyState("The session has no files", contentWidth))
	}

	content := newBody(contentWidth).
		title("Re-upload Session Files").
		rule().
		line(joinLines(lines)).
		rule().
		line(selectionPreview(d.Selected(), nil, contentWidth)).
		gap().
		keys(append([]string{"space", "select", "a", "all"},
			append(submitHelp(d.SubmitEnabled(), "enter", "re-upload"), "esc", "close")...)...).
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}

func (d *ReuploadDialog) Position() (row, col int) {
	return d.center(d.View())
}
