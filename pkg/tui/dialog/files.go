package dialog

import (
	"fmt"
	"slices"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/docker/go-units"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/messages"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type filesKeyMap struct {
	listKeyMap
	Delete   key.Binding
	Clear    key.Binding
	Upload   key.Binding
	Quick    key.Binding
	Reupload key.Binding
	Refresh  key.Binding
}

// FilesDialog lists the files uploaded to the model provider.
type FilesDialog struct {
	frame
	files   []api.FileDescriptor
	expired []string
	cursor  cursor
	loading bool
	keyMap  filesKeyMap
}

func NewFilesDialog() *FilesDialog {
	return &FilesDialog{
		keyMap: filesKeyMap{
			listKeyMap: defaultListKeyMap(),
			Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
			Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear all")),
			Upload:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload paths")),
			Quick:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "quick upload")),
			Reupload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-upload")),
			Refresh:    key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "refresh")),
		},
	}
}

// Reset asks for a fresh file list.
func (d *FilesDialog) Reset() tea.Cmd {
	d.loading = true
	d.cursor.reset(len(d.files))
	return core.CmdHandler(messages.RefreshFilesMsg{})
}

func (d *FilesDialog) SetFiles(files []api.FileDescriptor, expired []string) {
	d.files = files
	d.expired = expired
	d.loading = false
	d.cursor.setCount(len(files))
}

func (d *FilesDialog) Init() tea.Cmd {
	return nil
}

func (d *FilesDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
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
		case d.cursor.handle(d.keyMap.listKeyMap, msg, 10):
			return d, nil
		case key.Matches(msg, d.keyMap.Delete):
			if d.cursor.selected >= len(d.files) {
				return d, nil
			}
			f := d.files[d.cursor.selected]
			return d, core.CmdHandler(OpenDialogMsg{
				Model: NewConfirmDialog(
					"Delete File",
					fmt.Sprintf("Delete %q from the model's storage?", f.Label()),
					messages.DeleteFileMsg{Name: f.Name},
				),
			})
		case key.Matches(msg, d.keyMap.Clear):
			if len(d.files) == 0 {
				return d, nil
			}
			return d, core.CmdHandler(messages.OpenPanelMsg{Panel: messages.PanelClearFiles})
		case key.Matches(msg, d.keyMap.Upload):
			return d, core.CmdHandler(messages.OpenPanelMsg{Panel: messages.PanelUploadPaths})
		case key.Matches(msg, d.keyMap.Quick):
			return d, core.CmdHandler(messages.OpenPanelMsg{Panel: messages.PanelQuickUpload})
		case key.Matches(msg, d.keyMap.Reupload):
			return d, core.CmdHandler(messages.OpenPanelMsg{Panel: messages.PanelReupload})
		case key.Matches(msg, d.keyMap.Refresh):
			d.loading = true
			return d, core.CmdHandler(messages.RefreshFilesMsg{})
		}
	}
	return d, nil
}

func (d *FilesDialog) View() string {
	dialogWidth, contentWidth := d.widths(70, 50, 90)

	var lines []string
	start, end := d.cursor.window(10)
	for i := start; i < end; i++ {
		f := d.files[i]
		label := "📄 " + f.Label()
		desc := f.MimeType
		if f.SizeBytes > 0 {
			desc += " " + units.HumanSize(float64(f.SizeBytes))
		}
		expired := slices.Contains(d.expired, f.Name) || slices.Contains(d.expired, f.DisplayName)
		if expired {
			desc += " (expired)"
		}
		lines = append(lines, renderRow(label, desc, i == d.cursor.selected, expired, contentWidth))
	}
	if more := moreIndicator(end, len(d.files)); more != "" {
		lines = append(lines, more)
	}
	switch {
	case d.loading && len(d.files) == 0:
		lines = append(lines, emptyState("Loading files…", contentWidth))
	case len(d.files) == 0:
		lines = append(lines, emptyState("No files uploaded", contentWidth))
	}

	c := newBody(contentWidth).
		title(fmt.Sprintf("Files (%d)", len(d.files))).
		rule().
		line(joinLines(lines))

	if len(d.expired) > 0 {
		c.gap().line(styles.WarningStyle.Width(contentWidth).Render(
			fmt.Sprintf("%d expired file(s). Press r to re-upload from the session.", len(d.expired))))
	}

	return styles.DialogStyle.Width(dialogWidth).Render(c.
		gap().
		keys("d", "delete", "c", "clear", "u", "paths", "o", "quick", "r", "re-upload", "esc", "close").
		String())
}

func (d *FilesDialog) Position() (row, col int) {
	return d.center(d.View())
}
