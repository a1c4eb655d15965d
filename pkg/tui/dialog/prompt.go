package dialog

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/core/layout"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

type promptDialog struct {
	frame
	title     string
	label     string
	input     textinput.Model
	submit    func(string) tea.Msg
	unchanged string
	prefilled bool
	optional  bool
	validate  func(string) error
	errText   string
	enter     key.Binding
	escape    key.Binding
}

// PromptOption configures a prompt dialog.
type PromptOption func(*promptDialog)

// WithInitialValue pre-fills the input. Submitting it unchanged just closes
// the dialog.
func WithInitialValue(v string) PromptOption {
	return func(d *promptDialog) {
		d.input.SetValue(v)
		d.input.CursorEnd()
		d.unchanged = v
		d.prefilled = true
	}
}

// WithLabel shows a line of text above the input.
func WithLabel(label string) PromptOption {
	return func(d *promptDialog) {
		d.label = label
	}
}

// WithOptional allows submitting an empty value.
func WithOptional() PromptOption {
	return func(d *promptDialog) {
		d.optional = true
	}
}

// WithValidator rejects values for which validate returns an error. The
// error text is shown below the input.
func WithValidator(validate func(string) error) PromptOption {
	return func(d *promptDialog) {
		d.validate = validate
	}
}

// NewPromptDialog asks for one line of text. submit builds the message sent
// for a non-empty answer.
func NewPromptDialog(title, placeholder string, submit func(string) tea.Msg, opts ...PromptOption) Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetStyles(styles.InputStyle)
	ti.CharLimit = 1024
	ti.Focus()

	d := &promptDialog{
		title:  title,
		input:  ti,
		submit: submit,
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *promptDialog) Init() tea.Cmd {
	return textinput.Blink
}

func (d *promptDialog) Value() string {
	return strings.TrimSpace(d.input.Value())
}

func (d *promptDialog) Update(msg tea.Msg) (layout.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd := d.SetSize(msg.Width, msg.Height)
		return d, cmd

	case tea.PasteMsg:
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd

	case tea.KeyPressMsg:
		if cmd := quitKey(msg); cmd != nil {
			return d, cmd
		}
		switch {
		case key.Matches(msg, d.escape):
			return d, core.CmdHandler(CloseDialogMsg{})
		case key.Matches(msg, d.enter):
			value := d.Value()
			if value == "" && !d.optional {
				d.errText = "A value is required"
				return d, nil
			}
			if d.prefilled && value == d.unchanged {
				return d, core.CmdHandler(CloseDialogMsg{})
			}
			if d.validate != nil {
				if err := d.validate(value); err != nil {
					d.errText = err.Error()
					return d, nil
				}
			}
			return d, tea.Sequence(
				core.CmdHandler(CloseDialogMsg{}),
				core.CmdHandler(d.submit(value)),
			)
		}
		d.errText = ""
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *promptDialog) Position() (row, col int) {
	return d.center(d.View())
}

func (d *promptDialog) View() string {
	dialogWidth, contentWidth := d.widths(60, 40, 80)
	d.input.SetWidth(contentWidth)

	c := newBody(contentWidth).
		title(d.title).
		rule().
		gap()
	if d.label != "" {
		c.line(styles.DialogLabelStyle.Render(d.label))
	}
	c.line(d.input.View())
	if d.errText != "" {
		c.line(styles.ErrorStyle.Render(d.errText))
	}

	content := c.gap().
		keys("enter", "confirm", "esc", "cancel").
		String()

	return styles.DialogStyle.Width(dialogWidth).Render(content)
}
