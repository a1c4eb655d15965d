package styles

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
)

const AppPadding = 1

// Base Styles
var (
	NoStyle   = lipgloss.NewStyle()
	BaseStyle lipgloss.Style
	AppStyle  lipgloss.Style
)

// Text Styles
var (
	HighlightStyle      lipgloss.Style
	HighlightWhiteStyle lipgloss.Style
	MutedStyle          lipgloss.Style
	SecondaryStyle      lipgloss.Style
	BoldStyle           lipgloss.Style
	ItalicStyle         lipgloss.Style
)

// Status Styles
var (
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
)

// Layout Styles
var (
	CenterStyle lipgloss.Style
)

// Message Styles
var (
	UserMessageStyle      lipgloss.Style
	AssistantMessageStyle lipgloss.Style
	SystemMessageStyle    lipgloss.Style
	ErrorMessageStyle     lipgloss.Style
	ToolMessageStyle      lipgloss.Style
	TypingStyle           lipgloss.Style
)

// Dialog Styles
var (
	DialogStyle             lipgloss.Style
	DialogWarningStyle      lipgloss.Style
	DialogTitleStyle        lipgloss.Style
	DialogTitleWarningStyle lipgloss.Style
	DialogContentStyle      lipgloss.Style
	DialogSeparatorStyle    lipgloss.Style
	DialogLabelStyle        lipgloss.Style
	DialogValueStyle        lipgloss.Style
	DialogQuestionStyle     lipgloss.Style
	DialogHelpStyle         lipgloss.Style
)

// Command Palette Styles
var (
	PaletteSelectedStyle   lipgloss.Style
	PaletteUnselectedStyle lipgloss.Style
	PaletteDisabledStyle   lipgloss.Style
	PaletteCategoryStyle   lipgloss.Style
	PaletteDescStyle       lipgloss.Style
)

// Panel Styles
var (
	SidebarStyle           lipgloss.Style
	SidebarTitleStyle      lipgloss.Style
	EditorStyle            lipgloss.Style
	NotificationStyle      lipgloss.Style
	NotificationErrorStyle lipgloss.Style
)

// Spinner Styles
var (
	SpinnerDotsStyle          lipgloss.Style
	SpinnerTextBrightestStyle lipgloss.Style
	SpinnerTextBrightStyle    lipgloss.Style
	SpinnerTextDimStyle       lipgloss.Style
	SpinnerTextDimmestStyle   lipgloss.Style
)

// Input Styles
var (
	InputStyle    textinput.Styles
	TextAreaStyle textarea.Styles
)

func rebuildStyles() {
	BaseStyle = NoStyle.Foreground(TextPrimary)
	AppStyle = BaseStyle.Padding(0, AppPadding)

	HighlightStyle = BaseStyle.Foreground(Accent)
	HighlightWhiteStyle = BaseStyle.Foreground(TextPrimary).Bold(true)
	MutedStyle = BaseStyle.Foreground(TextMuted)
	SecondaryStyle = BaseStyle.Foreground(TextSecondary)
	BoldStyle = BaseStyle.Bold(true)
	ItalicStyle = BaseStyle.Italic(true)

	SuccessStyle = BaseStyle.Foreground(Success)
	ErrorStyle = BaseStyle.Foreground(Error)
	WarningStyle = BaseStyle.Foreground(Warning)
	InfoStyle = BaseStyle.Foreground(Info)

	CenterStyle = BaseStyle.Align(lipgloss.Center, lipgloss.Center)

	UserMessageStyle = BaseStyle.
		Padding(0, 1).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(BorderPrimary).
		Background(BackgroundAlt)
	AssistantMessageStyle = BaseStyle.
		Padding(0, 1)
	SystemMessageStyle = MutedStyle.
		Italic(true).
		Padding(0, 2)
	ErrorMessageStyle = ErrorStyle.
		Padding(0, 1).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Error)
	ToolMessageStyle = BaseStyle.
		Padding(0, 1).
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(BorderSecondary)
	TypingStyle = MutedStyle.Italic(true).Padding(0, 2)

	DialogStyle = BaseStyle.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderSecondary).
		Foreground(TextPrimary).
		Padding(1, 2).
		Align(lipgloss.Left)
	DialogWarningStyle = DialogStyle.
		BorderForeground(Warning)
	DialogTitleStyle = BaseStyle.
		Bold(true).
		Foreground(TextSecondary).
		Align(lipgloss.Center)
	DialogTitleWarningStyle = DialogTitleStyle.
		Foreground(Warning)
	DialogContentStyle = BaseStyle
	DialogSeparatorStyle = BaseStyle.
		Foreground(BorderMuted)
	DialogLabelStyle = BaseStyle.
		Bold(true).
		Foreground(TextMuted)
	DialogValueStyle = BaseStyle.
		Bold(true).
		Foreground(TextSecondary)
	DialogQuestionStyle = BaseStyle.
		Bold(true).
		Align(lipgloss.Center)
	DialogHelpStyle = BaseStyle.
		Foreground(TextMuted).
		Italic(true)

	PaletteSelectedStyle = BaseStyle.
		Background(Selected).
		Foreground(TextPrimary).
		Padding(0, 1)
	PaletteUnselectedStyle = BaseStyle.
		Padding(0, 1)
	PaletteDisabledStyle = BaseStyle.
		Foreground(TextMuted).
		Strikethrough(true).
		Padding(0, 1)
	PaletteCategoryStyle = BaseStyle.
		Bold(true).
		Foreground(TextMuted).
		MarginTop(1)
	PaletteDescStyle = BaseStyle.
		Foreground(TextMuted)

	SidebarStyle = BaseStyle.
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(BorderSecondary).
		Padding(0, 1)
	SidebarTitleStyle = BaseStyle.
		Bold(true).
		Foreground(Accent)
	EditorStyle = BaseStyle.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderSecondary).
		Padding(0, 1)
	NotificationStyle = BaseStyle.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Success).
		Padding(0, 1)
	NotificationErrorStyle = NotificationStyle.
		BorderForeground(Error)

	SpinnerDotsStyle = BaseStyle.Foreground(Accent)
	SpinnerTextBrightestStyle = BaseStyle.Foreground(TextPrimary).Bold(true)
	SpinnerTextBrightStyle = BaseStyle.Foreground(TextSecondary)
	SpinnerTextDimStyle = BaseStyle.Foreground(TextMuted)
	SpinnerTextDimmestStyle = BaseStyle.Foreground(BorderSecondary)

	InputStyle = textinput.Styles{
		Focused: textinput.StyleState{
			Text:        BaseStyle,
			Placeholder: MutedStyle,
			Prompt:      HighlightStyle,
		},
		Blurred: textinput.StyleState{
			Text:        MutedStyle,
			Placeholder: MutedStyle,
			Prompt:      MutedStyle,
		},
		Cursor: textinput.CursorStyle{
			Color: Accent,
		},
	}

	TextAreaStyle = textarea.Styles{
		Focused: textarea.StyleState{
			Base:        NoStyle,
			Text:        BaseStyle,
			Placeholder: MutedStyle,
			Prompt:      HighlightStyle,
		},
		Blurred: textarea.StyleState{
			Base:        NoStyle,
			Text:        MutedStyle,
			Placeholder: MutedStyle,
			Prompt:      MutedStyle,
		},
		Cursor: textarea.CursorStyle{
			Color: Accent,
		},
	}
}

