package statusbar

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/docker/gemini-console/pkg/chat"
	"github.com/docker/gemini-console/pkg/tui/core"
	"github.com/docker/gemini-console/pkg/tui/styles"
)

// StatusBar displays key-binding help on the left and the token counters,
// file status and model on the right.
type StatusBar struct {
	width int
	help  core.KeyMapHelp

	tokens      chat.Tokens
	fileStatus  string
	model       string
	autoApprove bool
	useTools    bool

	cached     string
	cacheDirty bool
}

func New(help core.KeyMapHelp) StatusBar {
	return StatusBar{
		help:       help,
		fileStatus: "Files: ...",
		useTools:   true,
		cacheDirty: true,
	}
}

// SetWidth sets the width of the status bar
func (s *StatusBar) SetWidth(width int) {
	if s.width != width {
		s.width = width
		s.cacheDirty = true
	}
}

func (s *StatusBar) SetHelp(help core.KeyMapHelp) {
	s.help = help
	s.cacheDirty = true
}

func (s *StatusBar) SetTokens(tokens chat.Tokens) {
	if s.tokens != tokens {
		s.tokens = tokens
		s.cacheDirty = true
	}
}

func (s *StatusBar) SetFileStatus(text string) {
	if s.fileStatus != text {
		s.fileStatus = text
		s.cacheDirty = true
	}
}

func (s *StatusBar) SetModel(name string) {
	if s.model != name {
		s.model = name
		s.cacheDirty = true
	}
}

// SetFlags updates the auto-approve and tool-use indicators.
func (s *StatusBar) SetFlags(autoApprove, useTools bool) {
	if s.autoApprove != autoApprove || s.useTools != useTools {
		s.autoApprove = autoApprove
		s.useTools = useTools
		s.cacheDirty = true
	}
}

// Height returns the rendered height of the status bar (always 1).
func (s *StatusBar) Height() int {
	return 1
}

// InvalidateCache clears all cached values.
func (s *StatusBar) InvalidateCache() {
	s.cacheDirty = true
}

// TokensText is the plain token summary, e.g. "In 5 · Out 7 · Total 12".
func TokensText(t chat.Tokens) string {
	return fmt.Sprintf("In %d · Out %d · Total %d", t.Input, t.Output, t.Total())
}

func (s *StatusBar) right() string {
	sep := styles.MutedStyle.Render(" │ ")

	parts := []string{
		styles.SecondaryStyle.Render(TokensText(s.tokens)),
		styles.SecondaryStyle.Render(s.fileStatus),
	}
	if s.autoApprove {
		parts = append(parts, styles.WarningStyle.Render("auto-approve"))
	}
	if !s.useTools {
		parts = append(parts, styles.MutedStyle.Render("tools off"))
	}
	if s.model != "" {
		parts = append(parts, styles.HighlightStyle.Render(s.model))
	}
	return strings.Join(parts, sep)
}

// rebuild renders the full status bar line.
func (s *StatusBar) rebuild() {
	s.cacheDirty = false

	right := s.right()
	rightW := lipgloss.Width(right)

	const pad = 1
	maxHelpW := s.width - rightW - 2*pad - 1

	var left string
	var leftW int
	if s.help != nil {
		if help := s.help.Help(); help != nil {
			var parts []string
			for _, b := range help.ShortHelp() {
				if b.Help().Key != "" && b.Help().Desc != "" {
					parts = append(parts,
						styles.HighlightWhiteStyle.Render(b.Help().Key)+
							" "+
							styles.SecondaryStyle.Render(b.Help().Desc))
				}
			}
			if len(parts) > 0 && maxHelpW > 0 {
				helpStr := strings.Join(parts, "  ")
				helpW := lipgloss.Width(helpStr)
				if helpW > maxHelpW {
					helpStr = ansi.Truncate(helpStr, maxHelpW, "...")
					helpW = lipgloss.Width(helpStr)
				}
				left = " " + helpStr
				leftW = pad + helpW
			}
		}
	}

	if s.width > 0 && leftW+rightW+pad >= s.width {
		right = ansi.Truncate(right, max(0, s.width-leftW-pad-1), "…")
		rightW = lipgloss.Width(right)
	}

	gap := max(1, s.width-leftW-rightW-pad)
	s.cached = left + strings.Repeat(" ", gap) + right + " "
}

// View renders the status bar.
//
// Layout: [ help text ...      In N · Out N · Total N │ files │ model ]
func (s *StatusBar) View() string {
	if s.cacheDirty {
		s.rebuild()
	}
	return s.cached
}
