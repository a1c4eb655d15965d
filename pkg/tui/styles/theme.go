package styles

import (
	"image/color"
	"sync/atomic"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Name string

	Background    string
	BackgroundAlt string

	TextPrimary   string
	TextSecondary string
	TextMuted     string

	Accent          string
	BorderSecondary string
	Selected        string

	Success string
	Error   string
	Warning string
	Info    string
}

// DarkPalette is the default theme.
var DarkPalette = Palette{
	Name:            "dark",
	Background:      "#1A1B26",
	BackgroundAlt:   "#24283B",
	TextPrimary:     "#C0CAF5",
	TextSecondary:   "#9AA5CE",
	TextMuted:       "#8B95C1",
	Accent:          "#7AA2F7",
	BorderSecondary: "#6B75A8",
	Selected:        "#364A82",
	Success:         "#9ECE6A",
	Error:           "#F7768E",
	Warning:         "#E0AF68",
	Info:            "#7DCFFF",
}

// LightPalette is used when dark mode is off.
var LightPalette = Palette{
	Name:            "light",
	Background:      "#F8F8FA",
	BackgroundAlt:   "#E9E9EE",
	TextPrimary:     "#24292F",
	TextSecondary:   "#3D4550",
	TextMuted:       "#6E7781",
	Accent:          "#0969DA",
	BorderSecondary: "#8C959F",
	Selected:        "#C8DCF5",
	Success:         "#1A7F37",
	Error:           "#CF222E",
	Warning:         "#9A6700",
	Info:            "#0550AE",
}

var currentDark atomic.Bool

// Dark reports whether the dark palette is active.
func Dark() bool {
	return currentDark.Load()
}

// ApplyTheme switches every style variable to the dark or light palette.
// Send messages.ThemeChangedMsg afterwards so components drop their caches.
func ApplyTheme(dark bool) {
	currentDark.Store(dark)

	p := LightPalette
	if dark {
		p = DarkPalette
	}

	Background = lipgloss.Color(p.Background)
	BackgroundAlt = lipgloss.Color(p.BackgroundAlt)
	TextPrimary = lipgloss.Color(p.TextPrimary)
	TextSecondary = lipgloss.Color(p.TextSecondary)
	TextMuted = lipgloss.Color(p.TextMuted)
	Accent = lipgloss.Color(p.Accent)
	BorderPrimary = Accent
	BorderSecondary = lipgloss.Color(p.BorderSecondary)
	BorderMuted = BackgroundAlt
	Selected = lipgloss.Color(p.Selected)
	Success = lipgloss.Color(p.Success)
	Error = lipgloss.Color(p.Error)
	Warning = lipgloss.Color(p.Warning)
	Info = lipgloss.Color(p.Info)

	rebuildStyles()
}

func init() {
	ApplyTheme(true)
}

// colors, assigned by ApplyTheme
var (
	Background      color.Color
	BackgroundAlt   color.Color
	TextPrimary     color.Color
	TextSecondary   color.Color
	TextMuted       color.Color
	Accent          color.Color
	BorderPrimary   color.Color
	BorderSecondary color.Color
	BorderMuted     color.Color
	Selected        color.Color
	Success         color.Color
	Error           color.Color
	Warning         color.Color
	Info            color.Color
)
