package messages

import (
	"github.com/docker/gemini-console/pkg/api"
)

type (
	SaveSessionMsg struct {
		Name string
	}
	LoadSessionMsg struct {
		Name string
	}
	// DeleteSessionMsg is sent only after confirmation.
	DeleteSessionMsg struct {
		Name string
	}
	RefreshSessionsMsg struct{}
	// UpdateSettingsMsg pushes model settings and applies client preferences.
	UpdateSettingsMsg struct {
		Settings api.Settings
		Dark     bool
	}
)
