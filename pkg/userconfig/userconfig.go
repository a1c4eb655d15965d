// Package userconfig provides user-level configuration for gemini-console.
// This configuration is stored in ~/.config/gemini-console/config.yaml and
// contains the backend address and client-side preferences.
package userconfig

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/docker/gemini-console/pkg/paths"
)

// Settings represents client-side preferences
type Settings struct {
	// DarkMode selects the dark palette
	DarkMode bool `yaml:"dark_mode,omitempty"`
	// ExportDir is where chat exports are written. Empty means the working directory.
	ExportDir string `yaml:"export_dir,omitempty"`
}

// CurrentVersion is the current version of the user config format
const CurrentVersion = "v1"

// Config represents the user-level configuration
type Config struct {
	// mu protects Settings, which the UI updates while a file watcher may
	// be reloading it.
	mu sync.Mutex

	// Version is the config format version
	Version string `yaml:"version,omitempty"`
	// Server is the backend base URL
	Server string `yaml:"server,omitempty"`
	// Settings contains client preferences
	Settings *Settings `yaml:"settings,omitempty"`
}

// Path returns the path to the config file
func Path() string {
	return filepath.Join(paths.GetConfigDir(), "config.yaml")
}

// Load loads the user configuration from the config file.
func Load() (*Config, error) {
	return loadFrom(Path())
}

// LoadFrom loads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// loadFrom reads and parses the config file, returning an empty config if file doesn't exist.
func loadFrom(configPath string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Server != "" {
		if err := ValidateServerURL(config.Server); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// Save saves the configuration to the config file
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	c.mu.Lock()
	// Ensure version is always set to current version when saving
	c.Version = CurrentVersion
	data, err := yaml.Marshal(c)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}

// ValidateServerURL checks that a backend address is an absolute http(s) URL.
func ValidateServerURL(raw string) error {
	if raw == "" {
		return errors.New("server URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q: must be an absolute http or https URL", raw)
	}
	return nil
}

// GetSettings returns a copy of the settings, or empty Settings if not set
func (c *Config) GetSettings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Settings == nil {
		return Settings{}
	}
	return *c.Settings
}

// SetDarkMode records the theme preference.
func (c *Config) SetDarkMode(dark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Settings == nil {
		c.Settings = &Settings{}
	}
	c.Settings.DarkMode = dark
}
