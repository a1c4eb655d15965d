package paths

import (
	"os"
	"path/filepath"
)

const appName = "gemini-console"

// GetConfigDir returns the user's config directory for gemini-console.
//
// If the home directory cannot be determined, it falls back to a directory
// under the system temporary directory.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), "."+appName+"-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", appName))
}

// GetDataDir returns the directory for logs and other non-config data.
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), "."+appName))
	}
	return filepath.Clean(filepath.Join(homeDir, "."+appName))
}

// DefaultLogFile is where --debug writes when --log-file is not given.
func DefaultLogFile() string {
	return filepath.Join(GetDataDir(), appName+".debug.log")
}
