package config

import (
	"os"
	"path/filepath"
)

// userConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
//   - Linux: ~/.config/shipkit/config.yml
//   - macOS: ~/Library/Application Support/shipkit/config.yml
//   - Windows: %APPDATA%\shipkit\config.yml
func userConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "shipkit", "config.yml")
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .shipkit/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".shipkit", "config.yml")
}
