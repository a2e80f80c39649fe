package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".lifewheel"

// DataDir returns the base data directory for lifewheel.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML settings file.
func ConfigPath() (string, error) {
	return dataPath("config.toml")
}

// KeybindingsPath returns the path to the keybinding overrides file.
func KeybindingsPath() (string, error) {
	return dataPath("keybindings.json")
}

// LogPath returns the path the TUI logs to.
func LogPath() (string, error) {
	return dataPath("ui.log")
}

// ReportsDir returns the default export directory.
func ReportsDir() (string, error) {
	return dataPath("reports")
}

func dataPath(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
