package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "fertadvisor"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/fertadvisor by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for reference tables and the model.
// Returns ~/.local/share/fertadvisor by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/fertadvisor/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/fertadvisor/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
