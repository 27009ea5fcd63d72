// Package paths provides centralized path management for arbctl.
package paths

import (
	"os"
	"path/filepath"
)

// File name constants.
const (
	ConfigFile = "arbctl.toml"
	EnvFile    = ".env"
)

const DefaultHomeDirName = ".arbctl"

// DefaultHomeDir returns $HOME/.arbctl or falls back to current directory.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

// ConfigPath returns the config file inside homeDir.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, ConfigFile)
}

// EnvPath returns the dotenv file inside dir.
func EnvPath(dir string) string {
	return filepath.Join(dir, EnvFile)
}
