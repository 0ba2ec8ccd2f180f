package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultPath returns ARBOR_CONFIG, or config.toml under the XDG config home.
func DefaultPath() string {
	if v := os.Getenv("ARBOR_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), "arbor", "config.toml")
}
