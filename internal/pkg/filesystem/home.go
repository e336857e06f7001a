package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ExpandHome resolves a leading "~/" against the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return path
}

// ConfigDir is where explain keeps config.yaml and .env.
func ConfigDir() string {
	return filepath.Join(UserHomeDir(), ".config", "explain")
}

// DataDir is where explain keeps its history database.
func DataDir() string {
	return filepath.Join(UserHomeDir(), ".local", "share", "explain")
}
