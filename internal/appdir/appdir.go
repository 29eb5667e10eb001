// Package appdir locates the per-user directory where the survey client keeps
// its local state.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const applicationName = "Survey"

// Path returns the platform-specific application directory under home.
func Path(goos, home string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", applicationName)
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", applicationName)
	default: // linux and others
		return filepath.Join(home, ".local", "share", applicationName)
	}
}

// Ensure returns override if set, otherwise the default application directory,
// creating it if needed.
func Ensure(override string) (string, error) {
	directory := override
	if directory == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		directory = Path(runtime.GOOS, home)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create application directory: %w", err)
	}
	return directory, nil
}
