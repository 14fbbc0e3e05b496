package pkg

import (
	"os"
	"path/filepath"
	"sync"
)

// ConfigDir returns the directory holding the pagebind configuration files,
// a [Name] subdirectory of the user configuration directory.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the directory holding profiles and the explorer history,
// a [Name] subdirectory of the user cache directory.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// userDir joins [Name] to the directory reported by base. When base fails,
// hidden is used relative to the home directory, and the system temporary
// directory is the last resort.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil || dir == "" {
		home, herr := os.UserHomeDir()
		if herr != nil || home == "" {
			return filepath.Join(os.TempDir(), Name)
		}

		dir = filepath.Join(home, hidden)
	}

	return filepath.Join(dir, Name)
}
