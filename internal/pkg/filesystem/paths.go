package filesystem

import (
	"path/filepath"
	"strings"
)

// AppDirName is the per-user directory holding config and audit files.
const AppDirName = ".assist"

// AppDir returns ~/.assist.
func AppDir() string {
	return filepath.Join(UserHomeDir(), AppDirName)
}

// ExpandPath resolves a leading "~/" against the home directory and cleans
// everything else. Absolute paths are returned unchanged.
func ExpandPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
