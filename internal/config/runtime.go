package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".roombot"

// GetRuntimePath returns the runtime directory; relative paths live under $HOME.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("ROOMBOT_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
