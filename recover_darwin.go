//go:build darwin

package adeptkey

import (
	"os"
	"path/filepath"
)

func newRecoverer() (recoverer, error) {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Library", "Application Support"))
	}
	dirs = append(dirs, "/Library/Application Support")
	return &documentRecoverer{supportDirs: dirs}, nil
}
