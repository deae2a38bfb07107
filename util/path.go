package util

import (
	"os"
	"path/filepath"
)

// NormalizePath resolves a path to its absolute, slash-separated form. All
// entity identities and document paths are keyed on this normalized form.
func NormalizePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// WorkspaceRoot walks upward from dir looking for a .git marker and returns
// the directory containing it, or dir itself when none is found.
func WorkspaceRoot(dir string) string {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}
