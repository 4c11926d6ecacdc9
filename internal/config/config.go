// Package config resolves where scribe reads and writes: the canonical
// source tree, the project root, and the global (home) base directory.
// Flag parsing and config-file merging belong to the CLI layer; this
// package only answers path questions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// SourceDirName is the canonical source tree directory, relative to a
// base directory.
const SourceDirName = ".scribe"

// SourceDir returns the canonical source tree path for a base directory.
func SourceDir(baseDir string) string {
	return filepath.Join(baseDir, SourceDirName)
}

// ProjectRoot finds the project base directory by walking up from the
// working directory looking for a .scribe tree or a .git directory. When
// neither exists the working directory itself is the base.
func ProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	dir := cwd
	for {
		if info, err := os.Stat(filepath.Join(dir, SourceDirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// GlobalBaseDir returns the base directory for global scope: the user's
// home directory.
func GlobalBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}
