// Package dotdir manages the .gridscope/ and ~/.gridscope directories
// where the config file lives.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the gridscope directory.
	dirName = ".gridscope"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the absolute path to a .gridscope/ directory. Order of
// precedence:
//  1. Provided override (created if missing)
//  2. Local ./.gridscope/ dir
//  3. Home ~/.gridscope/ dir
//
// When no override is given and neither directory exists, Target
// returns the empty string: callers fall back to defaults rather than
// littering the filesystem.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating gridscope directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)
	}

	if dir, ok := m.localDir(); ok {
		return dir, nil
	}

	if dir, ok := m.homeDir(); ok {
		return dir, nil
	}

	return "", nil
}

// localDir reports the ./.gridscope directory if it exists.
func (m *Manager) localDir() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	dir := filepath.Join(cwd, dirName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// homeDir reports the ~/.gridscope directory if it exists.
func (m *Manager) homeDir() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	dir := filepath.Join(home, dirName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}
