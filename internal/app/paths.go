package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName    = "nutri"
	stateFileName = "nutri.db"
)

// DefaultStatePath is where the session credential and preferences live
// unless NUTRI_STATE or --state says otherwise.
func DefaultStatePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, stateFileName), nil
}

func EnsureStateDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	return nil
}
