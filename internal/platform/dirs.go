// Package platform resolves the process-wide data directories.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appDirName = ".whisper-mcp"

// DefaultDownloadsDirFor returns <home>/.whisper-mcp/downloads.
func DefaultDownloadsDirFor(homeDir string) (string, error) {
	if homeDir == "" {
		return "", errors.New("home directory is empty")
	}
	return filepath.Join(homeDir, appDirName, "downloads"), nil
}

// ResolveDownloadsDir resolves the downloads directory, honoring an
// override, and creates it with parents.
func ResolveDownloadsDir(override string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve user home: %w", err)
		}

		dir, err = DefaultDownloadsDirFor(homeDir)
		if err != nil {
			return "", err
		}
	} else {
		dir = filepath.Clean(dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads directory %s: %w", dir, err)
	}

	return dir, nil
}
