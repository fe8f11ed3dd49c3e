package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// AppDirName is the subdirectory created under the user's Downloads folder
const AppDirName = "tunevault"

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DefaultDownloadDir returns the default directory for downloaded audio
func DefaultDownloadDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads", AppDirName), nil
}
