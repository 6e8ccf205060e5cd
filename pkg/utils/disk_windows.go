//go:build windows

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// GetDiskInfo falls back to the parent directory when path does not exist yet
func GetDiskInfo(path string) (*DiskInfo, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Dir(path)
	}

	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("failed to convert path: %w", err)
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes); err != nil {
		return nil, fmt.Errorf("GetDiskFreeSpaceEx failed: %w", err)
	}
	return newDiskInfo(totalBytes, freeBytesAvailable), nil
}
