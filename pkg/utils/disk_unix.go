//go:build !windows

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// GetDiskInfo falls back to the parent directory when path does not exist yet
func GetDiskInfo(path string) (*DiskInfo, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Dir(path)
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return nil, fmt.Errorf("statfs failed: %w", err)
	}

	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return newDiskInfo(total, free), nil
}
