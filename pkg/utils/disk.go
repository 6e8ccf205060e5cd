package utils

import "fmt"

// DiskInfo describes the filesystem holding a path
type DiskInfo struct {
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// CheckDiskSpace reports whether requiredBytes fit on path's filesystem
// while leaving at least minFreePercent of it free (10 when zero)
func CheckDiskSpace(path string, requiredBytes int64, minFreePercent float64) (bool, *DiskInfo, error) {
	if minFreePercent == 0 {
		minFreePercent = 10.0
	}

	info, err := GetDiskInfo(path)
	if err != nil {
		return false, nil, err
	}
	return hasRoom(info, requiredBytes, minFreePercent), info, nil
}

func hasRoom(info *DiskInfo, requiredBytes int64, minFreePercent float64) bool {
	if info.Total == 0 || int64(info.Free) < requiredBytes {
		return false
	}
	remaining := int64(info.Free) - requiredBytes
	return float64(remaining)/float64(info.Total)*100 >= minFreePercent
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

type DiskSpaceError struct {
	Required  int64
	Available uint64
	Message   string
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf("%s: required %s, available %s",
		e.Message,
		FormatBytes(uint64(e.Required)),
		FormatBytes(e.Available),
	)
}

func NewDiskSpaceError(required int64, available uint64) *DiskSpaceError {
	return &DiskSpaceError{
		Required:  required,
		Available: available,
		Message:   "insufficient disk space",
	}
}

func newDiskInfo(total, free uint64) *DiskInfo {
	info := &DiskInfo{Total: total, Free: free}
	if free <= total {
		info.Used = total - free
	}
	if total > 0 {
		info.UsedPercent = float64(info.Used) / float64(total) * 100
	}
	return info
}
