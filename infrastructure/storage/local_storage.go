package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cardapio-digital/domain/ports"
	"cardapio-digital/pkg/utils"
)

// LocalStorage implements StoragePort on the local filesystem
type LocalStorage struct {
	basePath       string
	baseURL        string
	minFreePercent float64
}

type LocalStorageConfig struct {
	BasePath       string  // ./data/storage
	BaseURL        string  // http://localhost:8080/files
	MinFreePercent float64 // uploads are refused below this share of free disk; 0 means 10
}

func NewLocalStorage(config LocalStorageConfig) (ports.StoragePort, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:       config.BasePath,
		baseURL:        strings.TrimSuffix(config.BaseURL, "/"),
		minFreePercent: config.MinFreePercent,
	}, nil
}

func (l *LocalStorage) fullPath(path string) string {
	path = normalizePath(path)
	return filepath.Join(l.basePath, filepath.FromSlash(path))
}

func (l *LocalStorage) UploadFile(file io.Reader, path string, contentType string) (string, error) {
	fullPath := l.fullPath(path)

	ok, info, err := utils.CheckDiskSpace(l.basePath, 0, l.minFreePercent)
	if err != nil {
		return "", fmt.Errorf("failed to check disk space: %w", err)
	}
	if !ok {
		return "", utils.NewDiskSpaceError(0, info.Free)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return l.GetFileURL(path), nil
}

// DeleteFile treats a missing file as already deleted
func (l *LocalStorage) DeleteFile(path string) error {
	fullPath := l.fullPath(path)

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	l.cleanupEmptyDirs(filepath.Dir(fullPath))
	return nil
}

func (l *LocalStorage) GetFileURL(path string) string {
	return l.baseURL + "/" + normalizePath(path)
}

func (l *LocalStorage) GetFileContent(path string) (io.ReadCloser, string, error) {
	file, err := os.Open(l.fullPath(path))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return file, contentTypeFor(path), nil
}

func (l *LocalStorage) ListFiles(prefix string) ([]string, error) {
	root := l.fullPath(prefix)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return []string{}, nil
	}

	files := []string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

func (l *LocalStorage) GetProviderName() string {
	return "local"
}

// cleanupEmptyDirs removes empty directories up to basePath
func (l *LocalStorage) cleanupEmptyDirs(dir string) {
	absBase, _ := filepath.Abs(l.basePath)
	absDir, _ := filepath.Abs(dir)

	for absDir != absBase && strings.HasPrefix(absDir, absBase) {
		entries, err := os.ReadDir(absDir)
		if err != nil || len(entries) > 0 {
			break
		}
		os.Remove(absDir)
		absDir = filepath.Dir(absDir)
	}
}

func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(path, "/")
}

func contentTypeFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".json.gz"):
		return "application/gzip"
	case strings.HasSuffix(path, ".json"):
		return "application/json"
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return "application/yaml"
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
