package ports

import "io"

// StoragePort stores catalog snapshots; Local and S3 (MinIO) adapters implement it
type StoragePort interface {
	// UploadFile writes the reader at path and returns its public URL
	UploadFile(file io.Reader, path string, contentType string) (string, error)

	DeleteFile(path string) error

	GetFileURL(path string) string

	// GetFileContent returns the content and its content type
	GetFileContent(path string) (io.ReadCloser, string, error)

	// ListFiles returns object paths under prefix, sorted ascending
	ListFiles(prefix string) ([]string, error)

	GetProviderName() string
}
