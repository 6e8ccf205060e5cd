package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cardapio-digital/domain/ports"
	"cardapio-digital/pkg/logger"
)

const s3Timeout = 30 * time.Second

// S3Storage implements StoragePort for S3-compatible storage (MinIO / Cloudflare R2)
type S3Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	endpoint  string
	useSSL    bool
}

type S3StorageConfig struct {
	Endpoint  string // minio:9000 or xxx.r2.cloudflarestorage.com
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string // optional
}

func NewS3Storage(config S3StorageConfig) (ports.StoragePort, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{Region: config.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("S3 bucket created", "bucket", config.Bucket)
	}

	logger.Info("S3 storage initialized",
		"endpoint", config.Endpoint,
		"bucket", config.Bucket,
		"ssl", config.UseSSL,
	)

	return &S3Storage{
		client:    client,
		bucket:    config.Bucket,
		publicURL: strings.TrimSuffix(config.PublicURL, "/"),
		endpoint:  config.Endpoint,
		useSSL:    config.UseSSL,
	}, nil
}

func (s *S3Storage) UploadFile(file io.Reader, path string, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s3Timeout)
	defer cancel()

	path = normalizePath(path)

	// size -1 streams until EOF
	_, err := s.client.PutObject(ctx, s.bucket, path, file, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logger.Debug("File uploaded to S3", "path", path, "content_type", contentType)
	return s.GetFileURL(path), nil
}

func (s *S3Storage) DeleteFile(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s3Timeout)
	defer cancel()

	path = normalizePath(path)
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Debug("File deleted from S3", "path", path)
	return nil
}

func (s *S3Storage) GetFileURL(path string) string {
	path = normalizePath(path)

	if s.publicURL != "" {
		return s.publicURL + "/" + path
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, path)
}

func (s *S3Storage) GetFileContent(path string) (io.ReadCloser, string, error) {
	path = normalizePath(path)

	obj, err := s.client.GetObject(context.Background(), s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object: %w", err)
	}

	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, "", fmt.Errorf("failed to stat object: %w", err)
	}
	return obj, info.ContentType, nil
}

func (s *S3Storage) ListFiles(prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s3Timeout)
	defer cancel()

	prefix = normalizePath(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	files := []string{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		files = append(files, obj.Key)
	}

	sort.Strings(files)
	return files, nil
}

func (s *S3Storage) GetProviderName() string {
	return "s3"
}
