// Package storage wraps S3-compatible object storage for generated documents
// and payment-proof uploads.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL is a time-limited URL for one object.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Uploader issues presigned PUT URLs for browser uploads.
type Uploader interface {
	// GenerateUploadURL validates the declared type and size and returns a
	// URL for a unique key under folder.
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)
}

// ObjectStore stores server-rendered files and hands out download links.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, fileKey, contentType string, reader io.Reader, size int64) error
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)
	DeleteObject(ctx context.Context, bucket, fileKey string) error
}

// StorageService is the full object storage surface.
type StorageService interface {
	Uploader
	ObjectStore
	EnsureBucketExists(ctx context.Context, bucket string) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
