// Package storage removes uploaded recruitment attachments.
package storage

import (
	"context"
	"fmt"

	"github.com/tamilsociety/tls-platform/internal/config"
)

// AttachmentStore removes every object under a key prefix. It returns the
// number of objects removed.
type AttachmentStore interface {
	RemovePrefix(ctx context.Context, prefix string) (int, error)
}

// New builds the store selected by STORAGE_BACKEND.
func New(ctx context.Context) (AttachmentStore, error) {
	switch config.StorageBackend {
	case "minio":
		return NewMinioStore(ctx, MinioOptions{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			Bucket:    config.MinioBucket,
			UseSSL:    config.MinioUseSSL,
		})
	case "local", "":
		return NewLocalStore(config.UploadDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
	}
}
