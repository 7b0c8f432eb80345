package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
)

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
		logger.Log.Info("bucket created", zap.String("bucket", opts.Bucket))
	}

	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

func (s *MinioStore) RemovePrefix(ctx context.Context, prefix string) (int, error) {
	if strings.Trim(prefix, "/") == "" {
		return 0, fmt.Errorf("refusing to remove an empty prefix")
	}

	listed := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	toRemove := make(chan minio.ObjectInfo)

	var listErr error
	count := 0
	listDone := make(chan struct{})
	go func() {
		defer close(listDone)
		defer close(toRemove)
		for obj := range listed {
			if obj.Err != nil {
				listErr = obj.Err
				return
			}
			select {
			case toRemove <- obj:
				count++
			case <-ctx.Done():
				listErr = ctx.Err()
				return
			}
		}
	}()

	var removeErr error
	for e := range s.client.RemoveObjects(ctx, s.bucket, toRemove, minio.RemoveObjectsOptions{}) {
		if removeErr == nil {
			removeErr = fmt.Errorf("remove %s: %w", e.ObjectName, e.Err)
		}
	}

	<-listDone
	if listErr != nil {
		return count, fmt.Errorf("list %s: %w", prefix, listErr)
	}
	return count, removeErr
}
