package storage

import (
	"context"
	"fmt"
	"io"

	"quizbook/internal/config"
	"quizbook/internal/domain"
	"quizbook/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOStore implements domain.BlobStore on an S3 compatible bucket.
type MinIOStore struct {
	publicURLs
	client *minio.Client
	bucket string
}

// NewMinIOStore connects to MinIO and creates the bucket when it is missing.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig, publicBaseURL string) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Get().Info("Created bucket", zap.String("bucket", cfg.Bucket))
	}

	if publicBaseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinIOStore{
		publicURLs: newPublicURLs(publicBaseURL),
		client:     client,
		bucket:     cfg.Bucket,
	}, nil
}

var _ domain.BlobStore = (*MinIOStore)(nil)

// Upload stores r at objectPath and returns its public URL.
func (s *MinIOStore) Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error) {
	if err := cleanPath(objectPath); err != nil {
		return "", err
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectPath, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectPath, err)
	}
	return s.PublicURL(objectPath), nil
}

// Delete removes the object. Removing a missing object is not an error.
func (s *MinIOStore) Delete(ctx context.Context, objectPath string) error {
	if err := cleanPath(objectPath); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", objectPath, err)
	}
	return nil
}
