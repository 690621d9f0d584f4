package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage keeps property images in a MinIO bucket and serves them through
// the endpoint's public URL.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing S3 MinIO storage", "endpoint", endpoint, "bucket", bucketName, "use_ssl", useSSL)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Error("S3Storage: failed to create MinIO client", "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists == nil && exists {
			log.Info("S3Storage: bucket already exists", "bucket", bucketName)
		} else {
			log.Error("S3Storage: failed to make or verify bucket", "bucket", bucketName, "make_bucket_error", err, "check_exists_error", errBucketExists)
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
	}

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("properties/%s%s", uuid.New().String(), ext)

	s.logger.Info("S3Storage.Upload: uploading file",
		"bucket", s.bucket,
		"object_key", objectKey,
		"original_filename", originalFileName,
		"size_bytes", len(data))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("S3Storage.Upload: PutObject failed", "bucket", s.bucket, "key", objectKey, "error", err)
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}

// Remove deletes the object behind fileURL. URLs outside this endpoint and
// bucket are not ours to touch and are ignored.
func (s *S3Storage) Remove(ctx context.Context, fileURL string) error {
	if !s.Owns(fileURL) {
		s.logger.Debug("S3Storage.Remove: skipping foreign reference", "url", fileURL)
		return nil
	}
	objectKey := strings.TrimPrefix(fileURL, s.urlPrefix())
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("S3Storage.Remove: RemoveObject failed", "bucket", s.bucket, "key", objectKey, "error", err)
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", objectKey, s.bucket, err)
	}
	return nil
}

func (s *S3Storage) Owns(fileURL string) bool {
	return strings.HasPrefix(fileURL, s.urlPrefix())
}

func (s *S3Storage) urlPrefix() string {
	return fmt.Sprintf("%s/%s/", s.client.EndpointURL().String(), s.bucket)
}
