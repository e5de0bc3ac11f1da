package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/Abdurahmanit/GroupProject/product-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

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
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucketName, err)
		}
	}

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log,
	}, nil
}

// Upload stores the bytes under a generated object key and returns the
// public URL. The original file name only contributes its extension.
func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("products/%s%s", uuid.New().String(), ext)

	s.logger.Info("S3Storage.Upload: uploading file",
		"bucket", s.bucket, "object_key", objectKey, "size_bytes", len(data))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("S3Storage.Upload: PutObject failed", "bucket", s.bucket, "key", objectKey, "error", err.Error())
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	return fileURL, nil
}
