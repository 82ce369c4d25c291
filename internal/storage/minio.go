package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ecohub/internal/config"
	"ecohub/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinio 连接 MinIO 并确保 bucket 存在
// endpoint 为空时返回 nil, nil，调用方视为未启用
func NewMinio(ctx context.Context, cfg *config.StorageConfig) (*MinioStorage, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: PublicBaseURL(cfg),
	}, nil
}

// PublicBaseURL 对外访问前缀，未配置时由 endpoint 推导
func PublicBaseURL(cfg *config.StorageConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

func (s *MinioStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *MinioStorage) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
