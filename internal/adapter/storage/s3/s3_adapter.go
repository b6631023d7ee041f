package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/config"
)

const objectPrefix = "images"

// S3Storage keeps uploaded pet images in an S3-compatible bucket.
type S3Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg *config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	logger = logger.Named("S3Storage")
	logger.Info("Initializing S3 storage", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.BucketName), zap.Bool("use_ssl", cfg.UseSSL))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.BucketName)
		if existsErr != nil || !exists {
			logger.Error("Failed to make or verify bucket", zap.String("bucket", cfg.BucketName), zap.Error(err), zap.NamedError("exists_error", existsErr))
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.BucketName, err)
		}
		logger.Info("Bucket already exists", zap.String("bucket", cfg.BucketName))
	}

	base := cfg.PublicURL
	if base == "" {
		base = client.EndpointURL().String() + "/" + cfg.BucketName
	}
	return &S3Storage{client: client, bucket: cfg.BucketName, publicURL: base, logger: logger}, nil
}

// Upload stores the image under a random key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, r io.Reader, size int64, contentType, ext string) (string, error) {
	key := objectKey(ext)
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("bucket", s.bucket), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}
	s.logger.Info("Image uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return objectURL(s.publicURL, key), nil
}

func objectKey(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s/%s%s", objectPrefix, uuid.NewString(), strings.ToLower(ext))
}

func objectURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
