package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/sushil1817/mealbridge-api/internal/config"
)

const MaxImageSize = 5 << 20 // 5 MiB

var (
	ErrImageTooLarge      = errors.New("image exceeds the maximum allowed size")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrStorageUnavailable = errors.New("image storage is not available")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Service interface {
	UploadDonationImage(ctx context.Context, fileSize int64, mimeType string, reader io.Reader) (string, error)
	Remove(ctx context.Context, storagePath string) error
	PublicURL(storagePath string) string
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) UploadDonationImage(ctx context.Context, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if s.minioClient == nil {
		return "", ErrStorageUnavailable
	}
	if fileSize > MaxImageSize {
		return "", ErrImageTooLarge
	}
	ext, ok := allowedImageTypes[mimeType]
	if !ok {
		return "", ErrUnsupportedImage
	}

	storagePath := fmt.Sprintf("donations/%s/%s%s", time.Now().Format("2006/01"), uuid.New().String(), ext)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.PublicURL(storagePath), nil
}

func (s *service) Remove(ctx context.Context, storagePath string) error {
	if s.minioClient == nil {
		return ErrStorageUnavailable
	}
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) PublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
