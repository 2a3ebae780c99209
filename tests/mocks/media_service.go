package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MediaService struct {
	mock.Mock
}

func (m *MediaService) UploadDonationImage(ctx context.Context, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	args := m.Called(ctx, fileSize, mimeType, reader)
	return args.String(0), args.Error(1)
}

func (m *MediaService) Remove(ctx context.Context, storagePath string) error {
	args := m.Called(ctx, storagePath)
	return args.Error(0)
}

func (m *MediaService) PublicURL(storagePath string) string {
	args := m.Called(storagePath)
	return args.String(0)
}
