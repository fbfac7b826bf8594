package imageapp

import (
	"context"
	"io"

	"board/internal/core/apperror"
	imagePort "board/internal/ports/image"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// MaxImageSize is the largest accepted upload, in bytes.
const MaxImageSize = 5 << 20

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ImageService stores post images and hands back their public urls.
type ImageService struct {
	Storage imagePort.Storage
	Logger  *zap.Logger
}

func NewImageService(storage imagePort.Storage, logger *zap.Logger) *ImageService {
	return &ImageService{Storage: storage, Logger: logger}
}

func (s *ImageService) Upload(ctx context.Context, body io.ReadSeeker, contentType string, size int64) (*imagePort.UploadResponse, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return nil, apperror.Validation("Only jpeg, png and gif images are accepted.")
	}
	if size <= 0 || size > MaxImageSize {
		return nil, apperror.Validation("Image must be between 1 byte and 5MB.")
	}

	key := "posts/" + uuid.Must(uuid.NewV4()).String() + ext
	url, err := s.Storage.Upload(ctx, key, body, size, contentType)
	if err != nil {
		s.Logger.Error("Error uploading image", zap.String("key", key), zap.Error(err))
		return nil, apperror.Storage(err)
	}

	s.Logger.Info("Image uploaded", zap.String("key", key))
	return &imagePort.UploadResponse{URL: url}, nil
}
