package image

import (
	"context"
	"io"
)

// Storage stores an uploaded object of size bytes under key and returns its public url.
type Storage interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error)
}

type UploadResponse struct {
	URL string `json:"url"`
}
