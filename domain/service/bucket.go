package service

import (
	"context"
	"io"
)

// Bucket stores uploaded files and returns their public URL.
type Bucket interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error)
}
