package storage

import (
	"context"
	"io"
)

// Uploader stores an object and returns the URL clients should use to fetch it.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}
