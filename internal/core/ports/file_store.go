package ports

import (
	"context"
	"io"
)

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileStore persists uploaded files under opaque keys.
type FileStore interface {
	Save(ctx context.Context, prefix string, up Upload) (key string, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL returns the client-facing location of key.
	URL(key string) string
}
