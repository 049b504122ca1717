package object

import (
	"context"
	"io"
	"time"
)

// ObjectStore abstracts the blob store holding uploaded resume binaries.
type ObjectStore interface {
	// SaveWithKey uploads data at a specific storage key and returns the
	// number of bytes written.
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)

	// Open downloads a stored object for reading.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)

	// SignedURL returns a time-limited URL granting read access to the
	// object at storageKey.
	SignedURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error)
}
