package object

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound indicates the storage key does not resolve to an object.
	ErrNotFound = errors.New("object not found")

	// ErrUnavailable indicates the backing store could not be reached.
	ErrUnavailable = errors.New("object store unavailable")
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Implementations do not retry; callers decide failure policy.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
