package storage

import (
	"context"
	"errors"
	"io"
)

// ErrPhotoNotFound is the normal "no photo yet" state, not a failure.
var ErrPhotoNotFound = errors.New("photo not found")

// PhotoStore keeps one image per player, keyed by a name derived from the
// player's roster name. Player names never change, so keys are stable.
type PhotoStore interface {
	Put(ctx context.Context, key string, contentType string, reader io.Reader) error

	// Get returns the image bytes and their content type, or
	// ErrPhotoNotFound when no photo has been uploaded for the key.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the photo for the key. Deleting a key with no photo
	// is a no-op.
	Delete(ctx context.Context, key string) error

	// PublicURL returns a directly servable URL for the key, or "" when
	// the backend has no public surface and the API must stream the bytes.
	PublicURL(key string) string
}
