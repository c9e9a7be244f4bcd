package core

import (
	"context"
	"io"
)

// FileStorage is any service that can store and retrieve uploaded blobs.
type FileStorage interface {
	// Save stores the content under a new storage reference derived from name.
	Save(ctx context.Context, name string, content io.Reader) (ref string, err error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Remove(ctx context.Context, ref string) error
	// PublicURL reports the externally reachable URL for ref, if the backend
	// exposes one. Callers stream the content themselves when it does not.
	PublicURL(ref string) (string, bool)
}
