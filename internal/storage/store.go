// Package storage holds the blob stores documents are written to. The rest
// of the system only sees opaque storage references; file bytes never pass
// through the domain layer.
package storage

import (
	"context"
	"io"
)

// BlobStore reads and writes document blobs by opaque reference.
// Implementations: LocalStore, S3Store.
type BlobStore interface {
	// Save writes r under ref, overwriting any existing blob.
	Save(ctx context.Context, ref string, r io.Reader) error
	// Open returns the blob's bytes. A missing ref yields an error that
	// wraps a domain NotFoundError.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing ref is a no-op.
	Delete(ctx context.Context, ref string) error
	// List returns every ref currently stored.
	List(ctx context.Context) ([]string, error)
}
