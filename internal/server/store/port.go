package store

import "context"

// Port is the injected persistence backend for the state document. The
// document travels as raw JSON bytes; schema reconciliation is the
// Manager's job, not the Port's.
type Port interface {
	// Load returns the stored document bytes. ok is false when nothing is
	// stored yet; that is not an error.
	Load(ctx context.Context) (data []byte, ok bool, err error)

	// Save persists the document bytes, replacing any previous version.
	Save(ctx context.Context, data []byte) error
}
