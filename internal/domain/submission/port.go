package submission

import "context"

// Repository port (interface for persistence). Each operation is atomic with
// respect to the record it touches; a submission either exists fully formed
// or not at all.
type Repository interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id ID) (*Submission, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]*Summary, error)
	// Verify flips verified to true. Idempotent: repeat calls are no-ops.
	Verify(ctx context.Context, id ID) error
}

// MediaStore port for keeping the raw upload bytes. Returns the stored
// object's URL.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}
