package interfaces

import (
	"context"

	"github.com/mgprofile/mgprofile/pkg/domain/model"
)

// CanonicalRepository is the durable, append-mostly store of handed-off summaries
type CanonicalRepository interface {
	// Upsert atomically creates or replaces the record identified by record.Key.
	// Re-submitting the same key leaves exactly one record.
	Upsert(ctx context.Context, record *model.CanonicalRecord) error

	// Get retrieves a record by its key. Returns ErrNotFound of the backend if absent.
	Get(ctx context.Context, key model.RecordKey) (*model.CanonicalRecord, error)

	// ListByUser returns up to limit records of the user, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.CanonicalRecord, error)
}
