package interfaces

import (
	"context"

	"github.com/mgprofile/mgprofile/pkg/domain/model"
)

// ReferenceRepository stores curated reference documents
type ReferenceRepository interface {
	// Put creates or replaces a document. Used for administrative seeding.
	Put(ctx context.Context, doc *model.ReferenceDocument) error

	// Get retrieves a document by ID. Returns ErrNotFound of the backend if absent.
	Get(ctx context.Context, id model.ReferenceDocumentID) (*model.ReferenceDocument, error)

	// ListPublished returns up to limit published documents ordered by ID.
	// Eligibility for a use case is decided by the ranking engine after
	// classification, since stored metadata may be incomplete.
	ListPublished(ctx context.Context, limit int) ([]*model.ReferenceDocument, error)
}
