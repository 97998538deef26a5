package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

type referenceRepository struct {
	mu   sync.RWMutex
	docs map[model.ReferenceDocumentID]*model.ReferenceDocument
}

func newReferenceRepository() *referenceRepository {
	return &referenceRepository{
		docs: make(map[model.ReferenceDocumentID]*model.ReferenceDocument),
	}
}

func (r *referenceRepository) Put(ctx context.Context, doc *model.ReferenceDocument) error {
	if doc == nil || doc.ID == "" {
		return goerr.New("reference document ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := doc.Copy()
	now := time.Now().UTC()
	if existing, ok := r.docs[doc.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.docs[doc.ID] = stored
	return nil
}

func (r *referenceRepository) Get(ctx context.Context, id model.ReferenceDocumentID) (*model.ReferenceDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "reference document not found", goerr.V("id", id))
	}
	return doc.Copy(), nil
}

func (r *referenceRepository) ListPublished(ctx context.Context, limit int) ([]*model.ReferenceDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.ReferenceDocument
	for _, doc := range r.docs {
		if doc.Status == types.DocumentStatusPublished {
			result = append(result, doc.Copy())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
