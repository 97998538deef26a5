package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
)

type canonicalRepository struct {
	mu      sync.RWMutex
	records map[model.RecordKey]*model.CanonicalRecord
}

func newCanonicalRepository() *canonicalRepository {
	return &canonicalRepository{
		records: make(map[model.RecordKey]*model.CanonicalRecord),
	}
}

func (r *canonicalRepository) Upsert(ctx context.Context, record *model.CanonicalRecord) error {
	if record == nil {
		return goerr.New("record is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := record.Copy()
	stored.UpdatedAt = time.Now().UTC()
	r.records[record.Key] = stored
	return nil
}

func (r *canonicalRepository) Get(ctx context.Context, key model.RecordKey) (*model.CanonicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[key]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "canonical record not found", goerr.V("key", key.String()))
	}
	return record.Copy(), nil
}

func (r *canonicalRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.CanonicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.CanonicalRecord
	for _, record := range r.records {
		if record.UserID == userID {
			result = append(result, record.Copy())
		}
	}

	// newest first, same order as the persistent backends
	sort.Slice(result, func(i, j int) bool {
		return model.Older(result[j].Summary, result[i].Summary)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
