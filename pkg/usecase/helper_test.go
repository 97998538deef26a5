package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

var errStoreDown = errors.New("store is down")

func testTime(offset time.Duration) time.Time {
	return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC).Add(offset)
}

func newSummary(runID string, createdAt time.Time, text string) *model.Summary {
	return &model.Summary{
		SchemaVersion: model.SchemaVersion,
		StudentID:     "student-1",
		Sections: map[string]model.Section{
			"interest_awareness": {
				Text:       text,
				Evidence:   []string{"asked to build a bridge"},
				Confidence: 0.9,
			},
		},
		Meta: model.SummaryMeta{
			RunID:     runID,
			Model:     "test-model",
			CreatedAt: createdAt,
		},
	}
}

// failingCanonical fails every call
type failingCanonical struct {
	interfaces.CanonicalRepository
}

func (failingCanonical) Upsert(ctx context.Context, record *model.CanonicalRecord) error {
	return errStoreDown
}

func (failingCanonical) ListByUser(ctx context.Context, userID string, limit int) ([]*model.CanonicalRecord, error) {
	return nil, errStoreDown
}

// blockingCanonical blocks until the call's context is done
type blockingCanonical struct {
	interfaces.CanonicalRepository
}

func (blockingCanonical) Upsert(ctx context.Context, record *model.CanonicalRecord) error {
	<-ctx.Done()
	return ctx.Err()
}

// countingSession counts writes and optionally fails them
type countingSession struct {
	interfaces.SessionRepository
	puts atomic.Int32
	fail bool
}

func (s *countingSession) PutModuleIfNewer(ctx context.Context, userID string, module types.ModuleName, entry *model.ModuleEntry) (bool, error) {
	s.puts.Add(1)
	if s.fail {
		return false, errStoreDown
	}
	return s.SessionRepository.PutModuleIfNewer(ctx, userID, module, entry)
}

// failingReference fails every listing
type failingReference struct {
	interfaces.ReferenceRepository
}

func (failingReference) ListPublished(ctx context.Context, limit int) ([]*model.ReferenceDocument, error) {
	return nil, errStoreDown
}
