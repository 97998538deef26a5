package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/repository"
	"github.com/mgprofile/mgprofile/pkg/repository/firestore"
	"github.com/mgprofile/mgprofile/pkg/repository/memory"
	"github.com/mgprofile/mgprofile/pkg/repository/mongo"
	"github.com/mgprofile/mgprofile/pkg/repository/redis"
)

type repoFactory func(t *testing.T) interfaces.Repository

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	// Use standard collection names (no prefix) to utilize existing Firestore indexes
	// Test data isolation is achieved through random IDs in test data
	repo, err := firestore.New(ctx, projectID, databaseID)
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

// newMongoRepository serves canonical and reference stores from MongoDB and
// the session store from memory
func newMongoRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	prefix := "test_" + uuid.NewString()[:8]
	m, err := mongo.New(ctx, uri, "mgprofile_test", mongo.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create mongo repository: %v", err)
	}
	if err := m.EnsureIndexes(ctx); err != nil {
		t.Fatalf("failed to create mongo indexes: %v", err)
	}

	repo := repository.Compose(memory.New().Session(), m.Canonical(), m.Reference(), m)
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close mongo repository: %v", err)
		}
	})
	return repo
}

// newRedisRepository serves the session store from Redis and the others from memory
func newRedisRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	r, err := redis.New(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"), 0,
		redis.WithKeyPrefix("test:"+uuid.NewString()+":"))
	if err != nil {
		t.Fatalf("failed to create redis repository: %v", err)
	}

	mem := memory.New()
	repo := repository.Compose(r.Session(), mem.Canonical(), mem.Reference(), r)
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close redis repository: %v", err)
		}
	})
	return repo
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) ||
		errors.Is(err, firestore.ErrNotFound) ||
		errors.Is(err, mongo.ErrNotFound)
}

// testTime returns a timestamp every backend stores without precision loss
func testTime(offset time.Duration) time.Time {
	return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC).Add(offset)
}

func newTestSummary(studentID, runID string, createdAt time.Time, text string) *model.Summary {
	return &model.Summary{
		SchemaVersion: model.SchemaVersion,
		StudentID:     studentID,
		Sections: map[string]model.Section{
			"interest_awareness": {
				Text:       text,
				Evidence:   []string{"observed during free play"},
				Confidence: 0.75,
			},
		},
		Meta: model.SummaryMeta{
			RunID:     runID,
			Model:     "test-model",
			CreatedAt: createdAt,
		},
	}
}
