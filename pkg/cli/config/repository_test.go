package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mgprofile/mgprofile/pkg/cli/config"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
)

func TestRepositoryValidate(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func() *config.Repository
		sentinel error
	}{
		{
			name: "all memory",
			setup: func() *config.Repository {
				return config.NewRepositoryForTest("memory", "memory", "memory")
			},
		},
		{
			name: "redis session with mongo stores",
			setup: func() *config.Repository {
				r := config.NewRepositoryForTest("redis", "mongo", "mongo")
				r.SetRedisAddrForTest("localhost:6379")
				r.SetMongoURIForTest("mongodb://localhost:27017")
				return r
			},
		},
		{
			name: "mongo cannot hold sessions",
			setup: func() *config.Repository {
				r := config.NewRepositoryForTest("mongo", "memory", "memory")
				r.SetMongoURIForTest("mongodb://localhost:27017")
				return r
			},
			sentinel: config.ErrInvalidBackend,
		},
		{
			name: "redis cannot hold canonical records",
			setup: func() *config.Repository {
				r := config.NewRepositoryForTest("memory", "redis", "memory")
				r.SetRedisAddrForTest("localhost:6379")
				return r
			},
			sentinel: config.ErrInvalidBackend,
		},
		{
			name: "unknown backend",
			setup: func() *config.Repository {
				return config.NewRepositoryForTest("memory", "memory", "sqlite")
			},
			sentinel: config.ErrInvalidBackend,
		},
		{
			name: "firestore without project",
			setup: func() *config.Repository {
				return config.NewRepositoryForTest("firestore", "memory", "memory")
			},
			sentinel: config.ErrMissingParameter,
		},
		{
			name: "mongo without URI",
			setup: func() *config.Repository {
				return config.NewRepositoryForTest("memory", "mongo", "memory")
			},
			sentinel: config.ErrMissingParameter,
		},
		{
			name: "redis without address",
			setup: func() *config.Repository {
				return config.NewRepositoryForTest("redis", "memory", "memory")
			},
			sentinel: config.ErrMissingParameter,
		},
		{
			name: "non positive timeout",
			setup: func() *config.Repository {
				r := config.NewRepositoryForTest("memory", "memory", "memory")
				r.SetStoreTimeoutForTest(0)
				return r
			},
			sentinel: config.ErrInvalidConfig,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.setup().Validate()
			if tc.sentinel == nil {
				gt.NoError(t, err)
				return
			}
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, tc.sentinel)).True()
		})
	}
}

func TestRepositoryConfigureMemory(t *testing.T) {
	ctx := context.Background()
	repo, err := config.NewRepositoryForTest("memory", "memory", "memory").Configure(ctx)
	gt.NoError(t, err).Required()
	defer func() {
		gt.NoError(t, repo.Close())
	}()

	changed, err := repo.Session().PutModuleIfNewer(ctx, "u1", "RacialPride", &model.ModuleEntry{
		ProfileID: "p1",
		Summary:   &model.Summary{Meta: model.SummaryMeta{RunID: "r1"}},
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, changed).True()

	// all three stores share one memory backend
	profile, err := repo.Session().Get(ctx, "u1")
	gt.NoError(t, err).Required()
	gt.Number(t, len(profile.Modules)).Equal(1)
}
