package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

type sessionRepository struct {
	mu       sync.Mutex
	profiles map[string]*model.SessionProfile
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		profiles: make(map[string]*model.SessionProfile),
	}
}

func (r *sessionRepository) Get(ctx context.Context, userID string) (*model.SessionProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return model.NewSessionProfile(userID), nil
	}
	return profile.Copy(), nil
}

func (r *sessionRepository) PutModuleIfNewer(ctx context.Context, userID string, module types.ModuleName, entry *model.ModuleEntry) (bool, error) {
	if entry == nil || entry.Summary == nil {
		return false, goerr.New("module entry has no summary", goerr.V("module", module))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		profile = model.NewSessionProfile(userID)
		r.profiles[userID] = profile
	}

	if cur, exists := profile.Modules[module]; exists && !model.Newer(entry.Summary, cur.Summary) {
		return false, nil
	}

	profile.Modules[module] = entry.Copy()
	profile.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *sessionRepository) SaveProgress(ctx context.Context, userID string, lastStep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		profile = model.NewSessionProfile(userID)
		r.profiles[userID] = profile
	}
	profile.LastStep = lastStep
	profile.UpdatedAt = time.Now().UTC()
	return nil
}
