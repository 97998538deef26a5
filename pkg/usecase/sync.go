package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// SyncUseCase moves summaries into the canonical store, mirrors them into the
// session store and detects divergence between the two.
type SyncUseCase struct {
	repo         interfaces.Repository
	storeTimeout time.Duration
	maxRecords   int
}

func NewSyncUseCase(repo interfaces.Repository, storeTimeout time.Duration, maxRecords int) *SyncUseCase {
	return &SyncUseCase{
		repo:         repo,
		storeTimeout: storeTimeout,
		maxRecords:   maxRecords,
	}
}

// Handoff durably records summary under (profileID, runID, module) and then
// mirrors it into the user's session profile under last-write-wins. The
// session store is not touched unless the canonical write succeeded.
// Re-invoking with the same key is safe.
func (uc *SyncUseCase) Handoff(ctx context.Context, userID string, summary *model.Summary, profileID, runID string, module types.ModuleName) (*model.HandoffResult, error) {
	if userID == "" {
		return nil, invalidInput("userId is required")
	}
	if profileID == "" {
		return nil, invalidInput("profileId is required", goerr.V(UserIDKey, userID))
	}
	if runID == "" {
		return nil, invalidInput("runId is required", goerr.V(UserIDKey, userID))
	}
	if err := module.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid module", goerr.V(UserIDKey, userID), goerr.T(model.ErrTagInvalidInput))
	}
	if summary == nil {
		return nil, invalidInput("summary is required", goerr.V(UserIDKey, userID))
	}

	s := summary.Copy()
	s.Meta.CreatedAt = s.Meta.CreatedAt.Truncate(model.CreatedAtPrecision)
	switch s.Meta.RunID {
	case "":
		s.Meta.RunID = runID
	case runID:
	default:
		return nil, invalidInput("summary runId does not match runId",
			goerr.V("summaryRunID", s.Meta.RunID),
			goerr.V("runID", runID))
	}
	if err := s.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid summary", goerr.V(UserIDKey, userID), goerr.V(ModuleKey, module))
	}

	key := model.RecordKey{ProfileID: profileID, RunID: runID, Module: module}
	record := &model.CanonicalRecord{
		Key:       key,
		UserID:    userID,
		Summary:   s,
		CreatedAt: s.Meta.CreatedAt,
	}

	_, err := storeCall(ctx, uc.storeTimeout, "canonical.upsert", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.repo.Canonical().Upsert(ctx, record)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write canonical record",
			goerr.V(UserIDKey, userID),
			goerr.V(RecordKeyKey, key.String()))
	}

	// A caller that gave up after the canonical write gets no session write
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "request ended after canonical write",
			goerr.V(RecordKeyKey, key.String()),
			goerr.T(model.ErrTagStoreUnavailable))
	}

	entry := &model.ModuleEntry{ProfileID: profileID, Summary: s}
	applied, err := storeCall(ctx, uc.storeTimeout, "session.putModuleIfNewer", func(ctx context.Context) (bool, error) {
		return uc.repo.Session().PutModuleIfNewer(ctx, userID, module, entry)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "canonical record written but session update failed",
			goerr.V(UserIDKey, userID),
			goerr.V(RecordKeyKey, key.String()))
	}

	logging.From(ctx).Info("summary handed off",
		"userID", userID,
		"recordKey", key.String(),
		"sessionUpdated", applied)

	return &model.HandoffResult{
		RecordKey:      key,
		SessionUpdated: applied,
	}, nil
}

// SyncToSession repairs the session profile from canonical history. Modules
// whose session entry is behind the latest canonical record are written with
// the same compare-and-set as Handoff, so it is safe to run alongside
// handoffs.
func (uc *SyncUseCase) SyncToSession(ctx context.Context, userID string) (*model.SyncResult, error) {
	if userID == "" {
		return nil, invalidInput("userId is required")
	}

	session, latest, err := uc.readBoth(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &model.SyncResult{}
	for _, module := range sortedModules(latest) {
		rec := latest[module]
		if cur, ok := session.Modules[module]; ok && !model.Older(cur.Summary, rec.Summary) {
			continue
		}

		entry := &model.ModuleEntry{ProfileID: rec.Key.ProfileID, Summary: rec.Summary}
		applied, err := storeCall(ctx, uc.storeTimeout, "session.putModuleIfNewer", func(ctx context.Context) (bool, error) {
			return uc.repo.Session().PutModuleIfNewer(ctx, userID, module, entry)
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to sync module to session",
				goerr.V(UserIDKey, userID),
				goerr.V(ModuleKey, module),
				goerr.V("modulesUpdated", result.ModulesUpdated))
		}
		if applied {
			result.ModulesUpdated++
		}
	}

	logging.From(ctx).Info("session synced from canonical",
		"userID", userID,
		"modules", len(latest),
		"modulesUpdated", result.ModulesUpdated)

	return result, nil
}

// GetCompleteProfile returns the latest summary per module across both
// stores. Session entries win unless canonical history holds a newer one. It
// never writes.
func (uc *SyncUseCase) GetCompleteProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, invalidInput("userId is required")
	}

	session, latest, err := uc.readBoth(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		UserID:   userID,
		Modules:  make(map[types.ModuleName]*model.ProfileModule, len(session.Modules)+len(latest)),
		LastStep: session.LastStep,
	}
	for module, entry := range session.Modules {
		profile.Modules[module] = &model.ProfileModule{
			ProfileID: entry.ProfileID,
			Summary:   entry.Summary,
			Source:    model.ProfileSourceSession,
		}
	}
	for module, rec := range latest {
		if cur, ok := profile.Modules[module]; ok && !model.Older(cur.Summary, rec.Summary) {
			continue
		}
		profile.Modules[module] = &model.ProfileModule{
			ProfileID: rec.Key.ProfileID,
			Summary:   rec.Summary,
			Source:    model.ProfileSourceCanonical,
		}
	}

	return profile, nil
}

// ValidateSync compares the session profile with canonical history per module
// and reports every difference. It never writes.
func (uc *SyncUseCase) ValidateSync(ctx context.Context, userID string) (*model.ValidationReport, error) {
	if userID == "" {
		return nil, invalidInput("userId is required")
	}

	session, latest, err := uc.readBoth(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &model.ValidationReport{
		UserID:        userID,
		Discrepancies: []model.Discrepancy{},
	}

	modules := make(map[types.ModuleName]struct{}, len(latest)+len(session.Modules))
	for m := range latest {
		modules[m] = struct{}{}
	}
	for m := range session.Modules {
		modules[m] = struct{}{}
	}
	names := make([]types.ModuleName, 0, len(modules))
	for m := range modules {
		names = append(names, m)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, module := range names {
		rec, inCanonical := latest[module]
		entry, inSession := session.Modules[module]
		if inSession && entry.Summary == nil {
			inSession = false
		}

		switch {
		case inCanonical && !inSession:
			report.Discrepancies = append(report.Discrepancies, model.Discrepancy{
				Module:             module,
				Kind:               types.DiscrepancyMissing,
				CanonicalRunID:     rec.Summary.Meta.RunID,
				CanonicalCreatedAt: timePtr(rec.Summary.Meta.CreatedAt),
			})

		case !inCanonical && inSession:
			report.Discrepancies = append(report.Discrepancies, model.Discrepancy{
				Module:           module,
				Kind:             types.DiscrepancyOrphaned,
				SessionRunID:     entry.Summary.Meta.RunID,
				SessionCreatedAt: timePtr(entry.Summary.Meta.CreatedAt),
			})

		case inCanonical && inSession && model.Older(entry.Summary, rec.Summary):
			report.Discrepancies = append(report.Discrepancies, model.Discrepancy{
				Module:             module,
				Kind:               types.DiscrepancyStale,
				SessionRunID:       entry.Summary.Meta.RunID,
				SessionCreatedAt:   timePtr(entry.Summary.Meta.CreatedAt),
				CanonicalRunID:     rec.Summary.Meta.RunID,
				CanonicalCreatedAt: timePtr(rec.Summary.Meta.CreatedAt),
			})
		}
	}

	if !report.InSync() {
		logging.From(ctx).Warn("session and canonical stores diverge",
			"userID", userID,
			"discrepancies", len(report.Discrepancies))
	}

	return report, nil
}

// SaveProgress stores the user's lastStep cursor
func (uc *SyncUseCase) SaveProgress(ctx context.Context, userID string, lastStep int) error {
	if userID == "" {
		return invalidInput("userId is required")
	}
	if lastStep < 0 {
		return invalidInput("lastStep must not be negative", goerr.V(UserIDKey, userID), goerr.V("lastStep", lastStep))
	}

	_, err := storeCall(ctx, uc.storeTimeout, "session.saveProgress", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.repo.Session().SaveProgress(ctx, userID, lastStep)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save progress", goerr.V(UserIDKey, userID))
	}
	return nil
}

// readBoth reads the session profile and the latest canonical record per
// module concurrently
func (uc *SyncUseCase) readBoth(ctx context.Context, userID string) (*model.SessionProfile, map[types.ModuleName]*model.CanonicalRecord, error) {
	var (
		session *model.SessionProfile
		records []*model.CanonicalRecord
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		session, err = storeCall(egCtx, uc.storeTimeout, "session.get", func(ctx context.Context) (*model.SessionProfile, error) {
			return uc.repo.Session().Get(ctx, userID)
		})
		return err
	})
	eg.Go(func() error {
		var err error
		records, err = storeCall(egCtx, uc.storeTimeout, "canonical.listByUser", func(ctx context.Context) ([]*model.CanonicalRecord, error) {
			return uc.repo.Canonical().ListByUser(ctx, userID, uc.maxRecords)
		})
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read profile stores", goerr.V(UserIDKey, userID))
	}

	if session == nil {
		session = model.NewSessionProfile(userID)
	}
	return session, model.LatestByModule(records), nil
}

func sortedModules(latest map[types.ModuleName]*model.CanonicalRecord) []types.ModuleName {
	modules := make([]types.ModuleName, 0, len(latest))
	for m := range latest {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i] < modules[j] })
	return modules
}

func timePtr(t time.Time) *time.Time {
	return &t
}
