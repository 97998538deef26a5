package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type sessionProfileDoc struct {
	UserID    string                     `firestore:"UserID"`
	Modules   map[string]*moduleEntryDoc `firestore:"Modules"`
	LastStep  int                        `firestore:"LastStep"`
	UpdatedAt time.Time                  `firestore:"UpdatedAt"`
}

type moduleEntryDoc struct {
	ProfileID string      `firestore:"ProfileID"`
	Summary   *summaryDoc `firestore:"Summary"`
}

func (d *sessionProfileDoc) toModel(userID string) *model.SessionProfile {
	profile := model.NewSessionProfile(userID)
	profile.LastStep = d.LastStep
	profile.UpdatedAt = d.UpdatedAt
	for module, entry := range d.Modules {
		if entry == nil {
			continue
		}
		profile.Modules[types.ModuleName(module)] = &model.ModuleEntry{
			ProfileID: entry.ProfileID,
			Summary:   entry.Summary.toModel(),
		}
	}
	return profile
}

type sessionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSessionRepository(client *firestore.Client) *sessionRepository {
	return &sessionRepository{
		client: client,
	}
}

func (r *sessionRepository) profileRef(userID string) *firestore.DocumentRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionSessionProfiles)).Doc(userID)
}

func (r *sessionRepository) Get(ctx context.Context, userID string) (*model.SessionProfile, error) {
	doc, err := r.profileRef(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.NewSessionProfile(userID), nil
		}
		return nil, goerr.Wrap(err, "failed to get session profile", goerr.V("userID", userID))
	}

	var d sessionProfileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal session profile", goerr.V("userID", userID))
	}
	return d.toModel(userID), nil
}

// PutModuleIfNewer reads the profile and writes only the Modules.<module>
// field path inside one transaction, so concurrent writers to other modules
// are never overwritten.
func (r *sessionRepository) PutModuleIfNewer(ctx context.Context, userID string, module types.ModuleName, entry *model.ModuleEntry) (bool, error) {
	if entry == nil || entry.Summary == nil {
		return false, goerr.New("module entry has no summary", goerr.V("module", module))
	}

	ref := r.profileRef(userID)
	var applied bool

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		applied = false

		doc, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get session profile")
		}
		if err == nil {
			var d sessionProfileDoc
			if err := doc.DataTo(&d); err != nil {
				return goerr.Wrap(err, "failed to unmarshal session profile")
			}
			if cur, ok := d.Modules[string(module)]; ok && cur != nil {
				if !model.Newer(entry.Summary, cur.Summary.toModel()) {
					return nil
				}
			}
		}

		data := map[string]any{
			"UserID": userID,
			"Modules": map[string]any{
				string(module): &moduleEntryDoc{
					ProfileID: entry.ProfileID,
					Summary:   toSummaryDoc(entry.Summary),
				},
			},
			"UpdatedAt": time.Now().UTC(),
		}
		applied = true
		return tx.Set(ref, data, firestore.Merge(
			[]string{"UserID"},
			[]string{"Modules", string(module)},
			[]string{"UpdatedAt"},
		))
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to put session module",
			goerr.V("userID", userID),
			goerr.V("module", module))
	}

	return applied, nil
}

func (r *sessionRepository) SaveProgress(ctx context.Context, userID string, lastStep int) error {
	data := map[string]any{
		"UserID":    userID,
		"LastStep":  lastStep,
		"UpdatedAt": time.Now().UTC(),
	}
	if _, err := r.profileRef(userID).Set(ctx, data, firestore.MergeAll); err != nil {
		return goerr.Wrap(err, "failed to save progress",
			goerr.V("userID", userID),
			goerr.V("lastStep", lastStep))
	}
	return nil
}
