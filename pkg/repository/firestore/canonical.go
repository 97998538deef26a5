package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type canonicalRecordDoc struct {
	ProfileID string      `firestore:"ProfileID"`
	RunID     string      `firestore:"RunID"`
	Module    string      `firestore:"Module"`
	UserID    string      `firestore:"UserID"`
	Summary   *summaryDoc `firestore:"Summary"`
	CreatedAt time.Time   `firestore:"CreatedAt"`
	UpdatedAt time.Time   `firestore:"UpdatedAt"`
}

func toCanonicalRecordDoc(r *model.CanonicalRecord) *canonicalRecordDoc {
	return &canonicalRecordDoc{
		ProfileID: r.Key.ProfileID,
		RunID:     r.Key.RunID,
		Module:    string(r.Key.Module),
		UserID:    r.UserID,
		Summary:   toSummaryDoc(r.Summary),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func docToCanonicalRecord(doc *firestore.DocumentSnapshot) (*model.CanonicalRecord, error) {
	var d canonicalRecordDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return &model.CanonicalRecord{
		Key: model.RecordKey{
			ProfileID: d.ProfileID,
			RunID:     d.RunID,
			Module:    types.ModuleName(d.Module),
		},
		UserID:    d.UserID,
		Summary:   d.Summary.toModel(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

type canonicalRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCanonicalRepository(client *firestore.Client) *canonicalRepository {
	return &canonicalRepository{
		client: client,
	}
}

func (r *canonicalRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionCanonicalRecords))
}

// Upsert replaces the whole document at the key's derived ID in one write
func (r *canonicalRepository) Upsert(ctx context.Context, record *model.CanonicalRecord) error {
	if record == nil {
		return goerr.New("record is nil")
	}

	doc := toCanonicalRecordDoc(record)
	doc.UpdatedAt = time.Now().UTC()

	if _, err := r.collection().Doc(record.Key.DocID()).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to upsert canonical record", goerr.V("key", record.Key.String()))
	}
	return nil
}

func (r *canonicalRepository) Get(ctx context.Context, key model.RecordKey) (*model.CanonicalRecord, error) {
	doc, err := r.collection().Doc(key.DocID()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "canonical record not found", goerr.V("key", key.String()))
		}
		return nil, goerr.Wrap(err, "failed to get canonical record", goerr.V("key", key.String()))
	}

	record, err := docToCanonicalRecord(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal canonical record", goerr.V("key", key.String()))
	}
	return record, nil
}

// ListByUser requires the (UserID, CreatedAt desc, RunID desc) composite index
func (r *canonicalRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.CanonicalRecord, error) {
	query := r.collection().
		Where("UserID", "==", userID).
		OrderBy("CreatedAt", firestore.Desc).
		OrderBy("RunID", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.CanonicalRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate canonical records", goerr.V("userID", userID))
		}

		record, err := docToCanonicalRecord(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal canonical record", goerr.V("docID", doc.Ref.ID))
		}
		records = append(records, record)
	}

	return records, nil
}
