package mongo

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type summaryDoc struct {
	SchemaVersion string                `bson:"schemaVersion"`
	StudentID     string                `bson:"studentId"`
	Sections      map[string]sectionDoc `bson:"sections"`
	RunID         string                `bson:"runId"`
	Model         string                `bson:"model"`
	CreatedAt     time.Time             `bson:"createdAt"`
}

type sectionDoc struct {
	Text       string   `bson:"text"`
	Evidence   []string `bson:"evidence"`
	Confidence float64  `bson:"confidence"`
}

type canonicalRecordDoc struct {
	ProfileID string     `bson:"profileId"`
	RunID     string     `bson:"runId"`
	Module    string     `bson:"module"`
	UserID    string     `bson:"userId"`
	Summary   summaryDoc `bson:"summary"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt"`
}

func toCanonicalRecordDoc(r *model.CanonicalRecord) *canonicalRecordDoc {
	doc := &canonicalRecordDoc{
		ProfileID: r.Key.ProfileID,
		RunID:     r.Key.RunID,
		Module:    string(r.Key.Module),
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if s := r.Summary; s != nil {
		doc.Summary = summaryDoc{
			SchemaVersion: s.SchemaVersion,
			StudentID:     s.StudentID,
			Sections:      make(map[string]sectionDoc, len(s.Sections)),
			RunID:         s.Meta.RunID,
			Model:         s.Meta.Model,
			CreatedAt:     s.Meta.CreatedAt,
		}
		for key, sec := range s.Sections {
			doc.Summary.Sections[key] = sectionDoc{Text: sec.Text, Evidence: sec.Evidence, Confidence: sec.Confidence}
		}
	}
	return doc
}

func (d *canonicalRecordDoc) toModel() *model.CanonicalRecord {
	summary := &model.Summary{
		SchemaVersion: d.Summary.SchemaVersion,
		StudentID:     d.Summary.StudentID,
		Sections:      make(map[string]model.Section, len(d.Summary.Sections)),
		Meta: model.SummaryMeta{
			RunID:     d.Summary.RunID,
			Model:     d.Summary.Model,
			CreatedAt: d.Summary.CreatedAt.UTC(),
		},
	}
	for key, sec := range d.Summary.Sections {
		summary.Sections[key] = model.Section{Text: sec.Text, Evidence: sec.Evidence, Confidence: sec.Confidence}
	}

	return &model.CanonicalRecord{
		Key: model.RecordKey{
			ProfileID: d.ProfileID,
			RunID:     d.RunID,
			Module:    types.ModuleName(d.Module),
		},
		UserID:    d.UserID,
		Summary:   summary,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func keyFilter(key model.RecordKey) bson.D {
	return bson.D{
		{Key: "profileId", Value: key.ProfileID},
		{Key: "runId", Value: key.RunID},
		{Key: "module", Value: string(key.Module)},
	}
}

type canonicalRepository struct {
	coll *mongo.Collection
}

func newCanonicalRepository(coll *mongo.Collection) *canonicalRepository {
	return &canonicalRepository{coll: coll}
}

func (r *canonicalRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "runId", Value: 1}, {Key: "module", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("record_key"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "runId", Value: -1}},
			Options: options.Index().SetName("user_created"),
		},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create canonical record indexes")
	}
	return nil
}

// Upsert relies on the unique record_key index. Two concurrent first writes
// can both try to insert; the loser gets a duplicate key error and retries as
// a plain update of the row the winner created.
func (r *canonicalRepository) Upsert(ctx context.Context, record *model.CanonicalRecord) error {
	if record == nil {
		return goerr.New("record is nil")
	}

	doc := toCanonicalRecordDoc(record)
	doc.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": doc}

	_, err := r.coll.UpdateOne(ctx, keyFilter(record.Key), update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		_, err = r.coll.UpdateOne(ctx, keyFilter(record.Key), update)
	}
	if err != nil {
		return goerr.Wrap(err, "failed to upsert canonical record", goerr.V("key", record.Key.String()))
	}
	return nil
}

func (r *canonicalRepository) Get(ctx context.Context, key model.RecordKey) (*model.CanonicalRecord, error) {
	var doc canonicalRecordDoc
	if err := r.coll.FindOne(ctx, keyFilter(key)).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, goerr.Wrap(ErrNotFound, "canonical record not found", goerr.V("key", key.String()))
		}
		return nil, goerr.Wrap(err, "failed to get canonical record", goerr.V("key", key.String()))
	}
	return doc.toModel(), nil
}

func (r *canonicalRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.CanonicalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "runId", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find canonical records", goerr.V("userID", userID))
	}

	var docs []canonicalRecordDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, goerr.Wrap(err, "failed to decode canonical records", goerr.V("userID", userID))
	}

	records := make([]*model.CanonicalRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toModel())
	}
	return records, nil
}
