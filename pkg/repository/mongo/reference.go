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

type referenceDocumentDoc struct {
	ID             string          `bson:"_id"`
	Title          string          `bson:"title"`
	Content        string          `bson:"content"`
	Category       string          `bson:"category"`
	DocumentType   string          `bson:"documentType"`
	UsageTags      model.UsageTags `bson:"usageTags"`
	PriorityScores prioritiesDoc   `bson:"priorityScores"`
	Status         string          `bson:"status"`
	CreatedAt      time.Time       `bson:"createdAt"`
	UpdatedAt      time.Time       `bson:"updatedAt"`
}

type prioritiesDoc struct {
	LessonPlans int `bson:"lessonPlans"`
	Profiles    int `bson:"profiles"`
}

func (d *referenceDocumentDoc) toModel() *model.ReferenceDocument {
	return &model.ReferenceDocument{
		ID:           model.ReferenceDocumentID(d.ID),
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.Category,
		DocumentType: types.DocumentType(d.DocumentType),
		UsageTags:    d.UsageTags,
		PriorityScores: model.PriorityScores{
			LessonPlans: d.PriorityScores.LessonPlans,
			Profiles:    d.PriorityScores.Profiles,
		},
		Status:    types.DocumentStatus(d.Status),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type referenceRepository struct {
	coll *mongo.Collection
}

func newReferenceRepository(coll *mongo.Collection) *referenceRepository {
	return &referenceRepository{coll: coll}
}

func (r *referenceRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("status_id"),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create reference document indexes")
	}
	return nil
}

func (r *referenceRepository) Put(ctx context.Context, doc *model.ReferenceDocument) error {
	if doc == nil || doc.ID == "" {
		return goerr.New("reference document ID is required")
	}

	now := time.Now().UTC()
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	update := bson.M{
		"$set": bson.M{
			"title":        doc.Title,
			"content":      doc.Content,
			"category":     doc.Category,
			"documentType": string(doc.DocumentType),
			"usageTags":    doc.UsageTags,
			"priorityScores": prioritiesDoc{
				LessonPlans: doc.PriorityScores.LessonPlans,
				Profiles:    doc.PriorityScores.Profiles,
			},
			"status":    string(doc.Status),
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{"createdAt": createdAt},
	}

	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": string(doc.ID)}, update, options.Update().SetUpsert(true)); err != nil {
		return goerr.Wrap(err, "failed to put reference document", goerr.V("id", doc.ID))
	}
	return nil
}

func (r *referenceRepository) Get(ctx context.Context, id model.ReferenceDocumentID) (*model.ReferenceDocument, error) {
	var doc referenceDocumentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, goerr.Wrap(ErrNotFound, "reference document not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get reference document", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *referenceRepository) ListPublished(ctx context.Context, limit int) ([]*model.ReferenceDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"status": string(types.DocumentStatusPublished)}, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find reference documents")
	}

	var docs []referenceDocumentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, goerr.Wrap(err, "failed to decode reference documents")
	}

	result := make([]*model.ReferenceDocument, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toModel())
	}
	return result, nil
}
