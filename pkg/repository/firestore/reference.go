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

type referenceDocumentDoc struct {
	ID           string    `firestore:"ID"`
	Title        string    `firestore:"Title"`
	Content      string    `firestore:"Content"`
	Category     string    `firestore:"Category"`
	DocumentType string    `firestore:"DocumentType"`
	UsageTags    usageDoc  `firestore:"UsageTags"`
	Priority     prioDoc   `firestore:"PriorityScores"`
	Status       string    `firestore:"Status"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
	UpdatedAt    time.Time `firestore:"UpdatedAt"`
}

type usageDoc struct {
	LessonPlans   bool `firestore:"LessonPlans"`
	Profiles      bool `firestore:"Profiles"`
	Examples      bool `firestore:"Examples"`
	BestPractices bool `firestore:"BestPractices"`
}

type prioDoc struct {
	LessonPlans int `firestore:"LessonPlans"`
	Profiles    int `firestore:"Profiles"`
}

func toReferenceDocumentDoc(d *model.ReferenceDocument) *referenceDocumentDoc {
	return &referenceDocumentDoc{
		ID:           string(d.ID),
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.Category,
		DocumentType: string(d.DocumentType),
		UsageTags: usageDoc{
			LessonPlans:   d.UsageTags.LessonPlans,
			Profiles:      d.UsageTags.Profiles,
			Examples:      d.UsageTags.Examples,
			BestPractices: d.UsageTags.BestPractices,
		},
		Priority: prioDoc{
			LessonPlans: d.PriorityScores.LessonPlans,
			Profiles:    d.PriorityScores.Profiles,
		},
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func docToReferenceDocument(doc *firestore.DocumentSnapshot) (*model.ReferenceDocument, error) {
	var d referenceDocumentDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return &model.ReferenceDocument{
		ID:           model.ReferenceDocumentID(d.ID),
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.Category,
		DocumentType: types.DocumentType(d.DocumentType),
		UsageTags: model.UsageTags{
			LessonPlans:   d.UsageTags.LessonPlans,
			Profiles:      d.UsageTags.Profiles,
			Examples:      d.UsageTags.Examples,
			BestPractices: d.UsageTags.BestPractices,
		},
		PriorityScores: model.PriorityScores{
			LessonPlans: d.Priority.LessonPlans,
			Profiles:    d.Priority.Profiles,
		},
		Status:    types.DocumentStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

type referenceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReferenceRepository(client *firestore.Client) *referenceRepository {
	return &referenceRepository{
		client: client,
	}
}

func (r *referenceRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionReferenceDocuments))
}

func (r *referenceRepository) Put(ctx context.Context, doc *model.ReferenceDocument) error {
	if doc == nil || doc.ID == "" {
		return goerr.New("reference document ID is required")
	}

	ref := r.collection().Doc(string(doc.ID))
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		data := toReferenceDocumentDoc(doc)
		now := time.Now().UTC()
		data.UpdatedAt = now

		existing, err := tx.Get(ref)
		switch {
		case err == nil:
			prev, err := docToReferenceDocument(existing)
			if err != nil {
				return goerr.Wrap(err, "failed to unmarshal reference document")
			}
			data.CreatedAt = prev.CreatedAt
		case status.Code(err) == codes.NotFound:
			if data.CreatedAt.IsZero() {
				data.CreatedAt = now
			}
		default:
			return goerr.Wrap(err, "failed to get reference document")
		}

		return tx.Set(ref, data)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put reference document", goerr.V("id", doc.ID))
	}
	return nil
}

func (r *referenceRepository) Get(ctx context.Context, id model.ReferenceDocumentID) (*model.ReferenceDocument, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "reference document not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get reference document", goerr.V("id", id))
	}

	d, err := docToReferenceDocument(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal reference document", goerr.V("id", id))
	}
	return d, nil
}

func (r *referenceRepository) ListPublished(ctx context.Context, limit int) ([]*model.ReferenceDocument, error) {
	query := r.collection().
		Where("Status", "==", string(types.DocumentStatusPublished)).
		OrderBy(firestore.DocumentID, firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []*model.ReferenceDocument
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reference documents")
		}

		d, err := docToReferenceDocument(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal reference document", goerr.V("docID", doc.Ref.ID))
		}
		docs = append(docs, d)
	}

	return docs, nil
}
