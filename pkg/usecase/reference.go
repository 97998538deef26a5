package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
)

// ReferenceUseCase seeds and maintains reference documents
type ReferenceUseCase struct {
	repo         interfaces.Repository
	storeTimeout time.Duration
}

func NewReferenceUseCase(repo interfaces.Repository, storeTimeout time.Duration) *ReferenceUseCase {
	return &ReferenceUseCase{
		repo:         repo,
		storeTimeout: storeTimeout,
	}
}

// ImportDocuments validates every doc, then stores them in order. A document
// without an ID gets a new UUID and one without a status is published. It
// returns the number of documents stored.
func (uc *ReferenceUseCase) ImportDocuments(ctx context.Context, docs []*model.ReferenceDocument) (int, error) {
	for i, doc := range docs {
		if err := prepareDocument(doc); err != nil {
			return 0, goerr.Wrap(err, "invalid reference document", goerr.V("index", i))
		}
	}

	for i, doc := range docs {
		_, err := storeCall(ctx, uc.storeTimeout, "reference.put", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, uc.repo.Reference().Put(ctx, doc)
		})
		if err != nil {
			return i, goerr.Wrap(err, "failed to store reference document",
				goerr.V("index", i),
				goerr.V("id", doc.ID))
		}
		logging.From(ctx).Debug("reference document stored", "id", doc.ID, "category", doc.Category)
	}

	return len(docs), nil
}

func prepareDocument(doc *model.ReferenceDocument) error {
	if doc == nil {
		return invalidInput("document is nil")
	}
	if doc.Title == "" {
		return invalidInput("document title is required", goerr.V("id", doc.ID))
	}
	if doc.Content == "" {
		return invalidInput("document content is required", goerr.V("id", doc.ID))
	}
	if doc.Category == "" {
		return invalidInput("document category is required", goerr.V("id", doc.ID))
	}
	if doc.DocumentType != "" && !doc.DocumentType.IsValid() {
		return invalidInput("invalid document type", goerr.V("id", doc.ID), goerr.V("documentType", doc.DocumentType))
	}

	if doc.ID == "" {
		doc.ID = model.NewReferenceDocumentID()
	}
	if doc.Status == "" {
		doc.Status = types.DocumentStatusPublished
	}
	if !doc.Status.IsValid() {
		return invalidInput("invalid document status", goerr.V("id", doc.ID), goerr.V("status", doc.Status))
	}
	return nil
}
