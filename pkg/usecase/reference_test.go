package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/repository/memory"
	"github.com/mgprofile/mgprofile/pkg/usecase"
)

func TestImportDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns IDs and publishes by default", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		docs := []*model.ReferenceDocument{
			{Title: "Fractions", Category: "examples", Content: "Bake and measure."},
			{ID: "fixed", Title: "Draft notes", Category: "style", Content: "Keep it warm.", Status: types.DocumentStatusDraft},
		}
		n, err := uc.Reference.ImportDocuments(ctx, docs)
		gt.NoError(t, err).Required()
		gt.Number(t, n).Equal(2)
		gt.Value(t, docs[0].ID).NotEqual(model.ReferenceDocumentID(""))

		published, err := repo.Reference().ListPublished(ctx, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, published).Length(1).Required()
		gt.Value(t, published[0].ID).Equal(docs[0].ID)

		draft, err := repo.Reference().Get(ctx, "fixed")
		gt.NoError(t, err).Required()
		gt.Value(t, draft.Status).Equal(types.DocumentStatusDraft)
	})

	t.Run("invalid document stores nothing", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		n, err := uc.Reference.ImportDocuments(ctx, []*model.ReferenceDocument{
			{Title: "ok", Category: "examples", Content: "fine"},
			{Title: "no content", Category: "examples"},
		})
		gt.Error(t, err)
		gt.Bool(t, model.IsInvalidInput(err)).True()
		gt.Number(t, n).Equal(0)

		published, err := repo.Reference().ListPublished(ctx, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, published).Length(0)
	})

	t.Run("invalid document type", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Reference.ImportDocuments(ctx, []*model.ReferenceDocument{
			{Title: "t", Category: "c", Content: "x", DocumentType: "slides"},
		})
		gt.Bool(t, model.IsInvalidInput(err)).True()
	})
}
