package retrieval_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/service/retrieval"
)

func TestClassification_Classify(t *testing.T) {
	c := retrieval.DefaultClassification()

	t.Run("fills missing metadata from category", func(t *testing.T) {
		doc := &model.ReferenceDocument{ID: "d1", Category: "best-practices", Status: types.DocumentStatusPublished}

		got := c.Classify(doc)
		gt.Value(t, got.DocumentType).Equal(types.DocumentTypeBoth)
		gt.Value(t, got.UsageTags).Equal(model.UsageTags{LessonPlans: true, Profiles: true, BestPractices: true})
		gt.Value(t, got.PriorityScores).Equal(model.PriorityScores{LessonPlans: 10, Profiles: 7})

		// input is not modified
		gt.Value(t, doc.DocumentType).Equal(types.DocumentType(""))
		gt.Bool(t, doc.UsageTags.IsZero()).True()
	})

	t.Run("keeps values already set", func(t *testing.T) {
		doc := &model.ReferenceDocument{
			ID:             "d1",
			Category:       "best-practices",
			DocumentType:   types.DocumentTypeLessonPlan,
			UsageTags:      model.UsageTags{LessonPlans: true},
			PriorityScores: model.PriorityScores{LessonPlans: 2},
		}

		got := c.Classify(doc)
		gt.Value(t, got.DocumentType).Equal(types.DocumentTypeLessonPlan)
		gt.Value(t, got.UsageTags).Equal(model.UsageTags{LessonPlans: true})
		gt.Value(t, got.PriorityScores).Equal(model.PriorityScores{LessonPlans: 2, Profiles: 7})
	})

	t.Run("clamps priorities", func(t *testing.T) {
		doc := &model.ReferenceDocument{
			ID:             "d1",
			Category:       "examples",
			PriorityScores: model.PriorityScores{LessonPlans: 42, Profiles: -3},
		}

		got := c.Classify(doc)
		gt.Value(t, got.PriorityScores).Equal(model.PriorityScores{LessonPlans: 10, Profiles: 1})
	})

	t.Run("unknown category is general", func(t *testing.T) {
		got := c.Classify(&model.ReferenceDocument{ID: "d1", Category: "misc"})
		gt.Value(t, got.DocumentType).Equal(types.DocumentTypeGeneral)
		gt.Bool(t, got.UsageTags.IsZero()).True()
		gt.Value(t, got.PriorityScores).Equal(model.PriorityScores{LessonPlans: 1, Profiles: 1})
	})
}

func TestClassification_Validate(t *testing.T) {
	gt.NoError(t, retrieval.DefaultClassification().Validate())

	gt.Error(t, retrieval.Classification{
		"bad": {DocumentType: "poster", PriorityScores: model.PriorityScores{LessonPlans: 1, Profiles: 1}},
	}.Validate())

	gt.Error(t, retrieval.Classification{
		"bad": {DocumentType: types.DocumentTypeBoth, PriorityScores: model.PriorityScores{LessonPlans: 11, Profiles: 1}},
	}.Validate())
}

func TestConfig_Validate(t *testing.T) {
	gt.NoError(t, retrieval.DefaultConfig().Validate())

	cfg := retrieval.DefaultConfig()
	cfg.TopN = 0
	gt.Error(t, cfg.Validate())

	cfg = retrieval.DefaultConfig()
	cfg.ExcerptLength = 0
	gt.Error(t, cfg.Validate())
}
