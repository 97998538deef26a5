package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/repository"
	"github.com/mgprofile/mgprofile/pkg/repository/memory"
	"github.com/mgprofile/mgprofile/pkg/service/retrieval"
	"github.com/mgprofile/mgprofile/pkg/usecase"
	"github.com/sebdah/goldie/v2"
)

func seedReferences(t *testing.T, repo *memory.Memory) {
	t.Helper()

	docs := []*model.ReferenceDocument{
		{
			ID:             "doc-a",
			Title:          "Culturally Responsive Math",
			Category:       "examples",
			Content:        "Use fractions with recipes from the students' families.",
			DocumentType:   types.DocumentTypeBoth,
			UsageTags:      model.UsageTags{LessonPlans: true, Profiles: true, Examples: true},
			PriorityScores: model.PriorityScores{LessonPlans: 9, Profiles: 8},
			Status:         types.DocumentStatusPublished,
		},
		{
			ID:             "doc-b",
			Title:          "Processing Framework",
			Category:       "processing-framework",
			Content:        "Step 1: connect to prior knowledge. Step 2: model the fractions concept. Step 3: practice.",
			DocumentType:   types.DocumentTypeLessonPlan,
			UsageTags:      model.UsageTags{LessonPlans: true},
			PriorityScores: model.PriorityScores{LessonPlans: 8, Profiles: 8},
			Status:         types.DocumentStatusPublished,
		},
		{
			ID:             "doc-c",
			Title:          "Unreviewed Draft",
			Category:       "best-practices",
			Content:        "fractions fractions 3rd grade",
			DocumentType:   types.DocumentTypeBoth,
			UsageTags:      model.UsageTags{LessonPlans: true, Profiles: true},
			PriorityScores: model.PriorityScores{LessonPlans: 10, Profiles: 10},
			Status:         types.DocumentStatusDraft,
		},
		{
			ID:             "doc-d",
			Title:          "Black Genius Elements",
			Category:       "black-genius-elements",
			Content:        "Profile-only guidance about fractions.",
			DocumentType:   types.DocumentTypeProfile,
			UsageTags:      model.UsageTags{Profiles: true},
			PriorityScores: model.PriorityScores{LessonPlans: 8, Profiles: 10},
			Status:         types.DocumentStatusPublished,
		},
		{
			// metadata filled by classification
			ID:       "doc-e",
			Title:    "Formatting Notes",
			Category: "formatting",
			Content:  "Keep headings short.",
			Status:   types.DocumentStatusPublished,
		},
	}
	for _, doc := range docs {
		gt.NoError(t, repo.Reference().Put(context.Background(), doc)).Required()
	}
}

func smallExcerptConfig() retrieval.Config {
	cfg := retrieval.DefaultConfig()
	cfg.ExcerptLength = 40
	return cfg
}

func TestBuildContext(t *testing.T) {
	ctx := context.Background()
	criteria := model.Criteria{Terms: []string{"fractions"}, Grade: "3rd grade"}

	t.Run("renders ranked documents", func(t *testing.T) {
		repo := memory.New()
		seedReferences(t, repo)
		uc := usecase.New(repo, usecase.WithRetrievalConfig(smallExcerptConfig()))

		out := uc.Retrieval.BuildContext(ctx, types.UseCaseLessonPlans, criteria)

		g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
		g.Assert(t, "build_context_lesson_plans", []byte(out))
	})

	t.Run("output is byte-identical across calls", func(t *testing.T) {
		repo := memory.New()
		seedReferences(t, repo)
		uc := usecase.New(repo)

		first := uc.Retrieval.BuildContext(ctx, types.UseCaseLessonPlans, criteria)
		second := uc.Retrieval.BuildContext(ctx, types.UseCaseLessonPlans, criteria)
		gt.Value(t, first).NotEqual("")
		gt.Value(t, second).Equal(first)
	})

	t.Run("drafts never appear", func(t *testing.T) {
		repo := memory.New()
		seedReferences(t, repo)
		uc := usecase.New(repo)

		for _, u := range types.AllUseCases() {
			out := uc.Retrieval.BuildContext(ctx, u, criteria)
			gt.Bool(t, strings.Contains(out, "Unreviewed Draft")).False()
		}
	})

	t.Run("profiles use case selects profile documents", func(t *testing.T) {
		repo := memory.New()
		seedReferences(t, repo)
		uc := usecase.New(repo)

		out := uc.Retrieval.BuildContext(ctx, types.UseCaseProfiles, criteria)
		gt.Bool(t, strings.HasPrefix(out, "Document: Black Genius Elements\n")).True()
		gt.Bool(t, strings.Contains(out, "Processing Framework")).False()
	})

	t.Run("store failure degrades to empty context", func(t *testing.T) {
		mem := memory.New()
		uc := usecase.New(repository.Compose(mem.Session(), mem.Canonical(), failingReference{}))

		gt.Value(t, uc.Retrieval.BuildContext(ctx, types.UseCaseLessonPlans, criteria)).Equal("")
	})

	t.Run("invalid use case yields empty context", func(t *testing.T) {
		repo := memory.New()
		seedReferences(t, repo)
		uc := usecase.New(repo)

		gt.Value(t, uc.Retrieval.BuildContext(ctx, types.UseCase("lesson-plan"), criteria)).Equal("")
	})

	t.Run("no eligible documents yields empty context", func(t *testing.T) {
		uc := usecase.New(memory.New())
		gt.Value(t, uc.Retrieval.BuildContext(ctx, types.UseCaseLessonPlans, criteria)).Equal("")
	})
}

func TestExplain(t *testing.T) {
	ctx := context.Background()

	t.Run("returns scores and matched terms", func(t *testing.T) {
		repo := memory.New()
		seedReferences(t, repo)
		uc := usecase.New(repo)

		ranked, err := uc.Retrieval.Explain(ctx, types.UseCaseLessonPlans, model.Criteria{Terms: []string{"fractions"}})
		gt.NoError(t, err).Required()
		gt.Array(t, ranked).Length(3).Required()
		gt.Value(t, ranked[0].Document.ID).Equal(model.ReferenceDocumentID("doc-a"))
		gt.Number(t, ranked[0].Score).Equal(18)
		gt.Array(t, ranked[0].MatchedTerms).Equal([]string{"fractions"})
		gt.Value(t, ranked[1].Document.ID).Equal(model.ReferenceDocumentID("doc-b"))
		gt.Number(t, ranked[1].Score).Equal(16)
		gt.Value(t, ranked[2].Document.ID).Equal(model.ReferenceDocumentID("doc-e"))
		gt.Number(t, ranked[2].Score).Equal(3)
	})

	t.Run("reports store failure", func(t *testing.T) {
		mem := memory.New()
		uc := usecase.New(repository.Compose(mem.Session(), mem.Canonical(), failingReference{}))

		_, err := uc.Retrieval.Explain(ctx, types.UseCaseLessonPlans, model.Criteria{})
		gt.Bool(t, model.IsStoreUnavailable(err)).True()
	})

	t.Run("reports invalid use case", func(t *testing.T) {
		_, err := usecase.New(memory.New()).Retrieval.Explain(ctx, types.UseCase("students"), model.Criteria{})
		gt.Bool(t, model.IsInvalidInput(err)).True()
	})
}
