package retrieval

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

// Category is the default metadata of a document category
type Category struct {
	DocumentType   types.DocumentType
	UsageTags      model.UsageTags
	PriorityScores model.PriorityScores
}

// Classification maps a category name to its default metadata
type Classification map[string]Category

// unclassified applies to documents whose category is not listed
var unclassified = Category{
	DocumentType:   types.DocumentTypeGeneral,
	PriorityScores: model.PriorityScores{LessonPlans: model.MinPriority, Profiles: model.MinPriority},
}

// DefaultClassification returns the built-in category table
func DefaultClassification() Classification {
	lessonPlanOnly := model.UsageTags{LessonPlans: true}
	profileOnly := model.UsageTags{Profiles: true}
	shared := model.UsageTags{LessonPlans: true, Profiles: true}

	return Classification{
		"examples": {
			DocumentType:   types.DocumentTypeBoth,
			UsageTags:      model.UsageTags{LessonPlans: true, Profiles: true, Examples: true},
			PriorityScores: model.PriorityScores{LessonPlans: 9, Profiles: 8},
		},
		"best-practices": {
			DocumentType:   types.DocumentTypeBoth,
			UsageTags:      model.UsageTags{LessonPlans: true, Profiles: true, BestPractices: true},
			PriorityScores: model.PriorityScores{LessonPlans: 10, Profiles: 7},
		},
		"processing-framework": {
			DocumentType:   types.DocumentTypeLessonPlan,
			UsageTags:      lessonPlanOnly,
			PriorityScores: model.PriorityScores{LessonPlans: 8, Profiles: 8},
		},
		"formatting": {
			DocumentType:   types.DocumentTypeLessonPlan,
			UsageTags:      lessonPlanOnly,
			PriorityScores: model.PriorityScores{LessonPlans: 3, Profiles: 4},
		},
		"presentation": {
			DocumentType:   types.DocumentTypeLessonPlan,
			UsageTags:      lessonPlanOnly,
			PriorityScores: model.PriorityScores{LessonPlans: 5, Profiles: 2},
		},
		"black-genius-elements": {
			DocumentType:   types.DocumentTypeProfile,
			UsageTags:      profileOnly,
			PriorityScores: model.PriorityScores{LessonPlans: 8, Profiles: 10},
		},
		"cultural-context": {
			DocumentType:   types.DocumentTypeProfile,
			UsageTags:      profileOnly,
			PriorityScores: model.PriorityScores{LessonPlans: 7, Profiles: 7},
		},
		"style": {
			DocumentType:   types.DocumentTypeProfile,
			UsageTags:      profileOnly,
			PriorityScores: model.PriorityScores{LessonPlans: 4, Profiles: 3},
		},
		"content-guidelines": {
			DocumentType:   types.DocumentTypeBoth,
			UsageTags:      shared,
			PriorityScores: model.PriorityScores{LessonPlans: 7, Profiles: 9},
		},
		"evidence-handling": {
			DocumentType:   types.DocumentTypeBoth,
			UsageTags:      shared,
			PriorityScores: model.PriorityScores{LessonPlans: 6, Profiles: 6},
		},
		"research": {
			DocumentType:   types.DocumentTypeGeneral,
			PriorityScores: model.PriorityScores{LessonPlans: 1, Profiles: 1},
		},
		"technical-format": {
			DocumentType:   types.DocumentTypeGeneral,
			PriorityScores: model.PriorityScores{LessonPlans: 2, Profiles: 5},
		},
	}
}

// Validate checks every category entry
func (c Classification) Validate() error {
	for name, cat := range c {
		if name == "" {
			return goerr.New("category name is empty")
		}
		if !cat.DocumentType.IsValid() {
			return goerr.New("invalid document type for category",
				goerr.V("category", name),
				goerr.V("document_type", cat.DocumentType))
		}
		for _, p := range []int{cat.PriorityScores.LessonPlans, cat.PriorityScores.Profiles} {
			if p < model.MinPriority || p > model.MaxPriority {
				return goerr.New("category priority out of range",
					goerr.V("category", name),
					goerr.V("priority", p))
			}
		}
	}
	return nil
}

// Classify returns a copy of doc with missing metadata filled from its
// category and priorities clamped into range. Set values are never replaced;
// usage tags are filled only when the document carries none.
func (c Classification) Classify(doc *model.ReferenceDocument) *model.ReferenceDocument {
	if doc == nil {
		return nil
	}

	cat, ok := c[doc.Category]
	if !ok {
		cat = unclassified
	}

	classified := doc.Copy()
	if classified.DocumentType == "" {
		classified.DocumentType = cat.DocumentType
	}
	if classified.UsageTags.IsZero() {
		classified.UsageTags = cat.UsageTags
	}
	if classified.PriorityScores.LessonPlans == 0 {
		classified.PriorityScores.LessonPlans = cat.PriorityScores.LessonPlans
	}
	if classified.PriorityScores.Profiles == 0 {
		classified.PriorityScores.Profiles = cat.PriorityScores.Profiles
	}
	classified.PriorityScores.LessonPlans = clampPriority(classified.PriorityScores.LessonPlans)
	classified.PriorityScores.Profiles = clampPriority(classified.PriorityScores.Profiles)

	return classified
}

func clampPriority(p int) int {
	return min(max(p, model.MinPriority), model.MaxPriority)
}
