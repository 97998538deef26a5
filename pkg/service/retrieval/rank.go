package retrieval

import (
	"sort"
	"strings"

	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

// Ranked is a selected document with the numbers that placed it
type Ranked struct {
	Document     *model.ReferenceDocument
	Score        int
	MatchedTerms []string
}

// Rank classifies docs, keeps those eligible for useCase and returns the top
// cfg.TopN ordered by score desc, exact document type before "both", then ID
// asc. The score is priority * (1 + number of distinct criteria terms found
// case-insensitively in title, category or content). Input documents are not
// modified.
func Rank(docs []*model.ReferenceDocument, useCase types.UseCase, criteria model.Criteria, cfg Config) []Ranked {
	if !useCase.IsValid() || cfg.TopN < 1 {
		return nil
	}

	terms := criteria.MatchTerms()
	var ranked []Ranked
	for _, doc := range docs {
		classified := cfg.Classification.Classify(doc)
		if !classified.EligibleFor(useCase) {
			continue
		}

		matched := matchTerms(classified, terms)
		ranked = append(ranked, Ranked{
			Document:     classified,
			Score:        classified.PriorityScores.For(useCase) * (1 + len(matched)),
			MatchedTerms: matched,
		})
	}

	exact := useCase.DocumentType()
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		aExact, bExact := a.Document.DocumentType == exact, b.Document.DocumentType == exact
		if aExact != bExact {
			return aExact
		}
		return a.Document.ID < b.Document.ID
	})

	if len(ranked) > cfg.TopN {
		ranked = ranked[:cfg.TopN]
	}
	return ranked
}

// matchTerms returns the terms found in the document. terms must already be
// lower-cased and distinct.
func matchTerms(doc *model.ReferenceDocument, terms []string) []string {
	if len(terms) == 0 {
		return nil
	}

	haystacks := []string{
		strings.ToLower(doc.Title),
		strings.ToLower(doc.Category),
		strings.ToLower(doc.Content),
	}

	var matched []string
	for _, term := range terms {
		for _, h := range haystacks {
			if strings.Contains(h, term) {
				matched = append(matched, term)
				break
			}
		}
	}
	return matched
}
