package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
)

func newSummary(runID string, createdAt time.Time) *model.Summary {
	return &model.Summary{
		SchemaVersion: model.SchemaVersion,
		StudentID:     "student-1",
		Sections: map[string]model.Section{
			"interest_awareness": {
				Text:       "Loves building things with blocks",
				Evidence:   []string{"builds towers every afternoon"},
				Confidence: 0.8,
			},
		},
		Meta: model.SummaryMeta{
			RunID:     runID,
			Model:     "test-model",
			CreatedAt: createdAt,
		},
	}
}

func TestSummary_Validate(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("valid summary", func(t *testing.T) {
		gt.NoError(t, newSummary("r1", now).Validate())
	})

	tests := []struct {
		name   string
		mutate func(s *model.Summary)
	}{
		{name: "no sections", mutate: func(s *model.Summary) { s.Sections = nil }},
		{name: "empty run id", mutate: func(s *model.Summary) { s.Meta.RunID = "" }},
		{name: "zero createdAt", mutate: func(s *model.Summary) { s.Meta.CreatedAt = time.Time{} }},
		{name: "createdAt before epoch", mutate: func(s *model.Summary) {
			s.Meta.CreatedAt = time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
		}},
		{name: "createdAt beyond nanosecond range", mutate: func(s *model.Summary) {
			s.Meta.CreatedAt = time.Date(2263, 1, 1, 0, 0, 0, 0, time.UTC)
		}},
		{name: "confidence above one", mutate: func(s *model.Summary) {
			s.Sections["interest_awareness"] = model.Section{Text: "x", Confidence: 1.5}
		}},
		{name: "negative confidence", mutate: func(s *model.Summary) {
			s.Sections["interest_awareness"] = model.Section{Text: "x", Confidence: -0.1}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSummary("r1", now)
			tt.mutate(s)
			err := s.Validate()
			gt.Error(t, err)
			gt.Bool(t, model.IsInvalidInput(err)).True()
		})
	}

	t.Run("nil summary", func(t *testing.T) {
		var s *model.Summary
		gt.Bool(t, model.IsInvalidInput(s.Validate())).True()
	})
}

func TestSummary_Copy(t *testing.T) {
	orig := newSummary("r1", time.Now())
	copied := orig.Copy()

	sec := copied.Sections["interest_awareness"]
	sec.Evidence[0] = "changed"
	copied.Sections["interest_awareness"] = sec

	gt.Value(t, orig.Sections["interest_awareness"].Evidence[0]).Equal("builds towers every afternoon")
}

func TestNewer(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 10, 0, time.UTC)
	t2 := t1.Add(time.Second)

	gt.Bool(t, model.Newer(newSummary("r1", t2), newSummary("r1", t1))).True()
	gt.Bool(t, model.Newer(newSummary("r1", t1), newSummary("r1", t2))).False()

	// same run re-submitted replaces
	gt.Bool(t, model.Newer(newSummary("r1", t1), newSummary("r1", t1))).True()

	// equal timestamps resolve by run ID
	gt.Bool(t, model.Newer(newSummary("r2", t1), newSummary("r1", t1))).True()
	gt.Bool(t, model.Newer(newSummary("r1", t1), newSummary("r2", t1))).False()

	gt.Bool(t, model.Newer(newSummary("r1", t1), nil)).True()
	gt.Bool(t, model.Newer(nil, newSummary("r1", t1))).False()
}

func TestOlder(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 10, 0, time.UTC)
	t2 := t1.Add(time.Second)

	gt.Bool(t, model.Older(newSummary("r1", t1), newSummary("r1", t2))).True()
	gt.Bool(t, model.Older(newSummary("r1", t1), newSummary("r1", t1))).False()
	gt.Bool(t, model.Older(newSummary("r1", t1), newSummary("r2", t1))).True()
	gt.Bool(t, model.Older(nil, newSummary("r1", t1))).True()
	gt.Bool(t, model.Older(newSummary("r1", t1), nil)).False()
}
