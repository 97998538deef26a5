package firestore

import (
	"time"

	"github.com/mgprofile/mgprofile/pkg/domain/model"
)

// summaryDoc is the Firestore representation of model.Summary. It is embedded
// in both canonical records and session module entries.
type summaryDoc struct {
	SchemaVersion string                `firestore:"SchemaVersion"`
	StudentID     string                `firestore:"StudentID"`
	Sections      map[string]sectionDoc `firestore:"Sections"`
	RunID         string                `firestore:"RunID"`
	Model         string                `firestore:"Model"`
	CreatedAt     time.Time             `firestore:"CreatedAt"`
}

type sectionDoc struct {
	Text       string   `firestore:"Text"`
	Evidence   []string `firestore:"Evidence"`
	Confidence float64  `firestore:"Confidence"`
}

func toSummaryDoc(s *model.Summary) *summaryDoc {
	if s == nil {
		return nil
	}
	doc := &summaryDoc{
		SchemaVersion: s.SchemaVersion,
		StudentID:     s.StudentID,
		Sections:      make(map[string]sectionDoc, len(s.Sections)),
		RunID:         s.Meta.RunID,
		Model:         s.Meta.Model,
		CreatedAt:     s.Meta.CreatedAt,
	}
	for key, sec := range s.Sections {
		doc.Sections[key] = sectionDoc{
			Text:       sec.Text,
			Evidence:   sec.Evidence,
			Confidence: sec.Confidence,
		}
	}
	return doc
}

func (d *summaryDoc) toModel() *model.Summary {
	if d == nil {
		return nil
	}
	s := &model.Summary{
		SchemaVersion: d.SchemaVersion,
		StudentID:     d.StudentID,
		Sections:      make(map[string]model.Section, len(d.Sections)),
		Meta: model.SummaryMeta{
			RunID:     d.RunID,
			Model:     d.Model,
			CreatedAt: d.CreatedAt,
		},
	}
	for key, sec := range d.Sections {
		s.Sections[key] = model.Section{
			Text:       sec.Text,
			Evidence:   sec.Evidence,
			Confidence: sec.Confidence,
		}
	}
	return s
}
