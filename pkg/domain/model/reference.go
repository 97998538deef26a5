package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

// ReferenceDocumentID identifies a reference document
type ReferenceDocumentID string

// NewReferenceDocumentID generates a new UUID v4 ReferenceDocumentID
func NewReferenceDocumentID() ReferenceDocumentID {
	return ReferenceDocumentID(uuid.New().String())
}

// UsageTags flags which consumers a document is intended for
type UsageTags struct {
	LessonPlans   bool `json:"lessonPlans" toml:"lesson_plans"`
	Profiles      bool `json:"profiles" toml:"profiles"`
	Examples      bool `json:"examples" toml:"examples"`
	BestPractices bool `json:"bestPractices" toml:"best_practices"`
}

// For returns the tag matching the use case
func (t UsageTags) For(u types.UseCase) bool {
	switch u {
	case types.UseCaseLessonPlans:
		return t.LessonPlans
	case types.UseCaseProfiles:
		return t.Profiles
	default:
		return false
	}
}

// IsZero returns true if no tag is set
func (t UsageTags) IsZero() bool {
	return t == UsageTags{}
}

// PriorityScores holds the per-use-case priority, 1 (lowest) to 10
type PriorityScores struct {
	LessonPlans int `json:"lessonPlans" toml:"lesson_plans"`
	Profiles    int `json:"profiles" toml:"profiles"`
}

// For returns the priority for the use case
func (p PriorityScores) For(u types.UseCase) int {
	switch u {
	case types.UseCaseLessonPlans:
		return p.LessonPlans
	case types.UseCaseProfiles:
		return p.Profiles
	default:
		return 0
	}
}

const (
	MinPriority = 1
	MaxPriority = 10
)

// ReferenceDocument is a curated document that can be injected into prompts
type ReferenceDocument struct {
	ID             ReferenceDocumentID  `json:"id"`
	Title          string               `json:"title"`
	Content        string               `json:"content"`
	Category       string               `json:"category"`
	DocumentType   types.DocumentType   `json:"documentType"`
	UsageTags      UsageTags            `json:"usageTags"`
	PriorityScores PriorityScores       `json:"priorityScores"`
	Status         types.DocumentStatus `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// EligibleFor reports whether the document may be used for the use case:
// published, tagged for it, and typed for it or for both.
func (d *ReferenceDocument) EligibleFor(u types.UseCase) bool {
	if d == nil || !u.IsValid() {
		return false
	}
	if d.Status != types.DocumentStatusPublished {
		return false
	}
	if !d.UsageTags.For(u) {
		return false
	}
	return d.DocumentType == u.DocumentType() || d.DocumentType == types.DocumentTypeBoth
}

// Copy returns a copy of the document
func (d *ReferenceDocument) Copy() *ReferenceDocument {
	if d == nil {
		return nil
	}
	copied := *d
	return &copied
}
