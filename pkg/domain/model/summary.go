package model

import (
	"math"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// SchemaVersion is the summary shape version written by this service
const SchemaVersion = "1.0.0"

// CreatedAtPrecision is the finest createdAt resolution every store keeps.
// MongoDB stores milliseconds.
const CreatedAtPrecision = time.Millisecond

// createdAt must fit a nanosecond count since the epoch, which the Redis
// session store uses as its ordering key
var (
	minCreatedAt = time.Unix(0, 0)
	maxCreatedAt = time.Unix(0, math.MaxInt64)
)

// Summary is one module's generated output plus provenance
type Summary struct {
	SchemaVersion string             `json:"schemaVersion"`
	StudentID     string             `json:"studentId"`
	Sections      map[string]Section `json:"sections"`
	Meta          SummaryMeta        `json:"meta"`
}

// Section is the generated text for one section key
type Section struct {
	Text       string   `json:"text"`
	Evidence   []string `json:"evidence"`
	Confidence float64  `json:"confidence"`
}

// SummaryMeta identifies the generation attempt that produced a summary
type SummaryMeta struct {
	RunID     string    `json:"runId"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the summary shape
func (s *Summary) Validate() error {
	if s == nil {
		return goerr.New("summary is required", goerr.T(ErrTagInvalidInput))
	}
	if len(s.Sections) == 0 {
		return goerr.New("summary has no sections", goerr.T(ErrTagInvalidInput))
	}
	for key, sec := range s.Sections {
		if key == "" {
			return goerr.New("summary section key is empty", goerr.T(ErrTagInvalidInput))
		}
		if sec.Confidence < 0 || sec.Confidence > 1 {
			return goerr.New("section confidence must be between 0 and 1",
				goerr.V("section", key),
				goerr.V("confidence", sec.Confidence),
				goerr.T(ErrTagInvalidInput))
		}
	}
	if s.Meta.RunID == "" {
		return goerr.New("summary run ID is required", goerr.T(ErrTagInvalidInput))
	}
	if s.Meta.CreatedAt.IsZero() {
		return goerr.New("summary createdAt is required", goerr.V("run_id", s.Meta.RunID), goerr.T(ErrTagInvalidInput))
	}
	if s.Meta.CreatedAt.Before(minCreatedAt) || s.Meta.CreatedAt.After(maxCreatedAt) {
		return goerr.New("summary createdAt is out of range",
			goerr.V("run_id", s.Meta.RunID),
			goerr.V("created_at", s.Meta.CreatedAt),
			goerr.V("min", minCreatedAt),
			goerr.V("max", maxCreatedAt),
			goerr.T(ErrTagInvalidInput))
	}
	return nil
}

// Copy returns a deep copy of the summary
func (s *Summary) Copy() *Summary {
	if s == nil {
		return nil
	}
	copied := &Summary{
		SchemaVersion: s.SchemaVersion,
		StudentID:     s.StudentID,
		Meta:          s.Meta,
	}
	if s.Sections != nil {
		copied.Sections = make(map[string]Section, len(s.Sections))
		for key, sec := range s.Sections {
			evidence := make([]string, len(sec.Evidence))
			copy(evidence, sec.Evidence)
			copied.Sections[key] = Section{
				Text:       sec.Text,
				Evidence:   evidence,
				Confidence: sec.Confidence,
			}
		}
	}
	return copied
}

// Newer reports whether a should replace b under last-write-wins. Summaries are
// ordered by (createdAt, runID); an equal pair means a re-submission of the
// same run and replaces as well. A nil b is always replaced.
func Newer(a, b *Summary) bool {
	if b == nil {
		return true
	}
	if a == nil {
		return false
	}
	if !a.Meta.CreatedAt.Equal(b.Meta.CreatedAt) {
		return a.Meta.CreatedAt.After(b.Meta.CreatedAt)
	}
	return a.Meta.RunID >= b.Meta.RunID
}

// Older reports whether a sorts strictly before b
func Older(a, b *Summary) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	if !a.Meta.CreatedAt.Equal(b.Meta.CreatedAt) {
		return a.Meta.CreatedAt.Before(b.Meta.CreatedAt)
	}
	return a.Meta.RunID < b.Meta.RunID
}
