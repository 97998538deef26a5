package model

import (
	"time"

	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

// Discrepancy is a per-module difference between the session and canonical stores
type Discrepancy struct {
	Module             types.ModuleName      `json:"module"`
	Kind               types.DiscrepancyKind `json:"kind"`
	SessionRunID       string                `json:"sessionRunId,omitempty"`
	SessionCreatedAt   *time.Time            `json:"sessionCreatedAt,omitempty"`
	CanonicalRunID     string                `json:"canonicalRunId,omitempty"`
	CanonicalCreatedAt *time.Time            `json:"canonicalCreatedAt,omitempty"`
}

// ValidationReport lists every discrepancy found for a user
type ValidationReport struct {
	UserID        string        `json:"userId"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// InSync returns true if both stores agree on every module
func (r *ValidationReport) InSync() bool {
	return len(r.Discrepancies) == 0
}
