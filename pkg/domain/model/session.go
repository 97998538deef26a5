package model

import (
	"time"

	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

// ModuleEntry is the session view of one module's most recent summary
type ModuleEntry struct {
	ProfileID string   `json:"profileId"`
	Summary   *Summary `json:"summary"`
}

// Copy returns a deep copy of the entry
func (e *ModuleEntry) Copy() *ModuleEntry {
	if e == nil {
		return nil
	}
	return &ModuleEntry{
		ProfileID: e.ProfileID,
		Summary:   e.Summary.Copy(),
	}
}

// SessionProfile is the per-user aggregate in the session store
type SessionProfile struct {
	UserID    string                            `json:"userId"`
	Modules   map[types.ModuleName]*ModuleEntry `json:"modules"`
	LastStep  int                               `json:"lastStep"`
	UpdatedAt time.Time                         `json:"updatedAt"`
}

// NewSessionProfile returns an empty profile for userID
func NewSessionProfile(userID string) *SessionProfile {
	return &SessionProfile{
		UserID:  userID,
		Modules: make(map[types.ModuleName]*ModuleEntry),
	}
}

// Copy returns a deep copy of the profile
func (p *SessionProfile) Copy() *SessionProfile {
	if p == nil {
		return nil
	}
	copied := &SessionProfile{
		UserID:    p.UserID,
		Modules:   make(map[types.ModuleName]*ModuleEntry, len(p.Modules)),
		LastStep:  p.LastStep,
		UpdatedAt: p.UpdatedAt,
	}
	for module, entry := range p.Modules {
		copied.Modules[module] = entry.Copy()
	}
	return copied
}
