package model

import "github.com/mgprofile/mgprofile/pkg/domain/types"

// ProfileSource tells where a profile module was read from
type ProfileSource string

const (
	ProfileSourceSession   ProfileSource = "session"
	ProfileSourceCanonical ProfileSource = "canonical"
)

// ProfileModule is one module of the complete profile
type ProfileModule struct {
	ProfileID string        `json:"profileId"`
	Summary   *Summary      `json:"summary"`
	Source    ProfileSource `json:"source"`
}

// Profile is the union of all known modules' latest summaries for a user
type Profile struct {
	UserID   string                              `json:"userId"`
	Modules  map[types.ModuleName]*ProfileModule `json:"modules"`
	LastStep int                                 `json:"lastStep"`
}
