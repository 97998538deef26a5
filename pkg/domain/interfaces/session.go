package interfaces

import (
	"context"

	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

// SessionRepository is the low-latency per-user profile store
type SessionRepository interface {
	// Get returns the user's session profile. A user with no profile yields an
	// empty profile, not an error.
	Get(ctx context.Context, userID string) (*model.SessionProfile, error)

	// PutModuleIfNewer writes entry into the single module field if the stored
	// entry is absent or model.Newer(entry.Summary, stored.Summary) holds. The
	// compare and the write are one atomic step. Other modules are untouched.
	// Returns true if the entry was written.
	PutModuleIfNewer(ctx context.Context, userID string, module types.ModuleName, entry *model.ModuleEntry) (bool, error)

	// SaveProgress sets the user's lastStep cursor without touching modules
	SaveProgress(ctx context.Context, userID string, lastStep int) error
}
