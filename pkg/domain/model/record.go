package model

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

// RecordKey is the idempotency key of a canonical record
type RecordKey struct {
	ProfileID string           `json:"profileId"`
	RunID     string           `json:"runId"`
	Module    types.ModuleName `json:"module"`
}

// String renders the key for logs
func (k RecordKey) String() string {
	return k.ProfileID + "/" + k.RunID + "/" + string(k.Module)
}

// DocID returns a stable document ID for the key. Parts are length-prefixed
// before hashing so that no choice of separator characters can collide.
func (k RecordKey) DocID() string {
	h := sha256.New()
	for _, part := range []string{k.ProfileID, k.RunID, string(k.Module)} {
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], uint64(len(part)))
		h.Write(size[:])
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalRecord is the durable copy of one handed-off summary
type CanonicalRecord struct {
	Key       RecordKey
	UserID    string
	Summary   *Summary
	CreatedAt time.Time // Summary.Meta.CreatedAt
	UpdatedAt time.Time // last write
}

// Copy returns a deep copy of the record
func (r *CanonicalRecord) Copy() *CanonicalRecord {
	if r == nil {
		return nil
	}
	return &CanonicalRecord{
		Key:       r.Key,
		UserID:    r.UserID,
		Summary:   r.Summary.Copy(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// LatestByModule picks the newest record per module
func LatestByModule(records []*CanonicalRecord) map[types.ModuleName]*CanonicalRecord {
	latest := make(map[types.ModuleName]*CanonicalRecord)
	for _, rec := range records {
		if rec == nil || rec.Summary == nil {
			continue
		}
		cur, ok := latest[rec.Key.Module]
		if !ok || Older(cur.Summary, rec.Summary) {
			latest[rec.Key.Module] = rec
		}
	}
	return latest
}

// HandoffResult is returned by a successful handoff
type HandoffResult struct {
	RecordKey      RecordKey `json:"recordKey"`
	SessionUpdated bool      `json:"sessionUpdated"`
}

// SyncResult is returned by a session repair
type SyncResult struct {
	ModulesUpdated int `json:"modulesUpdated"`
}
