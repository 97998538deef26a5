package model

import "github.com/m-mizutani/goerr/v2"

// Error kinds surfaced by the sync and retrieval engines. They are attached to
// errors with goerr.T and checked with the Is* helpers below.
var (
	// ErrTagInvalidInput marks a missing or malformed required field. Never retried.
	ErrTagInvalidInput = goerr.NewTag("invalid_input")
	// ErrTagStoreUnavailable marks a transient store failure or timeout. Safe to
	// retry a handoff with the same run ID.
	ErrTagStoreUnavailable = goerr.NewTag("store_unavailable")
	// ErrTagConflict is reserved for a stricter consistency mode. Conflicts are
	// currently resolved by last-write-wins and never surfaced.
	ErrTagConflict = goerr.NewTag("conflict")
)

// IsInvalidInput reports whether err carries the invalid input tag
func IsInvalidInput(err error) bool {
	return goerr.HasTag(err, ErrTagInvalidInput)
}

// IsStoreUnavailable reports whether err carries the store unavailable tag
func IsStoreUnavailable(err error) bool {
	return goerr.HasTag(err, ErrTagStoreUnavailable)
}

// ErrorKind returns a stable name for the kind of err, used in API responses
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsInvalidInput(err):
		return "InvalidInput"
	case IsStoreUnavailable(err):
		return "StoreUnavailable"
	case goerr.HasTag(err, ErrTagConflict):
		return "Conflict"
	default:
		return "Internal"
	}
}
