package types

// DiscrepancyKind classifies a per-module difference between the session and canonical stores
type DiscrepancyKind string

const (
	// DiscrepancyMissing: canonical has the module, session does not
	DiscrepancyMissing DiscrepancyKind = "missing"
	// DiscrepancyStale: session holds an older summary than canonical's latest
	DiscrepancyStale DiscrepancyKind = "stale"
	// DiscrepancyOrphaned: session has the module, canonical has no record of it
	DiscrepancyOrphaned DiscrepancyKind = "orphaned"
)

// String returns the string representation of the discrepancy kind
func (k DiscrepancyKind) String() string {
	return string(k)
}
