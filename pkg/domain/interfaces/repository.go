package interfaces

// Repository groups the three stores the engines depend on. Each store may be
// served by a different backend.
type Repository interface {
	Session() SessionRepository
	Canonical() CanonicalRepository
	Reference() ReferenceRepository

	Close() error
}
