package memory

import (
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
)

// Memory keeps all three stores in process. Data is lost on exit.
type Memory struct {
	session   *sessionRepository
	canonical *canonicalRepository
	reference *referenceRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		session:   newSessionRepository(),
		canonical: newCanonicalRepository(),
		reference: newReferenceRepository(),
	}
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.session
}

func (m *Memory) Canonical() interfaces.CanonicalRepository {
	return m.canonical
}

func (m *Memory) Reference() interfaces.ReferenceRepository {
	return m.reference
}

func (m *Memory) Close() error {
	return nil
}
