package repository

import (
	"errors"
	"io"

	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
)

// Composite serves each store from a possibly different backend
type Composite struct {
	session   interfaces.SessionRepository
	canonical interfaces.CanonicalRepository
	reference interfaces.ReferenceRepository
	closers   []io.Closer
}

var _ interfaces.Repository = &Composite{}

// Compose builds a Repository from individual stores. closers are closed in
// reverse order by Close; each backend client should be passed once.
func Compose(
	session interfaces.SessionRepository,
	canonical interfaces.CanonicalRepository,
	reference interfaces.ReferenceRepository,
	closers ...io.Closer,
) *Composite {
	return &Composite{
		session:   session,
		canonical: canonical,
		reference: reference,
		closers:   closers,
	}
}

func (c *Composite) Session() interfaces.SessionRepository {
	return c.session
}

func (c *Composite) Canonical() interfaces.CanonicalRepository {
	return c.canonical
}

func (c *Composite) Reference() interfaces.ReferenceRepository {
	return c.reference
}

func (c *Composite) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
