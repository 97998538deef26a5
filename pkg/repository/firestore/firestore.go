package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
)

// ErrNotFound is returned by point lookups when the document does not exist
var ErrNotFound = errors.New("not found")

// Base collection names. A configured prefix is joined with "_".
const (
	CollectionSessionProfiles    = "session_profiles"
	CollectionCanonicalRecords   = "canonical_records"
	CollectionReferenceDocuments = "reference_documents"
)

// CollectionName returns the collection name for base under prefix
func CollectionName(prefix, base string) string {
	if prefix != "" {
		return prefix + "_" + base
	}
	return base
}

type Firestore struct {
	client    *firestore.Client
	session   *sessionRepository
	canonical *canonicalRepository
	reference *referenceRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.session.collectionPrefix = prefix
		f.canonical.collectionPrefix = prefix
		f.reference.collectionPrefix = prefix
	}
}

// New creates a Firestore backed repository. An empty databaseID selects the
// default database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var (
		client *firestore.Client
		err    error
	)
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:    client,
		session:   newSessionRepository(client),
		canonical: newCanonicalRepository(client),
		reference: newReferenceRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Session() interfaces.SessionRepository {
	return f.session
}

func (f *Firestore) Canonical() interfaces.CanonicalRepository {
	return f.canonical
}

func (f *Firestore) Reference() interfaces.ReferenceRepository {
	return f.reference
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
