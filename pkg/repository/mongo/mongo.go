package mongo

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by point lookups when the document does not exist
var ErrNotFound = errors.New("not found")

const (
	collectionCanonicalRecords   = "canonical_records"
	collectionReferenceDocuments = "reference_documents"
)

// Mongo serves the canonical and reference stores. The session store is
// served by another backend.
type Mongo struct {
	client    *mongo.Client
	canonical *canonicalRepository
	reference *referenceRepository
}

type config struct {
	collectionPrefix string
}

type Option func(*config)

func WithCollectionPrefix(prefix string) Option {
	return func(c *config) {
		c.collectionPrefix = prefix
	}
}

func collectionName(prefix, base string) string {
	if prefix != "" {
		return prefix + "_" + base
	}
	return base
}

// New connects to MongoDB at uri and uses database
func New(ctx context.Context, uri, database string, opts ...Option) (*Mongo, error) {
	if uri == "" || database == "" {
		return nil, goerr.New("mongo URI and database are required")
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to mongo", goerr.V("database", database))
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, goerr.Wrap(err, "failed to ping mongo", goerr.V("database", database))
	}

	db := client.Database(database)
	return &Mongo{
		client:    client,
		canonical: newCanonicalRepository(db.Collection(collectionName(cfg.collectionPrefix, collectionCanonicalRecords))),
		reference: newReferenceRepository(db.Collection(collectionName(cfg.collectionPrefix, collectionReferenceDocuments))),
	}, nil
}

func (m *Mongo) Canonical() interfaces.CanonicalRepository {
	return m.canonical
}

func (m *Mongo) Reference() interfaces.ReferenceRepository {
	return m.reference
}

// EnsureIndexes creates the indexes both stores rely on. It is idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	if err := m.canonical.ensureIndexes(ctx); err != nil {
		return err
	}
	return m.reference.ensureIndexes(ctx)
}

func (m *Mongo) Close() error {
	if m.client != nil {
		return m.client.Disconnect(context.Background())
	}
	return nil
}
