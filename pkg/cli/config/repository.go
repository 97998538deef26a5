package config

import (
	"context"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/mgprofile/mgprofile/pkg/repository"
	"github.com/mgprofile/mgprofile/pkg/repository/firestore"
	"github.com/mgprofile/mgprofile/pkg/repository/memory"
	"github.com/mgprofile/mgprofile/pkg/repository/mongo"
	"github.com/mgprofile/mgprofile/pkg/repository/redis"
	"github.com/mgprofile/mgprofile/pkg/usecase"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendRedis     = "redis"
)

// Repository holds CLI flags for the three stores. Each store picks its own
// backend; clients are shared between stores that use the same backend.
type Repository struct {
	sessionBackend   string
	canonicalBackend string
	referenceBackend string

	projectID        string
	databaseID       string
	collectionPrefix string

	mongoURI      string
	mongoDatabase string

	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string

	storeTimeout  time.Duration
	maxRecords    int
	maxCandidates int
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "session-backend",
			Usage:       "Session store backend (memory, firestore or redis)",
			Category:    "Repository",
			Value:       BackendFirestore,
			Sources:     cli.EnvVars("MGPROFILE_SESSION_BACKEND"),
			Destination: &r.sessionBackend,
		},
		&cli.StringFlag{
			Name:        "canonical-backend",
			Usage:       "Canonical store backend (memory, firestore or mongo)",
			Category:    "Repository",
			Value:       BackendFirestore,
			Sources:     cli.EnvVars("MGPROFILE_CANONICAL_BACKEND"),
			Destination: &r.canonicalBackend,
		},
		&cli.StringFlag{
			Name:        "reference-backend",
			Usage:       "Reference document store backend (memory, firestore or mongo)",
			Category:    "Repository",
			Value:       BackendFirestore,
			Sources:     cli.EnvVars("MGPROFILE_REFERENCE_BACKEND"),
			Destination: &r.referenceBackend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when any store uses firestore)",
			Category:    "Firestore",
			Sources:     cli.EnvVars("MGPROFILE_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Firestore",
			Sources:     cli.EnvVars("MGPROFILE_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "collection-prefix",
			Usage:       "Prefix for Firestore and MongoDB collection names",
			Category:    "Repository",
			Sources:     cli.EnvVars("MGPROFILE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "mongo-uri",
			Usage:       "MongoDB connection URI (required when any store uses mongo)",
			Category:    "MongoDB",
			Sources:     cli.EnvVars("MGPROFILE_MONGO_URI"),
			Destination: &r.mongoURI,
		},
		&cli.StringFlag{
			Name:        "mongo-database",
			Usage:       "MongoDB database name",
			Category:    "MongoDB",
			Value:       "mgprofile",
			Sources:     cli.EnvVars("MGPROFILE_MONGO_DATABASE"),
			Destination: &r.mongoDatabase,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address host:port (required when the session store uses redis)",
			Category:    "Redis",
			Sources:     cli.EnvVars("MGPROFILE_REDIS_ADDR"),
			Destination: &r.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Redis",
			Sources:     cli.EnvVars("MGPROFILE_REDIS_PASSWORD"),
			Destination: &r.redisPassword,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Redis",
			Sources:     cli.EnvVars("MGPROFILE_REDIS_DB"),
			Destination: &r.redisDB,
		},
		&cli.StringFlag{
			Name:        "redis-key-prefix",
			Usage:       "Prefix for Redis keys",
			Category:    "Redis",
			Value:       "mgprofile:",
			Sources:     cli.EnvVars("MGPROFILE_REDIS_KEY_PREFIX"),
			Destination: &r.redisPrefix,
		},
		&cli.DurationFlag{
			Name:        "store-timeout",
			Usage:       "Timeout for a single store call",
			Category:    "Repository",
			Value:       usecase.DefaultStoreTimeout,
			Sources:     cli.EnvVars("MGPROFILE_STORE_TIMEOUT"),
			Destination: &r.storeTimeout,
		},
		&cli.IntFlag{
			Name:        "max-records",
			Usage:       "Maximum canonical records read per user",
			Category:    "Repository",
			Value:       usecase.DefaultMaxRecords,
			Sources:     cli.EnvVars("MGPROFILE_MAX_RECORDS"),
			Destination: &r.maxRecords,
		},
		&cli.IntFlag{
			Name:        "max-candidates",
			Usage:       "Maximum published reference documents scanned per retrieval",
			Category:    "Repository",
			Value:       usecase.DefaultMaxCandidates,
			Sources:     cli.EnvVars("MGPROFILE_MAX_CANDIDATES"),
			Destination: &r.maxCandidates,
		},
	}
}

// Backends returns the session, canonical and reference backend names
func (r *Repository) Backends() (session, canonical, reference string) {
	return r.sessionBackend, r.canonicalBackend, r.referenceBackend
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// UseCaseOptions returns the store limits as usecase options
func (r *Repository) UseCaseOptions() []usecase.Option {
	return []usecase.Option{
		usecase.WithStoreTimeout(r.storeTimeout),
		usecase.WithMaxRecords(r.maxRecords),
		usecase.WithMaxCandidates(r.maxCandidates),
	}
}

// Validate checks backend names and their required parameters
func (r *Repository) Validate() error {
	if err := checkBackend("session", r.sessionBackend, BackendMemory, BackendFirestore, BackendRedis); err != nil {
		return err
	}
	if err := checkBackend("canonical", r.canonicalBackend, BackendMemory, BackendFirestore, BackendMongo); err != nil {
		return err
	}
	if err := checkBackend("reference", r.referenceBackend, BackendMemory, BackendFirestore, BackendMongo); err != nil {
		return err
	}

	if r.uses(BackendFirestore) && r.projectID == "" {
		return goerr.Wrap(ErrMissingParameter, "firestore backend requires a project ID", goerr.V(ParameterKey, "firestore-project-id"))
	}
	if r.uses(BackendMongo) && r.mongoURI == "" {
		return goerr.Wrap(ErrMissingParameter, "mongo backend requires a URI", goerr.V(ParameterKey, "mongo-uri"))
	}
	if r.uses(BackendRedis) && r.redisAddr == "" {
		return goerr.Wrap(ErrMissingParameter, "redis backend requires an address", goerr.V(ParameterKey, "redis-addr"))
	}
	if r.storeTimeout <= 0 {
		return goerr.Wrap(ErrInvalidConfig, "store timeout must be positive", goerr.V("store_timeout", r.storeTimeout))
	}
	if r.maxRecords < 1 || r.maxCandidates < 1 {
		return goerr.Wrap(ErrInvalidConfig, "store limits must be positive",
			goerr.V("max_records", r.maxRecords),
			goerr.V("max_candidates", r.maxCandidates))
	}
	return nil
}

func checkBackend(store, backend string, allowed ...string) error {
	for _, a := range allowed {
		if backend == a {
			return nil
		}
	}
	return goerr.Wrap(ErrInvalidBackend, "unsupported backend for store",
		goerr.V(StoreKey, store),
		goerr.V(BackendKey, backend))
}

func (r *Repository) uses(backend string) bool {
	return r.sessionBackend == backend || r.canonicalBackend == backend || r.referenceBackend == backend
}

// Configure connects the configured backends and composes them into one
// repository. The caller is responsible for calling Close() on it.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var closers []io.Closer
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logging.Default().Error("failed to close backend", "error", err.Error())
			}
		}
	}

	var (
		mem *memory.Memory
		fs  *firestore.Firestore
		mdb *mongo.Mongo
		rdb *redis.Redis
	)

	if r.uses(BackendMemory) {
		mem = memory.New()
		closers = append(closers, mem)
		logging.Default().Info("Using in-memory repository (development mode)")
	}

	if r.uses(BackendFirestore) {
		client, err := firestore.New(ctx, r.projectID, r.databaseID, firestore.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			closeAll()
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		fs = client
		closers = append(closers, fs)
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
	}

	if r.uses(BackendMongo) {
		client, err := mongo.New(ctx, r.mongoURI, r.mongoDatabase, mongo.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			closeAll()
			return nil, goerr.Wrap(err, "failed to initialize mongo repository")
		}
		mdb = client
		closers = append(closers, mdb)
		logging.Default().Info("Using MongoDB repository", "database", r.mongoDatabase)
	}

	if r.uses(BackendRedis) {
		client, err := redis.New(ctx, r.redisAddr, r.redisPassword, r.redisDB, redis.WithKeyPrefix(r.redisPrefix))
		if err != nil {
			closeAll()
			return nil, goerr.Wrap(err, "failed to initialize redis repository")
		}
		rdb = client
		closers = append(closers, rdb)
		logging.Default().Info("Using Redis session store", "addr", r.redisAddr, "db", r.redisDB)
	}

	var session interfaces.SessionRepository
	switch r.sessionBackend {
	case BackendMemory:
		session = mem.Session()
	case BackendFirestore:
		session = fs.Session()
	case BackendRedis:
		session = rdb.Session()
	}

	var canonical interfaces.CanonicalRepository
	switch r.canonicalBackend {
	case BackendMemory:
		canonical = mem.Canonical()
	case BackendFirestore:
		canonical = fs.Canonical()
	case BackendMongo:
		canonical = mdb.Canonical()
	}

	var reference interfaces.ReferenceRepository
	switch r.referenceBackend {
	case BackendMemory:
		reference = mem.Reference()
	case BackendFirestore:
		reference = fs.Reference()
	case BackendMongo:
		reference = mdb.Reference()
	}

	return repository.Compose(session, canonical, reference, closers...), nil
}

// Mongo connects only the MongoDB backend, for index migration. It returns
// nil when mongo is not configured.
func (r *Repository) Mongo(ctx context.Context) (*mongo.Mongo, error) {
	if r.mongoURI == "" {
		return nil, nil
	}
	client, err := mongo.New(ctx, r.mongoURI, r.mongoDatabase, mongo.WithCollectionPrefix(r.collectionPrefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize mongo repository")
	}
	return client, nil
}

// CollectionPrefix returns the configured collection prefix
func (r *Repository) CollectionPrefix() string {
	return r.collectionPrefix
}

// HasMongo returns true if a MongoDB URI is configured
func (r *Repository) HasMongo() bool {
	return r.mongoURI != ""
}
