package config

import "time"

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(session, canonical, reference string) *Repository {
	return &Repository{
		sessionBackend:   session,
		canonicalBackend: canonical,
		referenceBackend: reference,
		mongoDatabase:    "mgprofile",
		storeTimeout:     10 * time.Second,
		maxRecords:       1000,
		maxCandidates:    500,
	}
}

// SetFirestoreForTest sets the Firestore project ID
func (r *Repository) SetFirestoreForTest(projectID string) {
	r.projectID = projectID
}

// SetMongoURIForTest sets the MongoDB URI
func (r *Repository) SetMongoURIForTest(uri string) {
	r.mongoURI = uri
}

// SetRedisAddrForTest sets the Redis address
func (r *Repository) SetRedisAddrForTest(addr string) {
	r.redisAddr = addr
}

// SetStoreTimeoutForTest sets the store timeout
func (r *Repository) SetStoreTimeoutForTest(d time.Duration) {
	r.storeTimeout = d
}

// NewRetrievalForTest creates a Retrieval config for testing purposes
func NewRetrievalForTest(path string) *Retrieval {
	return &Retrieval{configPath: path}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewLogHandlerForTest exposes the handler constructor
var NewLogHandlerForTest = newLogHandler
