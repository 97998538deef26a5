package usecase

import (
	"time"

	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/mgprofile/mgprofile/pkg/service/retrieval"
)

const (
	DefaultStoreTimeout  = 10 * time.Second
	DefaultMaxRecords    = 1000
	DefaultMaxCandidates = 500
)

type UseCases struct {
	repo          interfaces.Repository
	storeTimeout  time.Duration
	maxRecords    int
	maxCandidates int
	retrievalCfg  retrieval.Config

	Sync      *SyncUseCase
	Retrieval *RetrievalUseCase
	Reference *ReferenceUseCase
}

type Option func(*UseCases)

// WithStoreTimeout bounds every single store call
func WithStoreTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.storeTimeout = d
	}
}

// WithMaxRecords bounds the canonical records read per user
func WithMaxRecords(n int) Option {
	return func(uc *UseCases) {
		uc.maxRecords = n
	}
}

// WithMaxCandidates bounds the reference documents read per context request
func WithMaxCandidates(n int) Option {
	return func(uc *UseCases) {
		uc.maxCandidates = n
	}
}

func WithRetrievalConfig(cfg retrieval.Config) Option {
	return func(uc *UseCases) {
		uc.retrievalCfg = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		storeTimeout:  DefaultStoreTimeout,
		maxRecords:    DefaultMaxRecords,
		maxCandidates: DefaultMaxCandidates,
		retrievalCfg:  retrieval.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.storeTimeout <= 0 {
		uc.storeTimeout = DefaultStoreTimeout
	}

	uc.Sync = NewSyncUseCase(repo, uc.storeTimeout, uc.maxRecords)
	uc.Retrieval = NewRetrievalUseCase(repo, uc.retrievalCfg, uc.storeTimeout, uc.maxCandidates)
	uc.Reference = NewReferenceUseCase(repo, uc.storeTimeout)

	return uc
}
