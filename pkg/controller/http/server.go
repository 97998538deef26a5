package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/utils/safe"
)

// SyncUseCase is the subset of usecase.SyncUseCase served over HTTP
type SyncUseCase interface {
	Handoff(ctx context.Context, userID string, summary *model.Summary, profileID, runID string, module types.ModuleName) (*model.HandoffResult, error)
	SyncToSession(ctx context.Context, userID string) (*model.SyncResult, error)
	GetCompleteProfile(ctx context.Context, userID string) (*model.Profile, error)
	ValidateSync(ctx context.Context, userID string) (*model.ValidationReport, error)
	SaveProgress(ctx context.Context, userID string, lastStep int) error
}

// RetrievalUseCase is the subset of usecase.RetrievalUseCase served over HTTP
type RetrievalUseCase interface {
	BuildContext(ctx context.Context, useCase types.UseCase, criteria model.Criteria) string
}

// DefaultMaxBodyBytes is the request body limit when none is configured
const DefaultMaxBodyBytes int64 = 1 << 20

type Server struct {
	router       *chi.Mux
	sync         SyncUseCase
	retrieval    RetrievalUseCase
	validate     *validator.Validate
	maxBodyBytes int64
}

type Options func(*Server)

// WithMaxBodyBytes limits the size of request bodies
func WithMaxBodyBytes(n int64) Options {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

func New(syncUC SyncUseCase, retrievalUC RetrievalUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:       r,
		sync:         syncUC,
		retrieval:    retrievalUC,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(panicRecoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		safe.Write(r.Context(), w, []byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/handoff", s.handoffHandler)
		r.Post("/sync", s.syncHandler)
		r.Post("/progress", s.progressHandler)
		r.Get("/profile", s.profileHandler)
		r.Get("/validate", s.validateHandler)
		r.Get("/context", s.contextHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
