package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/interfaces"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/service/retrieval"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
)

// RetrievalUseCase builds prompt context from reference documents
type RetrievalUseCase struct {
	repo          interfaces.Repository
	cfg           retrieval.Config
	storeTimeout  time.Duration
	maxCandidates int
}

func NewRetrievalUseCase(repo interfaces.Repository, cfg retrieval.Config, storeTimeout time.Duration, maxCandidates int) *RetrievalUseCase {
	return &RetrievalUseCase{
		repo:          repo,
		cfg:           cfg,
		storeTimeout:  storeTimeout,
		maxCandidates: maxCandidates,
	}
}

// BuildContext renders the top ranked documents for the use case. Reference
// context is optional input for generation, so any failure yields "" and is
// only logged.
func (uc *RetrievalUseCase) BuildContext(ctx context.Context, useCase types.UseCase, criteria model.Criteria) string {
	ranked, err := uc.Explain(ctx, useCase, criteria)
	if err != nil {
		logging.From(ctx).Warn("reference context unavailable",
			"useCase", useCase,
			"error", err.Error())
		return ""
	}
	return retrieval.Render(ranked, uc.cfg)
}

// Explain returns the ranked documents BuildContext would render, with their
// scores and matched terms. Unlike BuildContext it reports errors.
func (uc *RetrievalUseCase) Explain(ctx context.Context, useCase types.UseCase, criteria model.Criteria) ([]retrieval.Ranked, error) {
	if !useCase.IsValid() {
		return nil, invalidInput("invalid use case", goerr.V("useCase", useCase))
	}

	docs, err := storeCall(ctx, uc.storeTimeout, "reference.listPublished", func(ctx context.Context) ([]*model.ReferenceDocument, error) {
		return uc.repo.Reference().ListPublished(ctx, uc.maxCandidates)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reference documents", goerr.V("useCase", useCase))
	}

	return retrieval.Rank(docs, useCase, criteria, uc.cfg), nil
}
