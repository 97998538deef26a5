package types

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// UseCase is the consumer context that parameterizes document eligibility and ranking
type UseCase string

const (
	UseCaseLessonPlans UseCase = "lessonPlans"
	UseCaseProfiles    UseCase = "profiles"
)

// AllUseCases returns all valid use cases
func AllUseCases() []UseCase {
	return []UseCase{
		UseCaseLessonPlans,
		UseCaseProfiles,
	}
}

// IsValid checks if the use case is valid
func (u UseCase) IsValid() bool {
	return slices.Contains(AllUseCases(), u)
}

// DocumentType returns the exact-purpose document type for the use case
func (u UseCase) DocumentType() DocumentType {
	switch u {
	case UseCaseLessonPlans:
		return DocumentTypeLessonPlan
	case UseCaseProfiles:
		return DocumentTypeProfile
	default:
		return ""
	}
}

// String returns the string representation of the use case
func (u UseCase) String() string {
	return string(u)
}

// ParseUseCase parses a string into a UseCase
func ParseUseCase(s string) (UseCase, error) {
	u := UseCase(s)
	if !u.IsValid() {
		return "", goerr.New("invalid use case",
			goerr.V("use_case", s),
			goerr.V("allowed", AllUseCases()))
	}
	return u, nil
}
