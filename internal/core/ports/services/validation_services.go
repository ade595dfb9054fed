package services

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// DocumentValidatorSvc is the external validation collaborator. It inspects a
// document against an operation summary and produces an approve/reject/review
// signal. Implementations degrade transport or parse failures to
// NEED_HUMAN_REVIEW rather than returning them where possible; callers must
// still treat a returned error as NEED_HUMAN_REVIEW.
type DocumentValidatorSvc interface {
	ValidateDocument(ctx context.Context, document []byte, contentType string, operationDetails string) (domain.ValidationResult, error)
}
