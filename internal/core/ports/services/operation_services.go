package services

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
)

// OperationSvcFacade is the ledger engine: it creates operations, decides
// auto-execution vs review, and drives the PENDING -> APPROVED/REJECTED
// transitions. All methods take the caller's identity explicitly; the engine
// holds no ambient session state.
type OperationSvcFacade interface {
	// CreateOperation validates and records an operation for the user's
	// account. Amounts at or below the auto-validation threshold execute
	// immediately and come back APPROVED with the balance effect already
	// applied; larger amounts come back PENDING with balances untouched.
	CreateOperation(ctx context.Context, userID string, req dto.CreateOperationRequest) (*domain.Operation, error)

	// GetOperationByID retrieves a single operation.
	GetOperationByID(ctx context.Context, operationID string) (*domain.Operation, error)

	// ListOperationsByUser retrieves the operations of the user's accounts.
	ListOperationsByUser(ctx context.Context, userID string) ([]domain.Operation, error)

	// ListPendingOperations retrieves the review queue, oldest first.
	ListPendingOperations(ctx context.Context) ([]domain.Operation, error)

	// ApproveOperation applies a PENDING operation's balance effect and marks
	// it APPROVED. Source balance (and target existence, for transfers) is
	// re-validated at approval time.
	ApproveOperation(ctx context.Context, operationID string, reviewerUserID string) (*domain.Operation, error)

	// RejectOperation marks a PENDING operation REJECTED. No balance effect.
	RejectOperation(ctx context.Context, operationID string, reviewerUserID string) (*domain.Operation, error)
}
