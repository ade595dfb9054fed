package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// OperationReader defines read operations for operation data
type OperationReader interface {
	// FindOperationByID retrieves an operation by its unique identifier.
	FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error)

	// FindOperationsByUserID retrieves the operations whose source account
	// belongs to the given user, newest first.
	FindOperationsByUserID(ctx context.Context, userID string) ([]domain.Operation, error)

	// FindOperationsByAccountID retrieves the operations created against a
	// specific source account, newest first.
	FindOperationsByAccountID(ctx context.Context, accountID string) ([]domain.Operation, error)

	// FindOperationsByStatus retrieves operations in the given status ordered
	// by creation time ascending (review queue order).
	FindOperationsByStatus(ctx context.Context, status domain.OperationStatus) ([]domain.Operation, error)
}

// OperationWriter defines the transactional write operations the ledger
// engine relies on. Both methods commit the operation row and its balance
// effect together or not at all.
type OperationWriter interface {
	// SaveOperation inserts a new operation. When balanceChanges is non-empty
	// (auto-executed operations) the deltas are applied in the same database
	// transaction as the insert, under account row locks.
	SaveOperation(ctx context.Context, operation domain.Operation, balanceChanges map[string]decimal.Decimal) error

	// FinalizeOperation transitions a PENDING operation to the given terminal
	// status and applies balanceChanges atomically. The status check and
	// write are a single compare-and-swap: of two racing finalizations,
	// exactly one succeeds and the other fails with
	// apperrors.ErrOperationNotPending.
	FinalizeOperation(ctx context.Context, operationID string, status domain.OperationStatus, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// OperationRepositoryFacade combines all operation-related repository interfaces.
type OperationRepositoryFacade interface {
	OperationReader
	OperationWriter
}
