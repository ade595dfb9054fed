package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its customer-facing number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByUserID retrieves the accounts owned by a user, oldest first.
	FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error)

	// AccountNumberExists reports whether an account number is already taken.
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines the lock-scoped balance operations used
// by the operation repository inside its transactions.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within the given transaction. Rows are locked in ascending
	// account-ID order so that concurrent mutations of the same account pair
	// cannot deadlock.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies the given per-account deltas within the
	// transaction. The affected rows must already be locked via
	// FindAccountsByIDsForUpdate. A delta that would drive a balance negative
	// fails with apperrors.ErrInsufficientBalance.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
