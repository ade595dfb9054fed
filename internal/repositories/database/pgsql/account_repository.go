package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	"github.com/albaraka/albaraka-digital-backend/internal/models"
	"github.com/albaraka/albaraka-digital-backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data. It
// returns the concrete type because the operation repository composes with it
// inside transactions.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, account_number, user_id, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.UserID,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, account_number, user_id, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.UserID,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByNumber retrieves an account by its customer-facing number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return acc, nil
}

// FindAccountsByUserID retrieves the accounts owned by a user, oldest first.
func (r *PgxAccountRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, *acc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for user %s: %w", userID, rows.Err())
	}
	return accounts, nil
}

// AccountNumberExists reports whether an account number is already taken.
func (r *PgxAccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNumber, err)
	}
	return exists, nil
}

// FindAccountsByIDsForUpdate selects accounts and locks their rows for update
// within the given transaction. IDs are locked in ascending order so that two
// transactions touching the same pair of accounts always acquire locks in the
// same sequence.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	accounts := make(map[string]domain.Account, len(sorted))
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	for _, id := range sorted {
		acc, err := scanAccount(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
			return nil, fmt.Errorf("failed to lock account %s: %w", id, err)
		}
		accounts[acc.AccountID] = *acc
	}
	return accounts, nil
}

// ApplyBalanceChangesInTx applies per-account deltas within the transaction.
// Rows must already be locked via FindAccountsByIDsForUpdate. A delta that
// would drive a balance negative aborts with ErrInsufficientBalance; the
// WHERE guard re-asserts the invariant at write time.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND balance + $2 >= 0;
	`
	for _, id := range ids {
		delta := balanceChanges[id]
		cmdTag, err := tx.Exec(ctx, query, id, delta, now, userID)
		if err != nil {
			return fmt.Errorf("failed to apply balance change to account %s: %w", id, err)
		}
		if cmdTag.RowsAffected() == 0 {
			// Row is locked by this transaction, so the only way to affect
			// zero rows is the non-negative guard.
			return fmt.Errorf("%w: account %s cannot absorb delta %s", apperrors.ErrInsufficientBalance, id, delta)
		}
	}
	return nil
}
