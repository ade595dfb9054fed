package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	"github.com/albaraka/albaraka-digital-backend/internal/models"
	"github.com/albaraka/albaraka-digital-backend/internal/utils/mapping"
)

type PgxOperationRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxOperationRepository creates a new repository for operation data. It
// needs the account repository for the in-transaction balance work.
func newPgxOperationRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) portsrepo.OperationRepositoryFacade {
	return &PgxOperationRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxOperationRepository implements portsrepo.OperationRepositoryFacade
var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

// Operation reads join the source account so callers get the account number
// alongside the row. The number is presentation data and is never stored on
// the operations table itself.
const operationColumns = `o.operation_id, o.kind, o.amount, o.status, o.description, o.source_account_id, a.account_number, o.target_account_number, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by`

const operationFromClause = ` FROM operations o JOIN accounts a ON a.account_id = o.source_account_id`

func scanOperation(row pgx.Row) (*domain.Operation, error) {
	var m models.Operation
	var sourceAccountNumber string
	err := row.Scan(
		&m.OperationID,
		&m.Kind,
		&m.Amount,
		&m.Status,
		&m.Description,
		&m.SourceAccountID,
		&sourceAccountNumber,
		&m.TargetAccountNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	op := mapping.ToDomainOperation(m)
	op.SourceAccountNumber = sourceAccountNumber
	return &op, nil
}

func collectOperations(rows pgx.Rows) ([]domain.Operation, error) {
	defer rows.Close()
	ops := []domain.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation row: %w", err)
		}
		ops = append(ops, *op)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating operation rows: %w", rows.Err())
	}
	return ops, nil
}

func insertOperationTx(ctx context.Context, tx pgx.Tx, m models.Operation) error {
	query := `
		INSERT INTO operations (operation_id, kind, amount, status, description, source_account_id, target_account_number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.OperationID,
		m.Kind,
		m.Amount,
		m.Status,
		m.Description,
		m.SourceAccountID,
		m.TargetAccountNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

// SaveOperation inserts a new operation. When balanceChanges is non-empty the
// affected account rows are locked and the deltas applied in the same
// transaction, so an auto-executed operation and its balance effect commit
// together or not at all.
func (r *PgxOperationRepository) SaveOperation(ctx context.Context, operation domain.Operation, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelOperation(operation)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for id := range balanceChanges {
			accountIDs = append(accountIDs, id)
		}
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return err
		}
		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, m.CreatedBy, m.CreatedAt); err != nil {
			return err
		}
	}

	if err := insertOperationTx(ctx, tx, m); err != nil {
		return fmt.Errorf("failed to save operation %s: %w", m.OperationID, err)
	}

	return r.Commit(ctx, tx)
}

// FinalizeOperation transitions a pending operation to a terminal status and
// applies its balance effect in one transaction. The status write is a
// compare-and-swap on PENDING: if the row was already finalized by a
// concurrent reviewer, zero rows match and the caller gets
// ErrOperationNotPending (or ErrNotFound if the row is gone entirely).
func (r *PgxOperationRepository) FinalizeOperation(ctx context.Context, operationID string, status domain.OperationStatus, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for id := range balanceChanges {
			accountIDs = append(accountIDs, id)
		}
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return err
		}
		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
			return err
		}
	}

	query := `
		UPDATE operations
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE operation_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, operationID, models.OperationStatus(status), now, userID, models.OperationStatus(domain.Pending))
	if err != nil {
		return fmt.Errorf("failed to finalize operation %s: %w", operationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish "already finalized" from "no such operation".
		var current models.OperationStatus
		err := tx.QueryRow(ctx, `SELECT status FROM operations WHERE operation_id = $1;`, operationID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, operationID)
		}
		if err != nil {
			return fmt.Errorf("failed to re-read operation %s: %w", operationID, err)
		}
		return fmt.Errorf("%w: operation %s is %s", apperrors.ErrOperationNotPending, operationID, current)
	}

	return r.Commit(ctx, tx)
}

// FindOperationByID retrieves an operation by its ID.
func (r *PgxOperationRepository) FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + operationFromClause + ` WHERE o.operation_id = $1;`

	op, err := scanOperation(r.Pool.QueryRow(ctx, query, operationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operation by ID %s: %w", operationID, err)
	}
	return op, nil
}

// FindOperationsByUserID retrieves the operations whose source account belongs
// to the given user, newest first.
func (r *PgxOperationRepository) FindOperationsByUserID(ctx context.Context, userID string) ([]domain.Operation, error) {
	query := `SELECT ` + operationColumns + operationFromClause + ` WHERE a.user_id = $1 ORDER BY o.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations for user %s: %w", userID, err)
	}
	return collectOperations(rows)
}

// FindOperationsByAccountID retrieves the operations created against a source
// account, newest first.
func (r *PgxOperationRepository) FindOperationsByAccountID(ctx context.Context, accountID string) ([]domain.Operation, error) {
	query := `SELECT ` + operationColumns + operationFromClause + ` WHERE o.source_account_id = $1 ORDER BY o.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations for account %s: %w", accountID, err)
	}
	return collectOperations(rows)
}

// FindOperationsByStatus retrieves operations in the given status, oldest
// first, which is the order the review queue is worked in.
func (r *PgxOperationRepository) FindOperationsByStatus(ctx context.Context, status domain.OperationStatus) ([]domain.Operation, error) {
	query := `SELECT ` + operationColumns + operationFromClause + ` WHERE o.status = $1 ORDER BY o.created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, models.OperationStatus(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query operations with status %s: %w", status, err)
	}
	return collectOperations(rows)
}
