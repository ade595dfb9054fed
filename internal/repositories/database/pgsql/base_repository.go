package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
)

// BaseRepository carries the shared pgx pool and the transaction plumbing the
// ledger repositories build on. An operation row and its balance effect always
// move through these helpers so they commit or roll back as one unit.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin opens a transaction on the pool.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit finishes the transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback abandons the transaction. It is safe to defer after a Commit: a
// transaction that already finished is not treated as a rollback failure.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, sql.ErrTxDone) || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return apperrors.NewAppError(500, "failed to rollback transaction", err)
}
