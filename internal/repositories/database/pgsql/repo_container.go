package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
)

// NewRepositories wires up the Postgres-backed repositories. The token
// blacklist lives in Redis and is attached by the caller.
func NewRepositories(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		OperationRepo: newPgxOperationRepository(pool, accountRepo),
		DocumentRepo:  newPgxDocumentRepository(pool),
		UserRepo:      newPgxUserRepository(pool),
	}
}
