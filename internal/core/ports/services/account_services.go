package services

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// AccountSvcFacade exposes account provisioning and lookups.
type AccountSvcFacade interface {
	// CreateAccountForUser provisions a zero-balance account with a fresh
	// unique account number for the given user.
	CreateAccountForUser(ctx context.Context, userID string, creatorUserID string) (*domain.Account, error)

	// ListAccountsByUser retrieves the user's accounts, oldest first.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// GetAccountByNumber retrieves an account by its customer-facing number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
}
