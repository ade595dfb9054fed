package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
	"github.com/albaraka/albaraka-digital-backend/internal/utils"
)

// maxAccountNumberAttempts bounds the retry loop on account number
// collisions. With an 8-digit space a collision is rare, a second one rarer.
const maxAccountNumberAttempts = 5

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccountForUser provisions a zero-balance account with a fresh unique
// account number.
func (s *accountService) CreateAccountForUser(ctx context.Context, userID string, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var accountNumber string
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		candidate, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, err
		}
		exists, err := s.accountRepo.AccountNumberExists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if !exists {
			accountNumber = candidate
			break
		}
	}
	if accountNumber == "" {
		return nil, fmt.Errorf("failed to allocate a unique account number after %d attempts", maxAccountNumberAttempts)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: accountNumber,
		UserID:        userID,
		Balance:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("user_id", userID),
	)
	return &account, nil
}

// ListAccountsByUser retrieves the user's accounts, oldest first.
func (s *accountService) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.accountRepo.FindAccountsByUserID(ctx, userID)
}

// GetAccountByNumber retrieves an account by its customer-facing number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}
