package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	UserID        string          `json:"userID"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		UserID:        acc.UserID,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to response DTOs
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
