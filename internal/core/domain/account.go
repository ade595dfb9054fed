package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a customer ledger account within the core domain.
// This is the primary representation used by services.
//
// Invariant: Balance never goes negative after a committed operation. The
// repository enforces this under row locks; services pre-check it for
// friendlier errors.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	AccountNumber string          `json:"accountNumber"` // Unique, customer facing (ALB-XXXXXXXX)
	UserID        string          `json:"userID"`        // FK -> users.user_id
	Balance       decimal.Decimal `json:"balance"`
	AuditFields
}
