package models

import "github.com/shopspring/decimal"

// Account is the database representation of an account row.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	UserID        string          `db:"user_id"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}
