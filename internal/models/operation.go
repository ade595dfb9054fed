package models

import "github.com/shopspring/decimal"

// OperationKind mirrors domain.OperationKind for DB storage.
type OperationKind string

// OperationStatus mirrors domain.OperationStatus for DB storage.
type OperationStatus string

// Operation is the database representation of an operation row.
type Operation struct {
	OperationID         string          `db:"operation_id"`
	Kind                OperationKind   `db:"kind"`
	Amount              decimal.Decimal `db:"amount"`
	Status              OperationStatus `db:"status"`
	Description         string          `db:"description"`
	SourceAccountID     string          `db:"source_account_id"`
	TargetAccountNumber *string         `db:"target_account_number"`
	AuditFields
}
