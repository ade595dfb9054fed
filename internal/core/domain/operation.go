package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OperationKind is the closed set of monetary actions the ledger supports.
// Validation and balance-effect computation switch exhaustively over it, so
// adding a kind is a compile-surfacing change.
type OperationKind string

const (
	Deposit    OperationKind = "DEPOSIT"
	Withdrawal OperationKind = "WITHDRAWAL"
	Transfer   OperationKind = "TRANSFER"
)

// Valid reports whether the kind is one of the known operation kinds.
func (k OperationKind) Valid() bool {
	switch k {
	case Deposit, Withdrawal, Transfer:
		return true
	}
	return false
}

// OperationStatus indicates the lifecycle state of an operation.
//
// Pending is the only non-terminal status: an operation transitions out of it
// at most once (to Approved or Rejected) and never back.
type OperationStatus string

const (
	Pending  OperationStatus = "PENDING"
	Approved OperationStatus = "APPROVED"
	Rejected OperationStatus = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s OperationStatus) Terminal() bool {
	return s == Approved || s == Rejected
}

// Operation represents a requested monetary action against one or two accounts.
type Operation struct {
	OperationID         string          `json:"operationID"` // Primary Key (UUID)
	Kind                OperationKind   `json:"kind"`
	Amount              decimal.Decimal `json:"amount"` // Strictly positive
	Status              OperationStatus `json:"status"`
	Description         string          `json:"description"`
	SourceAccountID     string          `json:"sourceAccountID"`               // FK -> accounts.account_id
	SourceAccountNumber string          `json:"accountNumber"`                 // Hydrated from the source account, not stored on the row
	TargetAccountNumber *string         `json:"targetAccountNumber,omitempty"` // Transfers only
	AuditFields
}

// RequiresBalanceCheck reports whether the kind debits the source account and
// therefore needs a sufficient-balance check at creation and approval time.
func (k OperationKind) RequiresBalanceCheck() bool {
	return k == Withdrawal || k == Transfer
}

// BalanceChanges returns the per-account balance deltas the operation applies
// once approved, keyed by account ID. targetAccountID is only consulted for
// transfers. A transfer to the source account itself nets to zero.
func (o Operation) BalanceChanges(targetAccountID string) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, 2)
	switch o.Kind {
	case Deposit:
		changes[o.SourceAccountID] = o.Amount
	case Withdrawal:
		changes[o.SourceAccountID] = o.Amount.Neg()
	case Transfer:
		if targetAccountID == "" {
			return nil, fmt.Errorf("transfer %s has no resolved target account", o.OperationID)
		}
		changes[o.SourceAccountID] = changes[o.SourceAccountID].Sub(o.Amount)
		changes[targetAccountID] = changes[targetAccountID].Add(o.Amount)
	default:
		return nil, fmt.Errorf("unknown operation kind %q", o.Kind)
	}
	return changes, nil
}

// Summary renders the textual description handed to the document validation
// collaborator.
func (o Operation) Summary() string {
	return fmt.Sprintf("Operation Type: %s, Amount: %s, Description: %s", o.Kind, o.Amount.String(), o.Description)
}
