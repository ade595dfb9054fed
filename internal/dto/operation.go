package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// CreateOperationRequest defines the data needed to submit a new operation.
type CreateOperationRequest struct {
	Kind                domain.OperationKind `json:"kind" binding:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Amount              decimal.Decimal      `json:"amount" binding:"required"`
	Description         string               `json:"description"`
	TargetAccountNumber *string              `json:"targetAccountNumber"` // Transfers only
}

// OperationResponse defines the data returned for an operation. Accounts are
// exposed by account number only; internal account IDs never leave the API.
type OperationResponse struct {
	OperationID         string                 `json:"operationID"`
	Kind                domain.OperationKind   `json:"kind"`
	Amount              decimal.Decimal        `json:"amount"`
	Status              domain.OperationStatus `json:"status"`
	Description         string                 `json:"description"`
	AccountNumber       string                 `json:"accountNumber"`
	TargetAccountNumber *string                `json:"targetAccountNumber,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
}

// ToOperationResponse converts a domain.Operation to an OperationResponse DTO
func ToOperationResponse(op *domain.Operation) OperationResponse {
	return OperationResponse{
		OperationID:         op.OperationID,
		Kind:                op.Kind,
		Amount:              op.Amount,
		Status:              op.Status,
		Description:         op.Description,
		AccountNumber:       op.SourceAccountNumber,
		TargetAccountNumber: op.TargetAccountNumber,
		CreatedAt:           op.CreatedAt,
	}
}

// ToOperationResponses converts a slice of domain.Operation to response DTOs
func ToOperationResponses(ops []domain.Operation) []OperationResponse {
	res := make([]OperationResponse, len(ops))
	for i := range ops {
		res[i] = ToOperationResponse(&ops[i])
	}
	return res
}
