package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
)

func TestToOperationResponse_ExposesAccountNumbers(t *testing.T) {
	target := "ALB-22222222"
	op := &domain.Operation{
		OperationID:         "op-1",
		Kind:                domain.Transfer,
		Amount:              decimal.NewFromInt(250),
		Status:              domain.Approved,
		Description:         "rent",
		SourceAccountID:     "internal-uuid",
		SourceAccountNumber: "ALB-11111111",
		TargetAccountNumber: &target,
		AuditFields:         domain.AuditFields{CreatedAt: time.Now()},
	}

	res := dto.ToOperationResponse(op)
	assert.Equal(t, "ALB-11111111", res.AccountNumber)
	assert.Equal(t, &target, res.TargetAccountNumber)

	// The internal account ID must not leak through the JSON body.
	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "internal-uuid")
	assert.Contains(t, string(body), `"accountNumber":"ALB-11111111"`)
}

func TestToOperationResponses_OmitsTargetForNonTransfers(t *testing.T) {
	ops := []domain.Operation{
		{OperationID: "op-1", Kind: domain.Deposit, SourceAccountNumber: "ALB-11111111"},
	}

	res := dto.ToOperationResponses(ops)
	require.Len(t, res, 1)

	body, err := json.Marshal(res[0])
	require.NoError(t, err)
	assert.NotContains(t, string(body), "targetAccountNumber")
}
