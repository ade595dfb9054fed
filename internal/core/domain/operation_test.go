package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

func TestOperationKindValid(t *testing.T) {
	assert.True(t, domain.Deposit.Valid())
	assert.True(t, domain.Withdrawal.Valid())
	assert.True(t, domain.Transfer.Valid())
	assert.False(t, domain.OperationKind("PAYMENT").Valid())
	assert.False(t, domain.OperationKind("").Valid())
}

func TestOperationKindRequiresBalanceCheck(t *testing.T) {
	assert.False(t, domain.Deposit.RequiresBalanceCheck())
	assert.True(t, domain.Withdrawal.RequiresBalanceCheck())
	assert.True(t, domain.Transfer.RequiresBalanceCheck())
}

func TestOperationStatusTerminal(t *testing.T) {
	assert.False(t, domain.Pending.Terminal())
	assert.True(t, domain.Approved.Terminal())
	assert.True(t, domain.Rejected.Terminal())
}

func TestBalanceChangesDeposit(t *testing.T) {
	op := domain.Operation{
		Kind:            domain.Deposit,
		Amount:          decimal.NewFromInt(250),
		SourceAccountID: "src",
	}

	changes, err := op.BalanceChanges("")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes["src"].Equal(decimal.NewFromInt(250)))
}

func TestBalanceChangesWithdrawal(t *testing.T) {
	op := domain.Operation{
		Kind:            domain.Withdrawal,
		Amount:          decimal.NewFromInt(250),
		SourceAccountID: "src",
	}

	changes, err := op.BalanceChanges("")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes["src"].Equal(decimal.NewFromInt(-250)))
}

func TestBalanceChangesTransfer(t *testing.T) {
	op := domain.Operation{
		Kind:            domain.Transfer,
		Amount:          decimal.NewFromInt(100),
		SourceAccountID: "src",
	}

	changes, err := op.BalanceChanges("dst")
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.True(t, changes["src"].Equal(decimal.NewFromInt(-100)))
	assert.True(t, changes["dst"].Equal(decimal.NewFromInt(100)))
}

func TestBalanceChangesSelfTransferNetsZero(t *testing.T) {
	op := domain.Operation{
		Kind:            domain.Transfer,
		Amount:          decimal.NewFromInt(100),
		SourceAccountID: "src",
	}

	changes, err := op.BalanceChanges("src")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.True(t, changes["src"].IsZero())
}

func TestBalanceChangesTransferWithoutTarget(t *testing.T) {
	op := domain.Operation{
		Kind:            domain.Transfer,
		Amount:          decimal.NewFromInt(100),
		SourceAccountID: "src",
	}

	_, err := op.BalanceChanges("")
	assert.Error(t, err)
}

func TestBalanceChangesUnknownKind(t *testing.T) {
	op := domain.Operation{
		Kind:            domain.OperationKind("PAYMENT"),
		Amount:          decimal.NewFromInt(100),
		SourceAccountID: "src",
	}

	_, err := op.BalanceChanges("")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	op := domain.Operation{
		Kind:        domain.Withdrawal,
		Amount:      decimal.NewFromInt(1500),
		Description: "rent",
	}

	assert.Equal(t, "Operation Type: WITHDRAWAL, Amount: 1500, Description: rent", op.Summary())
}
