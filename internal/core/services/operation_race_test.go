package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/core/services"
)

// fakeOperationStore is an in-memory operation repository whose
// FinalizeOperation performs the same compare-and-swap on PENDING as the
// Postgres implementation, under a mutex.
type fakeOperationStore struct {
	mu  sync.Mutex
	ops map[string]domain.Operation
}

func newFakeOperationStore(ops ...domain.Operation) *fakeOperationStore {
	s := &fakeOperationStore{ops: make(map[string]domain.Operation)}
	for _, op := range ops {
		s.ops[op.OperationID] = op
	}
	return s
}

func (s *fakeOperationStore) FindOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.ops[operationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &op, nil
}

func (s *fakeOperationStore) FindOperationsByUserID(ctx context.Context, userID string) ([]domain.Operation, error) {
	return nil, nil
}

func (s *fakeOperationStore) FindOperationsByAccountID(ctx context.Context, accountID string) ([]domain.Operation, error) {
	return nil, nil
}

func (s *fakeOperationStore) FindOperationsByStatus(ctx context.Context, status domain.OperationStatus) ([]domain.Operation, error) {
	return nil, nil
}

func (s *fakeOperationStore) SaveOperation(ctx context.Context, operation domain.Operation, balanceChanges map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[operation.OperationID] = operation
	return nil
}

func (s *fakeOperationStore) FinalizeOperation(ctx context.Context, operationID string, status domain.OperationStatus, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.ops[operationID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if op.Status != domain.Pending {
		return fmt.Errorf("%w: operation %s is %s", apperrors.ErrOperationNotPending, operationID, op.Status)
	}
	op.Status = status
	s.ops[operationID] = op
	return nil
}

// fakeAccountStore serves the one account the race test needs.
type fakeAccountStore struct {
	MockAccountRepository
	account domain.Account
}

func (s *fakeAccountStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == s.account.AccountID {
		acc := s.account
		return &acc, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeAccountStore) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	return map[string]domain.Account{s.account.AccountID: s.account}, nil
}

// TestConcurrentFinalization drives many goroutines at the same pending
// operation, mixing approvals and rejections. Exactly one must win; everyone
// else must observe the already-finalized state.
func TestConcurrentFinalization(t *testing.T) {
	account := domain.Account{
		AccountID: uuid.NewString(),
		Balance:   decimal.NewFromInt(100000),
	}
	op := domain.Operation{
		OperationID:     uuid.NewString(),
		Kind:            domain.Withdrawal,
		Amount:          decimal.NewFromInt(50000),
		Status:          domain.Pending,
		SourceAccountID: account.AccountID,
	}

	opStore := newFakeOperationStore(op)
	accStore := &fakeAccountStore{account: account}
	svc := services.NewOperationService(opStore, accStore, decimal.NewFromInt(10000))

	const workers = 16
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		approve := i%2 == 0
		go func() {
			defer wg.Done()
			var err error
			if approve {
				_, err = svc.ApproveOperation(context.Background(), op.OperationID, uuid.NewString())
			} else {
				_, err = svc.RejectOperation(context.Background(), op.OperationID, uuid.NewString())
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, apperrors.ErrOperationNotPending)
			losses++
		}
	}

	assert.Equal(t, 1, wins, "exactly one finalization must succeed")
	assert.Equal(t, workers-1, losses)

	final, err := opStore.FindOperationByID(context.Background(), op.OperationID)
	require.NoError(t, err)
	assert.True(t, final.Status.Terminal())
}
