package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
)

// operationService is the ledger engine. It owns the threshold decision at
// creation and the approve/reject transitions afterwards.
type operationService struct {
	operationRepo portsrepo.OperationRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	threshold     decimal.Decimal
}

// NewOperationService creates a new operation service with the given
// auto-validation threshold.
func NewOperationService(operationRepo portsrepo.OperationRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, threshold decimal.Decimal) portssvc.OperationSvcFacade {
	return &operationService{
		operationRepo: operationRepo,
		accountRepo:   accountRepo,
		threshold:     threshold,
	}
}

// Ensure operationService implements the portssvc.OperationSvcFacade interface
var _ portssvc.OperationSvcFacade = (*operationService)(nil)

// validateRequest checks the structural rules that do not need the database.
func (s *operationService) validateRequest(req dto.CreateOperationRequest) error {
	if !req.Kind.Valid() {
		return fmt.Errorf("%w: unknown operation kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be strictly positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	hasTarget := req.TargetAccountNumber != nil && *req.TargetAccountNumber != ""
	if req.Kind == domain.Transfer && !hasTarget {
		return fmt.Errorf("%w: transfer requires a target account number", apperrors.ErrValidation)
	}
	if req.Kind != domain.Transfer && hasTarget {
		return fmt.Errorf("%w: target account number is only valid for transfers", apperrors.ErrValidation)
	}
	return nil
}

// resolveTarget resolves a transfer's target account number to an account ID.
// Non-transfers resolve to the empty ID.
func (s *operationService) resolveTarget(ctx context.Context, op domain.Operation) (string, error) {
	if op.Kind != domain.Transfer {
		return "", nil
	}
	target, err := s.accountRepo.FindAccountByNumber(ctx, *op.TargetAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: target account %s", apperrors.ErrNotFound, *op.TargetAccountNumber)
		}
		return "", fmt.Errorf("failed to resolve target account: %w", err)
	}
	return target.AccountID, nil
}

// CreateOperation validates and records a new operation for the user's
// account. At or below the threshold the operation executes immediately in
// one transaction; above it the operation is parked PENDING with no balance
// effect.
func (s *operationService) CreateOperation(ctx context.Context, userID string, req dto.CreateOperationRequest) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for user %s: %w", userID, err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: user %s has no account", apperrors.ErrNotFound, userID)
	}
	source := accounts[0]

	now := time.Now()
	op := domain.Operation{
		OperationID:         uuid.NewString(),
		Kind:                req.Kind,
		Amount:              req.Amount,
		Status:              domain.Pending,
		Description:         req.Description,
		SourceAccountID:     source.AccountID,
		SourceAccountNumber: source.AccountNumber,
		TargetAccountNumber: req.TargetAccountNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	targetAccountID, err := s.resolveTarget(ctx, op)
	if err != nil {
		return nil, err
	}

	if op.Kind.RequiresBalanceCheck() && source.Balance.LessThan(op.Amount) {
		return nil, fmt.Errorf("%w: account %s holds %s, operation needs %s",
			apperrors.ErrInsufficientBalance, source.AccountNumber, source.Balance, op.Amount)
	}

	var balanceChanges map[string]decimal.Decimal
	if op.Amount.LessThanOrEqual(s.threshold) {
		op.Status = domain.Approved
		balanceChanges, err = op.BalanceChanges(targetAccountID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.operationRepo.SaveOperation(ctx, op, balanceChanges); err != nil {
		return nil, err
	}

	logger.Info("Operation created",
		slog.String("operation_id", op.OperationID),
		slog.String("kind", string(op.Kind)),
		slog.String("status", string(op.Status)),
		slog.String("amount", op.Amount.String()),
	)
	return &op, nil
}

// GetOperationByID retrieves a single operation.
func (s *operationService) GetOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	return s.operationRepo.FindOperationByID(ctx, operationID)
}

// ListOperationsByUser retrieves the operations of the user's accounts,
// newest first.
func (s *operationService) ListOperationsByUser(ctx context.Context, userID string) ([]domain.Operation, error) {
	return s.operationRepo.FindOperationsByUserID(ctx, userID)
}

// ListPendingOperations retrieves the review queue, oldest first.
func (s *operationService) ListPendingOperations(ctx context.Context) ([]domain.Operation, error) {
	return s.operationRepo.FindOperationsByStatus(ctx, domain.Pending)
}

// ApproveOperation finalizes a pending operation as APPROVED and applies its
// balance effect. Conditions that held at creation are re-validated here
// because the world may have moved since: the source balance may have been
// drained and a transfer target may have disappeared.
func (s *operationService) ApproveOperation(ctx context.Context, operationID string, reviewerUserID string) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	op, err := s.operationRepo.FindOperationByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	if op.Status != domain.Pending {
		return nil, fmt.Errorf("%w: operation %s is %s", apperrors.ErrOperationNotPending, operationID, op.Status)
	}

	targetAccountID, err := s.resolveTarget(ctx, *op)
	if err != nil {
		return nil, err
	}

	if op.Kind.RequiresBalanceCheck() {
		source, err := s.accountRepo.FindAccountByID(ctx, op.SourceAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to load source account for operation %s: %w", operationID, err)
		}
		if source.Balance.LessThan(op.Amount) {
			return nil, fmt.Errorf("%w: account %s holds %s, operation needs %s",
				apperrors.ErrInsufficientBalance, source.AccountNumber, source.Balance, op.Amount)
		}
	}

	balanceChanges, err := op.BalanceChanges(targetAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.operationRepo.FinalizeOperation(ctx, operationID, domain.Approved, balanceChanges, reviewerUserID, now); err != nil {
		return nil, err
	}

	logger.Info("Operation approved",
		slog.String("operation_id", operationID),
		slog.String("reviewer_id", reviewerUserID),
	)
	return s.operationRepo.FindOperationByID(ctx, operationID)
}

// RejectOperation finalizes a pending operation as REJECTED. Balances are
// never touched.
func (s *operationService) RejectOperation(ctx context.Context, operationID string, reviewerUserID string) (*domain.Operation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	op, err := s.operationRepo.FindOperationByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	if op.Status != domain.Pending {
		return nil, fmt.Errorf("%w: operation %s is %s", apperrors.ErrOperationNotPending, operationID, op.Status)
	}

	now := time.Now()
	if err := s.operationRepo.FinalizeOperation(ctx, operationID, domain.Rejected, nil, reviewerUserID, now); err != nil {
		return nil, err
	}

	logger.Info("Operation rejected",
		slog.String("operation_id", operationID),
		slog.String("reviewer_id", reviewerUserID),
	)
	return s.operationRepo.FindOperationByID(ctx, operationID)
}
