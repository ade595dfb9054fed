package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
	"github.com/albaraka/albaraka-digital-backend/internal/utils"
)

type userService struct {
	userRepo   portsrepo.UserRepository
	accountSvc portssvc.AccountSvcFacade
}

// NewUserService creates a new user service. The account service is used to
// provision accounts for newly created clients and agents.
func NewUserService(userRepo portsrepo.UserRepository, accountSvc portssvc.AccountSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:   userRepo,
		accountSvc: accountSvc,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a new user. Clients and agents also get a zero-balance
// account provisioned immediately.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == domain.RoleClient || user.Role == domain.RoleAgent {
		if _, err := s.accountSvc.CreateAccountForUser(ctx, user.UserID, creatorUserID); err != nil {
			return nil, fmt.Errorf("user created but account provisioning failed: %w", err)
		}
	}

	logger.Info("User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)),
	)
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a page of users.
func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// UpdateUser applies the provided fields to an existing user.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a user.
func (s *userService) DeleteUser(ctx context.Context, userID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.userRepo.MarkUserDeleted(ctx, userID, deleterUserID, time.Now()); err != nil {
		return err
	}

	logger.Info("User deleted", slog.String("user_id", userID), slog.String("deleted_by", deleterUserID))
	return nil
}

// ToggleUserStatus flips a user's active flag. Inactive users can no longer
// log in.
func (s *userService) ToggleUserStatus(ctx context.Context, userID string, updaterUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}

	logger.Info("User status toggled",
		slog.String("user_id", userID),
		slog.Bool("is_active", user.IsActive),
	)
	return user, nil
}
