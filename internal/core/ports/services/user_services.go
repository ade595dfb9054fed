package services

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
)

// UserSvcFacade exposes user administration. Creating a CLIENT or AGENT also
// provisions their account.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error
	ToggleUserStatus(ctx context.Context, userID string, updaterUserID string) (*domain.User, error)
}
