package repositories

import (
	"context"
	"time"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// UserRepository defines persistence operations for user data.
type UserRepository interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID. Soft-deleted users are not returned.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email. Soft-deleted users are not returned.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// UpdateUser updates name, email, role and active flag of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deleterUserID string, now time.Time) error

	// CountUsers returns the number of non-deleted users. Used by the seeder.
	CountUsers(ctx context.Context) (int64, error)
}
