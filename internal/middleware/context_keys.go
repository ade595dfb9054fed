package middleware

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// GetUserRoleFromCtx retrieves the authenticated user's role from the context.
func GetUserRoleFromCtx(ctx context.Context) (domain.UserRole, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.UserRole)
	return role, ok
}
