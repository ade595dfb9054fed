package dto

import (
	"time"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a new user.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN AGENT CLIENT"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateUserRequest struct {
	Name  *string          `json:"name"`
	Email *string          `json:"email" binding:"omitempty,email"`
	Role  *domain.UserRole `json:"role" binding:"omitempty,oneof=ADMIN AGENT CLIENT"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to response DTOs
func ToUserResponses(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
