package domain

import "time"

// UserRole determines which API surface a user may call.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleAgent  UserRole = "AGENT"
	RoleClient UserRole = "CLIENT"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleClient:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
