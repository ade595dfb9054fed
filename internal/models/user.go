package models

import "time"

// UserRole mirrors domain.UserRole for DB storage.
type UserRole string

// User is the database representation of a user row.
type User struct {
	UserID       string   `db:"user_id"`
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
