package services

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/dto"
)

// AuthSvcFacade handles credential verification and session tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed JWT carrying the user's
	// role.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// Logout blacklists the presented token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
