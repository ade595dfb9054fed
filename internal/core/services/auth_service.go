package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
	"github.com/albaraka/albaraka-digital-backend/internal/utils"
)

type authService struct {
	userRepo  portsrepo.UserRepository
	blacklist portsrepo.TokenBlacklistRepository
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepository, blacklist portsrepo.TokenBlacklistRepository, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		blacklist: blacklist,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and issues a signed JWT. Unknown email, wrong
// password and deactivated account all come back as the same
// ErrUnauthorized so the response does not leak which part failed.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Login attempt on deactivated account", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, user.Role, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// Logout blacklists the token for its remaining lifetime. An already expired
// or invalid token needs no blacklisting and is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ParseAndValidateJWT(token, s.jwtSecret)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return s.blacklist.BlacklistToken(ctx, token, ttl)
}
