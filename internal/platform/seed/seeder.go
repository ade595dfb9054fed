package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/utils"
)

// seederID marks rows created at bootstrap in the audit trail.
const seederID = "system:seeder"

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     domain.UserRole
}

var defaultUsers = []seedUser{
	{Name: "Admin", Email: "admin@albaraka.com", Password: "admin123!", Role: domain.RoleAdmin},
	{Name: "Agent", Email: "agent@albaraka.com", Password: "agent123!", Role: domain.RoleAgent},
	{Name: "Client", Email: "client@albaraka.com", Password: "client123!", Role: domain.RoleClient},
}

// SeedDefaultUsers creates the bootstrap admin, agent and client if the user
// table is empty. Clients and agents also get an account. Running against a
// populated database is a no-op.
func SeedDefaultUsers(ctx context.Context, logger *slog.Logger, userRepo portsrepo.UserRepository, accountSvc portssvc.AccountSvcFacade) error {
	count, err := userRepo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users for seeding: %w", err)
	}
	if count > 0 {
		logger.Info("Users already present, skipping seed")
		return nil
	}

	now := time.Now()
	for _, su := range defaultUsers {
		hash, err := utils.HashPassword(su.Password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", su.Email, err)
		}

		user := domain.User{
			UserID:       uuid.NewString(),
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: hash,
			Role:         su.Role,
			IsActive:     true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     seederID,
				LastUpdatedAt: now,
				LastUpdatedBy: seederID,
			},
		}
		if err := userRepo.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}

		if su.Role == domain.RoleClient || su.Role == domain.RoleAgent {
			if _, err := accountSvc.CreateAccountForUser(ctx, user.UserID, seederID); err != nil {
				return fmt.Errorf("failed to seed account for %s: %w", su.Email, err)
			}
		}

		logger.Info("Seeded user",
			slog.String("email", su.Email),
			slog.String("role", string(su.Role)),
		)
	}
	return nil
}
