package services

import (
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Validator = NewAIDocumentValidator(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout)
	container.Auth = NewAuthService(repos.UserRepo, repos.TokenBlacklist, cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	container.Account = NewAccountService(repos.AccountRepo)
	container.User = NewUserService(repos.UserRepo, container.Account)
	container.Operation = NewOperationService(repos.OperationRepo, repos.AccountRepo, cfg.AutoValidationThreshold)
	container.Document = NewDocumentService(repos.DocumentRepo, container.Operation, container.Validator, cfg.DocumentUploadPath, cfg.DocumentAllowedTypes, cfg.DocumentMaxSizeBytes)

	return container
}
