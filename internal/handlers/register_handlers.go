package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/albaraka/albaraka-digital-backend/cmd/docs"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
	"github.com/albaraka/albaraka-digital-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	blacklist portsrepo.TokenBlacklistRepository,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAuthRoutes(r, cfg, services, blacklist)
	setupRoleRoutes(r, cfg, services, blacklist)
	setupSwaggerRoutes(r, cfg)
}

// setupAuthRoutes wires /api/auth. Login is rate limited by client IP;
// logout requires a valid token.
func setupAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, blacklist portsrepo.TokenBlacklistRepository) {
	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateSpec)
	if err != nil {
		log.Printf("Invalid LOGIN_RATE_LIMIT %q, falling back to 10-M: %v\n", cfg.LoginRateSpec, err)
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	loginGroup := r.Group("/api/auth", middleware.RateLimit(ipLimiter))
	logoutGroup := r.Group("/api/auth", middleware.AuthMiddleware(cfg.JWTSecret, blacklist))
	registerAuthRoutes(loginGroup, logoutGroup, services.Auth)
}

// setupRoleRoutes configures the authenticated role-gated route groups.
func setupRoleRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, blacklist portsrepo.TokenBlacklistRepository) {
	authed := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret, blacklist))

	client := authed.Group("/client", middleware.RequireRole(domain.RoleClient))
	registerClientRoutes(client, services.Operation, services.Account, services.Document, cfg.DocumentMaxSizeBytes)

	agent := authed.Group("/agent", middleware.RequireRole(domain.RoleAgent, domain.RoleAdmin))
	registerAgentRoutes(agent, services.Operation, services.Account, services.Document)

	admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	registerAdminRoutes(admin, services.User, services.Account)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
