package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"reflect"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/albaraka/albaraka-digital-backend/internal/core/services"
	"github.com/albaraka/albaraka-digital-backend/internal/handlers"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
	"github.com/albaraka/albaraka-digital-backend/internal/platform/config"
	"github.com/albaraka/albaraka-digital-backend/internal/platform/seed"
	"github.com/albaraka/albaraka-digital-backend/internal/repositories/database/pgsql"
	redisrepo "github.com/albaraka/albaraka-digital-backend/internal/repositories/redis"
	"github.com/albaraka/albaraka-digital-backend/pkg/database"
)

// @title Al Baraka Digital Backend API
// @version 1.0
// @description Banking operation processing backend with threshold-gated review.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	runMigrations(logger, cfg.DatabaseURL)

	// Redis backs the token blacklist
	redisClient, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to initialize Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseRedisClient(redisClient)

	registerDecimalType()

	repos := pgsql.NewRepositories(dbPool)
	repos.TokenBlacklist = redisrepo.NewRedisTokenBlacklistRepository(redisClient)

	serviceContainer := services.NewServiceContainer(cfg, repos)

	if err := seed.SeedDefaultUsers(context.Background(), logger, repos.UserRepo, serviceContainer.Account); err != nil {
		logger.Error("Failed to seed default users", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, repos.TokenBlacklist)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// registerDecimalType teaches the request validator to treat decimal.Decimal
// as its string value, so binding tags like required work on amounts.
func registerDecimalType() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
	}
}

// runMigrations applies all pending up migrations. It uses a temporary
// database/sql connection via the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}
