package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	RedisURL      string
	Port          string
	IsProduction  bool
	JWTSecret     string
	JWTExpiry     time.Duration
	JWTIssuer     string
	LoginRateSpec string

	// Business configuration
	AutoValidationThreshold decimal.Decimal
	DocumentUploadPath      string
	DocumentAllowedTypes    []string
	DocumentMaxSizeBytes    int64

	// Document validation (AI) collaborator
	AIEndpoint string
	AIAPIKey   string
	AIModel    string
	AITimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "albaraka-digital-backend")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("OPERATION_AUTO_VALIDATION_THRESHOLD", "10000")
	viper.SetDefault("DOCUMENT_UPLOAD_PATH", "./uploads")
	viper.SetDefault("DOCUMENT_ALLOWED_TYPES", []string{"pdf", "jpg", "jpeg", "png"})
	viper.SetDefault("DOCUMENT_MAX_SIZE_BYTES", int64(5*1024*1024))
	viper.SetDefault("AI_ENDPOINT", "")
	viper.SetDefault("AI_API_KEY", "")
	viper.SetDefault("AI_MODEL", "gpt-4o-mini")
	viper.SetDefault("AI_TIMEOUT", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LoginRateSpec = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiry = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	thresholdStr := viper.GetString("OPERATION_AUTO_VALIDATION_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil {
		threshold = decimal.NewFromInt(10000)
		log.Printf("Warning: Invalid value for OPERATION_AUTO_VALIDATION_THRESHOLD (%q). Defaulting to %s.\n", thresholdStr, threshold)
	}
	cfg.AutoValidationThreshold = threshold

	cfg.DocumentUploadPath = viper.GetString("DOCUMENT_UPLOAD_PATH")
	cfg.DocumentAllowedTypes = viper.GetStringSlice("DOCUMENT_ALLOWED_TYPES")
	cfg.DocumentMaxSizeBytes = viper.GetInt64("DOCUMENT_MAX_SIZE_BYTES")

	cfg.AIEndpoint = viper.GetString("AI_ENDPOINT")
	cfg.AIAPIKey = viper.GetString("AI_API_KEY")
	cfg.AIModel = viper.GetString("AI_MODEL")

	aiTimeoutStr := viper.GetString("AI_TIMEOUT")
	aiTimeout, err := time.ParseDuration(aiTimeoutStr)
	if err != nil {
		aiTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for AI_TIMEOUT (%q). Defaulting to %s.\n", aiTimeoutStr, aiTimeout)
	}
	cfg.AITimeout = aiTimeout

	return cfg, nil
}
