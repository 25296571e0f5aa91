// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig builds AppConfig from the environment. A .env file in the
// working directory is merged in first without overriding variables the
// environment already sets.
func LoadConfig(logger *zap.Logger) (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not read .env file", zap.Error(err))
	}

	cfg := AppConfig{
		Env:             getEnv("ENV", "dev"),
		Port:            getEnv("HTTP_PORT", "8080"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "buzzboard"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-only-change-me-please-0123456789ABCDEF"),
		JWTIssuer:       getEnv("JWT_ISSUER", "buzzboard"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		UploadURLPrefix: getEnv("UPLOAD_URL_PREFIX", "/uploads"),
		BcryptCost:      bcrypt.DefaultCost,
	}

	ttl := getEnv("TOKEN_TTL", "168h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
	}
	cfg.TokenTTL = d

	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return AppConfig{}, fmt.Errorf("invalid BCRYPT_COST %q", raw)
		}
		cfg.BcryptCost = cost
	}

	for _, origin := range strings.Split(os.Getenv("CLIENT_URLS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.ClientURLs = append(cfg.ClientURLs, origin)
		}
	}

	return cfg, nil
}

// ValidateConfig enforces required fields and invariants before any
// connection is attempted. Returning an error aborts startup.
func ValidateConfig(cfg AppConfig, logger *zap.Logger) error {
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if !strings.HasPrefix(cfg.MongoURI, "mongodb://") && !strings.HasPrefix(cfg.MongoURI, "mongodb+srv://") {
		return fmt.Errorf("MONGO_URI must start with mongodb:// or mongodb+srv://")
	}
	if cfg.Env == "prod" && cfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("JWT_SECRET must be set in prod")
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// NewLogger builds the service logger for the configured environment.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
