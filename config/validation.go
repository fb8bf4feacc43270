package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// minSecretLength applies outside development and test
const minSecretLength = 32

// ValidateConfig checks the configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			if cfg.DBHost == "" {
				add("DB_HOST", "is required for the postgres driver")
			}
			if cfg.DBUser == "" {
				add("DB_USER", "is required for the postgres driver")
			}
			if cfg.DBName == "" {
				add("DB_NAME", "is required for the postgres driver")
			}
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	} else if (cfg.Environment == Production || cfg.Environment == CI) && len(cfg.JWTSecret) < minSecretLength {
		add("JWT_SECRET", fmt.Sprintf("must be at least %d characters", minSecretLength))
	}

	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		add("BCRYPT_COST", fmt.Sprintf("must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if cfg.S3BucketName != "" && cfg.AWSRegion == "" {
		add("AWS_REGION", "is required when S3_BUCKET_NAME is set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		add("LOG_LEVEL", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
