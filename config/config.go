package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort         string
	ServerHost         string
	CORSAllowedOrigins []string

	// Database configuration
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	VoteCacheTTL  time.Duration

	// Auth configuration
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Avatar storage
	S3BucketName string
	AWSRegion    string

	LogLevel string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultTokenTTL     = 48 * time.Hour
	defaultVoteCacheTTL = time.Minute
	defaultBcryptCost   = 10
)

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets for every key that is not set in the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// .env files are a local convenience only
	if env == Development || env == Test {
		_ = godotenv.Load()
	}

	cfg := &Config{Environment: env}
	if err := load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load(cfg *Config) error {
	cfg.ServerPort = lookup("SERVER_PORT", "8080")
	cfg.ServerHost = lookup("SERVER_HOST", "0.0.0.0")
	cfg.CORSAllowedOrigins = splitList(lookup("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	cfg.DBDriver = strings.ToLower(lookup("DB_DRIVER", DriverPostgres))
	cfg.DatabaseURL = lookup("DATABASE_URL", "")
	cfg.DBHost = lookup("DB_HOST", "localhost")
	cfg.DBPort = lookup("DB_PORT", "5432")
	cfg.DBUser = lookup("DB_USER", "")
	cfg.DBPassword = lookup("DB_PASSWORD", "")
	cfg.DBName = lookup("DB_NAME", "feedbackboard")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "disable")
	cfg.SQLitePath = lookup("SQLITE_PATH", "feedbackboard.db")

	cfg.RedisURL = lookup("REDIS_URL", "")
	cfg.RedisHost = lookup("REDIS_HOST", "")
	cfg.RedisPort = lookup("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.JWTSecret = lookup("JWT_SECRET", "")
	cfg.S3BucketName = lookup("S3_BUCKET_NAME", "")
	cfg.AWSRegion = lookup("AWS_REGION", "")
	cfg.LogLevel = lookup("LOG_LEVEL", "info")

	var err error
	if cfg.TokenTTL, err = durationValue("TOKEN_TTL", defaultTokenTTL); err != nil {
		return err
	}
	if cfg.VoteCacheTTL, err = durationValue("VOTE_CACHE_TTL", defaultVoteCacheTTL); err != nil {
		return err
	}
	if cfg.BcryptCost, err = intValue("BCRYPT_COST", defaultBcryptCost); err != nil {
		return err
	}

	return nil
}

// PostgresDSN returns the connection string used for the postgres driver
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// PostgresURL returns the URL form of the connection string, as expected by
// golang-migrate.
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether a Redis endpoint was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether avatar uploads can be stored
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}

// lookup returns the environment variable, then the Docker secret with the
// lower-cased name, then the default.
func lookup(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func durationValue(key string, def time.Duration) (time.Duration, error) {
	raw := lookup(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func intValue(key string, def int) (int, error) {
	raw := lookup(key, "")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
