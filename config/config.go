package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort      string        `env:"SERVER_PORT" env-default:"8080"`
	ServerHost      string        `env:"SERVER_HOST" env-default:"0.0.0.0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`

	// Database configuration
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"workwise"`
	DBSSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`

	// Redis configuration
	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisURL      string `env:"REDIS_URL"`

	// JWT configuration
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	// Sign-up limits
	SignupRateLimit  int           `env:"SIGNUP_RATE_LIMIT" env-default:"10"`
	SignupRateWindow time.Duration `env:"SIGNUP_RATE_WINDOW" env-default:"1h"`

	Blob  BlobConfig
	OAuth OAuthConfig
}

// BlobConfig selects and configures the profile photo store.
type BlobConfig struct {
	// Backend is one of "s3", "minio" or "none".
	Backend       string   `env:"BLOB_BACKEND" env-default:"s3"`
	Bucket        string   `env:"BLOB_BUCKET" env-default:"workwise-profile-photos"`
	Region        string   `env:"AWS_REGION" env-default:"us-east-1"`
	Endpoint      string   `env:"BLOB_ENDPOINT"`
	AccessKey     string   `env:"BLOB_ACCESS_KEY"`
	SecretKey     string   `env:"BLOB_SECRET_KEY"`
	PublicBaseURL string   `env:"BLOB_PUBLIC_BASE_URL"`
	MaxPhotoBytes int64    `env:"MAX_PHOTO_BYTES" env-default:"5242880"`
	AllowedTypes  []string `env:"PHOTO_ALLOWED_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/webp"`
}

// OAuthConfig holds settings for the social sign-in providers.
type OAuthConfig struct {
	GoogleClientID  string `env:"GOOGLE_CLIENT_ID"`
	FacebookEnabled bool   `env:"FACEBOOK_ENABLED" env-default:"false"`
	FacebookAppID   string `env:"FACEBOOK_APP_ID"`
	FacebookGraph   string `env:"FACEBOOK_GRAPH_URL" env-default:"https://graph.facebook.com/v19.0"`
	DisplaySync     bool   `env:"DISPLAY_PROFILE_SYNC" env-default:"true"`
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// New loads the configuration and panics when it is invalid.
func New() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	if env == Development || env == Test {
		// A missing .env is fine; the process environment is used as is.
		_ = godotenv.Load()
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Load configuration based on environment
	switch env {
	case CI:
		// CI provides everything through environment variables
	case Development, Test, Production:
		overlaySecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// overlaySecrets replaces sensitive values with Docker secrets when they exist
func overlaySecrets(cfg *Config) {
	secrets := map[string]*string{
		"db_user":         &cfg.DBUser,
		"db_password":     &cfg.DBPassword,
		"jwt_secret":      &cfg.JWTSecret,
		"redis_password":  &cfg.RedisPassword,
		"redis_url":       &cfg.RedisURL,
		"blob_access_key": &cfg.Blob.AccessKey,
		"blob_secret_key": &cfg.Blob.SecretKey,
	}

	for name, dst := range secrets {
		if v := readSecret(name); v != "" {
			*dst = v
		}
	}
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
