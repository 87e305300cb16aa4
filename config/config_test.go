package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "workwise")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
}

func TestLoadConfig(t *testing.T) {
	setTestEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Test database configuration
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "workwise", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)

	// Test JWT configuration
	assert.Equal(t, "test-secret", cfg.JWTSecret)

	// Test Redis configuration
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)

	// Defaults
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BlobBackendS3, cfg.Blob.Backend)
	assert.Equal(t, int64(5<<20), cfg.Blob.MaxPhotoBytes)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp"}, cfg.Blob.AllowedTypes)
	assert.Equal(t, 10, cfg.SignupRateLimit)
}

func TestLoadConfigSecretsOverrideEnv(t *testing.T) {
	setTestEnv(t)
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestLoadConfigMissingSecrets(t *testing.T) {
	setTestEnv(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidateConfigMinioNeedsEndpoint(t *testing.T) {
	setTestEnv(t)
	cfg := &Config{
		ServerPort: "8080", DBHost: "h", DBPort: "1", DBName: "n",
		DBPassword: "p", JWTSecret: "s",
		Blob: BlobConfig{Backend: BlobBackendMinio, MaxPhotoBytes: 1},
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLOB_ENDPOINT")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")

	t.Setenv("APP_ENV", "prod")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestResolveCapabilities(t *testing.T) {
	cfg := &Config{
		Blob:  BlobConfig{Backend: BlobBackendNone},
		OAuth: OAuthConfig{GoogleClientID: "client", DisplaySync: true},
	}

	caps := ResolveCapabilities(cfg)
	assert.True(t, caps.ProviderEnabled(ProviderGoogle))
	assert.False(t, caps.ProviderEnabled(ProviderFacebook))
	assert.False(t, caps.PhotoUpload)
	assert.True(t, caps.DisplaySync)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://photos.s3.amazonaws.com", PublicBaseURL(BlobConfig{Bucket: "photos"}))
	assert.Equal(t, "http://minio:9000/photos", PublicBaseURL(BlobConfig{Bucket: "photos", Endpoint: "http://minio:9000/"}))
	assert.Equal(t, "https://cdn.example.com", PublicBaseURL(BlobConfig{Bucket: "photos", PublicBaseURL: "https://cdn.example.com/"}))
}
