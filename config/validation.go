package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var blobBackends = map[string]bool{
	BlobBackendS3:    true,
	BlobBackendMinio: true,
	BlobBackendNone:  true,
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []ValidationError

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_NAME":     cfg.DBName,
	}
	for name, value := range required {
		if value == "" {
			errors = append(errors, ValidationError{Field: name, Message: "is required"})
		}
	}

	// Sensitive values come from env in CI and from Docker secrets elsewhere
	source := "secret"
	if env == CI {
		source = "environment variable"
	}
	if cfg.DBPassword == "" {
		errors = append(errors, ValidationError{Field: "DB_PASSWORD", Message: source + " is required"})
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, ValidationError{Field: "JWT_SECRET", Message: source + " is required"})
	} else if env == Production && len(cfg.JWTSecret) < 32 {
		errors = append(errors, ValidationError{Field: "JWT_SECRET", Message: "must be at least 32 characters in production"})
	}

	if !blobBackends[cfg.Blob.Backend] {
		errors = append(errors, ValidationError{Field: "BLOB_BACKEND", Message: fmt.Sprintf("unknown backend %q", cfg.Blob.Backend)})
	}
	if cfg.Blob.Backend == BlobBackendMinio {
		if cfg.Blob.Endpoint == "" {
			errors = append(errors, ValidationError{Field: "BLOB_ENDPOINT", Message: "is required for minio"})
		}
		if cfg.Blob.AccessKey == "" || cfg.Blob.SecretKey == "" {
			errors = append(errors, ValidationError{Field: "BLOB_ACCESS_KEY", Message: "minio credentials are required"})
		}
	}
	if cfg.Blob.Backend != BlobBackendNone && cfg.Blob.MaxPhotoBytes <= 0 {
		errors = append(errors, ValidationError{Field: "MAX_PHOTO_BYTES", Message: "must be positive"})
	}

	if cfg.OAuth.FacebookEnabled && cfg.OAuth.FacebookAppID == "" {
		errors = append(errors, ValidationError{Field: "FACEBOOK_APP_ID", Message: "is required when facebook sign-in is enabled"})
	}

	if len(errors) > 0 {
		lines := make([]string, len(errors))
		for i, e := range errors {
			lines[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
