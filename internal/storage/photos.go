// Package storage holds the profile photo stores.
//
// photos.go - shared contract, validation and key layout.
// s3.go     - AWS S3 implementation.
// minio.go  - MinIO implementation.
package storage

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/workwise/backend/internal/types"
)

var (
	// ErrInvalidPhoto is returned when the photo violates the type or size limits
	ErrInvalidPhoto = errors.New("invalid photo")
	// ErrForeignURL is returned when a URL does not point into the configured bucket
	ErrForeignURL = errors.New("url does not belong to this store")
)

const keyPrefix = "profile-photos"

// PhotoStore uploads and removes profile photos
type PhotoStore interface {
	UploadPhoto(ctx context.Context, identityID uuid.UUID, photo *types.PhotoFile) (string, error)
	DeletePhoto(ctx context.Context, url string) error
}

// PhotoLimits are the constraints applied before anything is uploaded
type PhotoLimits struct {
	MaxBytes     int64
	AllowedTypes []string
}

// Check validates photo against the limits and returns its sniffed content type
func (l PhotoLimits) Check(photo *types.PhotoFile) (string, error) {
	if photo == nil || len(photo.Data) == 0 {
		return "", ErrInvalidPhoto
	}
	if l.MaxBytes > 0 && photo.Size() > l.MaxBytes {
		return "", ErrInvalidPhoto
	}

	contentType := http.DetectContentType(photo.Data)
	for _, allowed := range l.AllowedTypes {
		if allowed == contentType {
			return contentType, nil
		}
	}
	return "", ErrInvalidPhoto
}

// ObjectKey builds "profile-photos/<identity>/<uuid><ext>"
func ObjectKey(identityID uuid.UUID, contentType string) string {
	var ext string
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	}
	return path.Join(keyPrefix, identityID.String(), uuid.NewString()+ext)
}

// keyFromURL maps a public URL back to its object key
func keyFromURL(baseURL, url string) (string, error) {
	base := strings.TrimRight(baseURL, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return "", ErrForeignURL
	}
	key := strings.TrimPrefix(url, base)
	if !strings.HasPrefix(key, keyPrefix+"/") || strings.Contains(key, "..") {
		return "", ErrForeignURL
	}
	return key, nil
}

// publicURL joins the base URL and key
func publicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}
