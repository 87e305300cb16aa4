package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/config"
	"github.com/pageza/workwise/backend/internal/types"
)

// MinioPhotoStore keeps profile photos in a MinIO bucket
type MinioPhotoStore struct {
	client  *mclient.Client
	bucket  string
	baseURL string
	limits  PhotoLimits
	log     *zap.Logger
}

var _ PhotoStore = (*MinioPhotoStore)(nil)

// NewMinioPhotoStore connects to MinIO and fails fast when the bucket is missing.
// The endpoint may carry a scheme; https selects a secure connection.
func NewMinioPhotoStore(ctx context.Context, blob config.BlobConfig, limits PhotoLimits, log *zap.Logger) (*MinioPhotoStore, error) {
	endpoint := blob.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(blob.AccessKey, blob.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, blob.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket %q does not exist", blob.Bucket)
	}

	return &MinioPhotoStore{
		client:  client,
		bucket:  blob.Bucket,
		baseURL: config.PublicBaseURL(blob),
		limits:  limits,
		log:     log.Named("minio_photos"),
	}, nil
}

// UploadPhoto uploads the photo and returns its public URL
func (s *MinioPhotoStore) UploadPhoto(ctx context.Context, identityID uuid.UUID, photo *types.PhotoFile) (string, error) {
	contentType, err := s.limits.Check(photo)
	if err != nil {
		return "", err
	}

	key := ObjectKey(identityID, contentType)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(photo.Data), photo.Size(), mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	s.log.Debug("uploaded photo", zap.String("identity_id", identityID.String()), zap.String("key", key))
	return publicURL(s.baseURL, key), nil
}

// DeletePhoto removes the object behind a URL returned by UploadPhoto
func (s *MinioPhotoStore) DeletePhoto(ctx context.Context, url string) error {
	key, err := keyFromURL(s.baseURL, url)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete from minio: %w", err)
	}
	return nil
}
