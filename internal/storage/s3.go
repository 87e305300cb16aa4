package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/config"
	"github.com/pageza/workwise/backend/internal/types"
)

// s3API is the part of the S3 client the store uses
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3PhotoStore keeps profile photos in an S3 bucket
type S3PhotoStore struct {
	client  s3API
	bucket  string
	baseURL string
	limits  PhotoLimits
	log     *zap.Logger
}

var _ PhotoStore = (*S3PhotoStore)(nil)

// NewS3PhotoStore creates a store on top of an initialized S3 client
func NewS3PhotoStore(s3Config *config.S3Config, limits PhotoLimits, log *zap.Logger) *S3PhotoStore {
	return newS3PhotoStore(s3Config.Client, s3Config.BucketName, s3Config.PublicBaseURL, limits, log)
}

func newS3PhotoStore(client s3API, bucket, baseURL string, limits PhotoLimits, log *zap.Logger) *S3PhotoStore {
	return &S3PhotoStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		limits:  limits,
		log:     log.Named("s3_photos"),
	}
}

// UploadPhoto uploads the photo and returns its public URL
func (s *S3PhotoStore) UploadPhoto(ctx context.Context, identityID uuid.UUID, photo *types.PhotoFile) (string, error) {
	contentType, err := s.limits.Check(photo)
	if err != nil {
		return "", err
	}

	key := ObjectKey(identityID, contentType)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(photo.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := publicURL(s.baseURL, key)
	s.log.Debug("uploaded photo", zap.String("identity_id", identityID.String()), zap.String("key", key))
	return url, nil
}

// DeletePhoto removes the object behind a URL returned by UploadPhoto
func (s *S3PhotoStore) DeletePhoto(ctx context.Context, url string) error {
	key, err := keyFromURL(s.baseURL, url)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
