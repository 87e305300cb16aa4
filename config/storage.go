package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Blob storage backends
const (
	BlobBackendS3    = "s3"
	BlobBackendMinio = "minio"
	BlobBackendNone  = "none"
)

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client        *s3.Client
	BucketName    string
	PublicBaseURL string
}

// NewS3Config initializes the S3 client from the blob configuration
func NewS3Config(ctx context.Context, blob BlobConfig) (*S3Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(blob.Region),
	}
	if blob.AccessKey != "" && blob.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(blob.AccessKey, blob.SecretKey, ""),
		))
	}

	// Load AWS config from environment or shared config
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if blob.Endpoint != "" {
			o.BaseEndpoint = aws.String(blob.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Config{
		Client:        client,
		BucketName:    blob.Bucket,
		PublicBaseURL: PublicBaseURL(blob),
	}, nil
}

// PublicBaseURL returns the URL prefix under which uploaded objects are served
func PublicBaseURL(blob BlobConfig) string {
	if blob.PublicBaseURL != "" {
		return strings.TrimRight(blob.PublicBaseURL, "/")
	}
	if blob.Endpoint != "" {
		return strings.TrimRight(blob.Endpoint, "/") + "/" + blob.Bucket
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com", blob.Bucket)
}
