package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/config"
	"github.com/pageza/workwise/backend/internal/types"
)

// Run with GO_TEST_INTEGRATION=1; needs docker.
func startMinio(t *testing.T) config.BlobConfig {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	const (
		rootUser     = "root"
		rootPassword = "rootpass"
		bucket       = "photos"
	)
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image: "docker.io/minio/minio:latest",
			Env: map[string]string{
				"MINIO_ROOT_USER":     rootUser,
				"MINIO_ROOT_PASSWORD": rootPassword,
			},
			Cmd:          []string{"server", "/data"},
			ExposedPorts: []string{"9000/tcp"},
			WaitingFor:   wait.ForListeningPort("9000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	admin, err := mclient.New(host+":"+port.Port(), &mclient.Options{
		Creds: credentials.NewStaticV4(rootUser, rootPassword, ""),
	})
	require.NoError(t, err)
	require.NoError(t, admin.MakeBucket(ctx, bucket, mclient.MakeBucketOptions{Region: "us-east-1"}))

	return config.BlobConfig{
		Endpoint:  fmt.Sprintf("http://%s:%s", host, port.Port()),
		Bucket:    bucket,
		AccessKey: rootUser,
		SecretKey: rootPassword,
	}
}

func TestIntegration_MinioUploadAndDelete(t *testing.T) {
	blob := startMinio(t)
	ctx := context.Background()

	store, err := NewMinioPhotoStore(ctx, blob, testLimits(), zap.NewNop())
	require.NoError(t, err)

	url, err := store.UploadPhoto(ctx, uuid.New(), &types.PhotoFile{Data: pngHeader})
	require.NoError(t, err)

	key, err := keyFromURL(store.baseURL, url)
	require.NoError(t, err)
	_, err = store.client.StatObject(ctx, blob.Bucket, key, mclient.StatObjectOptions{})
	require.NoError(t, err)

	require.NoError(t, store.DeletePhoto(ctx, url))
	_, err = store.client.StatObject(ctx, blob.Bucket, key, mclient.StatObjectOptions{})
	require.Error(t, err)
}

func TestIntegration_MinioMissingBucket(t *testing.T) {
	blob := startMinio(t)
	blob.Bucket = "missing"

	_, err := NewMinioPhotoStore(context.Background(), blob, testLimits(), zap.NewNop())
	require.Error(t, err)
}
