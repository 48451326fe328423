package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

func baseConfig() config.StorageConfig {
	return config.StorageConfig{
		Endpoint:     "localhost:9000",
		Bucket:       "documents",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		UsePathStyle: true,
	}
}

func TestNewS3DocumentStore_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.StorageConfig)
		want   string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }, "access key is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }, "secret key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			_, err := NewS3DocumentStore(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("defaults the presign expiration", func(t *testing.T) {
		store, err := NewS3DocumentStore(baseConfig())
		require.NoError(t, err)
		assert.Equal(t, DefaultPresignExpiration, store.presignExpiration)
		assert.Equal(t, "documents", store.Bucket())
	})

	t.Run("options override the configuration", func(t *testing.T) {
		store, err := NewS3DocumentStore(baseConfig(), WithPresignExpiration(time.Hour), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, store.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"", false, ""},
		{"localhost:9000", false, "http://localhost:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
		{"http://minio:9000", true, "http://minio:9000"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.endpoint, tt.ssl)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.endpoint)
	}
}

func TestS3DocumentStore_DownloadURL(t *testing.T) {
	store, err := NewS3DocumentStore(baseConfig())
	require.NoError(t, err)

	_, _, err = store.DownloadURL(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyKey)

	link, expiresAt, err := store.DownloadURL(context.Background(), "invoices/HD0001.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "http://localhost:9000/documents/invoices/HD0001.pdf?"), link)
	assert.Contains(t, link, "X-Amz-Signature=")
	assert.WithinDuration(t, time.Now().Add(DefaultPresignExpiration), expiresAt, 5*time.Second)
}

func TestS3DocumentStore_EmptyKey(t *testing.T) {
	store, err := NewS3DocumentStore(baseConfig())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, "", []byte("x"), "text/plain"), ErrEmptyKey)
	assert.ErrorIs(t, store.Delete(ctx, ""), ErrEmptyKey)
	_, err = store.Exists(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

// newMinIOStore starts a MinIO container and returns a store on a fresh bucket
func newMinIOStore(t *testing.T) *S3DocumentStore {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start MinIO container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	store, err := NewS3DocumentStore(config.StorageConfig{
		Endpoint:     fmt.Sprintf("%s:%s", host, port.Port()),
		Bucket:       "accounting-test",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		UsePathStyle: true,
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.NoError(t, store.EnsureBucket(ctx))
	return store
}

func TestS3DocumentStore_MinIO(t *testing.T) {
	store := newMinIOStore(t)
	ctx := context.Background()
	key := "invoices/HD0001.pdf"

	require.NoError(t, store.EnsureBucket(ctx), "second call finds the bucket")

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, key, []byte("%PDF-1.3"), "application/pdf"))
	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	link, _, err := store.DownloadURL(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, link, "accounting-test/invoices/HD0001.pdf")

	require.NoError(t, store.Delete(ctx, key))
	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
