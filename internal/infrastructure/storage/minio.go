package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"itapp/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// MinIO stores uploaded profile media in one bucket and returns public URLs.
type MinIO struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

func NewMinIO(cfg config.MediaConfig, logger zerolog.Logger) (*MinIO, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("media endpoint is not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	publicURL := strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")
	if publicURL == "" {
		publicURL = strings.TrimRight(client.EndpointURL().String(), "/") + "/" + cfg.Bucket
	}

	return &MinIO{client: client, bucket: cfg.Bucket, publicURL: publicURL, logger: logger}, nil
}

// ensureBucket creates the bucket on first use. A failure is retried on the
// next upload.
func (m *MinIO) ensureBucket(ctx context.Context) error {
	m.ensureMu.Lock()
	defer m.ensureMu.Unlock()
	if m.bucketEnsured {
		return nil
	}

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		m.logger.Info().Str("bucket", m.bucket).Msg("created media bucket")
	}

	m.bucketEnsured = true
	return nil
}

func (m *MinIO) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if err := m.ensureBucket(ctx); err != nil {
		return "", err
	}

	info, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	m.logger.Debug().
		Str("bucket", m.bucket).
		Str("key", key).
		Str("etag", info.ETag).
		Int64("size", size).
		Msg("media uploaded")

	return m.publicURL + "/" + key, nil
}
