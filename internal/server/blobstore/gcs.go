package blobstore

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/dmitrijs2005/projectfiles/internal/server/config"
	"google.golang.org/api/option"
)

const gcsPublicBase = "https://storage.googleapis.com"

type gcsObjects interface {
	NewWriter(ctx context.Context, bucket, name, contentType string) io.WriteCloser
	NewReader(ctx context.Context, bucket, name string) (io.ReadCloser, error)
}

type gcsClient struct {
	c *storage.Client
}

func (g gcsClient) NewWriter(ctx context.Context, bucket, name, contentType string) io.WriteCloser {
	w := g.c.Bucket(bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

func (g gcsClient) NewReader(ctx context.Context, bucket, name string) (io.ReadCloser, error) {
	return g.c.Bucket(bucket).Object(name).NewReader(ctx)
}

var newGCSClient = storage.NewClient

// GCSStore keeps blobs in a Google Cloud Storage bucket.
type GCSStore struct {
	client  gcsObjects
	bucket  string
	locator Locator
}

// NewGCSStore uses cfg.GCSCredentialsFile when set, application default
// credentials otherwise.
func NewGCSStore(ctx context.Context, cfg *config.Config) (*GCSStore, error) {
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}

	client, err := newGCSClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return newGCSStore(gcsClient{c: client}, cfg.S3Bucket), nil
}

func newGCSStore(client gcsObjects, bucket string) *GCSStore {
	return &GCSStore{
		client:  client,
		bucket:  bucket,
		locator: NewLocator(gcsPublicBase + "/" + bucket),
	}
}

func (s *GCSStore) Put(ctx context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	w := s.client.NewWriter(ctx, s.bucket, name, contentType)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return s.locator.URL(name), nil
}

func (s *GCSStore) Get(ctx context.Context, blobURL string) ([]byte, error) {
	name, err := s.locator.Name(blobURL)
	if err != nil {
		return nil, err
	}

	rc, err := s.client.NewReader(ctx, s.bucket, name)
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", name, err)
	}
	return data, nil
}

func (s *GCSStore) Name(blobURL string) (string, error) {
	return s.locator.Name(blobURL)
}
