package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/projectfiles/internal/server/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioObjects interface {
	PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, bucket, name string) (io.ReadCloser, error)
}

type minioClient struct {
	c *minio.Client
}

func (m minioClient) PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) error {
	_, err := m.c.PutObject(ctx, bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m minioClient) GetObject(ctx context.Context, bucket, name string) (io.ReadCloser, error) {
	return m.c.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
}

// MinioStore keeps blobs in a MinIO bucket.
type MinioStore struct {
	client  minioObjects
	bucket  string
	locator Locator
}

// NewMinioStore connects to the server at cfg.S3BaseEndpoint; an https
// scheme enables TLS.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	u, err := url.Parse(cfg.S3BaseEndpoint)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q", cfg.S3BaseEndpoint)
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3RootUser, cfg.S3RootPassword, ""),
		Secure: u.Scheme == "https",
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, err
	}

	return newMinioStore(minioClient{c: client}, cfg.S3Bucket, u.Scheme+"://"+u.Host), nil
}

func newMinioStore(client minioObjects, bucket, endpoint string) *MinioStore {
	return &MinioStore{
		client:  client,
		bucket:  bucket,
		locator: NewLocator(strings.TrimRight(endpoint, "/") + "/" + bucket),
	}
}

func (s *MinioStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if err := s.client.PutObject(ctx, s.bucket, name, r, size, contentType); err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}
	return s.locator.URL(name), nil
}

func (s *MinioStore) Get(ctx context.Context, blobURL string) ([]byte, error) {
	name, err := s.locator.Name(blobURL)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name)
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", name, err)
	}
	return data, nil
}

func (s *MinioStore) Name(blobURL string) (string, error) {
	return s.locator.Name(blobURL)
}
