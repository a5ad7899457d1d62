// Package blobstore keeps file contents in an object store and addresses
// them by URL. S3 (and S3-compatible endpoints), MinIO and Google Cloud
// Storage are supported.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/projectfiles/internal/server/config"
)

// ErrForeignURL is returned for URLs that do not point into the store.
var ErrForeignURL = errors.New("url does not belong to this store")

// ObjectStore writes and reads named blobs. Writing an existing name
// replaces the previous content.
type ObjectStore interface {
	// Put stores size bytes from r under name and returns the blob URL.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	// Get downloads the blob a URL previously returned by Put points to.
	Get(ctx context.Context, blobURL string) ([]byte, error)
	// Name recovers the blob name from a blob URL.
	Name(blobURL string) (string, error)
}

// Locator converts between blob names and URLs under Base.
type Locator struct {
	Base string
}

// NewLocator trims trailing slashes from base.
func NewLocator(base string) Locator {
	return Locator{Base: strings.TrimRight(base, "/")}
}

// URL escapes every segment of name and appends it to Base.
func (l Locator) URL(name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return l.Base + "/" + strings.Join(segments, "/")
}

// Name is the inverse of URL.
func (l Locator) Name(blobURL string) (string, error) {
	rest, ok := strings.CutPrefix(blobURL, l.Base+"/")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, blobURL)
	}

	segments := strings.Split(rest, "/")
	for i, s := range segments {
		u, err := url.PathUnescape(s)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrForeignURL, err)
		}
		segments[i] = u
	}
	return strings.Join(segments, "/"), nil
}

// New builds the store selected by cfg.BlobBackend and wraps it with
// tracing.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	var (
		store ObjectStore
		err   error
	)

	switch cfg.BlobBackend {
	case config.BlobBackendS3, "":
		store, err = NewS3Store(ctx, cfg)
	case config.BlobBackendMinio:
		store, err = NewMinioStore(cfg)
	case config.BlobBackendGCS:
		store, err = NewGCSStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s blob store: %w", cfg.BlobBackend, err)
	}

	return NewTraced(store, cfg.BlobBackend), nil
}
