package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/projectfiles/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_RoundTrip(t *testing.T) {
	l := NewLocator("http://127.0.0.1:9000/project-files/")

	names := []string{
		"p1/src/index.js",
		"p1/docs/read me.md",
		"p1/a#b?c.txt",
		"p1/ünïcode/файл.go",
	}
	for _, name := range names {
		u := l.URL(name)
		assert.Contains(t, u, "http://127.0.0.1:9000/project-files/p1/")

		got, err := l.Name(u)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
}

func TestLocator_EscapesSegmentsOnly(t *testing.T) {
	l := NewLocator("https://storage.googleapis.com/b")
	assert.Equal(t, "https://storage.googleapis.com/b/p/dir/my%20file.txt", l.URL("p/dir/my file.txt"))
}

func TestLocator_ForeignURL(t *testing.T) {
	l := NewLocator("http://host/bucket")

	for _, u := range []string{
		"http://other/bucket/p/a.js",
		"http://host/bucket2/p/a.js",
		"http://host/bucket/",
		"",
	} {
		_, err := l.Name(u)
		assert.ErrorIs(t, err, ErrForeignURL, u)
	}
}

func TestLocator_BadEscape(t *testing.T) {
	l := NewLocator("http://host/bucket")
	_, err := l.Name("http://host/bucket/p/%zz")
	assert.True(t, errors.Is(err, ErrForeignURL))
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), &config.Config{BlobBackend: "azure"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown blob backend")
}

func TestNew_MinioWrapsTraced(t *testing.T) {
	cfg := &config.Config{
		BlobBackend:    config.BlobBackendMinio,
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3Bucket:       "project-files",
		S3Region:       "us-east-1",
	}

	store, err := New(context.Background(), cfg)
	require.NoError(t, err)

	traced, ok := store.(*Traced)
	require.True(t, ok)
	_, ok = traced.next.(*MinioStore)
	assert.True(t, ok)

	u := "http://127.0.0.1:9000/project-files/p1/a.js"
	name, err := store.Name(u)
	require.NoError(t, err)
	assert.Equal(t, "p1/a.js", name)
}

func TestNewMinioStore_BadEndpoint(t *testing.T) {
	_, err := NewMinioStore(&config.Config{S3BaseEndpoint: "127.0.0.1:9000"})
	require.Error(t, err)
}
