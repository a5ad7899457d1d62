package blobstore

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/projectfiles/internal/server/blobstore"

// Traced records a span for every Put and Get of the wrapped store.
type Traced struct {
	next    ObjectStore
	backend string
	tracer  trace.Tracer
}

func NewTraced(next ObjectStore, backend string) *Traced {
	return &Traced{next: next, backend: backend, tracer: otel.Tracer(tracerName)}
}

func (t *Traced) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	ctx, span := t.tracer.Start(ctx, "blobstore.Put", trace.WithAttributes(
		attribute.String("blob.backend", t.backend),
		attribute.String("blob.name", name),
		attribute.Int64("blob.size", size),
		attribute.String("blob.content_type", contentType),
	))
	defer span.End()

	u, err := t.next.Put(ctx, name, r, size, contentType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return u, err
}

func (t *Traced) Get(ctx context.Context, blobURL string) ([]byte, error) {
	ctx, span := t.tracer.Start(ctx, "blobstore.Get", trace.WithAttributes(
		attribute.String("blob.backend", t.backend),
		attribute.String("blob.url", blobURL),
	))
	defer span.End()

	data, err := t.next.Get(ctx, blobURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("blob.size", len(data)))
	return data, nil
}

func (t *Traced) Name(blobURL string) (string, error) {
	return t.next.Name(blobURL)
}
