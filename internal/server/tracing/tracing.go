// Package tracing installs the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/dmitrijs2005/projectfiles/internal/server/config"
)

const ServiceName = "projectfiles"

// Init builds a tracer provider for the configured exporter, registers it
// globally together with W3C trace-context propagation and returns it so
// the caller can flush it on shutdown.
//
// With the "none" exporter spans are still created (request ids keep flowing
// through logs) but never exported. stdout spans go to w.
func Init(ctx context.Context, exporter, endpoint string, w io.Writer) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	exp, err := buildExporter(ctx, exporter, endpoint, w)
	if err != nil {
		return nil, err
	}
	if exp != nil {
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

func buildExporter(ctx context.Context, exporter, endpoint string, w io.Writer) (sdktrace.SpanExporter, error) {
	switch exporter {
	case config.TraceExporterNone, "":
		return nil, nil
	case config.TraceExporterStdout:
		return stdouttrace.New(stdouttrace.WithWriter(w))
	case config.TraceExporterOTLP:
		var opts []otlptracehttp.Option
		if strings.Contains(endpoint, "://") {
			opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
		} else {
			opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", exporter)
	}
}
