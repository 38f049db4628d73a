// Package otel provides OpenTelemetry tracer provider initialization and management.
package otel

import (
	"context"
	"fmt"
	"time"

	"github.com/mrzor/ntplot/internal/config"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// TracerName is the instrumentation name of pipeline spans.
const TracerName = "ntplot"

// shutdownTimeout bounds the final span flush on exit.
const shutdownTimeout = 10 * time.Second

// InitProvider initializes the OpenTelemetry tracer provider exporting to the
// configured OTLP/HTTP endpoint.
//
// Note: The HTTP client honors HTTP_PROXY, HTTPS_PROXY and NO_PROXY through
// Go's standard net/http transport.
func InitProvider(cfg *config.OTELConfig, versionInfo string, logger *zap.Logger) (*sdktrace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	endpoint := cfg.GetEndpoint()
	logger.Info("OTEL configuration",
		zap.String("service", cfg.ServiceName),
		zap.String("endpoint", endpoint),
		zap.String("resource_attributes", cfg.ResourceAttributes),
	)

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	resourceAttrs := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(versionInfo),
		),
	}
	if customAttrs := cfg.ParseResourceAttributes(); len(customAttrs) > 0 {
		resourceAttrs = append(resourceAttrs, resource.WithAttributes(customAttrs...))
	}

	res, err := resource.New(ctx, resourceAttrs...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}

// ShutdownProvider gracefully shuts down the tracer provider, flushing any remaining spans.
func ShutdownProvider(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}

	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	return nil
}

// Setup returns the tracer for a run and a cleanup function. Without a
// configured endpoint the tracer is a no-op.
func Setup(cfg *config.OTELConfig, versionInfo string, logger *zap.Logger) (trace.Tracer, func(), error) {
	if !cfg.Enabled() {
		return noop.NewTracerProvider().Tracer(TracerName), func() {}, nil
	}

	tp, err := InitProvider(cfg, versionInfo, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := ShutdownProvider(shutdownCtx, tp); err != nil {
			logger.Warn("shutting down OTEL provider", zap.Error(err))
		}
	}
	return tp.Tracer(TracerName), cleanup, nil
}
