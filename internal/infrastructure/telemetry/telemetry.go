// Package telemetry wires optional OpenTelemetry tracing. With telemetry
// disabled nothing is exported and the global provider stays a no-op.
package telemetry

import (
	"context"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/helpdesk-inc/helpdesk/internal/shared/config"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
	"github.com/helpdesk-inc/helpdesk/internal/shared/version"
)

const DefaultServiceName = "helpdesk"

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup installs a batching OTLP/gRPC tracer provider. Exporter failures are
// logged and leave tracing off; they never stop the server.
func Setup(ctx context.Context, cfg config.TelemetryConfig, log logger.Interface) ShutdownFunc {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		log.Warnw("otel exporter unavailable, tracing disabled", "endpoint", cfg.Endpoint, "error", err)
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(ServiceName(cfg)),
		semconv.ServiceVersion(version.Version),
	))
	if err != nil {
		log.Warnw("otel resource error", "error", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	log.Infow("tracing enabled", "endpoint", cfg.Endpoint, "service", ServiceName(cfg))
	return provider.Shutdown
}

func ServiceName(cfg config.TelemetryConfig) string {
	if cfg.ServiceName == "" {
		return DefaultServiceName
	}
	return cfg.ServiceName
}

// WrapHandler adds a server span per request. The handler is returned as is
// when telemetry is disabled.
func WrapHandler(h http.Handler, cfg config.TelemetryConfig) http.Handler {
	if !cfg.Enabled {
		return h
	}
	return otelhttp.NewHandler(h, ServiceName(cfg))
}
