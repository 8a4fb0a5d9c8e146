package app

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/adanyl0v/service-catalog/internal/config"
)

var globalTracerProvider *sdktrace.TracerProvider

// MustInitTracing installs a global tracer provider exporting spans
// to stderr when TRACING_ENABLED is set. Otherwise it does nothing.
func MustInitTracing() {
	cfg := config.Global()
	if !cfg.Tracing.Enabled {
		return
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create trace exporter")
		panic(err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.Tracing.ServiceName),
		attribute.String("deployment.environment", cfg.Env),
	)

	globalTracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Tracing.SampleRatio))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(globalTracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	globalLogger.Info().
		Str("service", cfg.Tracing.ServiceName).
		Float64("sample_ratio", cfg.Tracing.SampleRatio).
		Msg("initialized tracing")
}

func ShutdownTracing() {
	if globalTracerProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := globalTracerProvider.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shut down tracer provider")
		return
	}
	globalLogger.Info().Msg("shut down tracing")
}
