package telemetry

import (
	"context"

	"github.com/anoideaopen/pluginhost/core/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// CollectorEndpoint describes the OTLP/HTTP collector traces are exported to.
type CollectorEndpoint struct {
	Endpoint string // Host and port of the collector, without scheme.
	CACerts  string // Base64 encoded PEM CA certificates. Empty means an insecure connection.
}

// InstallTraceProvider installs the global trace provider based on http otlp exporter.
// Without an endpoint, or when the exporter cannot be created, a no-op provider is installed.
//
// The returned function flushes and stops the provider.
func InstallTraceProvider(
	settings *CollectorEndpoint,
	serviceName string,
) func(context.Context) error {
	var tracerProvider trace.TracerProvider = noop.NewTracerProvider()
	shutdown := func(context.Context) error { return nil }

	defer func() {
		otel.SetTracerProvider(tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}()

	if settings == nil || len(settings.Endpoint) == 0 {
		return shutdown
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(settings.Endpoint)}
	if settings.CACerts != "" {
		tlsConfig, err := getTLSConfig(settings.CACerts)
		if err != nil {
			logger.Logger().Errorf("loading collector TLS configuration: %v", err)
			return shutdown
		}
		opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
	} else {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
	if err != nil {
		logger.Logger().Errorf("creating OTLP trace exporter: %v", err)
		return shutdown
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceName(serviceName)))
	if err != nil {
		logger.Logger().Errorf("creating resource: %v", err)
		return shutdown
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r))

	tracerProvider = provider

	return provider.Shutdown
}
