package telemetry

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestInstallTraceProviderWithoutEndpoint(t *testing.T) {
	shutdown := InstallTraceProvider(nil, "pluginhost-test")
	require.NoError(t, shutdown(context.Background()))
	require.IsType(t, noop.TracerProvider{}, otel.GetTracerProvider())

	shutdown = InstallTraceProvider(&CollectorEndpoint{}, "pluginhost-test")
	require.NoError(t, shutdown(context.Background()))
	require.IsType(t, noop.TracerProvider{}, otel.GetTracerProvider())
}

func TestInstallTraceProviderWithEndpoint(t *testing.T) {
	shutdown := InstallTraceProvider(&CollectorEndpoint{Endpoint: "localhost:4318"}, "pluginhost-test")
	require.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}

func TestInstallTraceProviderWithBadCACerts(t *testing.T) {
	shutdown := InstallTraceProvider(&CollectorEndpoint{
		Endpoint: "localhost:4318",
		CACerts:  base64.StdEncoding.EncodeToString([]byte("not a certificate")),
	}, "pluginhost-test")
	require.NoError(t, shutdown(context.Background()))
	require.IsType(t, noop.TracerProvider{}, otel.GetTracerProvider())
}

func TestGetTLSConfig(t *testing.T) {
	_, err := getTLSConfig("%%%")
	require.Error(t, err)

	_, err = getTLSConfig(base64.StdEncoding.EncodeToString([]byte("garbage")))
	require.ErrorIs(t, err, ErrNoCACerts)
}
