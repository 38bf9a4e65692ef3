package telemetry

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrNoCACerts is returned when the collector CA bundle holds no usable certificate.
var ErrNoCACerts = errors.New("no CA certificates found")

// getTLSConfig builds the collector client TLS configuration from base64 encoded PEM CA certificates.
func getTLSConfig(caCertsBase64 string) (*tls.Config, error) {
	caCertsBytes, err := base64.StdEncoding.DecodeString(caCertsBase64)
	if err != nil {
		return nil, fmt.Errorf("decoding collector CA certificates: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCertsBytes) {
		return nil, ErrNoCACerts
	}

	return &tls.Config{
		RootCAs:    caCertPool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
