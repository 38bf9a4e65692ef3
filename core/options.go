package core

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/pluginhost/core/routing/proxy"
	"github.com/anoideaopen/pluginhost/core/routing/reflectx"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// ErrNilOption is returned when an option is given a nil value.
var ErrNilOption = errors.New("option value is nil")

// HostOption represents a function that applies configuration options to
// a hostOptions object.
type HostOption func(opts *hostOptions) error

// hostOptions holds the optional dependencies of a Host.
type hostOptions struct {
	Logger         *logrus.Entry
	TracerProvider trace.TracerProvider
	Proxies        map[reflect.Type]any // Contract type -> proxy.Factory[C]
}

// WithProxy is a HostOption that registers the proxy factory of the contract C.
// A later registration for the same contract replaces the earlier one.
func WithProxy[C any](factory proxy.Factory[C]) HostOption {
	return func(o *hostOptions) error {
		if factory == nil {
			return fmt.Errorf("%w: proxy factory for %s", ErrNilOption, reflectx.TypeOf[C]())
		}

		o.Proxies[reflectx.TypeOf[C]()] = factory
		return nil
	}
}

// WithLogger is a HostOption that sets the logger of the Host.
func WithLogger(l *logrus.Entry) HostOption {
	return func(o *hostOptions) error {
		if l == nil {
			return fmt.Errorf("%w: logger", ErrNilOption)
		}

		o.Logger = l
		return nil
	}
}

// WithTracerProvider is a HostOption that sets the provider of the tracer used for
// adapter builds and proxy invocations. The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) HostOption {
	return func(o *hostOptions) error {
		if tp == nil {
			return fmt.Errorf("%w: tracer provider", ErrNilOption)
		}

		o.TracerProvider = tp
		return nil
	}
}
