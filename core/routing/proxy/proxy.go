package proxy

import (
	"context"
	"errors"
	"fmt"

	"github.com/anoideaopen/pluginhost/core/routing"
	"github.com/anoideaopen/pluginhost/core/routing/reflectx"
	"github.com/anoideaopen/pluginhost/core/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	// ErrEmptyContract is returned when the contract declares no methods.
	ErrEmptyContract = errors.New("contract declares no methods")

	// ErrContractMismatch is returned when the router serves another contract than the proxy.
	ErrContractMismatch = errors.New("router serves a different contract")
)

// Factory builds the contract-shaped forwarding value around a proxy.
type Factory[C any] func(p *Proxy[C]) C

// Option configures a Proxy.
type Option func(o *options)

type options struct {
	tracer trace.Tracer
}

// WithTracer sets the tracer Invoke starts its spans with.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// Proxy dispatches the methods of the contract C to the implementations selected by a router.
// It carries no state besides the router and is safe for concurrent use.
type Proxy[C any] struct {
	router   routing.Router[C]
	contract routing.Contract
	tracer   trace.Tracer
}

// New creates the dispatch core of a proxy for the contract C served by router.
func New[C any](router routing.Router[C], opts ...Option) (*Proxy[C], error) {
	contract, err := routing.ContractOf[C]()
	if err != nil {
		return nil, err
	}

	if len(contract.Methods) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrEmptyContract, contract.Name)
	}

	if served := router.Contract(); !contract.Equal(served) {
		return nil, fmt.Errorf(
			"%w: proxy for '%s' %v, router for '%s' %v",
			ErrContractMismatch,
			contract.Name,
			contract.Methods,
			served.Name,
			served.Methods,
		)
	}

	o := options{tracer: noop.NewTracerProvider().Tracer(telemetry.InstrumentationName)}
	for _, opt := range opts {
		opt(&o)
	}

	return &Proxy[C]{
		router:   router,
		contract: contract,
		tracer:   o.tracer,
	}, nil
}

// Contract returns the contract served by the proxy.
func (p *Proxy[C]) Contract() routing.Contract {
	return p.contract.Clone()
}

// Route returns the implementation owning the method.
// A method missing from the routing table is an internal inconsistency and panics.
func (p *Proxy[C]) Route(method string) C {
	impl, err := p.router.Route(method)
	if err != nil {
		panic(err)
	}

	return impl
}

// Resolve is the non-panicking form of Route.
func (p *Proxy[C]) Resolve(method string) (C, error) {
	return p.router.Route(method)
}

// Invoke calls the method on its owning implementation with args.
// See InvokeContext.
func (p *Proxy[C]) Invoke(method string, args ...any) ([]any, error) {
	return p.InvokeContext(context.Background(), method, args...)
}

// InvokeContext calls the method on its owning implementation with args and returns its
// outputs. A trailing error output is removed from the outputs and returned as the error.
// Errors and panics of the implementation propagate unmodified.
func (p *Proxy[C]) InvokeContext(ctx context.Context, method string, args ...any) (out []any, err error) {
	_, span := p.tracer.Start(ctx, p.contract.Name+"."+method, trace.WithAttributes(
		telemetry.Contract(p.contract.Name),
		telemetry.Method(method),
	))
	defer func() {
		telemetry.EndSpan(span, err)
	}()

	impl, err := p.router.Route(method)
	if err != nil {
		return nil, err
	}

	if id, ok := p.router.Plugin(method); ok {
		span.SetAttributes(telemetry.Plugin(id))
	}

	out, err = reflectx.Call(impl, method, args...)
	if err != nil {
		return nil, err
	}

	if !reflectx.MethodReturnsError(impl, method) {
		return out, nil
	}

	last := out[len(out)-1]
	out = out[:len(out)-1]
	if last != nil {
		return out, last.(error)
	}

	return out, nil
}
