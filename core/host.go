package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/logger"
	"github.com/anoideaopen/pluginhost/core/routing"
	"github.com/anoideaopen/pluginhost/core/routing/mux"
	"github.com/anoideaopen/pluginhost/core/routing/proxy"
	"github.com/anoideaopen/pluginhost/core/routing/reflectx"
	"github.com/anoideaopen/pluginhost/core/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrProxyNotRegistered is returned when no proxy factory is registered for a contract.
	ErrProxyNotRegistered = errors.New("proxy is not registered for contract")

	// ErrNoConfiguration is returned when a host is created or updated without configuration.
	ErrNoConfiguration = errors.New("extensibility configuration is not set")

	// ErrNoCatalog is returned when a host is created without an adapter catalog.
	ErrNoCatalog = errors.New("adapter catalog is not set")

	// ErrUnexpectedAdapter is returned when a cached adapter or registered proxy factory
	// does not serve the requested contract type.
	ErrUnexpectedAdapter = errors.New("cached value does not serve contract type")
)

// Host is the plugin host registry. It owns the extensibility configuration, builds the
// host adapter of each contract on first use and hands out routable proxies.
//
// A Host is safe for concurrent use.
type Host struct {
	catalog routing.Catalog
	proxies map[reflect.Type]any
	log     *logrus.Entry
	tp      trace.TracerProvider

	mu         sync.RWMutex
	cfg        *config.Extensibility
	adapters   map[reflect.Type]routing.Resolver // Contract type -> *mux.Router[C]
	generation uint64
	flights    map[reflect.Type]uint64 // Contract type -> singleflight key

	builds singleflight.Group
}

// NewHost creates a plugin host over the configuration and the adapter catalog.
// The whole configuration is validated up front; adapters are built lazily.
func NewHost(cfg *config.Extensibility, catalog routing.Catalog, opts ...HostOption) (*Host, error) {
	if cfg == nil {
		return nil, ErrNoConfiguration
	}

	if catalog == nil {
		return nil, ErrNoCatalog
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := hostOptions{Proxies: make(map[reflect.Type]any)}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if o.Logger == nil {
		o.Logger = logger.Logger()
	}

	return &Host{
		catalog:  catalog,
		proxies:  o.Proxies,
		log:      o.Logger,
		tp:       o.TracerProvider,
		cfg:      cfg,
		adapters: make(map[reflect.Type]routing.Resolver),
		flights:  make(map[reflect.Type]uint64),
	}, nil
}

// Contracts returns the names of the configured contracts.
func (h *Host) Contracts() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.cfg.ContractNames()
}

// UpdateConfiguration validates cfg and replaces the host configuration with it.
// Every cached adapter is dropped and rebuilt on next access.
func (h *Host) UpdateConfiguration(cfg *config.Extensibility) error {
	if cfg == nil {
		return ErrNoConfiguration
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.cfg = cfg
	h.adapters = make(map[reflect.Type]routing.Resolver)
	h.generation++

	h.log.WithField("contracts", cfg.ContractNames()).Info("extensibility configuration updated")

	return nil
}

// LoadAdapter returns the host adapter of the contract C, building its routing table on
// first use. Concurrent first calls share one build; a failed build is not cached.
func LoadAdapter[C any](h *Host) (*mux.Router[C], error) {
	key := reflectx.TypeOf[C]()

	h.mu.RLock()
	cached, ok := h.adapters[key]
	h.mu.RUnlock()

	if ok {
		return adapterOf[C](cached)
	}

	v, err, _ := h.builds.Do(h.flightKey(key), func() (any, error) {
		h.mu.RLock()
		cached, ok := h.adapters[key]
		cfg := h.cfg
		current := h.generation
		h.mu.RUnlock()

		if ok {
			return cached, nil
		}

		router, err := buildAdapter[C](h, cfg)
		if err != nil {
			return nil, err
		}

		h.mu.Lock()
		if h.generation == current {
			h.adapters[key] = router
		}
		h.mu.Unlock()

		return router, nil
	})
	if err != nil {
		return nil, err
	}

	return adapterOf[C](v)
}

// flightKey returns the singleflight key of the contract type for the current generation.
// Every contract type gets its own sequence number, so distinct types never share a build.
func (h *Host) flightKey(t reflect.Type) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	seq, ok := h.flights[t]
	if !ok {
		seq = uint64(len(h.flights))
		h.flights[t] = seq
	}

	return strconv.FormatUint(h.generation, 10) + "/" + strconv.FormatUint(seq, 10)
}

func adapterOf[C any](v any) (*mux.Router[C], error) {
	router, ok := v.(*mux.Router[C])
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrUnexpectedAdapter, v, reflectx.TypeOf[C]())
	}

	return router, nil
}

func buildAdapter[C any](h *Host, cfg *config.Extensibility) (router *mux.Router[C], err error) {
	contract, err := routing.ContractOf[C]()
	if err != nil {
		return nil, err
	}

	_, span := telemetry.Tracer(h.tp).Start(context.Background(), "pluginhost.LoadAdapter",
		trace.WithAttributes(telemetry.Contract(contract.Name)))
	defer func() {
		telemetry.EndSpan(span, err)
	}()

	log := h.log.WithField("contract", contract.Name)
	log.Debug("building routing table")

	contractCfg, err := cfg.Contract(contract.Name)
	if err != nil {
		log.WithError(err).Error("routing table build failed")
		return nil, err
	}

	router, err = mux.NewRouter[C](contractCfg, h.catalog, contract)
	if err != nil {
		log.WithError(err).Error("routing table build failed")
		return nil, err
	}

	assignments := router.Methods()
	span.SetAttributes(telemetry.Methods(len(assignments)))

	fields := make(logrus.Fields, len(assignments))
	for method, id := range assignments {
		fields[method] = id.String()
	}
	log.WithFields(fields).Info("routing table built")

	return router, nil
}

// GetProxyFor returns a routable proxy of the contract C dispatching every method to the
// plugin configured to own it.
func GetProxyFor[C any](h *Host) (C, error) {
	var zero C

	t := reflectx.TypeOf[C]()

	registered, ok := h.proxies[t]
	if !ok {
		return zero, fmt.Errorf("%w: '%s'", ErrProxyNotRegistered, t)
	}

	factory, ok := registered.(proxy.Factory[C])
	if !ok {
		return zero, fmt.Errorf("%w: %T for %s", ErrUnexpectedAdapter, registered, t)
	}

	router, err := LoadAdapter[C](h)
	if err != nil {
		return zero, err
	}

	p, err := proxy.New[C](router, proxy.WithTracer(telemetry.Tracer(h.tp)))
	if err != nil {
		return zero, err
	}

	return factory(p), nil
}

// IsSupported reports whether the contract C is configured and its host adapter can be
// built from the catalog.
func IsSupported[C any](h *Host) bool {
	_, err := LoadAdapter[C](h)
	return err == nil
}
