package segmented

import (
	"errors"
	"fmt"
	"sync"

	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/routing/proxy"
	"github.com/google/uuid"
)

// ErrNegativeDelta is returned by Tally.Add for negative deltas.
var ErrNegativeDelta = errors.New("delta must not be negative")

// Counter is a stateful contract.
type Counter interface {
	Add(delta int) (int, error)
	Total() int
	Reset()
}

// Tally implements Counter.
type Tally struct {
	id    uuid.UUID
	mu    sync.Mutex
	total int
}

// NewTally creates a tally exported under id.
func NewTally(id uuid.UUID) *Tally {
	return &Tally{id: id}
}

func (t *Tally) PluginID() uuid.UUID { return t.id }

// Add increases the total by delta and returns the new total.
func (t *Tally) Add(delta int) (int, error) {
	if delta < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeDelta, delta)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.total += delta

	return t.total, nil
}

func (t *Tally) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.total
}

func (t *Tally) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = 0
}

// CounterProxy is the routable proxy of Counter.
type CounterProxy struct {
	*proxy.Proxy[Counter]
}

// NewCounterProxy is the proxy.Factory of Counter.
func NewCounterProxy(p *proxy.Proxy[Counter]) Counter {
	return CounterProxy{Proxy: p}
}

func (p CounterProxy) Add(delta int) (int, error) {
	return p.Route("Add").Add(delta)
}

func (p CounterProxy) Total() int {
	return p.Route("Total").Total()
}

func (p CounterProxy) Reset() {
	p.Route("Reset").Reset()
}

// CounterConfiguration routes Counter to the GammaID tally, except Reset claimed by DeltaID.
func CounterConfiguration() config.Contract {
	return config.Contract{
		Name: "Counter",
		RoutablePlugins: []config.RoutablePlugin{
			{ID: GammaID, Primary: true},
			{ID: DeltaID, MethodClaims: []string{"Reset"}},
		},
	}
}
