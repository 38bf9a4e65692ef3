// Package catalog provides an in-memory adapter catalog: the registry of discovered
// plugin instances the routing table builder resolves plugin ids against.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/anoideaopen/pluginhost/core/routing"
	"github.com/google/uuid"
)

var (
	// ErrDuplicateID is returned when a plugin id is registered twice.
	ErrDuplicateID = errors.New("plugin id already registered")

	// ErrInvalidID is returned when a plugin is registered under the nil id.
	ErrInvalidID = errors.New("invalid plugin id")

	// ErrNilFactory is returned when a factory registration has no factory.
	ErrNilFactory = errors.New("plugin factory is nil")
)

// Lifetime is the instance sharing policy of a catalog entry.
type Lifetime int

const (
	// Shared entries create one instance on first lookup and return it afterwards.
	Shared Lifetime = iota
	// NonShared entries create a fresh instance on every lookup.
	NonShared
)

func (l Lifetime) String() string {
	switch l {
	case Shared:
		return "shared"
	case NonShared:
		return "non-shared"
	default:
		return fmt.Sprintf("lifetime(%d)", int(l))
	}
}

// Factory creates a plugin instance.
type Factory func() any

// Part is a plugin instance that knows its own id.
type Part interface {
	PluginID() uuid.UUID
}

type entry struct {
	lifetime Lifetime
	factory  Factory
	once     sync.Once
	instance any
}

func (e *entry) get() any {
	if e.lifetime == NonShared {
		return e.factory()
	}

	e.once.Do(func() {
		e.instance = e.factory()
	})

	return e.instance
}

// Catalog is a thread-safe in-memory adapter catalog.
type Catalog struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
}

var _ routing.Catalog = (*Catalog)(nil)

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[uuid.UUID]*entry)}
}

// Add registers a shared instance under id.
func (c *Catalog) Add(id uuid.UUID, instance any) error {
	return c.AddFactory(id, Shared, func() any { return instance })
}

// AddFactory registers a factory under id with the given lifetime.
func (c *Catalog) AddFactory(id uuid.UUID, lifetime Lifetime, factory Factory) error {
	if id == uuid.Nil {
		return ErrInvalidID
	}

	if factory == nil {
		return fmt.Errorf("%w: plugin '%s'", ErrNilFactory, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		return fmt.Errorf("%w: '%s'", ErrDuplicateID, id)
	}

	c.entries[id] = &entry{lifetime: lifetime, factory: factory}

	return nil
}

// Export registers every part as a shared instance under its own id.
// Registration stops at the first error.
func (c *Catalog) Export(parts ...Part) error {
	for _, p := range parts {
		if err := c.Add(p.PluginID(), p); err != nil {
			return err
		}
	}

	return nil
}

// Lookup returns the entry registered under id, creating its instance as the lifetime requires.
func (c *Catalog) Lookup(id uuid.UUID) (routing.AdapterEntry, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok {
		return routing.AdapterEntry{}, false
	}

	return routing.AdapterEntry{ID: id, Instance: e.get()}, true
}

// IDs returns the registered plugin ids in ascending order.
func (c *Catalog) IDs() []uuid.UUID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})

	return ids
}
