package routing

import (
	"errors"
	"slices"

	"github.com/anoideaopen/pluginhost/core/routing/reflectx"
	"github.com/google/uuid"
)

var (
	// ErrPluginNotFound is returned when a configured plugin id has no entry in the adapter catalog.
	ErrPluginNotFound = errors.New("plugin not found in catalog")

	// ErrUnregisteredMethod is returned when a method has no entry in the routing table.
	// It signals an internal inconsistency and must not be retried.
	ErrUnregisteredMethod = errors.New("method is not registered in routing table")

	// ErrUnknownMethodClaim is returned when a plugin claims a method the contract does not declare.
	ErrUnknownMethodClaim = errors.New("method claim is not declared by contract")

	// ErrPluginContractMismatch is returned when a catalog instance does not implement the contract.
	ErrPluginContractMismatch = errors.New("plugin does not implement contract")
)

// Contract describes a segmented contract.
// Holders of a Contract hand out copies made with Clone.
type Contract struct {
	Name    string   // Registered name of the contract, the Go interface type name.
	Methods []string // Sorted names of the methods declared by the contract.
}

// ContractOf reflects over the interface type C and returns its contract description.
func ContractOf[C any]() (Contract, error) {
	t := reflectx.TypeOf[C]()

	methods, err := reflectx.InterfaceMethods(t)
	if err != nil {
		return Contract{}, err
	}

	return Contract{
		Name:    t.Name(),
		Methods: methods,
	}, nil
}

// Clone returns a copy of the description that shares no memory with c.
func (c Contract) Clone() Contract {
	return Contract{
		Name:    c.Name,
		Methods: slices.Clone(c.Methods),
	}
}

// Has reports whether the contract declares the method.
func (c Contract) Has(method string) bool {
	_, found := slices.BinarySearch(c.Methods, method)
	return found
}

// Equal reports whether both descriptions name the same contract with the same method set.
func (c Contract) Equal(other Contract) bool {
	return c.Name == other.Name && slices.Equal(c.Methods, other.Methods)
}

// AdapterEntry is a discovered plugin instance tagged with its plugin id.
type AdapterEntry struct {
	ID       uuid.UUID
	Instance any
}

// Catalog is the source of discovered plugin instances.
// The host only looks up the ids named in configuration and never iterates it.
type Catalog interface {
	// Lookup returns the entry registered under id.
	Lookup(id uuid.UUID) (AdapterEntry, bool)
}

// CatalogFunc adapts an ordinary function to the Catalog interface.
type CatalogFunc func(id uuid.UUID) (AdapterEntry, bool)

// Lookup calls f(id).
func (f CatalogFunc) Lookup(id uuid.UUID) (AdapterEntry, bool) {
	return f(id)
}

// Resolver resolves the implementation owning a contract method without knowing the contract type.
type Resolver interface {
	// Contract returns the contract the resolver was built for.
	Contract() Contract

	// Resolve returns the implementation that owns the method.
	Resolve(method string) (any, error)

	// Plugin returns the id of the plugin that owns the method.
	Plugin(method string) (uuid.UUID, bool)
}

// Router is a typed Resolver for the contract C.
type Router[C any] interface {
	Resolver

	// Route returns the implementation of C that owns the method.
	Route(method string) (C, error)
}
