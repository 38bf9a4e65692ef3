package mux

import (
	"fmt"

	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/routing"
	"github.com/google/uuid"
)

// Router is the host adapter of a contract: it owns the routing table and resolves the
// implementation that owns each method. A Router is immutable and safe for concurrent use.
type Router[C any] struct {
	table *Table[C]
}

var (
	_ routing.Router[any] = (*Router[any])(nil)
	_ routing.Resolver    = (*Router[any])(nil)
)

// NewRouter builds the routing table of the contract from its configuration and the
// adapter catalog and returns a Router serving it.
func NewRouter[C any](cfg config.Contract, catalog routing.Catalog, contract routing.Contract) (*Router[C], error) {
	table, err := Build[C](cfg, catalog, contract)
	if err != nil {
		return nil, err
	}

	return NewRouterFromTable(table), nil
}

// NewRouterFromTable returns a Router serving an already built table.
func NewRouterFromTable[C any](table *Table[C]) *Router[C] {
	return &Router[C]{table: table}
}

// Route returns the implementation that owns the method.
// It returns routing.ErrUnregisteredMethod when the method is not in the routing table.
func (r *Router[C]) Route(method string) (C, error) {
	impl, _, ok := r.table.Lookup(method)
	if !ok {
		return impl, fmt.Errorf(
			"%w: contract '%s', method '%s'",
			routing.ErrUnregisteredMethod,
			r.table.contract.Name,
			method,
		)
	}

	return impl, nil
}

// Resolve is the untyped form of Route.
func (r *Router[C]) Resolve(method string) (any, error) {
	impl, err := r.Route(method)
	if err != nil {
		return nil, err
	}

	return impl, nil
}

// Plugin returns the id of the plugin that owns the method.
func (r *Router[C]) Plugin(method string) (uuid.UUID, bool) {
	_, id, ok := r.table.Lookup(method)
	return id, ok
}

// Contract returns a copy of the contract the router was built for.
func (r *Router[C]) Contract() routing.Contract {
	return r.table.Contract()
}

// Methods retrieves a copy of the routing table, keyed by method name.
func (r *Router[C]) Methods() map[string]uuid.UUID {
	return r.table.Assignments()
}

// Table returns the routing table served by the router.
func (r *Router[C]) Table() *Table[C] {
	return r.table
}
