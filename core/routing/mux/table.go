package mux

import (
	"fmt"
	"slices"

	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/routing"
	"github.com/anoideaopen/pluginhost/core/routing/reflectx"
	"github.com/anoideaopen/pluginhost/core/stringsx"
	"github.com/google/uuid"
)

// Table is the immutable routing table of a contract: every method declared by the
// contract maps to exactly one plugin implementation.
type Table[C any] struct {
	contract routing.Contract
	entries  map[string]entry[C] // Method -> implementation
}

type entry[C any] struct {
	plugin uuid.UUID
	impl   C
}

// Build validates the contract configuration and builds its routing table.
//
// The primary plugin is resolved first, then every non-primary plugin in configuration
// order; their claimed methods are routed to them. Every method left unclaimed is routed
// to the primary plugin. A plugin id missing from the catalog fails with
// routing.ErrPluginNotFound and an instance that does not implement C with
// routing.ErrPluginContractMismatch.
//
// Building twice from the same configuration and catalog yields the same mapping.
func Build[C any](cfg config.Contract, catalog routing.Catalog, contract routing.Contract) (*Table[C], error) {
	contract = normalize(contract)
	instances := make(map[uuid.UUID]C, len(cfg.RoutablePlugins))

	assignments, err := plan(cfg, contract, func(id uuid.UUID) error {
		impl, err := resolve[C](catalog, id, contract)
		if err != nil {
			return err
		}

		instances[id] = impl
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make(map[string]entry[C], len(assignments))
	for method, id := range assignments {
		entries[method] = entry[C]{plugin: id, impl: instances[id]}
	}

	return &Table[C]{
		contract: contract,
		entries:  entries,
	}, nil
}

// Plan validates the contract configuration and returns the id of the plugin owning
// each contract method, without resolving any plugin.
func Plan(cfg config.Contract, contract routing.Contract) (map[string]uuid.UUID, error) {
	return plan(cfg, normalize(contract), func(uuid.UUID) error { return nil })
}

// normalize returns a sorted copy of the contract the table can own.
func normalize(contract routing.Contract) routing.Contract {
	owned := contract.Clone()
	slices.Sort(owned.Methods)

	return owned
}

func plan(cfg config.Contract, contract routing.Contract, visit func(id uuid.UUID) error) (map[string]uuid.UUID, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	primary, err := cfg.PrimaryPlugin()
	if err != nil {
		return nil, err
	}

	if err = visit(primary.ID); err != nil {
		return nil, err
	}

	assignments := make(map[string]uuid.UUID, len(contract.Methods))
	for _, p := range cfg.RoutablePlugins {
		if p.Primary {
			continue
		}

		if err = visit(p.ID); err != nil {
			return nil, err
		}

		for _, method := range p.MethodClaims {
			if !contract.Has(method) {
				return nil, fmt.Errorf(
					"%w: contract '%s', plugin '%s', method '%s'%s",
					routing.ErrUnknownMethodClaim,
					contract.Name,
					p.ID,
					method,
					stringsx.Suggestion(method, contract.Methods...),
				)
			}

			assignments[method] = p.ID
		}
	}

	for _, method := range contract.Methods {
		if _, ok := assignments[method]; !ok {
			assignments[method] = primary.ID
		}
	}

	return assignments, nil
}

func resolve[C any](catalog routing.Catalog, id uuid.UUID, contract routing.Contract) (C, error) {
	var zero C

	e, ok := catalog.Lookup(id)
	if !ok {
		return zero, fmt.Errorf("%w: contract '%s', plugin '%s'", routing.ErrPluginNotFound, contract.Name, id)
	}

	impl, ok := e.Instance.(C)
	if !ok {
		return zero, fmt.Errorf(
			"%w: contract '%s', plugin '%s' is %T, missing methods %v",
			routing.ErrPluginContractMismatch,
			contract.Name,
			id,
			e.Instance,
			missingMethods(e.Instance, contract),
		)
	}

	return impl, nil
}

func missingMethods(instance any, contract routing.Contract) []string {
	implemented := reflectx.Methods(instance)

	missing := make([]string, 0)
	for _, method := range contract.Methods {
		if _, found := slices.BinarySearch(implemented, method); !found {
			missing = append(missing, method)
		}
	}

	return missing
}

// Contract returns a copy of the contract the table was built for.
func (t *Table[C]) Contract() routing.Contract {
	return t.contract.Clone()
}

// Len returns the number of routed methods.
func (t *Table[C]) Len() int {
	return len(t.entries)
}

// Lookup returns the implementation and plugin id owning the method.
func (t *Table[C]) Lookup(method string) (C, uuid.UUID, bool) {
	e, ok := t.entries[method]
	return e.impl, e.plugin, ok
}

// Assignments returns a copy of the method to plugin id mapping.
func (t *Table[C]) Assignments() map[string]uuid.UUID {
	assignments := make(map[string]uuid.UUID, len(t.entries))
	for method, e := range t.entries {
		assignments[method] = e.plugin
	}

	return assignments
}
