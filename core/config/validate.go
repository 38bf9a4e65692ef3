package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Structural configuration errors. None of them is ever corrected automatically.
var (
	ErrMethodClaimedByMultiplePlugins = errors.New("method claimed by multiple plugins")
	ErrMissingPrimaryPlugin           = errors.New("no primary plugin configured")
	ErrMultiplePrimaryPlugins         = errors.New("multiple primary plugins configured")
	ErrInvalidPluginID                = errors.New("invalid plugin id")
	ErrDuplicatePlugin                = errors.New("plugin configured more than once")
	ErrDuplicateContract              = errors.New("contract configured more than once")
)

// Validate checks the structural invariants of a contract configuration and reports
// the first violation found.
//
// The checks run in order:
//  1. no method is claimed more than once across the non-primary plugins; a plugin
//     listing the same claim twice counts as two claims and is rejected as well;
//  2. exactly one plugin is primary;
//  3. every plugin id is set and appears once.
//
// Validate has no side effects and is safe for concurrent use.
func Validate(c Contract) error {
	var (
		claimants = make(map[string][]uuid.UUID)
		claims    = make([]string, 0)
	)
	for _, p := range c.RoutablePlugins {
		if p.Primary {
			continue
		}

		for _, method := range p.MethodClaims {
			if _, ok := claimants[method]; !ok {
				claims = append(claims, method)
			}
			claimants[method] = append(claimants[method], p.ID)
		}
	}

	for _, method := range claims {
		if ids := claimants[method]; len(ids) > 1 {
			ids = slices.Compact(ids)
			return fmt.Errorf(
				"%w: contract '%s', method '%s', plugins %v",
				ErrMethodClaimedByMultiplePlugins,
				c.Name,
				method,
				ids,
			)
		}
	}

	if _, err := c.PrimaryPlugin(); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(c.RoutablePlugins))
	for i, p := range c.RoutablePlugins {
		if p.ID == uuid.Nil {
			return fmt.Errorf("%w: contract '%s', plugin %d has no id", ErrInvalidPluginID, c.Name, i)
		}

		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: contract '%s', plugin '%s'", ErrDuplicatePlugin, c.Name, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return nil
}

// PrimaryPlugin returns the single primary plugin of the contract.
func (c Contract) PrimaryPlugin() (RoutablePlugin, error) {
	var (
		primary RoutablePlugin
		count   int
	)
	for _, p := range c.RoutablePlugins {
		if p.Primary {
			if count == 0 {
				primary = p
			}
			count++
		}
	}

	switch {
	case count == 0:
		return RoutablePlugin{}, fmt.Errorf("%w: contract '%s'", ErrMissingPrimaryPlugin, c.Name)
	case count > 1:
		return RoutablePlugin{}, fmt.Errorf("%w: contract '%s', found %d", ErrMultiplePrimaryPlugins, c.Name, count)
	}

	return primary, nil
}

// Validate checks every contract of the configuration and rejects contracts
// configured more than once.
func (e *Extensibility) Validate() error {
	seen := make(map[string]struct{}, len(e.SegmentedContracts))
	for _, c := range e.SegmentedContracts {
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: '%s'", ErrDuplicateContract, c.Name)
		}
		seen[c.Name] = struct{}{}

		if err := Validate(c); err != nil {
			return err
		}
	}

	return nil
}
