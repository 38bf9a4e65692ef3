package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anoideaopen/pluginhost/core/stringsx"
	"github.com/google/uuid"
)

// DefaultPluginDirectory is the plugin directory used when none is configured.
const DefaultPluginDirectory = "plugins"

var (
	// ErrContractNotConfigured is returned when no contract configuration matches the requested name.
	ErrContractNotConfigured = errors.New("contract is not configured")

	// ErrPluginDirectoryNotFound is returned when the configured plugin directory does not exist.
	ErrPluginDirectoryNotFound = errors.New("plugin directory not found")
)

// Extensibility is the root of the extensibility configuration.
type Extensibility struct {
	// PluginDirectory is the directory plugins are discovered in. It is not used by the router.
	PluginDirectory string `json:"pluginDirectory,omitempty" yaml:"pluginDirectory,omitempty" mapstructure:"pluginDirectory"`

	// SegmentedContracts lists the contracts whose methods are split between plugins.
	SegmentedContracts []Contract `json:"segmentedContracts" yaml:"segmentedContracts" mapstructure:"segmentedContracts"`
}

// Contract is the routing configuration of one segmented contract.
type Contract struct {
	// Name matches the registered name of the contract, the Go interface type name.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// RoutablePlugins lists the plugins participating in the segmentation.
	RoutablePlugins []RoutablePlugin `json:"routablePlugins" yaml:"routablePlugins" mapstructure:"routablePlugins"`
}

// RoutablePlugin is the configuration of one plugin participating in a contract segmentation.
type RoutablePlugin struct {
	ID           uuid.UUID `json:"id" yaml:"id" mapstructure:"id"`
	Primary      bool      `json:"primary,omitempty" yaml:"primary,omitempty" mapstructure:"primary"`
	MethodClaims []string  `json:"methodClaims,omitempty" yaml:"methodClaims,omitempty" mapstructure:"methodClaims"`
}

// Contract returns the configuration of the contract with the given name.
func (e *Extensibility) Contract(name string) (Contract, error) {
	names := make([]string, 0, len(e.SegmentedContracts))
	for _, c := range e.SegmentedContracts {
		if c.Name == name {
			return c, nil
		}
		names = append(names, c.Name)
	}

	return Contract{}, fmt.Errorf("%w: '%s'%s", ErrContractNotConfigured, name, stringsx.Suggestion(name, names...))
}

// ContractNames returns the names of the configured contracts in configuration order.
func (e *Extensibility) ContractNames() []string {
	names := make([]string, 0, len(e.SegmentedContracts))
	for _, c := range e.SegmentedContracts {
		names = append(names, c.Name)
	}

	return names
}

// PluginPath returns the absolute path of the plugin directory, resolving relative
// paths against baseDir.
//
// Without an explicit directory the DefaultPluginDirectory under baseDir is used if it
// exists and baseDir itself otherwise. An explicit directory that does not exist is
// reported with ErrPluginDirectoryNotFound.
func (e *Extensibility) PluginPath(baseDir string) (string, error) {
	if e.PluginDirectory == "" {
		defaultPath, err := filepath.Abs(filepath.Join(baseDir, DefaultPluginDirectory))
		if err != nil {
			return "", err
		}

		if info, err := os.Stat(defaultPath); err == nil && info.IsDir() {
			return defaultPath, nil
		}

		return filepath.Abs(baseDir)
	}

	path := e.PluginDirectory
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: '%s'", ErrPluginDirectoryNotFound, path)
	}

	return path, nil
}

// normalize makes the configurations decoded from different formats compare equal.
func (e *Extensibility) normalize() {
	if len(e.SegmentedContracts) == 0 {
		e.SegmentedContracts = nil
	}

	for i := range e.SegmentedContracts {
		c := &e.SegmentedContracts[i]
		if len(c.RoutablePlugins) == 0 {
			c.RoutablePlugins = nil
		}

		for j := range c.RoutablePlugins {
			if len(c.RoutablePlugins[j].MethodClaims) == 0 {
				c.RoutablePlugins[j].MethodClaims = nil
			}
		}
	}
}
