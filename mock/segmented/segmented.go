// Package segmented provides contracts, plugins and configurations exercising the
// plugin host end to end.
package segmented

import (
	"github.com/anoideaopen/pluginhost/core/config"
	"github.com/anoideaopen/pluginhost/core/routing/proxy"
	"github.com/google/uuid"
)

// Plugin ids.
var (
	AlphaID = uuid.MustParse("a0000000-0000-0000-0000-00000000000a")
	BetaID  = uuid.MustParse("b0000000-0000-0000-0000-00000000000b")
	GammaID = uuid.MustParse("c0000000-0000-0000-0000-00000000000c")
	DeltaID = uuid.MustParse("d0000000-0000-0000-0000-00000000000d")
)

// SegmentedContract is a stateless contract split between two plugins.
type SegmentedContract interface {
	SomeMethod() string
	SomeOtherMethod() string
}

// First implements SegmentedContract and is exported as AlphaID.
type First struct{}

func (First) PluginID() uuid.UUID { return AlphaID }

func (First) SomeMethod() string { return "first-some" }

func (First) SomeOtherMethod() string { return "first-other" }

// Second implements SegmentedContract and is exported as BetaID.
type Second struct{}

func (Second) PluginID() uuid.UUID { return BetaID }

func (Second) SomeMethod() string { return "second-some" }

func (Second) SomeOtherMethod() string { return "second-other" }

// SegmentedProxy is the routable proxy of SegmentedContract.
type SegmentedProxy struct {
	*proxy.Proxy[SegmentedContract]
}

// NewProxy is the proxy.Factory of SegmentedContract.
func NewProxy(p *proxy.Proxy[SegmentedContract]) SegmentedContract {
	return SegmentedProxy{Proxy: p}
}

func (p SegmentedProxy) SomeMethod() string {
	return p.Route("SomeMethod").SomeMethod()
}

func (p SegmentedProxy) SomeOtherMethod() string {
	return p.Route("SomeOtherMethod").SomeOtherMethod()
}

// Configuration routes SegmentedContract to First, except SomeOtherMethod claimed by Second.
func Configuration() config.Contract {
	return config.Contract{
		Name: "SegmentedContract",
		RoutablePlugins: []config.RoutablePlugin{
			{ID: AlphaID, Primary: true},
			{ID: BetaID, MethodClaims: []string{"SomeOtherMethod"}},
		},
	}
}

// Extensibility returns the configuration of both fixture contracts.
func Extensibility() *config.Extensibility {
	return &config.Extensibility{
		PluginDirectory:    config.DefaultPluginDirectory,
		SegmentedContracts: []config.Contract{Configuration(), CounterConfiguration()},
	}
}
