// Package core provides the plugin host: the registry that turns the extensibility
// configuration and an adapter catalog into routable proxies of segmented contracts.
//
// A segmented contract is a Go interface whose methods are implemented by several
// plugins. The host builds, once per contract, a routing table that assigns every
// method to exactly one plugin and returns a proxy that forwards each call to it:
//
//	plugins := catalog.New()
//	if err := plugins.Export(segmented.First{}, segmented.Second{}); err != nil {
//	    log.Fatal(err)
//	}
//
//	host, err := core.NewHost(cfg, plugins, core.WithProxy(segmented.NewProxy))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	contract, err := core.GetProxyFor[segmented.SegmentedContract](host)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	contract.SomeOtherMethod() // served by the plugin claiming SomeOtherMethod
//
// Host adapters are cached per contract until [Host.UpdateConfiguration] replaces the
// configuration.
package core
