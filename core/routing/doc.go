// Package routing defines the types shared by the components that split a contract
// between several plugins.
//
// A contract is a Go interface. Several independently deployed plugins implement it,
// every non-primary plugin claims a subset of its methods and a single primary plugin
// owns every method nobody claimed. The routing components turn that configuration
// into an immutable method-name keyed table and dispatch calls through it.
//
// Implementations:
//   - [github.com/anoideaopen/pluginhost/core/routing/mux]: builds the routing table
//     from configuration and a [Catalog] and serves it as a [Router].
//   - [github.com/anoideaopen/pluginhost/core/routing/proxy]: a contract-shaped value
//     forwarding every call through a [Router].
//   - [github.com/anoideaopen/pluginhost/core/routing/grpc]: serves a gRPC service whose
//     methods are owned by different plugins.
//   - [github.com/anoideaopen/pluginhost/core/routing/reflectx]: reflection helpers used
//     to describe contracts and call methods dynamically.
//
// # Example
//
// See: [github.com/anoideaopen/pluginhost/mock/segmented]
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/anoideaopen/pluginhost/core"
//	    "github.com/anoideaopen/pluginhost/core/catalog"
//	    "github.com/anoideaopen/pluginhost/core/config"
//	    "github.com/anoideaopen/pluginhost/mock/segmented"
//	)
//
//	func main() {
//	    cfg, err := config.Load("extensibility.json")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    plugins := catalog.New()
//	    _ = plugins.Add(segmented.AlphaID, segmented.First{})
//	    _ = plugins.Add(segmented.BetaID, segmented.Second{})
//
//	    host, err := core.NewHost(cfg, plugins, core.WithProxy(segmented.NewProxy))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    contract, err := core.GetProxyFor[segmented.SegmentedContract](host)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    log.Println(contract.SomeMethod(), contract.SomeOtherMethod())
//	}
package routing
