// Package mux builds the routing table of a segmented contract and serves it as the
// contract's host adapter. The [Router] acts as a central hub that resolves, for every
// method name, the plugin implementation configured to own it.
//
// Routing tables are built once from a validated [github.com/anoideaopen/pluginhost/core/config.Contract]
// and a [github.com/anoideaopen/pluginhost/core/routing.Catalog]:
//
//	contract, err := routing.ContractOf[segmented.SegmentedContract]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := extensibility.Contract(contract.Name)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	router, err := mux.NewRouter[segmented.SegmentedContract](cfg, plugins, contract)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	impl, err := router.Route("SomeOtherMethod")
//
// # Error Handling
//
// Configuration defects reported by [github.com/anoideaopen/pluginhost/core/config.Validate]
// are returned unchanged. A plugin id with no catalog entry fails with
// routing.ErrPluginNotFound and a claim naming a method the contract does not declare
// fails with routing.ErrUnknownMethodClaim.
//
// Once built, a method missing from the table is an internal inconsistency and is
// reported as routing.ErrUnregisteredMethod.
package mux
