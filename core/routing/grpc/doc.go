// Package grpc serves gRPC services whose methods are implemented by different plugins.
//
// The contract of a segmented service is its generated server interface, for example
// GreeterServer. Every plugin implements the whole interface and the routing
// configuration decides which plugin serves which RPC:
//
//	contract, err := routing.ContractOf[pb.GreeterServer]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	router, err := mux.NewRouter[pb.GreeterServer](cfg, plugins, contract)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server := grpc.NewServer()
//	if err = grpcrouting.RegisterService[pb.GreeterServer](server, &pb.Greeter_ServiceDesc, router); err != nil {
//	    log.Fatal(err)
//	}
//
// The generated handlers run unchanged; only the implementation they are given is
// resolved per method. Every method of the service description must be routable when
// the service is registered, otherwise [ErrUnroutableMethod] is returned. When the
// service is known to the global protobuf registry its descriptor must declare every
// method of the description as well.
//
// A routing failure while serving a call is reported to the client with
// codes.Internal.
package grpc
