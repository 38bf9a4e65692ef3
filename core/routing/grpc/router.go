package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/anoideaopen/pluginhost/core/routing"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/reflect/protoreflect"
)

var (
	// ErrUnroutableMethod is returned when a method of the service has no owner in the router.
	ErrUnroutableMethod = errors.New("service method cannot be routed")

	// ErrUndeclaredMethod is returned when a service description names a method its
	// registered protobuf descriptor does not declare.
	ErrUndeclaredMethod = errors.New("service method is not declared by protobuf descriptor")
)

// RegisterService registers a segmented gRPC service: a copy of desc whose unary and
// stream handlers resolve, on every call, the implementation owning the method through
// router and run the original handler with it.
//
// The service implementation type C is the generated server interface. It must not be
// called once the server has started serving.
func RegisterService[C any](s grpc.ServiceRegistrar, desc *grpc.ServiceDesc, router routing.Router[C]) error {
	segmented, err := Segment(desc, router)
	if err != nil {
		return err
	}

	// Handlers ignore the registered implementation, nil skips the HandlerType check.
	s.RegisterService(segmented, nil)

	return nil
}

// Segment returns a copy of desc whose handlers resolve the service implementation
// through router.
func Segment[C any](desc *grpc.ServiceDesc, router routing.Router[C]) (*grpc.ServiceDesc, error) {
	sd := FindServiceDescriptor(desc.ServiceName)

	check := func(method string) error {
		if sd != nil && sd.Methods().ByName(protoreflect.Name(method)) == nil {
			return fmt.Errorf("%w: %s", ErrUndeclaredMethod, FullMethodName(desc.ServiceName, method))
		}

		if _, ok := router.Plugin(method); !ok {
			return fmt.Errorf(
				"%w: %s, contract '%s'",
				ErrUnroutableMethod,
				FullMethodName(desc.ServiceName, method),
				router.Contract().Name,
			)
		}

		return nil
	}

	segmented := *desc
	segmented.Methods = make([]grpc.MethodDesc, 0, len(desc.Methods))
	segmented.Streams = make([]grpc.StreamDesc, 0, len(desc.Streams))

	for _, m := range desc.Methods {
		if err := check(m.MethodName); err != nil {
			return nil, err
		}

		m.Handler = unaryHandler(router, m.MethodName, m.Handler)
		segmented.Methods = append(segmented.Methods, m)
	}

	for _, st := range desc.Streams {
		if err := check(st.StreamName); err != nil {
			return nil, err
		}

		st.Handler = streamHandler(router, st.StreamName, st.Handler)
		segmented.Streams = append(segmented.Streams, st)
	}

	return &segmented, nil
}

func unaryHandler[C any](router routing.Router[C], method string, handler grpc.MethodHandler) grpc.MethodHandler {
	return func(
		_ any,
		ctx context.Context,
		dec func(any) error,
		interceptor grpc.UnaryServerInterceptor,
	) (any, error) {
		impl, err := router.Route(method)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}

		return handler(impl, ctx, dec, interceptor)
	}
}

func streamHandler[C any](router routing.Router[C], method string, handler grpc.StreamHandler) grpc.StreamHandler {
	return func(_ any, stream grpc.ServerStream) error {
		impl, err := router.Route(method)
		if err != nil {
			return status.Error(codes.Internal, err.Error())
		}

		return handler(impl, stream)
	}
}
