package grpc

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// FindServiceDescriptor finds the service descriptor by the given service name.
// It returns nil for services not registered in the global protobuf registry.
func FindServiceDescriptor(serviceName string) protoreflect.ServiceDescriptor {
	d, err := protoregistry.GlobalFiles.FindDescriptorByName(protoreflect.FullName(serviceName))
	if err != nil {
		return nil
	}

	sd, ok := d.(protoreflect.ServiceDescriptor)
	if !ok {
		return nil
	}

	return sd
}

// FullMethodName builds the gRPC method path "/package.Service/Method".
func FullMethodName(serviceName, methodName string) string {
	return fmt.Sprintf("/%s/%s", serviceName, methodName)
}

// FullNameToURL transforms a method name from "package.Service.Method" to "/package.Service/Method"
func FullNameToURL(fullMethodName string) string {
	i := strings.LastIndex(fullMethodName, ".")
	if i <= 0 || i == len(fullMethodName)-1 {
		return ""
	}

	return FullMethodName(fullMethodName[:i], fullMethodName[i+1:])
}
