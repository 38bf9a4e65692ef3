package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrNotInterface is returned when a contract type is not an interface type.
var ErrNotInterface = errors.New("contract type is not an interface")

// Methods inspects the type of the given value 'v' using reflection and returns a slice of strings
// containing the names of all methods that are defined on its type. This function only considers
// exported methods (those starting with an uppercase letter) due to Go's visibility rules in reflection.
//
// Parameters:
//   - v: The value whose type's methods are to be listed.
//
// Returns:
//   - []string: A slice containing the names of all methods associated with the type of 'v'.
func Methods(v any) []string {
	methodNames := make([]string, 0)

	t := reflect.TypeOf(v)
	if t == nil {
		return methodNames
	}

	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		methodNames = append(methodNames, method.Name)
	}

	sort.Strings(methodNames)

	return methodNames
}

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf it also works for interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// InterfaceMethods returns the sorted names of the methods declared by the interface type t.
func InterfaceMethods(t reflect.Type) ([]string, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%w: %v", ErrNotInterface, t)
	}

	methodNames := make([]string, 0, t.NumMethod())
	for i := range t.NumMethod() {
		methodNames = append(methodNames, t.Method(i).Name)
	}

	sort.Strings(methodNames)

	return methodNames, nil
}

// MethodReturnsError checks if the last return value of the specified method on value 'v' is of type error.
func MethodReturnsError(v any, method string) bool {
	inputVal := reflect.ValueOf(v)
	if !inputVal.IsValid() {
		return false
	}

	methodVal := inputVal.MethodByName(method)
	if !methodVal.IsValid() {
		return false
	}

	methodType := methodVal.Type()
	numOut := methodType.NumOut()
	if numOut == 0 {
		return false
	}

	return methodType.Out(numOut-1) == reflect.TypeOf((*error)(nil)).Elem()
}
