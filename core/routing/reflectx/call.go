package reflectx

import (
	"errors"
	"fmt"
	"reflect"
)

// Error types.
var (
	ErrIncorrectArgumentCount = errors.New("incorrect number of arguments")
	ErrInvalidArgumentValue   = errors.New("invalid argument value")
	ErrMethodNotFound         = errors.New("method not found")
)

// Call invokes a specified method on a given value using reflection. The method to be invoked is identified by its name.
// It checks whether the specified method exists on the value 'v', if the number of provided arguments matches the
// method's expected input parameters and if every argument is assignable to the matching parameter type.
//
// Arguments are passed through as they are: no conversion or decoding takes place. A nil argument is accepted for
// parameters of pointer, interface, slice, map, channel and function types. Variadic methods take their variadic
// arguments one by one, as in an ordinary Go call.
//
// The function returns a slice of any type representing the output from the called method, and an error if the method
// is not found, the number of arguments does not match, or if an argument has the wrong type. A panic raised by the
// method is not recovered.
//
// Example:
//
//	type MyType struct {
//	    Data string
//	}
//
//	func (m *MyType) Update(data string) string {
//	    m.Data = data
//	    return fmt.Sprintf("Updated data to: %s", m.Data)
//	}
//
//	func main() {
//	    myInstance := &MyType{}
//	    output, err := Call(myInstance, "Update", "New data")
//	    if err != nil {
//	        log.Fatalf("Error invoking method: %v", err)
//	    }
//	    fmt.Println(output[0]) // Output: Updated data to: New data
//	}
func Call(v any, method string, args ...any) ([]any, error) {
	inputVal := reflect.ValueOf(v)
	if !inputVal.IsValid() {
		return nil, fmt.Errorf("%w: %s on nil value", ErrMethodNotFound, method)
	}

	methodVal := inputVal.MethodByName(method)
	if !methodVal.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}

	methodType := methodVal.Type()

	numIn := methodType.NumIn()
	if (methodType.IsVariadic() && len(args) < numIn-1) || (!methodType.IsVariadic() && len(args) != numIn) {
		return nil, fmt.Errorf(
			"%w: found %d but expected %d: call %s",
			ErrIncorrectArgumentCount,
			len(args),
			numIn,
			method,
		)
	}

	var (
		in  = make([]reflect.Value, len(args))
		err error
	)
	for i, arg := range args {
		if in[i], err = valueOf(arg, paramType(methodType, i)); err != nil {
			return nil, fmt.Errorf("%w: call %s, argument %d", err, method, i)
		}
	}

	output := make([]any, methodType.NumOut())
	for i, res := range methodVal.Call(in) {
		output[i] = res.Interface()
	}

	return output, nil
}

// paramType returns the type expected for the i-th argument of a call.
func paramType(methodType reflect.Type, i int) reflect.Type {
	last := methodType.NumIn() - 1
	if methodType.IsVariadic() && i >= last {
		return methodType.In(last).Elem()
	}

	return methodType.In(i)
}

func valueOf(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch t.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil is not assignable to %s", ErrInvalidArgumentValue, t)
		}
	}

	val := reflect.ValueOf(arg)
	if !val.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrInvalidArgumentValue, val.Type(), t)
	}

	return val, nil
}
